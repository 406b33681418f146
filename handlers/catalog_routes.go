// handlers/catalog_routes.go
package handlers

import (
	"aqube-rewards-backend/middleware"
	"aqube-rewards-backend/services"
	"aqube-rewards-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupCatalogRoutes(app *fiber.App, catalog *services.CatalogService) {
	// 🔓 Public — the landing page lists published games for visitors
	app.Get("/catalog", func(c *fiber.Ctx) error {
		games, err := catalog.ListPublished()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load catalog",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"games": games})
	})

	// Admin endpoints
	admin := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.AdminOnly())

	admin.Post("/catalog", func(c *fiber.Ctx) error {
		var req services.CreateInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		game, err := catalog.Create(req)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to create catalog entry",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(game)
	})

	admin.Post("/catalog/:id/artwork", func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("artwork")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "artwork file is required"})
		}

		game, err := catalog.Get(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "catalog entry not found"})
		}

		key := utils.ArtworkKey(game.Slug, fileHeader)
		var artworkURL string
		if utils.R2Configured() {
			artworkURL, err = utils.UploadFileToR2(fileHeader, key)
		} else {
			artworkURL, err = utils.SaveUploadLocally(fileHeader, key)
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to store artwork",
				"cause": err.Error(),
			})
		}

		game, err = catalog.SetArtwork(game.ID, artworkURL)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save artwork URL",
				"cause": err.Error(),
			})
		}
		return c.JSON(game)
	})
}
