// handlers/profile_routes.go
package handlers

import (
	"errors"
	"strconv"

	"aqube-rewards-backend/middleware"
	"aqube-rewards-backend/models"
	"aqube-rewards-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, profiles *services.ProfileService, referrals *services.ReferralService) {
	// 🔓 Public — leaderboard is rendered for visitors too
	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		entries, err := profiles.Leaderboard(limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load leaderboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"entries": entries})
	})

	// 🔐 Secured — acts on the caller's own profile only
	secured := app.Group("/user", middleware.UserContextMiddleware())

	secured.Get("/profile", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		profile, err := profiles.Get(userID)
		if err != nil {
			if errors.Is(err, services.ErrProfileNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load profile",
				"cause": err.Error(),
			})
		}
		return c.JSON(profile)
	})

	secured.Get("/referrals", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := referrals.ListForReferrer(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load referrals",
				"cause": err.Error(),
			})
		}
		count, err := referrals.CountForReferrer(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to count referrals",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"referrals": list,
			"count":     count,
			"max":       models.MaxReferralsPerUser,
			"remaining": max64(0, models.MaxReferralsPerUser-count),
		})
	})
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
