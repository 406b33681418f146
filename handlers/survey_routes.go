// handlers/survey_routes.go
package handlers

import (
	"errors"

	"aqube-rewards-backend/middleware"
	"aqube-rewards-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSurveyRoutes(app *fiber.App, surveys *services.SurveyService) {
	// 🔐 Single route, so the user-context middleware sits on it directly
	// instead of a group that would swallow public paths.
	app.Post("/survey", middleware.UserContextMiddleware(), func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req services.SurveyInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}

		survey, profile, err := surveys.Submit(userID, req)
		if err != nil {
			if errors.Is(err, services.ErrSurveySubmitted) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error": "You have already submitted the survey.",
				})
			}
			if errors.Is(err, services.ErrProfileNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to submit survey",
				"cause": err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"survey":  survey,
			"profile": profile,
			"message": "Survey submitted successfully! You earned 500 points!",
		})
	})
}
