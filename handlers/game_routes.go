// handlers/game_routes.go
package handlers

import (
	"errors"
	"time"

	"aqube-rewards-backend/middleware"
	"aqube-rewards-backend/models"
	"aqube-rewards-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, slots *services.SlotService, wheel *services.WheelService, quiz *services.QuizService, scores *services.ScoreService) {
	// 🔐 All game endpoints act on the caller's balances. The middleware is
	// scoped to /games so public routes registered elsewhere stay public.
	secured := app.Group("/games", middleware.UserContextMiddleware())

	secured.Post("/slot/spin", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		result, err := slots.Spin(userID)
		if err != nil {
			return spinFailure(c, err)
		}
		return c.JSON(result)
	})

	secured.Post("/wheel/spin", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		result, err := wheel.Spin(userID)
		if err != nil {
			return spinFailure(c, err)
		}
		return c.JSON(result)
	})

	secured.Get("/quiz/daily", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		questions, err := quiz.Questions(userID, time.Now())
		if err != nil {
			if errors.Is(err, services.ErrAlreadyPlayedToday) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error": "You can only play the quiz once per day. New questions available tomorrow!",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load quiz",
				"cause": err.Error(),
			})
		}
		// Answers stay server-side; the client gets questions and options only.
		type publicQuestion struct {
			ID       int      `json:"id"`
			Question string   `json:"question"`
			Options  []string `json:"options"`
			Points   int64    `json:"points"`
		}
		out := make([]publicQuestion, 0, len(questions))
		for _, q := range questions {
			out = append(out, publicQuestion{ID: q.ID, Question: q.Question, Options: q.Options, Points: q.Points})
		}
		return c.JSON(fiber.Map{"questions": out})
	})

	secured.Post("/quiz/submit", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			Score int64 `json:"score"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}

		play, profile, err := quiz.Submit(userID, req.Score, time.Now())
		if err != nil {
			if errors.Is(err, services.ErrAlreadyPlayedToday) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error": "You can only play the quiz once per day. New questions available tomorrow!",
				})
			}
			if errors.Is(err, services.ErrProfileNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record quiz run",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"play": play, "profile": profile})
	})

	secured.Post("/:key/score", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		gameKey := models.GameKey(c.Params("key"))

		var req struct {
			Score int64 `json:"score"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}

		play, profile, err := scores.Submit(userID, gameKey, req.Score)
		if err != nil {
			if errors.Is(err, services.ErrUnknownGame) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown game"})
			}
			if errors.Is(err, services.ErrProfileNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record score",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"play": play, "profile": profile})
	})

	secured.Get("/:key/target", func(c *fiber.Ctx) error {
		gameKey := models.GameKey(c.Params("key"))
		target, err := scores.DrawTarget(gameKey)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown game"})
		}
		return c.JSON(target)
	})

	secured.Get("/history", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		plays, err := scores.History(userID, c.QueryInt("limit", 20))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load play history",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"plays": plays})
	})
}

// spinFailure maps spin errors: out-of-spins is an expected outcome, missing
// profile a 404, everything else a store failure.
func spinFailure(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNoSpinsLeft) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "No spins remaining. Refer friends to earn more spins!",
		})
	}
	if errors.Is(err, services.ErrProfileNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "spin failed",
		"cause": err.Error(),
	})
}
