// handlers/auth_routes.go
package handlers

import (
	"errors"
	"log"
	"strings"

	"aqube-rewards-backend/services"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes wires the account endpoints. All credential handling is
// proxied to the identity service; this backend only owns the profile row.
func SetupAuthRoutes(app *fiber.App, identity *services.IdentityClient, profiles *services.ProfileService, referrals *services.ReferralService) {
	app.Post("/auth/signup", func(c *fiber.Ctx) error {
		var req struct {
			Email        string `json:"email"`
			Password     string `json:"password"`
			DisplayName  string `json:"display_name"`
			ReferralCode string `json:"referral_code"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Email == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and password are required"})
		}

		account, err := identity.SignUp(req.Email, req.Password, req.DisplayName, req.ReferralCode)
		if err != nil {
			return identityFailure(c, err)
		}

		profile, err := profiles.Ensure(account.UserID, req.DisplayName)
		if err != nil {
			// Account exists but the profile insert failed; the signup sync
			// worker will reconcile it on its next pass.
			log.Printf("❌ Profile creation failed for %s: %v", account.UserID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "account created but profile setup failed",
				"cause": err.Error(),
			})
		}

		resp := fiber.Map{
			"user_id": account.UserID,
			"profile": profile,
		}

		if code := strings.TrimSpace(req.ReferralCode); code != "" {
			result, refErr := referrals.Process(account.UserID, code)
			switch {
			case refErr == nil:
				resp["referral"] = result
			case errors.Is(refErr, services.ErrInvalidReferralCode),
				errors.Is(refErr, services.ErrReferralCapReached),
				errors.Is(refErr, services.ErrSelfReferral):
				// Signup still succeeds — the referral outcome is advisory.
				resp["referral_error"] = refErr.Error()
			default:
				log.Printf("❌ Referral processing failed for %s: %v", account.UserID, refErr)
				resp["referral_error"] = "referral could not be processed"
			}
		}

		return c.Status(fiber.StatusCreated).JSON(resp)
	})

	app.Post("/auth/signin", func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}

		session, err := identity.SignIn(req.Email, req.Password)
		if err != nil {
			return identityFailure(c, err)
		}
		return c.JSON(session)
	})

	app.Post("/auth/signout", func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing access token"})
		}
		if err := identity.SignOut(token); err != nil {
			return identityFailure(c, err)
		}
		return c.JSON(fiber.Map{"message": "signed out"})
	})

	app.Get("/auth/session", func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing access token"})
		}
		session, err := identity.GetSession(token)
		if err != nil {
			return identityFailure(c, err)
		}
		return c.JSON(session)
	})
}

// identityFailure surfaces identity service errors verbatim (bad
// credentials, duplicate account) and degrades transport failures to a 502.
func identityFailure(c *fiber.Ctx, err error) error {
	var idErr *services.IdentityError
	if errors.As(err, &idErr) {
		return c.Status(idErr.StatusCode).JSON(fiber.Map{"error": idErr.Message})
	}
	log.Printf("❌ Identity service unreachable: %v", err)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "identity service unavailable"})
}

// bearerToken reads the user's access token. The Authorization header is
// taken by the gateway service token, so sessions travel in X-Access-Token.
func bearerToken(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Get("X-Access-Token"))
}
