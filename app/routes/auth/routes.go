package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Get("/login", ShowLoginPage)
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)

	// Protected routes
	auth.Use(AuthMiddleware)
	auth.Post("/change-password", ChangePasswordAPI)
}

func ShowLoginPage(c *fiber.Ctx) error {
	// Check if already logged in
	if tokenString := c.Cookies("jwt_token"); tokenString != "" {
		if _, err := ValidateJWT(tokenString); err == nil {
			return c.Redirect("/dashboard")
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title": "Login - EduPro Institute",
	}, "")
}

// AuthMiddleware validates the JWT and places the actor's identity in locals
// for audit stamping.
func AuthMiddleware(c *fiber.Ctx) error {
	// Get JWT token from cookie or Authorization header
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return unauthorized(c)
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return unauthorized(c)
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("actor_name", claims.FirstName+" "+claims.LastName)
	c.Locals("actor_role", claims.Role)
	return c.Next()
}

// RequireRole gates an operation to the named roles. Authorization policy
// beyond this gate lives with the identity provider.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorRole, _ := c.Locals("actor_role").(string)
		for _, role := range roles {
			if actorRole == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient role for this operation")
	}
}

// ActorName returns the authenticated operator's display name for audit
// fields.
func ActorName(c *fiber.Ctx) string {
	if name, ok := c.Locals("actor_name").(string); ok && name != "" {
		return name
	}
	return "System"
}

func unauthorized(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api") {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}
	return c.Redirect("/auth/login")
}
