package middleware

import (
	"errors"
	"strings"

	"staffdesk/internal/adapters/persistence/repositories"
	"staffdesk/internal/config"
	"staffdesk/internal/pkg/jwt"
	"staffdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Locals keys set by AuthMiddleware
const (
	LocalUserID   = "userID"
	LocalUsername = "username"
	LocalIsAdmin  = "isAdmin"
)

// AuthMiddleware creates authentication middleware. It fails closed: a
// missing, malformed, expired or badly-signed token, or a subject that no
// longer resolves to an active user, all reject the request with 401 before
// any handler logic runs. The reasons are deliberately not distinguished in
// the response body.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Resolve the subject to a live user. The admin flag comes from
		// the database, not the token, so revoking admin or deactivating an
		// account takes effect on the next request.
		user, err := userRepo.GetByUsername(c.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Unauthorized(c, "Invalid access token")
			}
			return response.InternalServerError(c, "Failed to resolve user")
		}
		if !user.IsActive {
			return response.Unauthorized(c, "Invalid access token")
		}

		// 6. Set user info in context
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUsername, user.Username)
		c.Locals(LocalIsAdmin, user.IsAdmin)

		return c.Next()
	}
}

// AdminOnly allows only admin users. Runs after AuthMiddleware, so identity
// is already proven: an insufficient role is 403, not 401.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, ok := c.Locals(LocalIsAdmin).(bool)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !isAdmin {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}
