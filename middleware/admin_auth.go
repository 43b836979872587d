package middleware

import (
	"net/http"
	"strings"

	"MenuLens/config/environment"
	"MenuLens/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AdminAuthMiddleware guards internal-only routes. Requests must carry a
// bearer token signed with the admin secret and a role=admin claim; these
// routes are never reachable for ordinary callers.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := environment.GetAdminJWTSecret()
		if secret == "" {
			utils.ErrorResponse(c, http.StatusForbidden, "Admin operations are disabled")
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Missing admin token")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid admin token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != "admin" {
			utils.ErrorResponse(c, http.StatusForbidden, "Admin role required")
			return
		}

		c.Next()
	}
}
