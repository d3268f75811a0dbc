package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const (
	ContextAdminEmail = "adminEmail"
	ContextUserRole   = "userRole"

	RoleAdmin = "admin"
)

// AdminAuth accepts HS256 bearer tokens carrying role=admin.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Authorization required")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Session expired, please log in again")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Session expired, please log in again")
			return
		}

		email, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if email == "" || role != RoleAdmin {
			httperr.Unauthorized(c, "invalid_token_payload", "Admin access required")
			return
		}

		c.Set(ContextAdminEmail, email)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}
