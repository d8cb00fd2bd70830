package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

const (
	ContextProviderID = "providerID"
	ContextActorRole  = "actorRole"
)

// AuthMiddleware verifies a bearer token issued by the account service.
// The "sub" claim carries the provider id the caller acts for.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a bearer token.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Invalid token.")
			c.Abort()
			return
		}

		providerID, ok := claims["sub"].(float64)
		if !ok || providerID <= 0 {
			httperr.Unauthorized(c, "invalid_token_payload", "Invalid token.")
			c.Abort()
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextProviderID, uint(providerID))
		c.Set(ContextActorRole, role)

		c.Next()
	}
}

// ProviderID returns the authenticated provider; only valid behind
// AuthMiddleware.
func ProviderID(c *gin.Context) uint {
	return c.MustGet(ContextProviderID).(uint)
}
