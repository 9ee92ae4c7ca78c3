package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const ContextSubject = "subject"

// AuthMiddleware accepts either the static API token or an HS256 JWT signed
// with the configured secret. With neither configured every request is
// rejected.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	apiToken := []byte(cfg.APIToken)
	secret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Unauthorized")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Unauthorized")
			return
		}

		tokenString := strings.TrimSpace(parts[1])

		if len(apiToken) > 0 && subtle.ConstantTimeCompare([]byte(tokenString), apiToken) == 1 {
			c.Set(ContextSubject, "api-token")
			c.Next()
			return
		}

		if len(secret) == 0 {
			httperr.Unauthorized(c, "invalid_token", "Unauthorized")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Unauthorized")
			return
		}

		sub, _ := token.Claims.GetSubject()
		c.Set(ContextSubject, sub)

		c.Next()
	}
}
