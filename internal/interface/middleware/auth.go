package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	userapp "github.com/oksasatya/go-credential-service/internal/application"
	"github.com/oksasatya/go-credential-service/internal/domain/entity"
	"github.com/oksasatya/go-credential-service/pkg/response"
)

const CtxUserIDKey = "userID"

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// tokenFromHeader accepts "Token <value>" and "Bearer <value>".
func tokenFromHeader(h string) string {
	scheme, value, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok {
		return ""
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(value)
}

// Auth validates the Authorization header token.
// It sets userID and userEmail in the Gin context on success.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		u, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, userapp.ErrUnavailable) {
				response.Error[any](c, http.StatusServiceUnavailable, "service temporarily unavailable", nil)
			} else {
				response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			}
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set("userEmail", u.Email)
		c.Next()
	}
}
