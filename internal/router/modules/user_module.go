package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-credential-service/internal/interface/http"
	"github.com/oksasatya/go-credential-service/internal/interface/middleware"
)

// UserModule wires user HTTP handlers and token auth into routes
// Public: POST /api/user/create, POST /api/user/token
// Protected: GET /api/user/me, GET /api/users/search
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    middleware.Authenticator
}

func NewUserModule(h *handlers.UserHandler, auth middleware.Authenticator) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/user/create", m.Handler.Create)
	rg.POST("/user/token", m.Handler.Token)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Auth))
	{
		auth.GET("/user/me", m.Handler.Me)
		auth.GET("/users/search", m.Handler.Search)
	}
}
