package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-credential-service/internal/application"
	"github.com/oksasatya/go-credential-service/internal/domain/entity"
	"github.com/oksasatya/go-credential-service/pkg/response"
	"github.com/oksasatya/go-credential-service/pkg/validation"
)

// Registrar creates users.
type Registrar interface {
	Register(ctx context.Context, in userapp.RegisterInput) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// Issuer exchanges credentials for tokens.
type Issuer interface {
	IssueToken(ctx context.Context, email, password string) (*entity.Token, error)
}

type UserHandler struct {
	Users    Registrar
	Tokens   Issuer
	Searcher userapp.UserSearcher
	Logger   *logrus.Logger
}

func NewUserHandler(users Registrar, tokens Issuer, searcher userapp.UserSearcher, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Tokens: tokens, Searcher: searcher, Logger: logger}
}

// Both JSON and form bodies are accepted.
type createUserRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Name     string `json:"name" form:"name"`
}

type tokenRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// tokenResponse repeats the token at the top level, where existing clients read it.
type tokenResponse struct {
	response.APIResponse[gin.H]
	Token string `json:"token"`
}

func userView(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"created_at": u.CreatedAt,
	}
}

// Create POST /api/user/create
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Register(c.Request.Context(), userapp.RegisterInput{Email: req.Email, Password: req.Password, Name: req.Name})
	if err != nil {
		h.fail(c, err)
		return
	}
	registeredUsers.Add(1)
	response.Success(c, http.StatusCreated, userView(u), "user created", nil)
}

// Token POST /api/user/token
func (h *UserHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	tok, err := h.Tokens.IssueToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	issuedTokens.Add(1)
	c.JSON(http.StatusOK, tokenResponse{
		APIResponse: response.NewSuccess(c, http.StatusOK, gin.H{
			"token":      tok.Value,
			"expires_at": tok.ExpiresAt,
		}, "token issued", nil),
		Token: tok.Value,
	})
}

// Me GET /api/user/me (token required)
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Users.GetByID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, userapp.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "profile", nil)
}

// Search GET /api/users/search?q=&size= (token required)
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if h.Searcher == nil {
		response.Success(c, http.StatusOK, []map[string]any{}, "search disabled", nil)
		return
	}
	hits, err := h.Searcher.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("user search failed")
		}
		response.Error[any](c, http.StatusServiceUnavailable, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "users", map[string]any{"count": len(hits)})
}

// fail maps application errors to responses. Authentication failures are a
// 400, matching the validation path, so callers cannot tell which check failed.
func (h *UserHandler) fail(c *gin.Context, err error) {
	var ve *userapp.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{ve.Field: ve.Err.Error()})
	case errors.Is(err, userapp.ErrInvalidCredentials):
		failedAuth.Add(1)
		response.Error[any](c, http.StatusBadRequest, "unable to authenticate with provided credentials", nil)
	case errors.Is(err, userapp.ErrUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, "service temporarily unavailable", nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("unhandled error")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
