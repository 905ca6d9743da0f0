package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/shoestore/backend/internal/application/identity"
	"github.com/shoestore/backend/internal/interfaces/http/dto"
	"github.com/shoestore/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers authentication routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
	}
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var input identityapp.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Login authenticates a user and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var input identityapp.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Dữ liệu đăng nhập không hợp lệ")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input identityapp.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Thiếu refresh token")
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// logoutRequest carries the refresh token to revoke alongside the access
// token taken from the Authorization header
type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout revokes the caller's tokens
func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	// body is optional; without it only the access token is revoked
	_ = c.ShouldBindJSON(&req)

	accessToken := strings.TrimPrefix(c.GetHeader(middleware.AuthHeaderKey), middleware.BearerPrefix)
	if err := h.authService.Logout(c.Request.Context(), accessToken, req.RefreshToken); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Đăng xuất thành công"})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := uuid.Parse(middleware.GetJWTUserID(c))
	if err != nil {
		c.JSON(dto.GetHTTPStatus(dto.ErrCodeUnauthorized), dto.NewErrorResponse(
			dto.ErrCodeUnauthorized, "Vui lòng đăng nhập"))
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
