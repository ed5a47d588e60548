package handlers

import (
	"errors"
	"net/http"

	"golang-storefront-sync/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService AuthServiceInterface
}

func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the routes for the login flow
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("/login", h.Login)
		users.POST("/register", h.Register)
		users.POST("/logout", h.Logout)
	}
}

// Login authenticates against the backend and runs the one-shot guest cart
// merge. The redirect query parameter survives the merge so the client can
// navigate to its original destination (checkout or home).
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	sess := requireSession(c)
	if sess == nil {
		return
	}
	redirect := c.Query("redirect")

	resp, err := h.authService.Login(c.Request.Context(), sess, &req, redirect)
	if err != nil {
		renderAuthError(c, "Login failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	sess := requireSession(c)
	if sess == nil {
		return
	}
	redirect := c.Query("redirect")

	resp, err := h.authService.Register(c.Request.Context(), sess, &req, redirect)
	if err != nil {
		renderAuthError(c, "Registration failed", err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Logout clears the local cart snapshot and rotates the guest id so the
// next anonymous session does not inherit a merged cart identity.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := requireSession(c)
	if sess == nil {
		return
	}

	resp, err := h.authService.Logout(c.Request.Context(), sess)
	if err != nil {
		renderAuthError(c, "Logout failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func renderAuthError(c *gin.Context, title string, err error) {
	var upstream *services.UpstreamError
	if errors.As(err, &upstream) {
		c.JSON(upstream.StatusCode, ErrorResponse{
			Error:   title,
			Message: upstream.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   title,
		Message: err.Error(),
	})
}
