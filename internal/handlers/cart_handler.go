package handlers

import (
	"errors"
	"net/http"

	"golang-storefront-sync/internal/middleware"
	"golang-storefront-sync/internal/models"
	"golang-storefront-sync/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type CartHandler struct {
	cartService CartServiceInterface
}

func NewCartHandler(cartService CartServiceInterface) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// RegisterRoutes registers the routes for cart synchronization
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	cart := router.Group("/cart")
	{
		// Get the current cart snapshot
		cart.GET("", h.GetCart)
		// Add item to cart
		cart.POST("", h.AddToCart)
		// Update item quantity
		cart.PUT("", h.UpdateQuantity)
		// Remove item from cart
		cart.DELETE("", h.RemoveFromCart)
	}

	// Order confirmation requires an authenticated session
	router.POST("/orders/confirm", authMiddleware.AuthRequired(), h.ConfirmOrder)
}

// requireSession returns the resolved session context, or writes a 500 and
// returns nil if the session middleware did not run for this route.
func requireSession(c *gin.Context) *models.SessionContext {
	sess := middleware.GetSessionContext(c)
	if sess == nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Session missing",
			Message: "Session context was not resolved for this request",
		})
	}
	return sess
}

// GetCart returns the authoritative cart for the request identity. A cart
// that does not exist upstream renders as an empty cart, not an error.
func (h *CartHandler) GetCart(c *gin.Context) {
	sess := requireSession(c)
	if sess == nil {
		return
	}

	cart, err := h.cartService.FetchCart(c.Request.Context(), sess.Identity)
	if err != nil {
		renderCartError(c, "Failed to fetch cart", err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	var req services.AddToCartRequest
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

	cart, err := h.cartService.AddToCart(c.Request.Context(), sess.Identity, &req)
	if err != nil {
		renderCartError(c, "Failed to add item to cart", err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req services.UpdateQuantityRequest
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

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), sess.Identity, req.ProductID, req.Quantity)
	if err != nil {
		renderCartError(c, "Failed to update quantity", err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	var req services.RemoveFromCartRequest
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

	cart, err := h.cartService.RemoveFromCart(c.Request.Context(), sess.Identity, req.ProductID)
	if err != nil {
		renderCartError(c, "Failed to remove item", err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) ConfirmOrder(c *gin.Context) {
	var req services.ConfirmOrderRequest
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

	if err := h.cartService.ConfirmOrder(c.Request.Context(), sess.Identity, req.OrderID); err != nil {
		renderCartError(c, "Failed to confirm order", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// renderCartError maps service failures onto the response. Backend-reported
// errors pass through with their original status and message; local
// validation failures are client errors.
func renderCartError(c *gin.Context, title string, err error) {
	var upstream *services.UpstreamError
	if errors.As(err, &upstream) {
		c.JSON(upstream.StatusCode, ErrorResponse{
			Error:   title,
			Message: upstream.Message,
		})
		return
	}

	if errors.Is(err, services.ErrQuantityTooLow) || errors.Is(err, services.ErrNoIdentity) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   title,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   title,
		Message: err.Error(),
	})
}
