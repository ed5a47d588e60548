package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang-storefront-sync/internal/middleware"
	"golang-storefront-sync/internal/models"
	"golang-storefront-sync/internal/services"
	"golang-storefront-sync/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCartService struct{ mock.Mock }

func (m *MockCartService) FetchCart(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartService) AddToCart(ctx context.Context, identity models.Identity, req *services.AddToCartRequest) (*models.Cart, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, identity models.Identity, productID string, quantity int) (*models.Cart, error) {
	args := m.Called(ctx, identity, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, identity models.Identity, productID string) (*models.Cart, error) {
	args := m.Called(ctx, identity, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartService) ConfirmOrder(ctx context.Context, identity models.Identity, orderID string) error {
	args := m.Called(ctx, identity, orderID)
	return args.Error(0)
}

func setupCartRouter(svc CartServiceInterface, sess *models.SessionContext) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.SessionContextKey, sess)
	})

	authMiddleware := middleware.NewAuthMiddleware(auth.NewJWTManager("test-secret", 1))
	api := router.Group("/api")
	NewCartHandler(svc).RegisterRoutes(api, authMiddleware)
	return router
}

func TestGetCartRendersSnapshot(t *testing.T) {
	sess := &models.SessionContext{
		SessionKey: "sess-1",
		Identity:   models.GuestIdentity("guest_1700000000000"),
	}
	svc := new(MockCartService)
	svc.On("FetchCart", mock.Anything, sess.Identity).Return(&models.Cart{
		GuestID:    sess.Identity.GuestID,
		Products:   []models.CartLine{{ProductID: "p1", Quantity: 2, Price: 500}},
		TotalPrice: 1000,
	}, nil).Once()

	router := setupCartRouter(svc, sess)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var cart models.Cart
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, float64(1000), cart.TotalPrice)
	svc.AssertExpectations(t)
}

func TestUpdateQuantityZeroNeverReachesTheStore(t *testing.T) {
	sess := &models.SessionContext{
		SessionKey: "sess-1",
		Identity:   models.GuestIdentity("guest_1700000000000"),
	}
	svc := new(MockCartService)
	router := setupCartRouter(svc, sess)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/cart", strings.NewReader(`{"productId":"p1","quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartErrorPassesUpstreamMessageThrough(t *testing.T) {
	sess := &models.SessionContext{
		SessionKey: "sess-1",
		Identity:   models.UserIdentity("u1"),
	}
	svc := new(MockCartService)
	svc.On("AddToCart", mock.Anything, sess.Identity, mock.Anything).
		Return(nil, &services.UpstreamError{StatusCode: http.StatusBadRequest, Message: "insufficient stock"}).Once()

	router := setupCartRouter(svc, sess)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"productId":"p1","quantity":1,"price":500}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "insufficient stock", resp.Message)
}

func TestConfirmOrderRequiresAuthentication(t *testing.T) {
	sess := &models.SessionContext{
		SessionKey: "sess-1",
		Identity:   models.GuestIdentity("guest_1700000000000"),
	}
	svc := new(MockCartService)
	router := setupCartRouter(svc, sess)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/confirm", strings.NewReader(`{"orderId":"order-42"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "ConfirmOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmOrderClearsCart(t *testing.T) {
	sess := &models.SessionContext{
		SessionKey: "sess-1",
		Identity:   models.UserIdentity("u1"),
	}
	svc := new(MockCartService)
	svc.On("ConfirmOrder", mock.Anything, sess.Identity, "order-42").Return(nil).Once()

	jwtManager := auth.NewJWTManager("test-secret", 1)
	token, err := jwtManager.GenerateToken("u1", "ada@example.com", "Ada")
	assert.NoError(t, err)

	router := setupCartRouter(svc, sess)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/confirm", strings.NewReader(`{"orderId":"order-42"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
