package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang-storefront-sync/internal/models"
)

// ErrCartNotFound marks an upstream 404 on cart fetch. Callers normalize it
// to an empty cart rather than surfacing an error.
var ErrCartNotFound = errors.New("cart not found")

// UpstreamError carries a backend-reported failure through to the HTTP
// surface verbatim, status code included.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// CommerceAPI is the upstream storefront backend the gateway synchronizes
// against. Every call returns the authoritative cart snapshot; the gateway
// never computes cart state itself.
type CommerceAPI interface {
	GetCart(ctx context.Context, identity models.Identity) (*models.Cart, error)
	AddCartItem(ctx context.Context, identity models.Identity, req *AddToCartRequest) (*models.Cart, error)
	UpdateCartItem(ctx context.Context, identity models.Identity, productID string, quantity int) (*models.Cart, error)
	DeleteCartItem(ctx context.Context, identity models.Identity, productID string) (*models.Cart, error)
	MergeCarts(ctx context.Context, guestID, userID string) (*models.Cart, error)
	Login(ctx context.Context, email, password string) (*BackendAuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*BackendAuthResponse, error)
}

type BackendAuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type CommerceAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCommerceAPIClient(baseURL string, timeoutSeconds int) *CommerceAPIClient {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	return &CommerceAPIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

// Wire payloads for the upstream cart endpoints

type cartItemPayload struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity,omitempty"`
	GuestID   string  `json:"guestId,omitempty"`
	UserID    string  `json:"userId,omitempty"`
	Name      string  `json:"name,omitempty"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price,omitempty"`
}

type mergePayload struct {
	GuestID string `json:"guestId"`
	UserID  string `json:"userId"`
}

type credentialsPayload struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *CommerceAPIClient) GetCart(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	query := url.Values{}
	if identity.UserID != "" {
		query.Set("userId", identity.UserID)
	}
	if identity.GuestID != "" {
		query.Set("guestId", identity.GuestID)
	}

	var cart models.Cart
	if err := c.doJSON(ctx, http.MethodGet, "/api/cart", query, nil, &cart); err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) && upstream.StatusCode == http.StatusNotFound {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func (c *CommerceAPIClient) AddCartItem(ctx context.Context, identity models.Identity, req *AddToCartRequest) (*models.Cart, error) {
	payload := cartItemPayload{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		GuestID:   identity.GuestID,
		UserID:    identity.UserID,
		Name:      req.Name,
		Image:     req.Image,
		Price:     req.Price,
	}

	var cart models.Cart
	if err := c.doJSON(ctx, http.MethodPost, "/api/cart", nil, payload, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *CommerceAPIClient) UpdateCartItem(ctx context.Context, identity models.Identity, productID string, quantity int) (*models.Cart, error) {
	payload := cartItemPayload{
		ProductID: productID,
		Quantity:  quantity,
		GuestID:   identity.GuestID,
		UserID:    identity.UserID,
	}

	var cart models.Cart
	if err := c.doJSON(ctx, http.MethodPut, "/api/cart", nil, payload, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *CommerceAPIClient) DeleteCartItem(ctx context.Context, identity models.Identity, productID string) (*models.Cart, error) {
	payload := cartItemPayload{
		ProductID: productID,
		GuestID:   identity.GuestID,
		UserID:    identity.UserID,
	}

	var cart models.Cart
	if err := c.doJSON(ctx, http.MethodDelete, "/api/cart", nil, payload, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *CommerceAPIClient) MergeCarts(ctx context.Context, guestID, userID string) (*models.Cart, error) {
	payload := mergePayload{GuestID: guestID, UserID: userID}

	var cart models.Cart
	if err := c.doJSON(ctx, http.MethodPost, "/api/cart/merge", nil, payload, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *CommerceAPIClient) Login(ctx context.Context, email, password string) (*BackendAuthResponse, error) {
	payload := credentialsPayload{Email: email, Password: password}

	var resp BackendAuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/login", nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *CommerceAPIClient) Register(ctx context.Context, name, email, password string) (*BackendAuthResponse, error) {
	payload := credentialsPayload{Name: name, Email: email, Password: password}

	var resp BackendAuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/register", nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *CommerceAPIClient) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(respBody, resp.StatusCode),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	}
	return nil
}

// upstreamMessage extracts the backend's error message so it can be passed
// through verbatim; there are no structured error codes on this interface.
func upstreamMessage(body []byte, statusCode int) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return http.StatusText(statusCode)
}
