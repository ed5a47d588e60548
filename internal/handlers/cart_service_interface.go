package handlers

import (
	"context"

	"golang-storefront-sync/internal/models"
	"golang-storefront-sync/internal/services"
)

// CartServiceInterface defines the contract for cart store operations
type CartServiceInterface interface {
	FetchCart(ctx context.Context, identity models.Identity) (*models.Cart, error)
	AddToCart(ctx context.Context, identity models.Identity, req *services.AddToCartRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, identity models.Identity, productID string, quantity int) (*models.Cart, error)
	RemoveFromCart(ctx context.Context, identity models.Identity, productID string) (*models.Cart, error)
	ConfirmOrder(ctx context.Context, identity models.Identity, orderID string) error
}
