package services

import (
	"context"
	"errors"
	"log"
	"time"

	"golang-storefront-sync/internal/models"
	"golang-storefront-sync/internal/repositories"
	"golang-storefront-sync/pkg/messaging"

	"github.com/google/uuid"
)

var (
	// ErrQuantityTooLow is returned when an update requests a quantity below
	// 1. Lines are never persisted at zero; callers must remove instead.
	ErrQuantityTooLow = errors.New("quantity must be at least 1, remove the item instead")

	// ErrNoIdentity is returned when a request carries neither a user id nor
	// a guest id to address a cart with.
	ErrNoIdentity = errors.New("cart identity requires a user id or guest id")
)

// EventPublisher abstracts the Kafka producer for cart lifecycle events.
type EventPublisher interface {
	SendMessage(topic string, key string, value interface{}) error
}

// CartService keeps the local cart state in sync with the upstream backend.
// Every mutation trusts the returned snapshot as the source of truth and
// fully replaces local state with it; there is no client-side cart math.
type CartService struct {
	api       CommerceAPI
	snapshots repositories.SnapshotRepository
	producer  EventPublisher
}

func NewCartService(api CommerceAPI, snapshots repositories.SnapshotRepository, producer EventPublisher) *CartService {
	return &CartService{
		api:       api,
		snapshots: snapshots,
		producer:  producer,
	}
}

type AddToCartRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type RemoveFromCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type ConfirmOrderRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// FetchCart pulls the authoritative cart for the identity. An upstream
// "not found" is not a user-facing failure: it is normalized to an empty
// cart, snapshotted like any other result.
func (s *CartService) FetchCart(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, ErrNoIdentity
	}

	cart, err := s.api.GetCart(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			cart = models.EmptyCart()
		} else {
			return nil, err
		}
	}

	s.persist(ctx, identity, cart)
	return cart, nil
}

func (s *CartService) AddToCart(ctx context.Context, identity models.Identity, req *AddToCartRequest) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, ErrNoIdentity
	}
	if req.Quantity < 1 {
		return nil, ErrQuantityTooLow
	}

	cart, err := s.api.AddCartItem(ctx, identity, req)
	if err != nil {
		return nil, err
	}

	s.persist(ctx, identity, cart)
	return cart, nil
}

// UpdateQuantity changes a line's quantity. Quantities below 1 are rejected
// here rather than trusted to call-site discipline; a line leaving the cart
// goes through RemoveFromCart.
func (s *CartService) UpdateQuantity(ctx context.Context, identity models.Identity, productID string, quantity int) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, ErrNoIdentity
	}
	if quantity < 1 {
		return nil, ErrQuantityTooLow
	}

	cart, err := s.api.UpdateCartItem(ctx, identity, productID, quantity)
	if err != nil {
		return nil, err
	}

	s.persist(ctx, identity, cart)
	return cart, nil
}

// RemoveFromCart removes a line. Removing a product that is not in the cart
// is a no-op upstream, so the call is idempotent.
func (s *CartService) RemoveFromCart(ctx context.Context, identity models.Identity, productID string) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, ErrNoIdentity
	}

	cart, err := s.api.DeleteCartItem(ctx, identity, productID)
	if err != nil {
		return nil, err
	}

	s.persist(ctx, identity, cart)
	return cart, nil
}

// MergeCarts folds the guest cart into the user cart upstream and re-syncs
// local state under the user identity. The merge endpoint is not idempotent,
// so the auth service gates calls to at most one per login transition.
func (s *CartService) MergeCarts(ctx context.Context, guestID, userID string) (*models.Cart, error) {
	cart, err := s.api.MergeCarts(ctx, guestID, userID)
	if err != nil {
		return nil, err
	}

	s.persist(ctx, models.UserIdentity(userID), cart)

	event := messaging.CartMergedEvent{
		EventID:   uuid.New().String(),
		GuestID:   guestID,
		UserID:    userID,
		LineCount: len(cart.Products),
		Timestamp: time.Now(),
	}
	if err := s.producer.SendMessage(messaging.TopicCartMerged, userID, event); err != nil {
		log.Printf("Failed to publish cart merged event for user %s: %v", userID, err)
	}

	return cart, nil
}

// LoadSnapshot returns the last persisted cart for the identity, or nil if
// none exists. Used for the merge gate and for reload-before-fetch display.
func (s *CartService) LoadSnapshot(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	return s.snapshots.Get(ctx, identity)
}

// ClearCart drops the local snapshot. The upstream cart, if any, is left to
// the backend's own lifecycle.
func (s *CartService) ClearCart(ctx context.Context, identity models.Identity) error {
	return s.snapshots.Delete(ctx, identity)
}

// ConfirmOrder clears the cart after checkout completes and notifies
// downstream consumers.
func (s *CartService) ConfirmOrder(ctx context.Context, identity models.Identity, orderID string) error {
	if !identity.Valid() {
		return ErrNoIdentity
	}

	if err := s.snapshots.Delete(ctx, identity); err != nil {
		return err
	}

	event := messaging.CheckoutCompletedEvent{
		EventID:   uuid.New().String(),
		OrderID:   orderID,
		UserID:    identity.UserID,
		Timestamp: time.Now(),
	}
	if err := s.producer.SendMessage(messaging.TopicCheckoutCompleted, identity.Key(), event); err != nil {
		log.Printf("Failed to publish checkout completed event for order %s: %v", orderID, err)
	}

	return nil
}

// persist snapshots the cart locally. Snapshot writes are best-effort: a
// failed write never fails the operation, the next fetch re-syncs anyway.
func (s *CartService) persist(ctx context.Context, identity models.Identity, cart *models.Cart) {
	if err := s.snapshots.Save(ctx, identity, cart); err != nil {
		log.Printf("Failed to snapshot cart for %s: %v", identity.Key(), err)
	}
}
