package services

import (
	"context"

	"golang-storefront-sync/internal/models"

	"github.com/stretchr/testify/mock"
)

// --- Mocks for Dependencies ---

type MockCommerceAPI struct{ mock.Mock }

func (m *MockCommerceAPI) GetCart(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCommerceAPI) AddCartItem(ctx context.Context, identity models.Identity, req *AddToCartRequest) (*models.Cart, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCommerceAPI) UpdateCartItem(ctx context.Context, identity models.Identity, productID string, quantity int) (*models.Cart, error) {
	args := m.Called(ctx, identity, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCommerceAPI) DeleteCartItem(ctx context.Context, identity models.Identity, productID string) (*models.Cart, error) {
	args := m.Called(ctx, identity, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCommerceAPI) MergeCarts(ctx context.Context, guestID, userID string) (*models.Cart, error) {
	args := m.Called(ctx, guestID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCommerceAPI) Login(ctx context.Context, email, password string) (*BackendAuthResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BackendAuthResponse), args.Error(1)
}

func (m *MockCommerceAPI) Register(ctx context.Context, name, email, password string) (*BackendAuthResponse, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BackendAuthResponse), args.Error(1)
}

type MockSnapshotRepository struct{ mock.Mock }

func (m *MockSnapshotRepository) Get(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockSnapshotRepository) Save(ctx context.Context, identity models.Identity, cart *models.Cart) error {
	args := m.Called(ctx, identity, cart)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Delete(ctx context.Context, identity models.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) GetGuestID(ctx context.Context, sessionKey string) (string, error) {
	args := m.Called(ctx, sessionKey)
	return args.String(0), args.Error(1)
}

func (m *MockSessionRepository) SaveGuestID(ctx context.Context, sessionKey, guestID string) error {
	args := m.Called(ctx, sessionKey, guestID)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteGuestID(ctx context.Context, sessionKey string) error {
	args := m.Called(ctx, sessionKey)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) SendMessage(topic string, key string, value interface{}) error {
	args := m.Called(topic, key, value)
	return args.Error(0)
}
