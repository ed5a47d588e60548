package repositories

import (
	"context"

	"golang-storefront-sync/internal/models"
)

// SnapshotRepository persists the last known cart snapshot for an identity
// so a reload can render the cart before the next upstream fetch resolves.
// Get returns (nil, nil) when no snapshot exists.
type SnapshotRepository interface {
	Get(ctx context.Context, identity models.Identity) (*models.Cart, error)
	Save(ctx context.Context, identity models.Identity, cart *models.Cart) error
	Delete(ctx context.Context, identity models.Identity) error
}

// SessionRepository persists per-browser-session state: the guest id.
// GetGuestID returns ("", nil) when the session has no guest id yet.
type SessionRepository interface {
	GetGuestID(ctx context.Context, sessionKey string) (string, error)
	SaveGuestID(ctx context.Context, sessionKey, guestID string) error
	DeleteGuestID(ctx context.Context, sessionKey string) error
}
