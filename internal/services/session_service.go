package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang-storefront-sync/internal/repositories"
)

// SessionService owns guest identity for anonymous browser sessions. Guest
// ids are timestamp-based namespacing keys, not security credentials, so the
// theoretical same-millisecond collision across sessions is acceptable.
type SessionService struct {
	sessions repositories.SessionRepository
}

func NewSessionService(sessions repositories.SessionRepository) *SessionService {
	return &SessionService{sessions: sessions}
}

// GetOrCreateGuestID returns the persisted guest id for the session,
// generating and writing through a new one if none exists. A failed
// persistence write is non-fatal: the id still serves this request and a
// fresh one is simply generated on the next load.
func (s *SessionService) GetOrCreateGuestID(ctx context.Context, sessionKey string) (string, error) {
	guestID, err := s.sessions.GetGuestID(ctx, sessionKey)
	if err != nil {
		return "", err
	}
	if guestID != "" {
		return guestID, nil
	}

	guestID = newGuestID()
	if err := s.sessions.SaveGuestID(ctx, sessionKey, guestID); err != nil {
		log.Printf("Failed to persist guest id for session %s: %v", sessionKey, err)
	}
	return guestID, nil
}

// RotateGuestID replaces the session's guest id so a new anonymous session
// does not inherit a previously-merged cart identity. Used after logout.
func (s *SessionService) RotateGuestID(ctx context.Context, sessionKey string) (string, error) {
	guestID := newGuestID()
	if err := s.sessions.SaveGuestID(ctx, sessionKey, guestID); err != nil {
		return "", err
	}
	return guestID, nil
}

// RetireGuestID removes the session's guest id after its cart has been
// merged into a user cart, so the login transition cannot fire twice.
func (s *SessionService) RetireGuestID(ctx context.Context, sessionKey string) error {
	return s.sessions.DeleteGuestID(ctx, sessionKey)
}

func newGuestID() string {
	return fmt.Sprintf("guest_%d", time.Now().UnixMilli())
}
