package services

import (
	"context"
	"log"
	"strings"

	"golang-storefront-sync/internal/models"
	"golang-storefront-sync/pkg/auth"
)

// SessionState tracks the login transition driven by authentication
// completion. Merge fires only on the Authenticating -> MergePending path.
type SessionState string

const (
	StateAnonymous      SessionState = "anonymous"
	StateAuthenticating SessionState = "authenticating"
	StateMergePending   SessionState = "merge_pending"
	StateAuthenticated  SessionState = "authenticated"
)

// AuthService proxies credential checks to the upstream backend and
// coordinates the guest-cart merge on successful login. The merge is
// attempted at most once per login transition: it requires a guest id and a
// non-empty guest cart snapshot at the moment login completes, and both are
// retired immediately after the attempt.
type AuthService struct {
	api        CommerceAPI
	cartSvc    *CartService
	sessionSvc *SessionService
	jwtManager *auth.JWTManager
}

func NewAuthService(api CommerceAPI, cartSvc *CartService, sessionSvc *SessionService, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		api:        api,
		cartSvc:    cartSvc,
		sessionSvc: sessionSvc,
		jwtManager: jwtManager,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type AuthResponse struct {
	User     models.User `json:"user"`
	Token    string      `json:"token"`
	Redirect string      `json:"redirect"`
}

type LogoutResponse struct {
	GuestID string `json:"guestId"`
}

func (s *AuthService) Login(ctx context.Context, sess *models.SessionContext, req *LoginRequest, redirect string) (*AuthResponse, error) {
	s.logTransition(sess, StateAnonymous, StateAuthenticating)

	backendResp, err := s.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		s.logTransition(sess, StateAuthenticating, StateAnonymous)
		return nil, err
	}

	return s.completeLogin(ctx, sess, backendResp, redirect)
}

func (s *AuthService) Register(ctx context.Context, sess *models.SessionContext, req *RegisterRequest, redirect string) (*AuthResponse, error) {
	s.logTransition(sess, StateAnonymous, StateAuthenticating)

	backendResp, err := s.api.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		s.logTransition(sess, StateAuthenticating, StateAnonymous)
		return nil, err
	}

	return s.completeLogin(ctx, sess, backendResp, redirect)
}

// completeLogin runs the merge coordinator and mints the gateway session
// token. A merge failure is logged but never blocks the login response.
func (s *AuthService) completeLogin(ctx context.Context, sess *models.SessionContext, backendResp *BackendAuthResponse, redirect string) (*AuthResponse, error) {
	user := backendResp.User

	if s.shouldMerge(ctx, sess) {
		s.logTransition(sess, StateAuthenticating, StateMergePending)

		guestID := sess.Identity.GuestID
		if _, err := s.cartSvc.MergeCarts(ctx, guestID, user.ID); err != nil {
			log.Printf("Cart merge failed for user %s (guest %s): %v", user.ID, guestID, err)
		}

		// Retire the guest identity whatever the merge outcome, so a retried
		// login cannot double-add lines.
		if err := s.cartSvc.ClearCart(ctx, models.GuestIdentity(guestID)); err != nil {
			log.Printf("Failed to clear guest cart snapshot %s: %v", guestID, err)
		}
		if err := s.sessionSvc.RetireGuestID(ctx, sess.SessionKey); err != nil {
			log.Printf("Failed to retire guest id for session %s: %v", sess.SessionKey, err)
		}

		s.logTransition(sess, StateMergePending, StateAuthenticated)
	} else {
		s.logTransition(sess, StateAuthenticating, StateAuthenticated)
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:     user,
		Token:    token,
		Redirect: resolveRedirect(redirect),
	}, nil
}

// shouldMerge gates the one-shot merge: a guest id must exist and the local
// guest cart snapshot must hold at least one product.
func (s *AuthService) shouldMerge(ctx context.Context, sess *models.SessionContext) bool {
	guestID := sess.Identity.GuestID
	if guestID == "" {
		return false
	}

	snapshot, err := s.cartSvc.LoadSnapshot(ctx, models.GuestIdentity(guestID))
	if err != nil {
		log.Printf("Failed to load guest cart snapshot %s: %v", guestID, err)
		return false
	}
	return !snapshot.IsEmpty()
}

// Logout drops the local cart state and rotates the guest id so the next
// anonymous session starts clean.
func (s *AuthService) Logout(ctx context.Context, sess *models.SessionContext) (*LogoutResponse, error) {
	if sess.Identity.Key() != "" {
		if err := s.cartSvc.ClearCart(ctx, sess.Identity); err != nil {
			return nil, err
		}
	}

	guestID, err := s.sessionSvc.RotateGuestID(ctx, sess.SessionKey)
	if err != nil {
		return nil, err
	}

	return &LogoutResponse{GuestID: guestID}, nil
}

// resolveRedirect preserves the originally intended destination across the
// async merge step.
func resolveRedirect(redirect string) string {
	if strings.Contains(redirect, "checkout") {
		return "/checkout"
	}
	return "/"
}

func (s *AuthService) logTransition(sess *models.SessionContext, from, to SessionState) {
	log.Printf("Session %s: %s -> %s", sess.SessionKey, from, to)
}
