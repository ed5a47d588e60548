package handlers

import (
	"context"

	"golang-storefront-sync/internal/models"
	"golang-storefront-sync/internal/services"
)

// AuthServiceInterface defines the interface for login flow operations
type AuthServiceInterface interface {
	Login(ctx context.Context, sess *models.SessionContext, req *services.LoginRequest, redirect string) (*services.AuthResponse, error)
	Register(ctx context.Context, sess *models.SessionContext, req *services.RegisterRequest, redirect string) (*services.AuthResponse, error)
	Logout(ctx context.Context, sess *models.SessionContext) (*services.LogoutResponse, error)
}
