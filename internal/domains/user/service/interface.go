package service

import (
	"context"

	"diary-backend/internal/domains/user/model"
)

// Service is the business-logic contract for identities.
type Service interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error)
}
