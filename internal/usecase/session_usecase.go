// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"roster/internal/domain/entity"
)

// LoginInput defines the data required for a member to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput returns the issued access token after a successful login.
type LoginOutput struct {
	AccessToken string         `json:"accessToken"`
	Member      *entity.Member `json:"member"`
}

// SessionUsecase is the authentication layer built on top of
// MemberUsecase.AuthenticateLookup. It issues stateless access tokens;
// there is no server-side session store.
type SessionUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
