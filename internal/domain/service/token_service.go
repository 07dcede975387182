// Package service defines interfaces for core, stateless domain logic.
package service

import (
	"roster/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenClaims is the verified content of an access token.
type TokenClaims struct {
	MemberID uuid.UUID
	Role     entity.Role
}

// TokenService issues and validates the access tokens the delivery layer
// uses to identify the acting member. The account core never creates
// sessions itself.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for a member.
	GenerateAccessToken(memberID uuid.UUID, role entity.Role) (string, error)

	// ValidateAccessToken verifies a token string and extracts its claims.
	ValidateAccessToken(tokenString string) (*TokenClaims, error)
}
