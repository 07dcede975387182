// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"roster/internal/domain/entity"
	"roster/internal/domain/repository"

	"github.com/google/uuid"
)

// Actor identifies the member performing an operation. It is always passed
// explicitly; the core never reads the acting identity from ambient state.
type Actor struct {
	MemberID uuid.UUID
	Role     entity.Role
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

// --- Input DTOs ---

// RegisterInput defines the data required to register a new member.
// Structural validation (email format, required fields) is the delivery
// layer's job; the core enforces domain invariants only.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
}

// UpdateProfileInput defines the data for a member's self-service profile
// update. CurrentPassword is mandatory and checked before any mutation.
// NewPassword is optional; when present it must equal ConfirmPassword.
type UpdateProfileInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Address         string `json:"address"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AdminPatch defines the fields an administrator may change on any member.
// Nil fields are left untouched. Role changes happen here and only here.
type AdminPatch struct {
	Name    *string      `json:"name,omitempty"`
	Email   *string      `json:"email,omitempty" validate:"omitempty,email"`
	Address *string      `json:"address,omitempty"`
	Role    *entity.Role `json:"role,omitempty"`
}

// MemberUsecase defines the account-management operations the delivery
// layer depends on.
type MemberUsecase interface {
	// Register creates a new member with the default user role.
	Register(ctx context.Context, input *RegisterInput) (*entity.Member, error)

	// GetMember retrieves a single member by id.
	GetMember(ctx context.Context, memberID uuid.UUID) (*entity.Member, error)

	// AuthenticateLookup resolves the login identifier to the principal the
	// authentication layer verifies credentials against. The caller must not
	// reveal whether the email exists or the password mismatched.
	AuthenticateLookup(ctx context.Context, email string) (*entity.Principal, error)

	// VerifyPassword reports whether the candidate matches the stored hash.
	// It never mutates state.
	VerifyPassword(ctx context.Context, memberID uuid.UUID, candidate string) (bool, error)

	// UpdateProfile applies a self-service profile update after the
	// mandatory current-password check.
	UpdateProfile(ctx context.Context, memberID uuid.UUID, input *UpdateProfileInput) (*entity.Member, error)

	// AdminUpdate applies an administrative patch without a password gate.
	AdminUpdate(ctx context.Context, actor Actor, memberID uuid.UUID, patch *AdminPatch) (uuid.UUID, error)

	// Delete removes a member permanently. The actor must be the member
	// itself or an administrator. Invalidating any live session afterwards
	// is the caller's responsibility.
	Delete(ctx context.Context, actor Actor, memberID uuid.UUID) error

	// SearchAdminPage returns one page of the administrative member listing.
	SearchAdminPage(ctx context.Context, actor Actor, filter repository.SearchFilter, page repository.PageRequest) (*repository.Page, error)
}
