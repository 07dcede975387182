// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"roster/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrMemberNotFound is a domain-specific error returned when a member is not found.
var ErrMemberNotFound = errors.New("member not found")

// SearchFilter narrows an administrative member query. Zero-value fields
// are ignored; Name and Email match as substrings.
type SearchFilter struct {
	Name  string
	Email string
	Role  entity.Role
}

// PageRequest describes one page of an administrative query.
// Page is zero-based.
type PageRequest struct {
	Page int
	Size int
}

// Page is one page of members together with the total match count.
// Repeated queries against an unchanged store return identical pages:
// ordering is always id ascending.
type Page struct {
	Items      []*entity.Member
	TotalCount int64
	Page       int
	Size       int
}

// TotalPages derives the page count from the total and the page size.
func (p *Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}

	return int((p.TotalCount + int64(p.Size) - 1) / int64(p.Size))
}

// MemberRepository defines the standard operations for member persistence.
// The application layer will depend on this interface, not the concrete implementation.
type MemberRepository interface {
	// FindByID retrieves a single member by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error)

	// FindByEmail retrieves a single member by their exact email address.
	FindByEmail(ctx context.Context, email string) (*entity.Member, error)

	// Create persists a new member entity to the storage. The storage layer's
	// unique index on email is the final arbiter for duplicate registrations.
	Create(ctx context.Context, member *entity.Member) error

	// Update modifies an existing member entity in the storage.
	Update(ctx context.Context, member *entity.Member) error

	// Delete removes a member record permanently (hard delete).
	Delete(ctx context.Context, id uuid.UUID) error

	// QueryPage returns one page of members matching the filter,
	// ordered by id ascending.
	QueryPage(ctx context.Context, filter SearchFilter, page PageRequest) (*Page, error)
}
