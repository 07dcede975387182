// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Member is the central entity of the system: one persisted user identity.
// The email is the login identifier and is compared exact-match
// (byte-for-byte, case-sensitive); normalization is a caller concern.
type Member struct {
	ID           uuid.UUID // Assigned by the storage layer at creation, immutable afterwards.
	Email        string    // Unique across all members.
	PasswordHash string    // bcrypt output only, never a raw password.
	Name         string    // Free-form display name.
	Address      string    // Free-form postal address.
	Role         Role      // Authorization level, default RoleUser at registration.
	CreatedAt    time.Time // Timestamp of when this member account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this member's data.
}

// Principal is the subset of Member data handed to the authentication
// layer for verifying a login attempt. It never leaves the server process.
type Principal struct {
	MemberID     uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
}

// PrincipalOf builds the authentication-layer view of a member.
func PrincipalOf(m *Member) *Principal {
	return &Principal{
		MemberID:     m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
	}
}
