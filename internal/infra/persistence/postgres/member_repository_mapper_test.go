package postgres

import (
	"testing"
	"time"

	"roster/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberMappers_RoundTrip(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	member := &entity.Member{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: "$2a$04$hash",
		Name:         "A",
		Address:      "1 Test Street",
		Role:         entity.RoleUser,
		CreatedAt:    createdAt,
	}

	memberM := fromMemberDomain(member)
	require.NotNil(t, memberM)
	assert.Equal(t, member.ID, memberM.ID)
	assert.Equal(t, member.Email, memberM.Email)
	assert.Equal(t, member.PasswordHash, memberM.PasswordHash)
	assert.Equal(t, member.Role.String(), memberM.Role)

	back := toMemberDomain(memberM)
	require.NotNil(t, back)
	assert.Equal(t, member.ID, back.ID)
	assert.Equal(t, member.Email, back.Email)
	assert.Equal(t, member.Role, back.Role)
	assert.Equal(t, createdAt, back.CreatedAt)
}

// Update writes every column via Save, so a mapper that zeroes CreatedAt
// would overwrite the creation timestamp on each profile update.
func TestFromMemberDomain_PreservesCreatedAt(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	memberM := fromMemberDomain(&entity.Member{
		ID:        uuid.New(),
		Email:     "a@x.com",
		Role:      entity.RoleUser,
		CreatedAt: createdAt,
	})

	require.NotNil(t, memberM)
	assert.Equal(t, createdAt, memberM.CreatedAt)
	assert.False(t, memberM.CreatedAt.IsZero())
}

func TestMemberMappers_NilSafety(t *testing.T) {
	assert.Nil(t, toMemberDomain(nil))
	assert.Nil(t, fromMemberDomain(nil))
}
