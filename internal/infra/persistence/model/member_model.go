package model

import (
	"time"

	"github.com/google/uuid"
)

// MemberModel mirrors the 'members' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(), so ids are time-ordered and "order by id" is stable.
// The unique index on email is the storage-layer backstop for the
// duplicate-registration race; the application pre-check alone is not enough
// under concurrent requests.
type MemberModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Name         string    `gorm:"type:varchar(100)"`
	Address      string    `gorm:"type:varchar(255)"`
	Role         string    `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (MemberModel) TableName() string {
	return "members"
}
