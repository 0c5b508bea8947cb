package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer account. Code is a 6-digit zero-padded account number, assigned
// monotonically when the client does not supply one.
type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code    string    `gorm:"uniqueIndex;not null;size:6"`
	Name    string    `gorm:"index;not null"`
	Phone   *string
	Email   *string
	Address *string
	Active  bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
