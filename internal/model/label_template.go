package model

import (
	"time"

	"github.com/google/uuid"
)

// LabelTemplate persists a label layout. Elements holds the interchange JSON
// of the ordered element list (see internal/label); the service layer decodes
// it into label.Template for validation and rendering. At most one template
// may have IsDefault true — enforced by the set-default operation, not the
// schema.
type LabelTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	WidthMm   float64   `gorm:"not null"`
	HeightMm  float64   `gorm:"not null"`
	Elements  string    `gorm:"type:jsonb;not null"`
	IsDefault bool      `gorm:"not null;default:false;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
