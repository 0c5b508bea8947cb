package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unit values shared by products, stock movements and barcodes.
const (
	UnitPiece  = "piece"  // counted in whole items
	UnitLength = "length" // counted in continuous length (e.g. meters of fabric)
)

// Product is one catalog entry. Stock is decimal because length-unit
// products accumulate fractional quantities.
type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"index;not null"`
	Features *string
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Unit     string          `gorm:"not null;default:'piece'"`
	Stock    decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	Active   bool            `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
