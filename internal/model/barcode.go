package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Barcode is one physical, individually trackable unit: a single piece, or
// one cut length. Everything except IsUsed is immutable once written; the
// unique index on Code is the last-resort guard against a racing mint.
type Barcode struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code            string          `gorm:"uniqueIndex;not null;size:6"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	StockMovementID uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null"`
	ShelfID         *uuid.UUID      `gorm:"type:uuid"`
	Quantity        decimal.Decimal `gorm:"type:decimal(14,3);not null"` // 1 per piece, or the cut length
	Unit            string          `gorm:"not null"`
	IsUsed          bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
