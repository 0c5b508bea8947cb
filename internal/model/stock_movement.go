package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement types.
const (
	MovementEntry = "entry"
	MovementExit  = "exit"
)

// CodeList is the ordered list of barcode codes minted for a movement,
// stored as a JSONB array. Order matches minting order.
type CodeList []string

func (c CodeList) Value() (driver.Value, error) {
	if c == nil {
		c = CodeList{}
	}
	return json.Marshal(c)
}

func (c *CodeList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = CodeList{}
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("model: cannot scan %T into CodeList", src)
	}
}

// StockMovement records one inventory event. Codes is finalized once, right
// after all barcodes for the movement are minted, and never mutated again.
type StockMovement struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShelfID     *uuid.UUID      `gorm:"type:uuid"`
	Type        string          `gorm:"not null"` // entry | exit
	Quantity    decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Unit        string          `gorm:"not null"`
	Note        *string
	Codes       CodeList  `gorm:"type:jsonb;not null;default:'[]'"`
	Date        time.Time `gorm:"not null"`
	CreatedAt   time.Time

	Product  *Product  `gorm:"foreignKey:ProductID"`
	Barcodes []Barcode `gorm:"foreignKey:StockMovementID"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
