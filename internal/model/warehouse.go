package model

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse is a storage location. A warehouse with at least one shelf has a
// shelf system: stock entries into it must name a shelf.
type Warehouse struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name    string    `gorm:"uniqueIndex;not null"`
	Address *string

	Shelves []Shelf `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasShelfSystem reports whether entries into this warehouse require a shelf.
func (w *Warehouse) HasShelfSystem() bool { return len(w.Shelves) > 0 }

// Shelf is one named slot inside a warehouse. Names are unique per warehouse.
type Shelf struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_shelf_name"`
	Name        string    `gorm:"not null;uniqueIndex:idx_warehouse_shelf_name"`

	CreatedAt time.Time
}
