package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateStockEntryRequest describes one inbound stock event. For piece-unit
// entries Quantity is required; for length-unit entries Lengths carries one
// value per cut. Lengths are strings because they arrive from free-form
// inputs — non-numeric entries are dropped, not rejected.
type CreateStockEntryRequest struct {
	ProductID   string   `json:"product_id"   validate:"required,uuid"`
	WarehouseID string   `json:"warehouse_id" validate:"required,uuid"`
	ShelfID     *string  `json:"shelf_id"     validate:"omitempty,uuid"`
	Unit        string   `json:"unit"         validate:"required,oneof=piece length"`
	Quantity    int      `json:"quantity"`
	Lengths     []string `json:"lengths"`
	Note        *string  `json:"note"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type MovementFilter struct {
	ProductID   string `form:"product_id"`
	WarehouseID string `form:"warehouse_id"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BarcodeResponse struct {
	Code            string          `json:"code"`
	ProductID       string          `json:"product_id"`
	StockMovementID string          `json:"stock_movement_id"`
	WarehouseID     string          `json:"warehouse_id"`
	ShelfID         *string         `json:"shelf_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	IsUsed          bool            `json:"is_used"`
	CreatedAt       string          `json:"created_at"`
}

type StockMovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	ShelfID     *string         `json:"shelf_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Note        *string         `json:"note"`
	Codes       []string        `json:"codes"`
	Date        string          `json:"date"`
}

type StockEntryResponse struct {
	Movement StockMovementResponse `json:"movement"`
	Barcodes []BarcodeResponse     `json:"barcodes"`
}

type MovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}
