package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name     string          `json:"name"     validate:"required,min=1,max=120"`
	Features *string         `json:"features"`
	Price    decimal.Decimal `json:"price"    validate:"min=0"`
	Unit     string          `json:"unit"     validate:"omitempty,oneof=piece length"`
}

type UpdateProductRequest struct {
	Name     *string          `json:"name"     validate:"omitempty,min=1,max=120"`
	Features *string          `json:"features"`
	Price    *decimal.Decimal `json:"price"`
	Unit     *string          `json:"unit"     validate:"omitempty,oneof=piece length"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Features *string         `json:"features"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"`
	Stock    decimal.Decimal `json:"stock"`
	Active   bool            `json:"active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
