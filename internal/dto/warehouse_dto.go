package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateWarehouseRequest struct {
	Name    string   `json:"name"    validate:"required,min=1,max=120"`
	Address *string  `json:"address"`
	Shelves []string `json:"shelves" validate:"omitempty,dive,min=1,max=60"`
}

type UpdateWarehouseRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=1,max=120"`
	Address *string `json:"address"`
}

type AddShelfRequest struct {
	Name string `json:"name" validate:"required,min=1,max=60"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ShelfResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type WarehouseResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Address *string         `json:"address"`
	Shelves []ShelfResponse `json:"shelves"`
}
