package repository

import (
	"context"

	"stocklabel/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WarehouseRepository is the access contract for warehouses and their shelves.
type WarehouseRepository interface {
	Create(ctx context.Context, w *model.Warehouse) error
	// FindByID preloads the shelf list so callers can apply the
	// shelf-required rule without a second query.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Warehouse, error)
	FindByName(ctx context.Context, name string) (*model.Warehouse, error)
	List(ctx context.Context) ([]model.Warehouse, error)
	Update(ctx context.Context, w *model.Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddShelf(ctx context.Context, shelf *model.Shelf) error
	FindShelfByName(ctx context.Context, warehouseID uuid.UUID, name string) (*model.Shelf, error)
	DeleteShelf(ctx context.Context, warehouseID, shelfID uuid.UUID) error
}

type warehouseRepo struct{ db *gorm.DB }

func NewWarehouseRepository(db *gorm.DB) WarehouseRepository { return &warehouseRepo{db: db} }

func (r *warehouseRepo) Create(ctx context.Context, w *model.Warehouse) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *warehouseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Warehouse, error) {
	var w model.Warehouse
	err := r.db.WithContext(ctx).Preload("Shelves").First(&w, id).Error
	return &w, err
}

func (r *warehouseRepo) FindByName(ctx context.Context, name string) (*model.Warehouse, error) {
	var w model.Warehouse
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&w).Error
	return &w, err
}

func (r *warehouseRepo) List(ctx context.Context) ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	err := r.db.WithContext(ctx).Preload("Shelves").Order("name ASC").Find(&warehouses).Error
	return warehouses, err
}

func (r *warehouseRepo) Update(ctx context.Context, w *model.Warehouse) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *warehouseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Warehouse{}, id).Error
}

func (r *warehouseRepo) AddShelf(ctx context.Context, shelf *model.Shelf) error {
	return r.db.WithContext(ctx).Create(shelf).Error
}

func (r *warehouseRepo) FindShelfByName(ctx context.Context, warehouseID uuid.UUID, name string) (*model.Shelf, error) {
	var s model.Shelf
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND name = ?", warehouseID, name).First(&s).Error
	return &s, err
}

func (r *warehouseRepo) DeleteShelf(ctx context.Context, warehouseID, shelfID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).Delete(&model.Shelf{}, shelfID).Error
}
