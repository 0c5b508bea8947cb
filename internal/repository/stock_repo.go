package repository

import (
	"context"

	"stocklabel/internal/dto"
	"stocklabel/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockRepository covers stock movements and their barcode records. The Tx
// variants run inside the fan-out transaction owned by the service layer.
type StockRepository interface {
	CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error
	// FinalizeMovementCodesTx writes the ordered minted code list onto the
	// movement in a single update. The list is never touched again.
	FinalizeMovementCodesTx(tx *gorm.DB, id uuid.UUID, codes model.CodeList) error
	FindMovementByID(ctx context.Context, id uuid.UUID) (*model.StockMovement, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error)

	CreateBarcodeTx(tx *gorm.DB, b *model.Barcode) error
	// AllCodes returns the full set of barcode codes currently in use.
	// Called fresh on every generator retry round.
	AllCodes(ctx context.Context) (map[string]struct{}, error)
	FindBarcodeByCode(ctx context.Context, code string) (*model.Barcode, error)
	// LatestBarcodeForProduct returns the most recently minted barcode of a
	// product, used as the sample code on printed labels.
	LatestBarcodeForProduct(ctx context.Context, productID uuid.UUID) (*model.Barcode, error)
	SetBarcodeUsed(ctx context.Context, code string, used bool) error

	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockRepo) FinalizeMovementCodesTx(tx *gorm.DB, id uuid.UUID, codes model.CodeList) error {
	return tx.Model(&model.StockMovement{}).Where("id = ?", id).
		Update("codes", codes).Error
}

func (r *stockRepo) FindMovementByID(ctx context.Context, id uuid.UUID) (*model.StockMovement, error) {
	var m model.StockMovement
	err := r.db.WithContext(ctx).Preload("Barcodes").First(&m, id).Error
	return &m, err
}

func (r *stockRepo) ListMovements(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	var movements []model.StockMovement
	var total int64

	q := r.db.WithContext(ctx).Model(&model.StockMovement{})
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.WarehouseID != "" {
		q = q.Where("warehouse_id = ?", filter.WarehouseID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&movements).Error
	return movements, total, err
}

func (r *stockRepo) CreateBarcodeTx(tx *gorm.DB, b *model.Barcode) error {
	return tx.Create(b).Error
}

func (r *stockRepo) AllCodes(ctx context.Context) (map[string]struct{}, error) {
	var codes []string
	if err := r.db.WithContext(ctx).Model(&model.Barcode{}).Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set, nil
}

func (r *stockRepo) FindBarcodeByCode(ctx context.Context, code string) (*model.Barcode, error) {
	var b model.Barcode
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&b).Error
	return &b, err
}

func (r *stockRepo) LatestBarcodeForProduct(ctx context.Context, productID uuid.UUID) (*model.Barcode, error) {
	var b model.Barcode
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).
		Order("created_at DESC").First(&b).Error
	return &b, err
}

func (r *stockRepo) SetBarcodeUsed(ctx context.Context, code string, used bool) error {
	return r.db.WithContext(ctx).Model(&model.Barcode{}).Where("code = ?", code).
		Update("is_used", used).Error
}

func (r *stockRepo) DB() *gorm.DB { return r.db }
