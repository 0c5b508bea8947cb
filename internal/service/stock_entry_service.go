package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stocklabel/internal/codegen"
	"stocklabel/internal/dto"
	"stocklabel/internal/model"
	"stocklabel/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockEntryService owns the stock-entry fan-out: one entry request explodes
// into one barcode record per physical unit, all minted and persisted as a
// single logical transaction.
type StockEntryService interface {
	CreateEntry(ctx context.Context, req dto.CreateStockEntryRequest) (*dto.StockEntryResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
	GetBarcode(ctx context.Context, code string) (*dto.BarcodeResponse, error)
	MarkUsed(ctx context.Context, code string, used bool) error
}

type stockEntryService struct {
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	stock      repository.StockRepository
	gen        *codegen.Generator
}

func NewStockEntryService(
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
	stock repository.StockRepository,
	gen *codegen.Generator,
) StockEntryService {
	return &stockEntryService{
		products:   products,
		warehouses: warehouses,
		stock:      stock,
		gen:        gen,
	}
}

// CreateEntry validates the request, expands the quantity into per-unit
// quantities, mints one code per unit and commits the movement, its barcodes
// and the product stock increment atomically. Any minting failure rolls the
// whole entry back.
func (s *stockEntryService) CreateEntry(ctx context.Context, req dto.CreateStockEntryRequest) (*dto.StockEntryResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("invalid warehouse_id: %w", err)
	}

	// 1. Referenced records must exist before anything is written.
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, ErrProductNotFound
	}
	warehouse, err := s.warehouses.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, ErrWarehouseNotFound
	}

	// 2. Shelf rules: required when the warehouse has shelves, and must be
	// one of them when provided.
	shelfID, err := resolveShelf(warehouse, req.ShelfID)
	if err != nil {
		return nil, err
	}

	// 3. Expand the request into per-unit quantities.
	unitQuantities, total, err := fanOut(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movement := model.StockMovement{
		ProductID:   productID,
		WarehouseID: warehouseID,
		ShelfID:     shelfID,
		Type:        model.MovementEntry,
		Quantity:    total,
		Unit:        req.Unit,
		Note:        req.Note,
		Codes:       model.CodeList{},
		Date:        now,
	}

	var barcodes []model.Barcode
	txErr := runTx(ctx, s.stock.DB(), func(tx *gorm.DB) error {
		if err := s.stock.CreateMovementTx(tx, &movement); err != nil {
			return err
		}

		// Codes minted earlier in this batch are not yet visible to other
		// readers, so the snapshot is the store set plus the batch set.
		minted := make(map[string]struct{}, len(unitQuantities))
		snapshot := func(ctx context.Context) (map[string]struct{}, error) {
			existing, err := s.stock.AllCodes(ctx)
			if err != nil {
				return nil, err
			}
			for c := range minted {
				existing[c] = struct{}{}
			}
			return existing, nil
		}

		codes := make(model.CodeList, 0, len(unitQuantities))
		for _, qty := range unitQuantities {
			code, err := s.gen.Generate(ctx, snapshot, codegen.RandomNumeric(6))
			if err != nil {
				return fmt.Errorf("%w: %v", ErrBarcodeGeneration, err)
			}
			minted[code] = struct{}{}

			b := model.Barcode{
				Code:            code,
				ProductID:       productID,
				StockMovementID: movement.ID,
				WarehouseID:     warehouseID,
				ShelfID:         shelfID,
				Quantity:        qty,
				Unit:            req.Unit,
				CreatedAt:       now,
			}
			if err := s.stock.CreateBarcodeTx(tx, &b); err != nil {
				return err
			}
			barcodes = append(barcodes, b)
			codes = append(codes, code)
		}

		// Finalize the ordered code list in one update, then bump stock.
		if err := s.stock.FinalizeMovementCodesTx(tx, movement.ID, codes); err != nil {
			return err
		}
		movement.Codes = codes

		return s.products.AdjustStockTx(tx, productID, total)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("movement_id", movement.ID.String()).
		Str("product_id", productID.String()).
		Int("units", len(barcodes)).
		Str("quantity", total.String()).
		Msg("stock entry created")

	resp := &dto.StockEntryResponse{Movement: movementToResponse(&movement)}
	for i := range barcodes {
		resp.Barcodes = append(resp.Barcodes, barcodeToResponse(&barcodes[i]))
	}
	return resp, nil
}

// resolveShelf applies the shelf-required / shelf-membership rules.
func resolveShelf(w *model.Warehouse, shelfID *string) (*uuid.UUID, error) {
	if shelfID == nil || *shelfID == "" {
		if w.HasShelfSystem() {
			return nil, ErrShelfRequired
		}
		return nil, nil
	}
	id, err := uuid.Parse(*shelfID)
	if err != nil {
		return nil, fmt.Errorf("invalid shelf_id: %w", err)
	}
	for _, s := range w.Shelves {
		if s.ID == id {
			return &id, nil
		}
	}
	return nil, ErrShelfNotFound
}

// fanOut expands a request into the per-unit quantity list and the movement
// total. Piece entries become N units of quantity 1; length entries become
// one unit per cut carrying its own length.
func fanOut(req dto.CreateStockEntryRequest) ([]decimal.Decimal, decimal.Decimal, error) {
	switch req.Unit {
	case model.UnitPiece:
		if req.Quantity <= 0 {
			return nil, decimal.Zero, ErrInvalidQuantity
		}
		units := make([]decimal.Decimal, req.Quantity)
		one := decimal.NewFromInt(1)
		for i := range units {
			units[i] = one
		}
		return units, decimal.NewFromInt(int64(req.Quantity)), nil

	case model.UnitLength:
		// Non-numeric entries are dropped before the emptiness check:
		// garbled input must not abort the entry while valid cuts remain.
		units := make([]decimal.Decimal, 0, len(req.Lengths))
		for _, raw := range req.Lengths {
			l, err := decimal.NewFromString(raw)
			if err != nil {
				continue
			}
			if l.Sign() <= 0 {
				return nil, decimal.Zero, ErrInvalidLengths
			}
			units = append(units, l)
		}
		if len(units) == 0 {
			return nil, decimal.Zero, ErrInvalidLengths
		}
		total := decimal.Zero
		for _, l := range units {
			total = total.Add(l)
		}
		return units, total, nil

	default:
		return nil, decimal.Zero, fmt.Errorf("unknown unit %q", req.Unit)
	}
}

func (s *stockEntryService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	movements, total, err := s.stock.ListMovements(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, movementToResponse(&movements[i]))
	}
	return &dto.MovementListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *stockEntryService) GetBarcode(ctx context.Context, code string) (*dto.BarcodeResponse, error) {
	b, err := s.stock.FindBarcodeByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBarcodeNotFound
		}
		return nil, err
	}
	resp := barcodeToResponse(b)
	return &resp, nil
}

// MarkUsed flips the consumption flag; the only mutable field on a barcode.
func (s *stockEntryService) MarkUsed(ctx context.Context, code string, used bool) error {
	if _, err := s.stock.FindBarcodeByCode(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBarcodeNotFound
		}
		return err
	}
	return s.stock.SetBarcodeUsed(ctx, code, used)
}

func movementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	var shelfID *string
	if m.ShelfID != nil {
		s := m.ShelfID.String()
		shelfID = &s
	}
	return dto.StockMovementResponse{
		ID:          m.ID.String(),
		ProductID:   m.ProductID.String(),
		WarehouseID: m.WarehouseID.String(),
		ShelfID:     shelfID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		Note:        m.Note,
		Codes:       m.Codes,
		Date:        m.Date.Format(time.RFC3339),
	}
}

func barcodeToResponse(b *model.Barcode) dto.BarcodeResponse {
	var shelfID *string
	if b.ShelfID != nil {
		s := b.ShelfID.String()
		shelfID = &s
	}
	return dto.BarcodeResponse{
		Code:            b.Code,
		ProductID:       b.ProductID.String(),
		StockMovementID: b.StockMovementID.String(),
		WarehouseID:     b.WarehouseID.String(),
		ShelfID:         shelfID,
		Quantity:        b.Quantity,
		Unit:            b.Unit,
		IsUsed:          b.IsUsed,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}
