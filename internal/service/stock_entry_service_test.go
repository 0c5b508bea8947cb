package service

import (
	"context"
	"errors"
	"testing"

	"stocklabel/internal/codegen"
	"stocklabel/internal/dto"
	"stocklabel/internal/model"
	"stocklabel/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.add(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByNameAndFeatures(_ context.Context, name string, features *string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = p.Stock.Add(delta)
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubWarehouseRepo holds one warehouse per test.
type stubWarehouseRepo struct {
	warehouses map[uuid.UUID]*model.Warehouse
}

func newStubWarehouseRepo() *stubWarehouseRepo {
	return &stubWarehouseRepo{warehouses: make(map[uuid.UUID]*model.Warehouse)}
}

func (r *stubWarehouseRepo) add(w *model.Warehouse) *model.Warehouse {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	r.warehouses[w.ID] = w
	return w
}

func (r *stubWarehouseRepo) Create(_ context.Context, w *model.Warehouse) error {
	r.add(w)
	return nil
}

func (r *stubWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return w, nil
}

func (r *stubWarehouseRepo) FindByName(_ context.Context, name string) (*model.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.Name == name {
			return w, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubWarehouseRepo) List(_ context.Context) ([]model.Warehouse, error) { return nil, nil }

func (r *stubWarehouseRepo) Update(_ context.Context, w *model.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

func (r *stubWarehouseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.warehouses, id)
	return nil
}

func (r *stubWarehouseRepo) AddShelf(_ context.Context, s *model.Shelf) error {
	w, ok := r.warehouses[s.WarehouseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	w.Shelves = append(w.Shelves, *s)
	return nil
}

func (r *stubWarehouseRepo) FindShelfByName(_ context.Context, warehouseID uuid.UUID, name string) (*model.Shelf, error) {
	w, ok := r.warehouses[warehouseID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range w.Shelves {
		if w.Shelves[i].Name == name {
			return &w.Shelves[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubWarehouseRepo) DeleteShelf(_ context.Context, warehouseID, shelfID uuid.UUID) error {
	w, ok := r.warehouses[warehouseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	kept := w.Shelves[:0]
	for _, s := range w.Shelves {
		if s.ID != shelfID {
			kept = append(kept, s)
		}
	}
	w.Shelves = kept
	return nil
}

var _ repository.WarehouseRepository = (*stubWarehouseRepo)(nil)

// stubStockRepo records movements and barcodes in memory. failCreateAfter
// simulates a write failure part-way through the fan-out.
type stubStockRepo struct {
	movements       map[uuid.UUID]*model.StockMovement
	barcodes        map[string]*model.Barcode
	failCreateAfter int // fail CreateBarcodeTx once this many barcodes exist; -1 never
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{
		movements:       make(map[uuid.UUID]*model.StockMovement),
		barcodes:        make(map[string]*model.Barcode),
		failCreateAfter: -1,
	}
}

func (r *stubStockRepo) CreateMovementTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements[m.ID] = m
	return nil
}

func (r *stubStockRepo) FinalizeMovementCodesTx(_ *gorm.DB, id uuid.UUID, codes model.CodeList) error {
	m, ok := r.movements[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Codes = codes
	return nil
}

func (r *stubStockRepo) FindMovementByID(_ context.Context, id uuid.UUID) (*model.StockMovement, error) {
	m, ok := r.movements[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubStockRepo) ListMovements(_ context.Context, _ dto.MovementFilter) ([]model.StockMovement, int64, error) {
	out := make([]model.StockMovement, 0, len(r.movements))
	for _, m := range r.movements {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubStockRepo) CreateBarcodeTx(_ *gorm.DB, b *model.Barcode) error {
	if r.failCreateAfter >= 0 && len(r.barcodes) >= r.failCreateAfter {
		return errors.New("write failed")
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.barcodes[b.Code] = b
	return nil
}

func (r *stubStockRepo) AllCodes(_ context.Context) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(r.barcodes))
	for c := range r.barcodes {
		out[c] = struct{}{}
	}
	return out, nil
}

func (r *stubStockRepo) FindBarcodeByCode(_ context.Context, code string) (*model.Barcode, error) {
	b, ok := r.barcodes[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubStockRepo) LatestBarcodeForProduct(_ context.Context, productID uuid.UUID) (*model.Barcode, error) {
	var latest *model.Barcode
	for _, b := range r.barcodes {
		if b.ProductID != productID {
			continue
		}
		if latest == nil || b.CreatedAt.After(latest.CreatedAt) {
			latest = b
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (r *stubStockRepo) SetBarcodeUsed(_ context.Context, code string, used bool) error {
	b, ok := r.barcodes[code]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.IsUsed = used
	return nil
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

var _ repository.StockRepository = (*stubStockRepo)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

type stockFixture struct {
	svc        StockEntryService
	products   *stubProductRepo
	warehouses *stubWarehouseRepo
	stock      *stubStockRepo
	product    *model.Product
	warehouse  *model.Warehouse
}

func newStockFixture(t *testing.T, shelves ...string) *stockFixture {
	t.Helper()
	products := newStubProductRepo()
	warehouses := newStubWarehouseRepo()
	stock := newStubStockRepo()

	product := products.add(&model.Product{
		Name:  "Velvet fabric",
		Price: decimal.RequireFromString("120.50"),
		Unit:  model.UnitLength,
	})
	w := &model.Warehouse{Name: "Main depot"}
	for _, name := range shelves {
		w.Shelves = append(w.Shelves, model.Shelf{ID: uuid.New(), Name: name})
	}
	warehouse := warehouses.add(w)

	return &stockFixture{
		svc:        NewStockEntryService(products, warehouses, stock, codegen.New()),
		products:   products,
		warehouses: warehouses,
		stock:      stock,
		product:    product,
		warehouse:  warehouse,
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateEntry_PieceFanOut(t *testing.T) {
	f := newStockFixture(t)
	resp, err := f.svc.CreateEntry(context.Background(), dto.CreateStockEntryRequest{
		ProductID:   f.product.ID.String(),
		WarehouseID: f.warehouse.ID.String(),
		Unit:        model.UnitPiece,
		Quantity:    7,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Barcodes, 7)
	assert.Len(t, resp.Movement.Codes, 7)
	assert.True(t, resp.Movement.Quantity.Equal(decimal.NewFromInt(7)))

	seen := make(map[string]bool)
	for i, b := range resp.Barcodes {
		assert.Len(t, b.Code, 6, "code %q must be 6 digits", b.Code)
		assert.True(t, b.Quantity.Equal(decimal.NewFromInt(1)))
		assert.False(t, seen[b.Code], "code %q minted twice", b.Code)
		seen[b.Code] = true
		// movement code list preserves minting order
		assert.Equal(t, b.Code, resp.Movement.Codes[i])
	}

	// stock incremented by the movement total
	assert.True(t, f.product.Stock.Equal(decimal.NewFromInt(7)))
}

func TestCreateEntry_LengthFanOut(t *testing.T) {
	f := newStockFixture(t)
	resp, err := f.svc.CreateEntry(context.Background(), dto.CreateStockEntryRequest{
		ProductID:   f.product.ID.String(),
		WarehouseID: f.warehouse.ID.String(),
		Unit:        model.UnitLength,
		Lengths:     []string{"3.5", "2.0", "10"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Barcodes, 3)
	assert.True(t, resp.Barcodes[0].Quantity.Equal(decimal.RequireFromString("3.5")))
	assert.True(t, resp.Barcodes[1].Quantity.Equal(decimal.RequireFromString("2.0")))
	assert.True(t, resp.Barcodes[2].Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, resp.Movement.Quantity.Equal(decimal.RequireFromString("15.5")))
}

func TestCreateEntry_NonNumericLengthsDropped(t *testing.T) {
	f := newStockFixture(t)
	resp, err := f.svc.CreateEntry(context.Background(), dto.CreateStockEntryRequest{
		ProductID:   f.product.ID.String(),
		WarehouseID: f.warehouse.ID.String(),
		Unit:        model.UnitLength,
		Lengths:     []string{"4.2", "abc", "", "1.8"},
	})
	require.NoError(t, err)

	assert.Len(t, resp.Barcodes, 2)
	assert.True(t, resp.Movement.Quantity.Equal(decimal.RequireFromString("6.0")))
}

func TestCreateEntry_AllLengthsInvalid(t *testing.T) {
	f := newStockFixture(t)
	_, err := f.svc.CreateEntry(context.Background(), dto.CreateStockEntryRequest{
		ProductID:   f.product.ID.String(),
		WarehouseID: f.warehouse.ID.String(),
		Unit:        model.UnitLength,
		Lengths:     []string{"abc", ""},
	})
	assert.ErrorIs(t, err, ErrInvalidLengths)
}

func TestCreateEntry_NegativeLengthRejected(t *testing.T) {
	f := newStockFixture(t)
	_, err := f.svc.CreateEntry(context.Background(), dto.CreateStockEntryRequest{
		ProductID:   f.product.ID.String(),
		WarehouseID: f.warehouse.ID.String(),
		Unit:        model.UnitLength,
		Lengths:     []string{"5", "-2"},
	})
	assert.ErrorIs(t, err, ErrInvalidLengths)
}

func TestCreateEntry_InvalidQuantity(t *testing.T) {
	f := newStockFixture(t)
	for _, qty := range []int{0, -3} {
		_, err := f.svc.CreateEntry(context.Background(), dto.CreateStockEntryRequest{
			ProductID:   f.product.ID.String(),
			WarehouseID: f.warehouse.ID.String(),
			Unit:        model.UnitPiece,
			Quantity:    qty,
		})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestCreateEntry_ShelfRequired(t *testing.T) {
	f := newStockFixture(t, "A1", "A2")
	_, err := f.svc.CreateEntry(context.Background(), dto.CreateStockEntryRequest{
		ProductID:   f.product.ID.String(),
		WarehouseID: f.warehouse.ID.String(),
		Unit:        model.UnitPiece,
		Quantity:    1,
	})
	assert.ErrorIs(t, err, ErrShelfRequired)
}

func TestCreateEntry_ShelfMembership(t *testing.T) {
	f := newStockFixture(t, "A1")

	// a shelf from another warehouse is rejected
	foreign := uuid.New().String()
	_, err := f.svc.CreateEntry(context.Background(), dto.CreateStockEntryRequest{
		ProductID:   f.product.ID.String(),
		WarehouseID: f.warehouse.ID.String(),
		ShelfID:     &foreign,
		Unit:        model.UnitPiece,
		Quantity:    1,
	})
	assert.ErrorIs(t, err, ErrShelfNotFound)

	// the warehouse's own shelf is accepted and lands on every barcode
	own := f.warehouse.Shelves[0].ID.String()
	resp, err := f.svc.CreateEntry(context.Background(), dto.CreateStockEntryRequest{
		ProductID:   f.product.ID.String(),
		WarehouseID: f.warehouse.ID.String(),
		ShelfID:     &own,
		Unit:        model.UnitPiece,
		Quantity:    2,
	})
	require.NoError(t, err)
	for _, b := range resp.Barcodes {
		require.NotNil(t, b.ShelfID)
		assert.Equal(t, own, *b.ShelfID)
	}
}

func TestCreateEntry_UnknownProduct(t *testing.T) {
	f := newStockFixture(t)
	_, err := f.svc.CreateEntry(context.Background(), dto.CreateStockEntryRequest{
		ProductID:   uuid.New().String(),
		WarehouseID: f.warehouse.ID.String(),
		Unit:        model.UnitPiece,
		Quantity:    1,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateEntry_WriteFailureLeavesNoStockChange(t *testing.T) {
	f := newStockFixture(t)
	f.stock.failCreateAfter = 2 // third barcode write fails

	_, err := f.svc.CreateEntry(context.Background(), dto.CreateStockEntryRequest{
		ProductID:   f.product.ID.String(),
		WarehouseID: f.warehouse.ID.String(),
		Unit:        model.UnitPiece,
		Quantity:    5,
	})
	require.Error(t, err)

	// AdjustStockTx runs last inside the transaction, so a minting failure
	// must never reach the product stock.
	assert.True(t, f.product.Stock.IsZero())
}

func TestMarkUsed(t *testing.T) {
	f := newStockFixture(t)
	resp, err := f.svc.CreateEntry(context.Background(), dto.CreateStockEntryRequest{
		ProductID:   f.product.ID.String(),
		WarehouseID: f.warehouse.ID.String(),
		Unit:        model.UnitPiece,
		Quantity:    1,
	})
	require.NoError(t, err)
	code := resp.Barcodes[0].Code

	require.NoError(t, f.svc.MarkUsed(context.Background(), code, true))
	got, err := f.svc.GetBarcode(context.Background(), code)
	require.NoError(t, err)
	assert.True(t, got.IsUsed)

	assert.ErrorIs(t, f.svc.MarkUsed(context.Background(), "000000", true), ErrBarcodeNotFound)
}
