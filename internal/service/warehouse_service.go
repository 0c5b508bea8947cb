package service

import (
	"context"
	"errors"

	"stocklabel/internal/dto"
	"stocklabel/internal/model"
	"stocklabel/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WarehouseService interface {
	Create(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.WarehouseResponse, error)
	List(ctx context.Context) ([]dto.WarehouseResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddShelf(ctx context.Context, warehouseID uuid.UUID, req dto.AddShelfRequest) (*dto.WarehouseResponse, error)
	DeleteShelf(ctx context.Context, warehouseID, shelfID uuid.UUID) error
}

type warehouseService struct {
	repo repository.WarehouseRepository
}

func NewWarehouseService(repo repository.WarehouseRepository) WarehouseService {
	return &warehouseService{repo: repo}
}

func (s *warehouseService) Create(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && err == nil {
		return nil, duplicate("warehouse " + req.Name)
	}

	w := &model.Warehouse{Name: req.Name, Address: req.Address}
	seen := make(map[string]struct{}, len(req.Shelves))
	for _, name := range req.Shelves {
		if _, dup := seen[name]; dup {
			return nil, duplicate("shelf " + name)
		}
		seen[name] = struct{}{}
		w.Shelves = append(w.Shelves, model.Shelf{Name: name})
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	resp := warehouseToResponse(w)
	return &resp, nil
}

func (s *warehouseService) Get(ctx context.Context, id uuid.UUID) (*dto.WarehouseResponse, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := warehouseToResponse(w)
	return &resp, nil
}

func (s *warehouseService) List(ctx context.Context) ([]dto.WarehouseResponse, error) {
	warehouses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		out = append(out, warehouseToResponse(&warehouses[i]))
	}
	return out, nil
}

func (s *warehouseService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && *req.Name != w.Name {
		existing, err := s.repo.FindByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && err == nil && existing.ID != id {
			return nil, duplicate("warehouse " + *req.Name)
		}
		w.Name = *req.Name
	}
	if req.Address != nil {
		w.Address = req.Address
	}
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	resp := warehouseToResponse(w)
	return &resp, nil
}

func (s *warehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *warehouseService) AddShelf(ctx context.Context, warehouseID uuid.UUID, req dto.AddShelfRequest) (*dto.WarehouseResponse, error) {
	if _, err := s.find(ctx, warehouseID); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindShelfByName(ctx, warehouseID, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && err == nil {
		return nil, duplicate("shelf " + req.Name)
	}
	if err := s.repo.AddShelf(ctx, &model.Shelf{WarehouseID: warehouseID, Name: req.Name}); err != nil {
		return nil, err
	}
	return s.Get(ctx, warehouseID)
}

func (s *warehouseService) DeleteShelf(ctx context.Context, warehouseID, shelfID uuid.UUID) error {
	w, err := s.find(ctx, warehouseID)
	if err != nil {
		return err
	}
	for _, shelf := range w.Shelves {
		if shelf.ID == shelfID {
			return s.repo.DeleteShelf(ctx, warehouseID, shelfID)
		}
	}
	return ErrShelfNotFound
}

func (s *warehouseService) find(ctx context.Context, id uuid.UUID) (*model.Warehouse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}
	return w, nil
}

func warehouseToResponse(w *model.Warehouse) dto.WarehouseResponse {
	shelves := make([]dto.ShelfResponse, 0, len(w.Shelves))
	for _, s := range w.Shelves {
		shelves = append(shelves, dto.ShelfResponse{ID: s.ID.String(), Name: s.Name})
	}
	return dto.WarehouseResponse{
		ID:      w.ID.String(),
		Name:    w.Name,
		Address: w.Address,
		Shelves: shelves,
	}
}
