package service

import (
	"context"
	"errors"
	"fmt"

	"stocklabel/internal/codegen"
	"stocklabel/internal/dto"
	"stocklabel/internal/model"
	"stocklabel/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AutoCodeSentinel in the code field requests server-side code assignment,
// same as leaving it empty.
const AutoCodeSentinel = "auto"

// customerCodeFloor makes the first auto-assigned account code 100000.
const customerCodeFloor = 99999

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
	gen  *codegen.Generator
}

func NewCustomerService(repo repository.CustomerRepository, gen *codegen.Generator) CustomerService {
	return &customerService{repo: repo, gen: gen}
}

// maxCodeInsertRetries bounds the regenerate-on-collision loop when a
// concurrent request claims the computed next code between the snapshot read
// and the insert.
const maxCodeInsertRetries = 3

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	code := req.Code
	auto := code == "" || code == AutoCodeSentinel
	if !auto {
		existing, err := s.repo.FindByCode(ctx, code)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && err == nil {
			return nil, duplicate("customer code " + code)
		}
	}

	var c *model.Customer
	for attempt := 0; ; attempt++ {
		if auto {
			generated, err := s.gen.Generate(ctx, s.repo.AllCodes, codegen.NextSequential(6, customerCodeFloor))
			if err != nil {
				return nil, fmt.Errorf("assign customer code: %w", err)
			}
			code = generated
		}

		c = &model.Customer{
			Code:    code,
			Name:    req.Name,
			Phone:   req.Phone,
			Email:   req.Email,
			Address: req.Address,
			Active:  true,
		}
		err := s.repo.Create(ctx, c)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// the unique index on code caught a racing insert
			if auto && attempt < maxCodeInsertRetries {
				continue // fresh snapshot on the next round yields the next free code
			}
			return nil, duplicate("customer code " + code)
		}
		return nil, err
	}

	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, customerToResponse(&customers[i]))
	}
	return out, nil
}

// Update never touches the code: account codes are immutable once assigned.
func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *customerService) find(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:      c.ID.String(),
		Code:    c.Code,
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
		Active:  c.Active,
	}
}
