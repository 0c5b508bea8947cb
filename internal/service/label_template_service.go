package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stocklabel/internal/dto"
	"stocklabel/internal/label"
	"stocklabel/internal/model"
	"stocklabel/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LabelTemplateService manages label templates: validated saves, the
// single-default invariant, duplication and the JSON interchange boundary.
type LabelTemplateService interface {
	Create(ctx context.Context, t *label.Template) (*dto.LabelTemplateResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.LabelTemplateResponse, error)
	List(ctx context.Context) ([]dto.LabelTemplateResponse, error)
	Update(ctx context.Context, id uuid.UUID, t *label.Template) (*dto.LabelTemplateResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetDefault(ctx context.Context, id uuid.UUID) error
	Duplicate(ctx context.Context, id uuid.UUID) (*dto.LabelTemplateResponse, error)
	Export(ctx context.Context, id uuid.UUID) ([]byte, error)
	Import(ctx context.Context, blob []byte) (*dto.LabelTemplateResponse, error)
}

type labelTemplateService struct {
	repo repository.LabelTemplateRepository
}

func NewLabelTemplateService(repo repository.LabelTemplateRepository) LabelTemplateService {
	return &labelTemplateService{repo: repo}
}

func (s *labelTemplateService) Create(ctx context.Context, t *label.Template) (*dto.LabelTemplateResponse, error) {
	if res := label.Validate(t); !res.IsValid {
		return nil, &ValidationError{Errors: res.Errors}
	}
	rec, err := toRecord(t)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return recordToResponse(rec)
}

func (s *labelTemplateService) Get(ctx context.Context, id uuid.UUID) (*dto.LabelTemplateResponse, error) {
	rec, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToResponse(rec)
}

func (s *labelTemplateService) List(ctx context.Context) ([]dto.LabelTemplateResponse, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LabelTemplateResponse, 0, len(recs))
	for i := range recs {
		resp, err := recordToResponse(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *labelTemplateService) Update(ctx context.Context, id uuid.UUID, t *label.Template) (*dto.LabelTemplateResponse, error) {
	rec, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if res := label.Validate(t); !res.IsValid {
		return nil, &ValidationError{Errors: res.Errors}
	}

	elements, err := json.Marshal(t.Elements)
	if err != nil {
		return nil, fmt.Errorf("encode elements: %w", err)
	}
	rec.Name = t.Name
	rec.WidthMm = t.WidthMm
	rec.HeightMm = t.HeightMm
	rec.Elements = string(elements)
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return recordToResponse(rec)
}

// Delete refuses to remove the current default; callers must re-assign the
// default first.
func (s *labelTemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if rec.IsDefault {
		return ErrCannotDeleteDefault
	}
	return s.repo.Delete(ctx, id)
}

// SetDefault clears every other default and marks the target, atomically.
func (s *labelTemplateService) SetDefault(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.ClearDefaultTx(tx); err != nil {
			return err
		}
		return s.repo.SetDefaultTx(tx, id)
	})
}

// Duplicate copies a template under a derived name. The copy is never the
// default and goes through the same validation gate as a fresh save.
func (s *labelTemplateService) Duplicate(ctx context.Context, id uuid.UUID) (*dto.LabelTemplateResponse, error) {
	rec, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err := fromRecord(rec)
	if err != nil {
		return nil, err
	}
	t.ID = uuid.Nil
	t.Name = rec.Name + " (copy)"
	t.IsDefault = false
	return s.Create(ctx, t)
}

func (s *labelTemplateService) Export(ctx context.Context, id uuid.UUID) ([]byte, error) {
	rec, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err := fromRecord(rec)
	if err != nil {
		return nil, err
	}
	return label.Export(t)
}

// Import decodes an external blob, re-validates it (external JSON is never
// trusted) and stores it as a new, non-default template.
func (s *labelTemplateService) Import(ctx context.Context, blob []byte) (*dto.LabelTemplateResponse, error) {
	t, err := label.Import(blob)
	if err != nil {
		return nil, err
	}
	t.ID = uuid.Nil
	t.IsDefault = false
	return s.Create(ctx, t)
}

func (s *labelTemplateService) find(ctx context.Context, id uuid.UUID) (*model.LabelTemplate, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return rec, nil
}

// ─── Record ↔ domain mapping ─────────────────────────────────────────────────

func toRecord(t *label.Template) (*model.LabelTemplate, error) {
	elements, err := json.Marshal(t.Elements)
	if err != nil {
		return nil, fmt.Errorf("encode elements: %w", err)
	}
	return &model.LabelTemplate{
		ID:        t.ID,
		Name:      t.Name,
		WidthMm:   t.WidthMm,
		HeightMm:  t.HeightMm,
		Elements:  string(elements),
		IsDefault: t.IsDefault,
	}, nil
}

func fromRecord(rec *model.LabelTemplate) (*label.Template, error) {
	var elements []label.Element
	if err := json.Unmarshal([]byte(rec.Elements), &elements); err != nil {
		return nil, fmt.Errorf("decode elements: %w", err)
	}
	return &label.Template{
		ID:        rec.ID,
		Name:      rec.Name,
		WidthMm:   rec.WidthMm,
		HeightMm:  rec.HeightMm,
		Elements:  elements,
		IsDefault: rec.IsDefault,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func recordToResponse(rec *model.LabelTemplate) (*dto.LabelTemplateResponse, error) {
	t, err := fromRecord(rec)
	if err != nil {
		return nil, err
	}
	return &dto.LabelTemplateResponse{
		ID:        rec.ID.String(),
		Name:      rec.Name,
		WidthMm:   rec.WidthMm,
		HeightMm:  rec.HeightMm,
		Elements:  t.Elements,
		IsDefault: rec.IsDefault,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt: rec.UpdatedAt.Format(time.RFC3339),
	}, nil
}
