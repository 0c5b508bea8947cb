package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stocklabel/internal/dto"
	"stocklabel/internal/label"
	"stocklabel/internal/model"
	"stocklabel/internal/repository"
	"stocklabel/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LabelPrintService prepares print layouts for the preview screen and hands
// actual PDF generation to the worker pool.
type LabelPrintService interface {
	Layout(ctx context.Context, req dto.PrintLabelRequest) (*dto.PrintLayoutResponse, error)
	EnqueuePrint(ctx context.Context, req dto.PrintLabelRequest) error
}

type labelPrintService struct {
	templates  repository.LabelTemplateRepository
	products   repository.ProductRepository
	stock      repository.StockRepository
	dispatcher *worker.Dispatcher
}

func NewLabelPrintService(
	templates repository.LabelTemplateRepository,
	products repository.ProductRepository,
	stock repository.StockRepository,
	dispatcher *worker.Dispatcher,
) LabelPrintService {
	return &labelPrintService{templates: templates, products: products, stock: stock, dispatcher: dispatcher}
}

// Layout resolves the request into pixel rectangles and field values. When no
// code is given, the product's most recent barcode serves as the sample.
func (s *labelPrintService) Layout(ctx context.Context, req dto.PrintLabelRequest) (*dto.PrintLayoutResponse, error) {
	tmpl, err := s.resolveTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	product, bc, err := s.resolveSubject(ctx, req)
	if err != nil {
		return nil, err
	}

	scale := label.ClampScale(req.Scale)
	values := map[string]string{
		label.FieldProductName: product.Name,
		label.FieldPrice:       product.Price.StringFixed(2),
		label.FieldDate:        bc.CreatedAt.Format("02.01.2006"),
		label.FieldBarcode:     bc.Code,
	}
	if product.Features != nil {
		values[label.FieldFeatures] = *product.Features
	}

	return &dto.PrintLayoutResponse{
		TemplateID: tmpl.ID.String(),
		Scale:      scale,
		WidthPx:    label.MmToPx(tmpl.WidthMm, scale),
		HeightPx:   label.MmToPx(tmpl.HeightMm, scale),
		Elements:   label.LayoutPx(tmpl, scale),
		Values:     values,
	}, nil
}

// EnqueuePrint validates the request's references exist, then queues the job.
func (s *labelPrintService) EnqueuePrint(ctx context.Context, req dto.PrintLabelRequest) error {
	tmpl, err := s.resolveTemplate(ctx, req.TemplateID)
	if err != nil {
		return err
	}
	product, bc, err := s.resolveSubject(ctx, req)
	if err != nil {
		return err
	}

	copies := req.Copies
	if copies < 1 {
		copies = 1
	}
	job := worker.PrintJob{
		TemplateID: tmpl.ID.String(),
		ProductID:  product.ID.String(),
		Code:       bc.Code,
		Copies:     copies,
	}
	if err := s.dispatcher.EnqueuePrint(ctx, job); err != nil {
		return fmt.Errorf("enqueue print job: %w", err)
	}
	log.Info().
		Str("code", bc.Code).
		Str("template_id", job.TemplateID).
		Int("copies", copies).
		Msg("label print queued")
	return nil
}

func (s *labelPrintService) resolveTemplate(ctx context.Context, id *string) (*label.Template, error) {
	var rec *model.LabelTemplate
	var err error
	if id == nil || *id == "" {
		rec, err = s.templates.FindDefault(ctx)
	} else {
		var tid uuid.UUID
		tid, err = uuid.Parse(*id)
		if err != nil {
			return nil, ErrTemplateNotFound
		}
		rec, err = s.templates.FindByID(ctx, tid)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return fromRecord(rec)
}

func (s *labelPrintService) resolveSubject(ctx context.Context, req dto.PrintLabelRequest) (*model.Product, *model.Barcode, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, nil, ErrProductNotFound
	}
	product, err := s.products.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProductNotFound
		}
		return nil, nil, err
	}

	var bc *model.Barcode
	if req.Code != nil && *req.Code != "" {
		bc, err = s.stock.FindBarcodeByCode(ctx, *req.Code)
	} else {
		bc, err = s.stock.LatestBarcodeForProduct(ctx, pid)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBarcodeNotFound
		}
		return nil, nil, err
	}
	// preview dates come from the mint time, keep zero times presentable
	if bc.CreatedAt.IsZero() {
		bc.CreatedAt = time.Now()
	}
	return product, bc, nil
}
