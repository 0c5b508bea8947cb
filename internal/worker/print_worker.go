package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stocklabel/internal/infra"
	"stocklabel/internal/label"
	"stocklabel/internal/model"
	"stocklabel/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PrintWorker renders queued label-print jobs to PDF files on disk.
type PrintWorker struct {
	templates   repository.LabelTemplateRepository
	products    repository.ProductRepository
	stock       repository.StockRepository
	storagePath string
}

func NewPrintWorker(
	templates repository.LabelTemplateRepository,
	products repository.ProductRepository,
	stock repository.StockRepository,
	storagePath string,
) *PrintWorker {
	return &PrintWorker{templates: templates, products: products, stock: stock, storagePath: storagePath}
}

// Handle resolves the job's template, product and barcode and writes the
// rendered label PDF under the worker's storage path.
func (w *PrintWorker) Handle(ctx context.Context, job PrintJob) error {
	rec, err := w.resolveTemplate(ctx, job.TemplateID)
	if err != nil {
		return err
	}

	var elements []label.Element
	if err := json.Unmarshal([]byte(rec.Elements), &elements); err != nil {
		return fmt.Errorf("print: decode template %s: %w", rec.ID, err)
	}
	tmpl := &label.Template{
		ID:       rec.ID,
		Name:     rec.Name,
		WidthMm:  rec.WidthMm,
		HeightMm: rec.HeightMm,
		Elements: elements,
	}

	productID, err := uuid.Parse(job.ProductID)
	if err != nil {
		return fmt.Errorf("print: bad product id %q: %w", job.ProductID, err)
	}
	product, err := w.products.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("print: load product %s: %w", job.ProductID, err)
	}

	bc, err := w.stock.FindBarcodeByCode(ctx, job.Code)
	if err != nil {
		return fmt.Errorf("print: load barcode %s: %w", job.Code, err)
	}

	data := infra.LabelData{
		ProductName: product.Name,
		Price:       product.Price.StringFixed(2),
		Date:        bc.CreatedAt.Format("02.01.2006"),
		Code:        bc.Code,
	}
	if product.Features != nil {
		data.Features = *product.Features
	}

	start := time.Now()
	path, err := infra.GenerateLabelPDF(tmpl, data, job.Copies, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().
		Str("code", bc.Code).
		Str("template", tmpl.Name).
		Int("copies", job.Copies).
		Str("path", path).
		Dur("took", time.Since(start)).
		Msg("label pdf generated")
	return nil
}

func (w *PrintWorker) resolveTemplate(ctx context.Context, id string) (*model.LabelTemplate, error) {
	if id == "" {
		t, err := w.templates.FindDefault(ctx)
		if err != nil {
			return nil, fmt.Errorf("print: no default template: %w", err)
		}
		return t, nil
	}
	tid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("print: bad template id %q: %w", id, err)
	}
	t, err := w.templates.FindByID(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("print: load template %s: %w", id, err)
	}
	return t, nil
}
