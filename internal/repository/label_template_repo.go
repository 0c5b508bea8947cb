package repository

import (
	"context"

	"stocklabel/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabelTemplateRepository interface {
	Create(ctx context.Context, t *model.LabelTemplate) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LabelTemplate, error)
	FindDefault(ctx context.Context) (*model.LabelTemplate, error)
	List(ctx context.Context) ([]model.LabelTemplate, error)
	Update(ctx context.Context, t *model.LabelTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ClearDefaultTx + SetDefaultTx run inside one transaction so the
	// single-default invariant holds at every commit point.
	ClearDefaultTx(tx *gorm.DB) error
	SetDefaultTx(tx *gorm.DB, id uuid.UUID) error

	DB() *gorm.DB
}

type labelTemplateRepo struct{ db *gorm.DB }

func NewLabelTemplateRepository(db *gorm.DB) LabelTemplateRepository {
	return &labelTemplateRepo{db: db}
}

func (r *labelTemplateRepo) Create(ctx context.Context, t *model.LabelTemplate) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *labelTemplateRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LabelTemplate, error) {
	var t model.LabelTemplate
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *labelTemplateRepo) FindDefault(ctx context.Context) (*model.LabelTemplate, error) {
	var t model.LabelTemplate
	err := r.db.WithContext(ctx).Where("is_default = true").First(&t).Error
	return &t, err
}

func (r *labelTemplateRepo) List(ctx context.Context) ([]model.LabelTemplate, error) {
	var templates []model.LabelTemplate
	err := r.db.WithContext(ctx).Order("name ASC").Find(&templates).Error
	return templates, err
}

func (r *labelTemplateRepo) Update(ctx context.Context, t *model.LabelTemplate) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *labelTemplateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.LabelTemplate{}, id).Error
}

func (r *labelTemplateRepo) ClearDefaultTx(tx *gorm.DB) error {
	return tx.Model(&model.LabelTemplate{}).Where("is_default = true").
		Update("is_default", false).Error
}

func (r *labelTemplateRepo) SetDefaultTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.LabelTemplate{}).Where("id = ?", id).
		Update("is_default", true).Error
}

func (r *labelTemplateRepo) DB() *gorm.DB { return r.db }
