package repository

import (
	"context"

	"prs-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LineItemRepository interface {
	Create(ctx context.Context, item *model.LineItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LineItem, error)
	List(ctx context.Context) ([]model.LineItem, error)
	ListByRequestID(ctx context.Context, requestID uuid.UUID) ([]model.LineItem, error)
	Update(ctx context.Context, item *model.LineItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	// TotalForRequest computes the request total as a single joined query:
	// SUM(line_items.quantity * products.price) over the request's items.
	// Returns zero for a request with no line items.
	TotalForRequest(ctx context.Context, requestID uuid.UUID) (decimal.Decimal, error)
}

type lineItemRepository struct {
	db *gorm.DB
}

func NewLineItemRepository(db *gorm.DB) LineItemRepository {
	return &lineItemRepository{db: db}
}

func (r *lineItemRepository) Create(ctx context.Context, item *model.LineItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *lineItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LineItem, error) {
	var item model.LineItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *lineItemRepository) List(ctx context.Context) ([]model.LineItem, error) {
	var items []model.LineItem
	if err := GetDB(ctx, r.db).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *lineItemRepository) ListByRequestID(ctx context.Context, requestID uuid.UUID) ([]model.LineItem, error) {
	var items []model.LineItem
	if err := GetDB(ctx, r.db).Where("request_id = ?", requestID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *lineItemRepository) Update(ctx context.Context, item *model.LineItem) error {
	res := GetDB(ctx, r.db).Model(&model.LineItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"request_id": item.RequestID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *lineItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.LineItem{}).Error
}

func (r *lineItemRepository) TotalForRequest(ctx context.Context, requestID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := GetDB(ctx, r.db).Model(&model.LineItem{}).
		Select("COALESCE(SUM(line_items.quantity * products.price), 0)").
		Joins("JOIN products ON products.id = line_items.product_id").
		Where("line_items.request_id = ?", requestID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
