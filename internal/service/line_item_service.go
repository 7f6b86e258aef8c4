package service

import (
	"context"
	"errors"
	"fmt"

	"prs-backend/internal/model"
	"prs-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateLineItemRequest struct {
	RequestID string `json:"request_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type UpdateLineItemRequest struct {
	ID        string `json:"id" binding:"required"`
	RequestID string `json:"request_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// --- Interface ---

type LineItemService interface {
	CreateLineItem(ctx context.Context, req CreateLineItemRequest) (*model.LineItem, error)
	GetLineItemByID(ctx context.Context, id string) (*model.LineItem, error)
	ListLineItems(ctx context.Context) ([]model.LineItem, error)
	ListForRequest(ctx context.Context, requestID string) ([]model.LineItem, error)
	UpdateLineItem(ctx context.Context, id string, req UpdateLineItemRequest) error
	DeleteLineItem(ctx context.Context, id string) error
}

type lineItemService struct {
	repo        repository.LineItemRepository
	requestRepo repository.RequestRepository
	productRepo repository.ProductRepository
}

func NewLineItemService(
	repo repository.LineItemRepository,
	requestRepo repository.RequestRepository,
	productRepo repository.ProductRepository,
) LineItemService {
	return &lineItemService{repo: repo, requestRepo: requestRepo, productRepo: productRepo}
}

// validateProduct checks the referenced product exists and carries a usable
// price. A bad reference maps to a validation error, leaving the store
// untouched.
func (s *lineItemService) validateProduct(ctx context.Context, rawID string) (uuid.UUID, error) {
	productID, err := parseID(rawID)
	if err != nil {
		return uuid.Nil, err
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fmt.Errorf("product %s does not exist: %w", rawID, ErrValidation)
		}
		return uuid.Nil, err
	}
	if !product.Price.IsPositive() {
		return uuid.Nil, fmt.Errorf("product %s has an invalid price: %w", rawID, ErrValidation)
	}
	return productID, nil
}

func (s *lineItemService) requireRequest(ctx context.Context, rawID string) (uuid.UUID, error) {
	requestID, err := parseID(rawID)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := s.requestRepo.FindByID(ctx, requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fmt.Errorf("request %s does not exist: %w", rawID, ErrNotFound)
		}
		return uuid.Nil, err
	}
	return requestID, nil
}

// recomputeTotal overwrites the parent request's stored total from the
// current line items. This is a second store write after the line-item
// mutation, not one atomic unit with it.
func (s *lineItemService) recomputeTotal(ctx context.Context, requestID uuid.UUID) error {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Parent gone; nothing left to keep consistent.
			return nil
		}
		return err
	}

	total, err := s.repo.TotalForRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to compute total: %w", err)
	}

	request.Total = decimal.NewNullDecimal(total)
	if err := s.requestRepo.Update(ctx, request); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("request %s: %w", requestID, ErrConflict)
		}
		return err
	}
	return nil
}

func (s *lineItemService) CreateLineItem(ctx context.Context, req CreateLineItemRequest) (*model.LineItem, error) {
	productID, err := s.validateProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	requestID, err := s.requireRequest(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}

	item := &model.LineItem{
		RequestID: requestID,
		ProductID: productID,
		Quantity:  req.Quantity,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	if err := s.recomputeTotal(ctx, requestID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *lineItemService) GetLineItemByID(ctx context.Context, id string) (*model.LineItem, error) {
	itemID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("line item %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (s *lineItemService) ListLineItems(ctx context.Context) ([]model.LineItem, error) {
	return s.repo.List(ctx)
}

func (s *lineItemService) ListForRequest(ctx context.Context, requestID string) ([]model.LineItem, error) {
	reqID, err := s.requireRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByRequestID(ctx, reqID)
}

func (s *lineItemService) UpdateLineItem(ctx context.Context, id string, req UpdateLineItemRequest) error {
	if req.ID != id {
		return ErrIDMismatch
	}

	item, err := s.GetLineItemByID(ctx, id)
	if err != nil {
		return err
	}
	previousRequestID := item.RequestID

	productID, err := s.validateProduct(ctx, req.ProductID)
	if err != nil {
		return err
	}
	requestID, err := s.requireRequest(ctx, req.RequestID)
	if err != nil {
		return err
	}

	item.RequestID = requestID
	item.ProductID = productID
	item.Quantity = req.Quantity

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("line item %s: %w", id, ErrConflict)
		}
		return err
	}

	if err := s.recomputeTotal(ctx, requestID); err != nil {
		return err
	}
	// Moving an item between requests leaves the old parent stale too.
	if previousRequestID != requestID {
		return s.recomputeTotal(ctx, previousRequestID)
	}
	return nil
}

func (s *lineItemService) DeleteLineItem(ctx context.Context, id string) error {
	item, err := s.GetLineItemByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return err
	}
	return s.recomputeTotal(ctx, item.RequestID)
}
