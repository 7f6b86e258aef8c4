package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"prs-backend/internal/model"
	"prs-backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Requests whose total is at or below this amount are approved without review.
var autoApproveThreshold = decimal.NewFromInt(50)

const requestNumberLength = 11 // "R" + yymmdd + 4-digit sequence

// --- DTOs ---

type LineItemPayload struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CreateRequestDTO struct {
	UserID        string            `json:"user_id" binding:"required"`
	Description   string            `json:"description" binding:"required"`
	Justification string            `json:"justification" binding:"required"`
	DateNeeded    time.Time         `json:"date_needed" binding:"required"`
	DeliveryMode  string            `json:"delivery_mode" binding:"required"`
	Status        string            `json:"status" binding:"omitempty,oneof=NEW REVIEW APPROVED REJECTED"`
	LineItems     []LineItemPayload `json:"line_items"`
}

type UpdateRequestDTO struct {
	ID            string    `json:"id" binding:"required"`
	Description   string    `json:"description" binding:"required"`
	Justification string    `json:"justification" binding:"required"`
	DateNeeded    time.Time `json:"date_needed" binding:"required"`
	DeliveryMode  string    `json:"delivery_mode" binding:"required"`
	Status        string    `json:"status" binding:"omitempty,oneof=NEW REVIEW APPROVED REJECTED"`
}

type RejectRequestDTO struct {
	ReasonForRejection string `json:"reason_for_rejection"`
}

// EventBroadcaster pushes workflow events to connected clients. Satisfied by
// the websocket hub; nil disables publishing.
type EventBroadcaster interface {
	GetBroadcast() chan []byte
}

// --- Interface ---

type RequestService interface {
	CreateRequest(ctx context.Context, req CreateRequestDTO) (*model.Request, error)
	GetRequestByID(ctx context.Context, id string) (*model.Request, error)
	ListRequests(ctx context.Context) ([]model.Request, error)
	UpdateRequest(ctx context.Context, id string, req UpdateRequestDTO) error
	DeleteRequest(ctx context.Context, id string) error
	SubmitForReview(ctx context.Context, id string) (*model.Request, error)
	ApproveRequest(ctx context.Context, id string) (*model.Request, error)
	RejectRequest(ctx context.Context, id string, reason string) (*model.Request, error)
	ListReview(ctx context.Context, excludeUserID string) ([]model.Request, error)
}

type requestService struct {
	repo         repository.RequestRepository
	lineItemRepo repository.LineItemRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	txManager    repository.TransactionManager
	hub          EventBroadcaster
}

func NewRequestService(
	repo repository.RequestRepository,
	lineItemRepo repository.LineItemRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	txManager repository.TransactionManager,
	hub EventBroadcaster,
) RequestService {
	return &requestService{
		repo:         repo,
		lineItemRepo: lineItemRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// --- Request-number generation ---

func requestNumberPrefix(now time.Time) string {
	return "R" + now.Format("060102")
}

// nextRequestNumber derives the next sequential number from the largest
// existing number carrying today's prefix. Sequences past 9999 within one day
// widen the suffix to 5 digits, breaking the fixed-width contract; that
// overflow is an accepted open issue.
func nextRequestNumber(maxExisting string, now time.Time) string {
	seq := 1
	if len(maxExisting) == requestNumberLength {
		if n, err := strconv.Atoi(maxExisting[7:]); err == nil {
			seq = n + 1
		}
	}
	return requestNumberPrefix(now) + fmt.Sprintf("%04d", seq)
}

// --- Implementation ---

func (s *requestService) CreateRequest(ctx context.Context, req CreateRequestDTO) (*model.Request, error) {
	userID, err := parseID(req.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s does not exist: %w", req.UserID, ErrValidation)
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.RequestStatusNew
	}

	// Resolve every referenced product up front so a bad line item leaves
	// the store untouched.
	items := make([]model.LineItem, 0, len(req.LineItems))
	for _, payload := range req.LineItems {
		productID, err := parseID(payload.ProductID)
		if err != nil {
			return nil, err
		}
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("product %s does not exist: %w", payload.ProductID, ErrValidation)
			}
			return nil, err
		}
		if !product.Price.IsPositive() {
			return nil, fmt.Errorf("product %s has an invalid price: %w", payload.ProductID, ErrValidation)
		}
		items = append(items, model.LineItem{ProductID: productID, Quantity: payload.Quantity})
	}

	request := &model.Request{
		UserID:        userID,
		Description:   req.Description,
		Justification: req.Justification,
		DateNeeded:    req.DateNeeded,
		DeliveryMode:  req.DeliveryMode,
		Status:        status,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now()
		maxNumber, err := s.repo.MaxRequestNumber(txCtx, requestNumberPrefix(now))
		if err != nil {
			return fmt.Errorf("failed to derive request number: %w", err)
		}
		request.RequestNumber = nextRequestNumber(maxNumber, now)

		if err := s.repo.Create(txCtx, request); err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		for i := range items {
			items[i].RequestID = request.ID
			if err := s.lineItemRepo.Create(txCtx, &items[i]); err != nil {
				return fmt.Errorf("failed to create line item: %w", err)
			}
		}

		total, err := s.lineItemRepo.TotalForRequest(txCtx, request.ID)
		if err != nil {
			return fmt.Errorf("failed to compute total: %w", err)
		}
		request.Total = decimal.NewNullDecimal(total)
		return s.repo.Update(txCtx, request)
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

func (s *requestService) GetRequestByID(ctx context.Context, id string) (*model.Request, error) {
	requestID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("request %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return request, nil
}

func (s *requestService) ListRequests(ctx context.Context) ([]model.Request, error) {
	return s.repo.List(ctx)
}

func (s *requestService) UpdateRequest(ctx context.Context, id string, req UpdateRequestDTO) error {
	if req.ID != id {
		return ErrIDMismatch
	}

	request, err := s.GetRequestByID(ctx, id)
	if err != nil {
		return err
	}

	request.Description = req.Description
	request.Justification = req.Justification
	request.DateNeeded = req.DateNeeded
	request.DeliveryMode = req.DeliveryMode
	if req.Status != "" {
		request.Status = req.Status
	}

	return s.saveRequest(ctx, request)
}

// DeleteRequest removes the request row. Its line items keep their rows; no
// total recompute happens on this path.
func (s *requestService) DeleteRequest(ctx context.Context, id string) error {
	request, err := s.GetRequestByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, request.ID)
}

// SubmitForReview recomputes the request total, then routes the request:
// totals at or under the threshold are approved outright, everything else
// goes to review. The submitted date is stamped with the current time.
func (s *requestService) SubmitForReview(ctx context.Context, id string) (*model.Request, error) {
	request, err := s.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	total, err := s.lineItemRepo.TotalForRequest(ctx, request.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute total: %w", err)
	}
	request.Total = decimal.NewNullDecimal(total)

	if total.LessThanOrEqual(autoApproveThreshold) {
		request.Status = model.RequestStatusApproved
	} else {
		request.Status = model.RequestStatusReview
	}

	now := time.Now()
	request.SubmittedDate = &now

	if err := s.saveRequest(ctx, request); err != nil {
		return nil, err
	}

	s.publishStatusEvent(request)
	return request, nil
}

// ApproveRequest unconditionally moves the request to APPROVED. Nothing
// guards against approving an already rejected request; terminal states are
// not monotonic here.
func (s *requestService) ApproveRequest(ctx context.Context, id string) (*model.Request, error) {
	request, err := s.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	request.Status = model.RequestStatusApproved
	if err := s.saveRequest(ctx, request); err != nil {
		return nil, err
	}

	s.publishStatusEvent(request)
	return request, nil
}

func (s *requestService) RejectRequest(ctx context.Context, id string, reason string) (*model.Request, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("reason for rejection is required: %w", ErrValidation)
	}

	request, err := s.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	request.Status = model.RequestStatusRejected
	request.ReasonForRejection = reason
	if err := s.saveRequest(ctx, request); err != nil {
		return nil, err
	}

	s.publishStatusEvent(request)
	return request, nil
}

func (s *requestService) ListReview(ctx context.Context, excludeUserID string) ([]model.Request, error) {
	userID, err := parseID(excludeUserID)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.ListReviewExcluding(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("no review requests available for this user: %w", ErrNotFound)
	}
	return requests, nil
}

func (s *requestService) saveRequest(ctx context.Context, request *model.Request) error {
	if err := s.repo.Update(ctx, request); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("request %s: %w", request.ID, ErrConflict)
		}
		return err
	}
	return nil
}

// publishStatusEvent pushes a workflow event through the hub without ever
// blocking the request path.
func (s *requestService) publishStatusEvent(request *model.Request) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"request_id":     request.ID,
		"request_number": request.RequestNumber,
		"status":         request.Status,
	})
	if err != nil {
		return
	}
	select {
	case s.hub.GetBroadcast() <- payload:
	default:
	}
}
