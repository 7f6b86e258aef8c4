package repository

import (
	"context"

	"prs-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(ctx context.Context, request *model.Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Request, error)
	List(ctx context.Context) ([]model.Request, error)
	// ListReviewExcluding returns requests in REVIEW status not submitted by
	// the given user (self-review prevention).
	ListReviewExcluding(ctx context.Context, userID uuid.UUID) ([]model.Request, error)
	// MaxRequestNumber returns the lexicographically largest request number
	// with the given prefix, or "" when none exists. Callers are expected to
	// run inside a transaction; generation for the same prefix is serialized
	// with a postgres advisory lock.
	MaxRequestNumber(ctx context.Context, prefix string) (string, error)
	Update(ctx context.Context, request *model.Request) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *model.Request) error {
	return GetDB(ctx, r.db).Create(request).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Request, error) {
	var request model.Request
	if err := GetDB(ctx, r.db).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) List(ctx context.Context) ([]model.Request, error) {
	var requests []model.Request
	if err := GetDB(ctx, r.db).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) ListReviewExcluding(ctx context.Context, userID uuid.UUID) ([]model.Request, error) {
	var requests []model.Request
	if err := GetDB(ctx, r.db).
		Where("status = ? AND user_id <> ?", model.RequestStatusReview, userID).
		Order("submitted_date").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) MaxRequestNumber(ctx context.Context, prefix string) (string, error) {
	db := GetDB(ctx, r.db)

	// Serialize concurrent number generation for the same day prefix
	db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", prefix)

	var max *string
	err := db.Model(&model.Request{}).
		Select("MAX(request_number)").
		Where("request_number LIKE ?", prefix+"%").
		Scan(&max).Error
	if err != nil {
		return "", err
	}
	if max == nil {
		return "", nil
	}
	return *max, nil
}

func (r *requestRepository) Update(ctx context.Context, request *model.Request) error {
	res := GetDB(ctx, r.db).Model(&model.Request{}).Where("id = ?", request.ID).Updates(map[string]interface{}{
		"user_id":              request.UserID,
		"description":          request.Description,
		"justification":        request.Justification,
		"date_needed":          request.DateNeeded,
		"delivery_mode":        request.DeliveryMode,
		"status":               request.Status,
		"total":                request.Total,
		"submitted_date":       request.SubmittedDate,
		"reason_for_rejection": request.ReasonForRejection,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *requestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Request{}).Error
}
