package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request status enum constants
const (
	RequestStatusNew      = "NEW"
	RequestStatusReview   = "REVIEW"
	RequestStatusApproved = "APPROVED"
	RequestStatusRejected = "REJECTED"
)

// Request is a purchase request submitted by a user. Its total is derived
// from the quantities of its line items joined against current product
// prices, and is overwritten whenever the line items change.
type Request struct {
	ID                 uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID             uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	RequestNumber      string              `gorm:"type:varchar(20);uniqueIndex;not null" json:"request_number"` // R + yymmdd + 4-digit sequence
	Description        string              `gorm:"type:varchar(100);not null" json:"description"`
	Justification      string              `gorm:"type:varchar(255);not null" json:"justification"`
	DateNeeded         time.Time           `gorm:"not null" json:"date_needed"`
	DeliveryMode       string              `gorm:"type:varchar(25);not null" json:"delivery_mode"`
	Status             string              `gorm:"type:varchar(20);not null;default:'NEW';index" json:"status"`
	Total              decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"total"`
	SubmittedDate      *time.Time          `json:"submitted_date"`
	ReasonForRejection string              `gorm:"type:varchar(100)" json:"reason_for_rejection"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}
