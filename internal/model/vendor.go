package model

import (
	"time"

	"github.com/google/uuid"
)

// Vendor represents a supplier whose products can appear on purchase requests
type Vendor struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:varchar(255);not null" json:"address"`
	City      string    `gorm:"type:varchar(255);not null" json:"city"`
	State     string    `gorm:"type:varchar(2);not null" json:"state"`
	Zip       string    `gorm:"type:varchar(10);not null" json:"zip"`
	Phone     string    `gorm:"type:varchar(12)" json:"phone"`
	Email     string    `gorm:"type:varchar(100)" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
