package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a purchasable item offered by a vendor. Line items reference
// products for price lookup only; deleting a product does not cascade.
type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"vendor_id"`
	PartNumber string          `gorm:"type:varchar(50);not null" json:"part_number"`
	Name       string          `gorm:"type:varchar(150);not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	Unit       string          `gorm:"type:varchar(255)" json:"unit"`
	PhotoPath  string          `gorm:"type:varchar(255)" json:"photo_path"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
