package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that can submit and review purchase requests
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, omitted from JSON
	FirstName string    `gorm:"type:varchar(20);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(20);not null" json:"last_name"`
	Phone     string    `gorm:"type:varchar(12)" json:"phone"`
	Email     string    `gorm:"type:varchar(75)" json:"email"`
	Reviewer  bool      `gorm:"not null;default:false" json:"reviewer"`
	Admin     bool      `gorm:"not null;default:false" json:"admin"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
