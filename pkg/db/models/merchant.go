package models

import (
	"time"

	"github.com/google/uuid"
)

// Merchant is read-only to the discovery core; its display fields are
// denormalized onto products during enrichment. ProductCount is a
// best-effort counter and may drift; it is never authoritative.
type Merchant struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MerchantName string    `gorm:"column:merchant_name;not null"`
	BusinessName string    `gorm:"column:business_name;not null"`
	Address      string    `gorm:"column:address"`
	PhoneNumber  string    `gorm:"column:phone_number"`
	Email        string    `gorm:"column:email;uniqueIndex:merchants_email_key"`
	IsVerified   bool      `gorm:"column:is_verified;not null;default:false"`
	ProductCount int       `gorm:"column:product_count;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
