package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product represents a merchant-authored catalog listing. FinalPrice is
// derived from Price and Discount and recomputed on every write; the
// discovery and cart layers never mutate it.
type Product struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MerchantID     uuid.UUID      `gorm:"column:merchant_id;type:uuid;not null;index:products_merchant_id_idx"`
	Title          string         `gorm:"column:title;not null;index:products_title_idx"`
	Description    string         `gorm:"column:description"`
	Brand          string         `gorm:"column:brand;index:products_brand_idx"`
	Category       string         `gorm:"column:category;not null;index:products_category_idx"`
	SubCategory    string         `gorm:"column:sub_category;index:products_sub_category_idx"`
	Price          float64        `gorm:"column:price;not null"`
	Discount       float64        `gorm:"column:discount;not null;default:0"`
	FinalPrice     float64        `gorm:"column:final_price;not null"`
	Currency       string         `gorm:"column:currency;not null;default:'INR'"`
	Stock          int            `gorm:"column:stock;not null;default:0"`
	ImageURL       string         `gorm:"column:image_url"`
	Images         pq.StringArray `gorm:"column:images;type:text[]"`
	Rating         float64        `gorm:"column:rating;not null;default:0"`
	ReviewsCount   int            `gorm:"column:reviews_count;not null;default:0"`
	Tags           pq.StringArray `gorm:"column:tags;type:text[]"`
	Warranty       string         `gorm:"column:warranty"`
	ReturnPolicy   string         `gorm:"column:return_policy"`
	DeliveryCharge float64        `gorm:"column:delivery_charge;not null;default:0"`
	DeliveryTime   string         `gorm:"column:delivery_time"`
	IsFeatured     bool           `gorm:"column:is_featured;not null;default:false"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime;index:products_created_at_idx"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
