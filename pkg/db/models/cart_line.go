package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLineConstraint names the unique index the add-to-cart race relies on.
const CartLineConstraint = "cart_lines_user_product_key"

// CartLine holds one user/product cart entry. PriceAtAddition is frozen at
// first insertion and never updated by later quantity increments; cart totals
// always read the product's live price instead.
type CartLine struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:cart_lines_user_id_idx;uniqueIndex:cart_lines_user_product_key"`
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:cart_lines_user_product_key"`
	Quantity        int       `gorm:"column:quantity;not null;default:1"`
	PriceAtAddition float64   `gorm:"column:price_at_addition;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
