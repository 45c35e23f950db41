package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistLine links a user to a saved product. The recommendation engine
// reads these as a ranking signal; it never writes them.
type WishlistLine struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:wishlist_lines_user_id_idx;uniqueIndex:wishlist_lines_user_product_key"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index:wishlist_lines_product_id_idx;uniqueIndex:wishlist_lines_user_product_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
