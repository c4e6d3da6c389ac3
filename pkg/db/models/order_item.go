package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem snapshots one product line within an order. Price is the
// VAT-inclusive unit price at time of purchase; immutable after placement.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// Subtotal returns price multiplied by quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// VendorID resolves the owning vendor through the preloaded product.
// Returns uuid.Nil when the product association is missing.
func (i OrderItem) VendorID() uuid.UUID {
	if i.Product == nil {
		return uuid.Nil
	}
	return i.Product.VendorID
}
