package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
)

// Order is a customer order. A single order may contain items from several
// vendors; Total is VAT-inclusive and intended to equal the sum of item
// subtotals, though the two can drift and statement math recomputes from
// items where precision matters.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID         `gorm:"column:customer_id;type:uuid;not null;index"`
	Customer   *User             `gorm:"foreignKey:CustomerID"`
	Status     enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'PENDING'"`
	Total      decimal.Decimal   `gorm:"column:total;type:numeric(14,2);not null"`
	Items      []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

