package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
)

// Refund is a customer refund request against a whole order. Amount is an
// absolute currency value expected to be at most the order total.
type Refund struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID          `gorm:"column:order_id;type:uuid;not null;index"`
	Order     *Order             `gorm:"foreignKey:OrderID"`
	Amount    decimal.Decimal    `gorm:"column:amount;type:numeric(14,2);not null"`
	Status    enums.RefundStatus `gorm:"column:status;type:refund_status;not null;default:'PENDING'"`
	Reason    string             `gorm:"column:reason;not null"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
