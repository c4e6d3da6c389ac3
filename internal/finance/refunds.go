package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ssemujju/sokoyetu-backend/pkg/db/models"
	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
)

// RefundAllocation is one vendor's share of an order-level refund.
//
// The refund amount is spread across vendors proportionally to each vendor's
// item-total share of the whole order, regardless of which items the customer
// actually returned. Refunds carry no line-item granularity today, so this
// approximation is the best attribution available.
type RefundAllocation struct {
	Status enums.RefundStatus

	// SellerRefundAmount is the 90%-scaled share clawed back from the vendor.
	SellerRefundAmount decimal.Decimal
	// CommissionRefund is the platform commission portion returned alongside.
	CommissionRefund decimal.Decimal
}

// AllocateRefund computes the vendor's share of a refund against one order.
// A zero-total order yields a zero allocation rather than dividing by zero
// (fully discounted orders have nothing to claw back).
func (r Rates) AllocateRefund(order models.Order, refund models.Refund, vendorID uuid.UUID) RefundAllocation {
	alloc := RefundAllocation{
		Status:             refund.Status,
		SellerRefundAmount: decimal.Zero,
		CommissionRefund:   decimal.Zero,
	}

	_, itemTotal := VendorItems(order, vendorID)
	if itemTotal.IsZero() || order.Total.IsZero() {
		return alloc
	}

	ratio := refund.Amount.Div(order.Total)
	alloc.SellerRefundAmount = itemTotal.Mul(ratio).Mul(r.SellerPayout)
	alloc.CommissionRefund = alloc.SellerRefundAmount.Mul(r.SellerCommission).Div(r.SellerPayout)
	return alloc
}
