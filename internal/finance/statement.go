package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ssemujju/sokoyetu-backend/pkg/db/models"
	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
)

// maxStatementTransactions caps the rows shipped to the dashboard.
const maxStatementTransactions = 100

// StatementInput carries everything the seller statement builder needs.
// Orders must be the seller's non-cancelled orders within the window, with
// Items.Product preloaded; Refunds must reference those orders.
type StatementInput struct {
	Seller  models.User
	Orders  []models.Order
	Refunds []models.Refund
	Window  Window
	Now     time.Time
	Rates   Rates
}

// BuildSellerStatement computes a seller's financial statement. Pure: it
// reads its inputs, mutates nothing, and two identical calls produce
// identical output.
//
// Delivered orders credit the realized totals; every other non-cancelled
// status contributes only to the pending payout. Refunds always accumulate
// into the refund totals, and additionally net against realized payouts when
// settled or against the pending payout while still under review.
func BuildSellerStatement(in StatementInput) SellerStatement {
	stats := PeriodStats{
		TotalEarnings:    decimal.Zero,
		TotalCommission:  decimal.Zero,
		TotalPayouts:     decimal.Zero,
		PendingPayout:    decimal.Zero,
		TotalRefunds:     decimal.Zero,
		RefundCommission: decimal.Zero,
		Period:           in.Window.Period.String(),
		DateRange:        DateRange{StartDate: in.Window.Start, EndDate: in.Window.End},
	}

	ordersByID := make(map[uuid.UUID]models.Order, len(in.Orders))
	var transactions []Transaction

	for _, order := range in.Orders {
		ordersByID[order.ID] = order

		items, sellerTotal := VendorItems(order, in.Seller.ID)
		if len(items) == 0 {
			continue
		}

		if order.Status == enums.OrderStatusDelivered {
			stats.TotalSales++
			stats.TotalEarnings = stats.TotalEarnings.Add(sellerTotal)
			stats.TotalCommission = stats.TotalCommission.Add(in.Rates.Commission(sellerTotal))
			stats.TotalPayouts = stats.TotalPayouts.Add(in.Rates.Payout(sellerTotal))
		} else {
			stats.PendingPayout = stats.PendingPayout.Add(in.Rates.Payout(sellerTotal))
		}

		transactions = append(transactions, Transaction{
			OrderID:     order.ID.String(),
			Type:        enums.TransactionTypeSale,
			Amount:      sellerTotal,
			Commission:  in.Rates.Commission(sellerTotal),
			Status:      order.Status.String(),
			Date:        order.CreatedAt,
			Description: saleDescription(order, items),
		})
	}

	for _, refund := range in.Refunds {
		order, ok := ordersByID[refund.OrderID]
		if !ok {
			continue
		}

		items, _ := VendorItems(order, in.Seller.ID)
		if len(items) == 0 {
			continue
		}

		// A zero allocation (zero-total order or zero refund amount) still
		// produces a transaction row for visibility; it just nets nothing.
		alloc := in.Rates.AllocateRefund(order, refund, in.Seller.ID)

		stats.TotalRefunds = stats.TotalRefunds.Add(alloc.SellerRefundAmount)
		stats.RefundCommission = stats.RefundCommission.Add(alloc.CommissionRefund)

		switch {
		case refund.Status.Settled():
			stats.TotalPayouts = stats.TotalPayouts.Sub(alloc.SellerRefundAmount)
		case refund.Status == enums.RefundStatusPending:
			stats.PendingPayout = stats.PendingPayout.Sub(alloc.SellerRefundAmount)
		}

		transactions = append(transactions, Transaction{
			OrderID:     order.ID.String(),
			Type:        enums.TransactionTypeRefund,
			Amount:      alloc.SellerRefundAmount,
			Commission:  alloc.CommissionRefund,
			Status:      refund.Status.String(),
			Date:        refund.CreatedAt,
			Description: refundDescription(order, refund),
		})
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	summary := summarize(transactions)

	if len(transactions) > maxStatementTransactions {
		transactions = transactions[:maxStatementTransactions]
	}
	if transactions == nil {
		transactions = []Transaction{}
	}

	stats.NetEarnings = stats.TotalEarnings.Sub(stats.TotalRefunds)
	stats.NetPayouts = stats.TotalPayouts
	stats.LastPayoutDate, stats.NextPayoutDate = payoutDates(in.Now)

	return SellerStatement{
		PeriodStats:   stats,
		Transactions:  transactions,
		SummaryByType: summary,
		Seller: SellerInfo{
			ID:           in.Seller.ID.String(),
			Name:         in.Seller.Name,
			Email:        in.Seller.Email,
			BusinessName: in.Seller.BusinessName,
		},
	}
}

func summarize(transactions []Transaction) TransactionSummary {
	summary := TransactionSummary{TotalTransactionValue: decimal.Zero}
	for _, txn := range transactions {
		switch txn.Type {
		case enums.TransactionTypeSale:
			summary.Sales++
		case enums.TransactionTypeRefund:
			summary.Refunds++
		}
		summary.TotalTransactionValue = summary.TotalTransactionValue.Add(txn.Amount)
	}
	return summary
}

// payoutDates returns the monthly payout anchors around now: last day of the
// previous month and last day of the current month.
func payoutDates(now time.Time) (last, next time.Time) {
	now = now.UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last = firstOfMonth.AddDate(0, 0, -1)
	next = firstOfMonth.AddDate(0, 1, -1)
	return last, next
}

func saleDescription(order models.Order, items []models.OrderItem) string {
	units := 0
	for _, item := range items {
		units += item.Quantity
	}
	return fmt.Sprintf("Sale of %d unit(s) across %d item(s) in order %s", units, len(items), shortID(order.ID))
}

func refundDescription(order models.Order, refund models.Refund) string {
	if refund.Reason != "" {
		return fmt.Sprintf("Refund on order %s: %s", shortID(order.ID), refund.Reason)
	}
	return fmt.Sprintf("Refund on order %s", shortID(order.ID))
}

func shortID(id uuid.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
