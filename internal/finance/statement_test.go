package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssemujju/sokoyetu-backend/pkg/db/models"
	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
)

func statementWindow() Window {
	return Window{
		Start:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		Period: enums.StatementPeriodAll,
	}
}

func TestBuildSellerStatementDeliveredOrder(t *testing.T) {
	seller := testSeller("amina")
	order := testOrder(enums.OrderStatusDelivered, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "118000", qty: 1},
	)

	stmt := BuildSellerStatement(StatementInput{
		Seller: seller,
		Orders: []models.Order{order},
		Window: statementWindow(),
		Now:    time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC),
		Rates:  DefaultRates(),
	})

	stats := stmt.PeriodStats
	if stats.TotalSales != 1 {
		t.Fatalf("totalSales: expected 1, got %d", stats.TotalSales)
	}
	if !stats.TotalEarnings.Equal(d("118000")) {
		t.Fatalf("totalEarnings: expected 118000, got %s", stats.TotalEarnings)
	}
	if !stats.TotalCommission.Equal(d("11800")) {
		t.Fatalf("totalCommission: expected 11800, got %s", stats.TotalCommission)
	}
	if !stats.TotalPayouts.Equal(d("106200")) {
		t.Fatalf("totalPayouts: expected 106200, got %s", stats.TotalPayouts)
	}
	if !stats.PendingPayout.IsZero() {
		t.Fatalf("pendingPayout: expected 0, got %s", stats.PendingPayout)
	}
	if !stats.NetEarnings.Equal(d("118000")) {
		t.Fatalf("netEarnings: expected 118000, got %s", stats.NetEarnings)
	}
	if len(stmt.Transactions) != 1 {
		t.Fatalf("expected one transaction, got %d", len(stmt.Transactions))
	}
	if stmt.Transactions[0].Type != enums.TransactionTypeSale {
		t.Fatalf("expected sale row, got %s", stmt.Transactions[0].Type)
	}
}

func TestBuildSellerStatementPendingOrder(t *testing.T) {
	seller := testSeller("okello")
	order := testOrder(enums.OrderStatusPending, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "118000", qty: 1},
	)

	stmt := BuildSellerStatement(StatementInput{
		Seller: seller,
		Orders: []models.Order{order},
		Window: statementWindow(),
		Now:    time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC),
		Rates:  DefaultRates(),
	})

	stats := stmt.PeriodStats
	if stats.TotalSales != 0 {
		t.Fatalf("totalSales: expected 0 for pending order, got %d", stats.TotalSales)
	}
	if !stats.TotalEarnings.IsZero() || !stats.TotalPayouts.IsZero() {
		t.Fatalf("pending order must not credit realized totals, got earnings=%s payouts=%s",
			stats.TotalEarnings, stats.TotalPayouts)
	}
	if !stats.PendingPayout.Equal(d("106200")) {
		t.Fatalf("pendingPayout: expected 106200, got %s", stats.PendingPayout)
	}
	if len(stmt.Transactions) != 1 {
		t.Fatalf("expected the pending sale as a transaction row, got %d", len(stmt.Transactions))
	}
}

func TestBuildSellerStatementSettledRefundNetsPayouts(t *testing.T) {
	seller := testSeller("nakato")
	order := testOrder(enums.OrderStatusDelivered, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "100000", qty: 1},
	)
	refund := testRefund(order.ID, "50000", enums.RefundStatusApproved,
		time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC))

	stmt := BuildSellerStatement(StatementInput{
		Seller:  seller,
		Orders:  []models.Order{order},
		Refunds: []models.Refund{refund},
		Window:  statementWindow(),
		Now:     time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC),
		Rates:   DefaultRates(),
	})

	stats := stmt.PeriodStats
	// payout 90000 minus the 45000 settled refund share.
	if !stats.TotalPayouts.Equal(d("45000")) {
		t.Fatalf("totalPayouts: expected 45000, got %s", stats.TotalPayouts)
	}
	if !stats.TotalRefunds.Equal(d("45000")) {
		t.Fatalf("totalRefunds: expected 45000, got %s", stats.TotalRefunds)
	}
	if !stats.RefundCommission.Equal(d("5000")) {
		t.Fatalf("refundCommission: expected 5000, got %s", stats.RefundCommission)
	}
	if !stats.NetEarnings.Equal(d("55000")) {
		t.Fatalf("netEarnings: expected 55000, got %s", stats.NetEarnings)
	}
	if !stats.PendingPayout.IsZero() {
		t.Fatalf("settled refund must not touch pendingPayout, got %s", stats.PendingPayout)
	}
}

func TestBuildSellerStatementPendingRefundNetsPendingPayout(t *testing.T) {
	seller := testSeller("kirabo")
	order := testOrder(enums.OrderStatusShipped, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "100000", qty: 1},
	)
	refund := testRefund(order.ID, "20000", enums.RefundStatusPending,
		time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC))

	stmt := BuildSellerStatement(StatementInput{
		Seller:  seller,
		Orders:  []models.Order{order},
		Refunds: []models.Refund{refund},
		Window:  statementWindow(),
		Now:     time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC),
		Rates:   DefaultRates(),
	})

	stats := stmt.PeriodStats
	// pending payout 90000 minus the 18000 pending refund share.
	if !stats.PendingPayout.Equal(d("72000")) {
		t.Fatalf("pendingPayout: expected 72000, got %s", stats.PendingPayout)
	}
	if !stats.TotalPayouts.IsZero() {
		t.Fatalf("pending refund must not touch totalPayouts, got %s", stats.TotalPayouts)
	}
	if !stats.TotalRefunds.Equal(d("18000")) {
		t.Fatalf("totalRefunds: expected 18000, got %s", stats.TotalRefunds)
	}
}

func TestBuildSellerStatementRejectedRefundRecordOnly(t *testing.T) {
	seller := testSeller("mugisha")
	order := testOrder(enums.OrderStatusDelivered, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "100000", qty: 1},
	)
	refund := testRefund(order.ID, "100000", enums.RefundStatusRejected,
		time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC))

	stmt := BuildSellerStatement(StatementInput{
		Seller:  seller,
		Orders:  []models.Order{order},
		Refunds: []models.Refund{refund},
		Window:  statementWindow(),
		Now:     time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC),
		Rates:   DefaultRates(),
	})

	stats := stmt.PeriodStats
	if !stats.TotalPayouts.Equal(d("90000")) {
		t.Fatalf("rejected refund must not net payouts, got %s", stats.TotalPayouts)
	}
	if !stats.TotalRefunds.Equal(d("90000")) {
		t.Fatalf("rejected refund still recorded in totals, got %s", stats.TotalRefunds)
	}
	if stmt.SummaryByType.Refunds != 1 {
		t.Fatalf("rejected refund still appears as a row, got %d", stmt.SummaryByType.Refunds)
	}
}

func TestBuildSellerStatementMultiVendorOrderAttributesOnlyOwnItems(t *testing.T) {
	seller := testSeller("babirye")
	other := testSeller("wasswa")
	order := testOrder(enums.OrderStatusDelivered, time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "60000", qty: 1},
		lineSpec{vendorID: other.ID, price: "40000", qty: 1},
	)

	stmt := BuildSellerStatement(StatementInput{
		Seller: seller,
		Orders: []models.Order{order},
		Window: statementWindow(),
		Now:    time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC),
		Rates:  DefaultRates(),
	})

	if !stmt.PeriodStats.TotalEarnings.Equal(d("60000")) {
		t.Fatalf("expected only own items attributed (60000), got %s", stmt.PeriodStats.TotalEarnings)
	}
	if !stmt.PeriodStats.TotalPayouts.Equal(d("54000")) {
		t.Fatalf("totalPayouts: expected 54000, got %s", stmt.PeriodStats.TotalPayouts)
	}
}

func TestBuildSellerStatementOrderWithoutSellerItemsSkipped(t *testing.T) {
	seller := testSeller("achan")
	order := testOrder(enums.OrderStatusDelivered, time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: testSeller("other").ID, price: "40000", qty: 1},
	)

	stmt := BuildSellerStatement(StatementInput{
		Seller: seller,
		Orders: []models.Order{order},
		Window: statementWindow(),
		Now:    time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC),
		Rates:  DefaultRates(),
	})

	if len(stmt.Transactions) != 0 {
		t.Fatalf("order with no seller items must produce no rows, got %d", len(stmt.Transactions))
	}
	if stmt.Transactions == nil {
		t.Fatal("transactions must be an empty slice, not nil")
	}
}

func TestBuildSellerStatementZeroTotalRefundRecordedWithoutNetting(t *testing.T) {
	seller := testSeller("apio")
	order := testOrder(enums.OrderStatusDelivered, time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "0", qty: 1},
	)
	refund := testRefund(order.ID, "25000", enums.RefundStatusApproved,
		time.Date(2026, time.May, 9, 0, 0, 0, 0, time.UTC))

	stmt := BuildSellerStatement(StatementInput{
		Seller:  seller,
		Orders:  []models.Order{order},
		Refunds: []models.Refund{refund},
		Window:  statementWindow(),
		Now:     time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC),
		Rates:   DefaultRates(),
	})

	if len(stmt.Transactions) != 2 {
		t.Fatalf("expected sale and refund rows on a zero-total order, got %d", len(stmt.Transactions))
	}
	var refundRow *Transaction
	for i := range stmt.Transactions {
		if stmt.Transactions[i].Type == enums.TransactionTypeRefund {
			refundRow = &stmt.Transactions[i]
		}
	}
	if refundRow == nil {
		t.Fatal("refund on zero-total order must still be recorded")
	}
	if !refundRow.Amount.IsZero() || !refundRow.Commission.IsZero() {
		t.Fatalf("zero-total order must not net anything, got amount=%s commission=%s",
			refundRow.Amount, refundRow.Commission)
	}

	stats := stmt.PeriodStats
	if !stats.TotalRefunds.IsZero() || !stats.RefundCommission.IsZero() {
		t.Fatalf("refund totals must stay zero, got refunds=%s commission=%s",
			stats.TotalRefunds, stats.RefundCommission)
	}
	if !stats.TotalPayouts.IsZero() || !stats.PendingPayout.IsZero() {
		t.Fatalf("payouts must stay zero, got payouts=%s pending=%s",
			stats.TotalPayouts, stats.PendingPayout)
	}
}

func TestBuildSellerStatementSortsAndCapsTransactions(t *testing.T) {
	seller := testSeller("adong")
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	var orders []models.Order
	for i := 0; i < maxStatementTransactions+20; i++ {
		orders = append(orders, testOrder(enums.OrderStatusDelivered, base.AddDate(0, 0, i),
			lineSpec{vendorID: seller.ID, price: "1000", qty: 1},
		))
	}

	stmt := BuildSellerStatement(StatementInput{
		Seller: seller,
		Orders: orders,
		Window: statementWindow(),
		Now:    time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC),
		Rates:  DefaultRates(),
	})

	if len(stmt.Transactions) != maxStatementTransactions {
		t.Fatalf("expected cap at %d, got %d", maxStatementTransactions, len(stmt.Transactions))
	}
	for i := 1; i < len(stmt.Transactions); i++ {
		if stmt.Transactions[i].Date.After(stmt.Transactions[i-1].Date) {
			t.Fatalf("transactions out of order at index %d", i)
		}
	}
	// Summary covers all rows, not just the capped page.
	if stmt.SummaryByType.Sales != maxStatementTransactions+20 {
		t.Fatalf("summary must count all rows, got %d", stmt.SummaryByType.Sales)
	}
	if !stmt.SummaryByType.TotalTransactionValue.Equal(decimal.NewFromInt(int64(maxStatementTransactions+20) * 1000)) {
		t.Fatalf("unexpected summary value %s", stmt.SummaryByType.TotalTransactionValue)
	}
}

func TestBuildSellerStatementIdempotent(t *testing.T) {
	seller := testSeller("apio")
	order := testOrder(enums.OrderStatusDelivered, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "59000", qty: 2},
	)
	refund := testRefund(order.ID, "10000", enums.RefundStatusProcessed,
		time.Date(2026, time.June, 4, 0, 0, 0, 0, time.UTC))

	in := StatementInput{
		Seller:  seller,
		Orders:  []models.Order{order},
		Refunds: []models.Refund{refund},
		Window:  statementWindow(),
		Now:     time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC),
		Rates:   DefaultRates(),
	}

	first := BuildSellerStatement(in)
	second := BuildSellerStatement(in)
	if !first.PeriodStats.TotalPayouts.Equal(second.PeriodStats.TotalPayouts) ||
		!first.PeriodStats.TotalRefunds.Equal(second.PeriodStats.TotalRefunds) ||
		len(first.Transactions) != len(second.Transactions) {
		t.Fatal("identical inputs must produce identical statements")
	}
}

func TestPayoutDates(t *testing.T) {
	now := time.Date(2026, time.August, 18, 10, 0, 0, 0, time.UTC)
	last, next := payoutDates(now)
	if !last.Equal(time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("last payout: expected 2026-07-31, got %s", last)
	}
	if !next.Equal(time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("next payout: expected 2026-08-31, got %s", next)
	}
}
