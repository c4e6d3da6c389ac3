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

const (
	monthlySeriesLength    = 12
	maxRecentTransactions  = 20
	maxTopSellers          = 10
	monthlySeriesKeyFormat = "2006-01"
)

// PlatformInput carries everything the platform financials builder needs.
// Orders are all non-cancelled orders within the window with Items.Product
// preloaded; Refunds reference those orders; Sellers are all SELLER users.
// TrailingOrders additionally covers the trailing twelve calendar months for
// the monthly series, which reports the same range no matter how narrow the
// requested window is; when nil, Orders is used.
type PlatformInput struct {
	Sellers        []models.User
	Orders         []models.Order
	TrailingOrders []models.Order
	Refunds        []models.Refund
	Window         Window
	Now            time.Time
	Rates          Rates
}

// BuildPlatformFinancials computes the admin-financials payload. Per-seller
// rows run the statement math against each seller's item subset; the platform
// totals are computed once over full delivered-order amounts so multi-vendor
// orders are not double counted.
func BuildPlatformFinancials(in PlatformInput) PlatformFinancials {
	refundsByOrder := make(map[uuid.UUID][]models.Refund, len(in.Refunds))
	for _, refund := range in.Refunds {
		refundsByOrder[refund.OrderID] = append(refundsByOrder[refund.OrderID], refund)
	}

	ordersByVendor := make(map[uuid.UUID][]models.Order)
	refundsByVendor := make(map[uuid.UUID][]models.Refund)
	for _, order := range in.Orders {
		for _, vendorID := range VendorIDs(order) {
			ordersByVendor[vendorID] = append(ordersByVendor[vendorID], order)
			refundsByVendor[vendorID] = append(refundsByVendor[vendorID], refundsByOrder[order.ID]...)
		}
	}

	sellerFinancials := make([]SellerFinancial, 0, len(in.Sellers))
	for _, seller := range in.Sellers {
		sellerOrders := ordersByVendor[seller.ID]
		if len(sellerOrders) == 0 {
			continue
		}
		sellerRefunds := refundsByVendor[seller.ID]

		statement := BuildSellerStatement(StatementInput{
			Seller:  seller,
			Orders:  sellerOrders,
			Refunds: sellerRefunds,
			Window:  in.Window,
			Now:     in.Now,
			Rates:   in.Rates,
		})

		stats := statement.PeriodStats
		sellerFinancials = append(sellerFinancials, SellerFinancial{
			SellerID:        seller.ID.String(),
			Name:            seller.Name,
			BusinessName:    seller.BusinessName,
			TotalRevenue:    stats.TotalEarnings,
			TotalCommission: stats.TotalCommission,
			TotalPayout:     stats.TotalPayouts,
			PendingPayout:   stats.PendingPayout,
			TotalRefunds:    stats.TotalRefunds,
			OrderCount:      stats.TotalSales,
		})
	}

	sort.SliceStable(sellerFinancials, func(i, j int) bool {
		return sellerFinancials[i].TotalRevenue.GreaterThan(sellerFinancials[j].TotalRevenue)
	})

	topSellers := sellerFinancials
	if len(topSellers) > maxTopSellers {
		topSellers = topSellers[:maxTopSellers]
	}

	seriesOrders := in.TrailingOrders
	if seriesOrders == nil {
		seriesOrders = in.Orders
	}

	return PlatformFinancials{
		PlatformMetrics:    platformMetrics(in, sellerFinancials),
		MonthlySales:       monthlySeries(seriesOrders, in.Now, in.Rates),
		SellerFinancials:   sellerFinancials,
		RecentTransactions: recentTransactions(in.Orders, in.Rates),
		TopSellers:         topSellers,
	}
}

func platformMetrics(in PlatformInput, sellerFinancials []SellerFinancial) PlatformMetrics {
	metrics := PlatformMetrics{
		TotalRevenue:        decimal.Zero,
		RevenueExcludingVAT: decimal.Zero,
		TotalVAT:            decimal.Zero,
		TotalCommission:     decimal.Zero,
		TotalSellerPayouts:  decimal.Zero,
		TotalRefunds:        decimal.Zero,
		ActiveSellers:       len(sellerFinancials),
	}

	for _, order := range in.Orders {
		if order.Status != enums.OrderStatusDelivered {
			continue
		}
		metrics.TotalOrders++
		metrics.TotalRevenue = metrics.TotalRevenue.Add(order.Total)
	}

	metrics.RevenueExcludingVAT = in.Rates.AmountExcludingVAT(metrics.TotalRevenue)
	metrics.TotalVAT = in.Rates.VATPortion(metrics.TotalRevenue)
	metrics.TotalCommission = in.Rates.Commission(metrics.TotalRevenue)
	metrics.TotalSellerPayouts = in.Rates.Payout(metrics.TotalRevenue)

	for _, refund := range in.Refunds {
		if !refund.Status.Settled() {
			continue
		}
		metrics.TotalRefunds = metrics.TotalRefunds.Add(refund.Amount)
	}

	return metrics
}

// MonthlySeriesStart returns the first day of the oldest month in the
// trailing series, eleven calendar months before the current one.
func MonthlySeriesStart(now time.Time) time.Time {
	now = now.UTC()
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfCurrent.AddDate(0, -(monthlySeriesLength - 1), 0)
}

// monthlySeries builds the trailing 12-calendar-month revenue series from
// delivered orders. Months with no delivered orders report zeros.
func monthlySeries(orders []models.Order, now time.Time, rates Rates) []MonthlyEntry {
	now = now.UTC()
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	entries := make([]MonthlyEntry, monthlySeriesLength)
	index := make(map[string]int, monthlySeriesLength)
	for i := 0; i < monthlySeriesLength; i++ {
		monthStart := firstOfCurrent.AddDate(0, i-(monthlySeriesLength-1), 0)
		key := monthStart.Format(monthlySeriesKeyFormat)
		entries[i] = MonthlyEntry{
			Month:         key,
			Revenue:       decimal.Zero,
			Commission:    decimal.Zero,
			SellerPayouts: decimal.Zero,
			VAT:           decimal.Zero,
		}
		index[key] = i
	}

	for _, order := range orders {
		if order.Status != enums.OrderStatusDelivered {
			continue
		}
		key := order.CreatedAt.UTC().Format(monthlySeriesKeyFormat)
		i, ok := index[key]
		if !ok {
			continue
		}
		entries[i].Orders++
		entries[i].Revenue = entries[i].Revenue.Add(order.Total)
		entries[i].Commission = entries[i].Commission.Add(rates.Commission(order.Total))
		entries[i].SellerPayouts = entries[i].SellerPayouts.Add(rates.Payout(order.Total))
		entries[i].VAT = entries[i].VAT.Add(rates.VATPortion(order.Total))
	}

	return entries
}

// recentTransactions lists the most recent delivered orders as raw sale rows.
func recentTransactions(orders []models.Order, rates Rates) []Transaction {
	var delivered []models.Order
	for _, order := range orders {
		if order.Status == enums.OrderStatusDelivered {
			delivered = append(delivered, order)
		}
	}
	sort.SliceStable(delivered, func(i, j int) bool {
		return delivered[i].CreatedAt.After(delivered[j].CreatedAt)
	})
	if len(delivered) > maxRecentTransactions {
		delivered = delivered[:maxRecentTransactions]
	}

	transactions := make([]Transaction, 0, len(delivered))
	for _, order := range delivered {
		transactions = append(transactions, Transaction{
			OrderID:     order.ID.String(),
			Type:        enums.TransactionTypeSale,
			Amount:      order.Total,
			Commission:  rates.Commission(order.Total),
			Status:      order.Status.String(),
			Date:        order.CreatedAt,
			Description: fmt.Sprintf("Order %s (%d item(s))", shortID(order.ID), len(order.Items)),
		})
	}
	return transactions
}
