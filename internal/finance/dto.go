package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
)

// DateRange echoes the resolved statement window back to the dashboard.
type DateRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Transaction is one presentational statement row: a (order, vendor) sale or
// a vendor refund share. Constructed fresh on every request, never persisted.
type Transaction struct {
	OrderID     string                `json:"orderId"`
	Type        enums.TransactionType `json:"type"`
	Amount      decimal.Decimal       `json:"amount"`
	Commission  decimal.Decimal       `json:"commission"`
	Status      string                `json:"status"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
}

// PeriodStats aggregates a seller's financial position over a window.
// TotalPayouts is already net of settled refunds; PendingPayout is net of
// pending refunds.
type PeriodStats struct {
	TotalSales       int             `json:"totalSales"`
	TotalEarnings    decimal.Decimal `json:"totalEarnings"`
	TotalCommission  decimal.Decimal `json:"totalCommission"`
	TotalPayouts     decimal.Decimal `json:"totalPayouts"`
	PendingPayout    decimal.Decimal `json:"pendingPayout"`
	TotalRefunds     decimal.Decimal `json:"totalRefunds"`
	RefundCommission decimal.Decimal `json:"refundCommission"`
	NetEarnings      decimal.Decimal `json:"netEarnings"`
	NetPayouts       decimal.Decimal `json:"netPayouts"`
	LastPayoutDate   time.Time       `json:"lastPayoutDate"`
	NextPayoutDate   time.Time       `json:"nextPayoutDate"`
	Period           string          `json:"period"`
	DateRange        DateRange       `json:"dateRange"`
}

// TransactionSummary counts the statement rows by type.
type TransactionSummary struct {
	Sales                 int             `json:"sales"`
	Refunds               int             `json:"refunds"`
	TotalTransactionValue decimal.Decimal `json:"totalTransactionValue"`
}

// SellerInfo identifies the statement's seller.
type SellerInfo struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	BusinessName *string `json:"businessName,omitempty"`
}

// SellerStatement is the full seller-statements response payload.
type SellerStatement struct {
	PeriodStats   PeriodStats        `json:"periodStats"`
	Transactions  []Transaction      `json:"transactions"`
	SummaryByType TransactionSummary `json:"summaryByType"`
	Seller        SellerInfo         `json:"seller"`
}

// SellerFinancial is one row of the platform-wide per-seller breakdown.
type SellerFinancial struct {
	SellerID        string          `json:"sellerId"`
	Name            string          `json:"name"`
	BusinessName    *string         `json:"businessName,omitempty"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	TotalPayout     decimal.Decimal `json:"totalPayout"`
	PendingPayout   decimal.Decimal `json:"pendingPayout"`
	TotalRefunds    decimal.Decimal `json:"totalRefunds"`
	OrderCount      int             `json:"orderCount"`
}

// MonthlyEntry is one calendar month of the trailing revenue series.
type MonthlyEntry struct {
	Month         string          `json:"month"`
	Orders        int             `json:"orders"`
	Revenue       decimal.Decimal `json:"revenue"`
	Commission    decimal.Decimal `json:"commission"`
	SellerPayouts decimal.Decimal `json:"sellerPayouts"`
	VAT           decimal.Decimal `json:"vat"`
}

// PlatformMetrics are the platform-wide totals computed once over all
// delivered orders' full amounts, so orders spanning several vendors are
// never double counted.
type PlatformMetrics struct {
	TotalOrders         int             `json:"totalOrders"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	RevenueExcludingVAT decimal.Decimal `json:"revenueExcludingVat"`
	TotalVAT            decimal.Decimal `json:"totalVat"`
	TotalCommission     decimal.Decimal `json:"totalCommission"`
	TotalSellerPayouts  decimal.Decimal `json:"totalSellerPayouts"`
	TotalRefunds        decimal.Decimal `json:"totalRefunds"`
	ActiveSellers       int             `json:"activeSellers"`
}

// PlatformFinancials is the admin-financials response payload.
type PlatformFinancials struct {
	PlatformMetrics    PlatformMetrics   `json:"platformMetrics"`
	MonthlySales       []MonthlyEntry    `json:"monthlySales"`
	SellerFinancials   []SellerFinancial `json:"sellerFinancials"`
	RecentTransactions []Transaction     `json:"recentTransactions"`
	TopSellers         []SellerFinancial `json:"topSellers"`
}

// AdminStats is the admin dashboard KPI snapshot. CommissionEarned uses the
// admin-stats display rate, not the seller-statement rate.
type AdminStats struct {
	TotalOrders      int             `json:"totalOrders"`
	PendingOrders    int             `json:"pendingOrders"`
	ProcessingOrders int             `json:"processingOrders"`
	ShippedOrders    int             `json:"shippedOrders"`
	DeliveredOrders  int             `json:"deliveredOrders"`
	CancelledOrders  int             `json:"cancelledOrders"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	CommissionEarned decimal.Decimal `json:"commissionEarned"`
	TotalSellers     int             `json:"totalSellers"`
	TotalCustomers   int             `json:"totalCustomers"`
	TotalProducts    int             `json:"totalProducts"`
	TotalRefunds     decimal.Decimal `json:"totalRefunds"`
	PendingRefunds   int             `json:"pendingRefunds"`
}
