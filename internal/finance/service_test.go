package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ssemujju/sokoyetu-backend/internal/orders"
	"github.com/ssemujju/sokoyetu-backend/internal/refunds"
	"github.com/ssemujju/sokoyetu-backend/pkg/db/models"
	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
	pkgerrors "github.com/ssemujju/sokoyetu-backend/pkg/errors"
)

type stubOrders struct {
	orders      []models.Order
	count       int64
	sum         decimal.Decimal
	findErr     error
	aggErr      error
	honorWindow bool
}

func (s *stubOrders) FindOrders(ctx context.Context, filters orders.Filters) ([]models.Order, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if !s.honorWindow {
		return s.orders, nil
	}
	var matched []models.Order
	for _, order := range s.orders {
		if filters.CreatedFrom != nil && order.CreatedAt.Before(*filters.CreatedFrom) {
			continue
		}
		if filters.CreatedTo != nil && order.CreatedAt.After(*filters.CreatedTo) {
			continue
		}
		matched = append(matched, order)
	}
	return matched, nil
}

func (s *stubOrders) CountOrders(ctx context.Context, filters orders.Filters) (int64, error) {
	if s.aggErr != nil {
		return 0, s.aggErr
	}
	return s.count, nil
}

func (s *stubOrders) SumOrderTotals(ctx context.Context, filters orders.Filters) (decimal.Decimal, error) {
	if s.aggErr != nil {
		return decimal.Zero, s.aggErr
	}
	return s.sum, nil
}

type stubSellers struct {
	seller  *models.User
	sellers []models.User
	count   int64
	findErr error
	listErr error
}

func (s *stubSellers) FindSeller(ctx context.Context, sellerID uuid.UUID) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.seller, nil
}

func (s *stubSellers) FindSellers(ctx context.Context) ([]models.User, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.sellers, nil
}

func (s *stubSellers) CountUsersByRole(ctx context.Context, role enums.UserRole) (int64, error) {
	return s.count, nil
}

type stubRefunds struct {
	refunds []models.Refund
	sum     decimal.Decimal
	count   int64
	findErr error
	sumErr  error
}

func (s *stubRefunds) FindRefundsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID, filters refunds.Filters) ([]models.Refund, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.refunds, nil
}

func (s *stubRefunds) FindRefunds(ctx context.Context, filters refunds.Filters) ([]models.Refund, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.refunds, nil
}

func (s *stubRefunds) SumRefundAmounts(ctx context.Context, statuses []enums.RefundStatus) (decimal.Decimal, error) {
	if s.sumErr != nil {
		return decimal.Zero, s.sumErr
	}
	return s.sum, nil
}

func (s *stubRefunds) CountRefundsByStatus(ctx context.Context, status enums.RefundStatus) (int64, error) {
	return s.count, nil
}

type stubProducts struct {
	count int64
	err   error
}

func (s *stubProducts) CountProducts(ctx context.Context, activeOnly bool) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.count, nil
}

func newTestService(t *testing.T, params ServiceParams) Service {
	t.Helper()
	if params.Orders == nil {
		params.Orders = &stubOrders{}
	}
	if params.Sellers == nil {
		params.Sellers = &stubSellers{}
	}
	if params.Refunds == nil {
		params.Refunds = &stubRefunds{}
	}
	if params.Products == nil {
		params.Products = &stubProducts{}
	}
	if params.Rates.SellerPayout.IsZero() {
		params.Rates = DefaultRates()
	}
	svc, err := NewService(params)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{Rates: DefaultRates()})
	assert.Error(t, err)
}

func TestSellerStatementRequiresSellerID(t *testing.T) {
	svc := newTestService(t, ServiceParams{})

	_, err := svc.SellerStatement(context.Background(), uuid.Nil, statementWindow())
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestSellerStatementUnknownSeller(t *testing.T) {
	svc := newTestService(t, ServiceParams{
		Sellers: &stubSellers{findErr: gorm.ErrRecordNotFound},
	})

	_, err := svc.SellerStatement(context.Background(), uuid.New(), statementWindow())
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestSellerStatementNonSellerRole(t *testing.T) {
	customer := testSeller("moses")
	customer.Role = enums.UserRoleCustomer

	svc := newTestService(t, ServiceParams{
		Sellers: &stubSellers{seller: &customer},
	})

	_, err := svc.SellerStatement(context.Background(), customer.ID, statementWindow())
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestSellerStatementRepositoryFailureAborts(t *testing.T) {
	seller := testSeller("sanyu")
	svc := newTestService(t, ServiceParams{
		Sellers: &stubSellers{seller: &seller},
		Orders:  &stubOrders{findErr: errors.New("connection reset")},
	})

	_, err := svc.SellerStatement(context.Background(), seller.ID, statementWindow())
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeInternal, appErr.Code())
}

func TestSellerStatementHappyPath(t *testing.T) {
	seller := testSeller("dembe")
	order := testOrder(enums.OrderStatusDelivered, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "118000", qty: 1},
	)
	refund := testRefund(order.ID, "59000", enums.RefundStatusApproved,
		time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC))

	svc := newTestService(t, ServiceParams{
		Sellers: &stubSellers{seller: &seller},
		Orders:  &stubOrders{orders: []models.Order{order}},
		Refunds: &stubRefunds{refunds: []models.Refund{refund}},
	})

	stmt, err := svc.SellerStatement(context.Background(), seller.ID, statementWindow())
	require.NoError(t, err)
	require.NotNil(t, stmt)

	assert.Equal(t, 1, stmt.PeriodStats.TotalSales)
	assert.True(t, stmt.PeriodStats.TotalEarnings.Equal(d("118000")))
	// 106200 payout minus the 53100 settled refund share.
	assert.True(t, stmt.PeriodStats.TotalPayouts.Equal(d("53100")))
	assert.Len(t, stmt.Transactions, 2)
}

func TestPlatformFinancialsDegradesInsteadOfFailing(t *testing.T) {
	svc := newTestService(t, ServiceParams{
		Sellers: &stubSellers{listErr: errors.New("sellers down")},
		Orders:  &stubOrders{findErr: errors.New("orders down")},
		Refunds: &stubRefunds{findErr: errors.New("refunds down")},
	})

	out, err := svc.PlatformFinancials(context.Background(), statementWindow())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 0, out.PlatformMetrics.TotalOrders)
	assert.Empty(t, out.SellerFinancials)
	assert.Len(t, out.MonthlySales, monthlySeriesLength)
}

func TestPlatformFinancialsHappyPath(t *testing.T) {
	seller := testSeller("kato")
	order := testOrder(enums.OrderStatusDelivered, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "100000", qty: 1},
	)

	svc := newTestService(t, ServiceParams{
		Sellers: &stubSellers{sellers: []models.User{seller}},
		Orders:  &stubOrders{orders: []models.Order{order}},
	})

	out, err := svc.PlatformFinancials(context.Background(), statementWindow())
	require.NoError(t, err)
	assert.Equal(t, 1, out.PlatformMetrics.TotalOrders)
	assert.True(t, out.PlatformMetrics.TotalRevenue.Equal(d("100000")))
	assert.Len(t, out.SellerFinancials, 1)
}

func TestPlatformFinancialsNarrowWindowKeepsTrailingSeries(t *testing.T) {
	seller := testSeller("namuli")
	now := time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC)
	window := Window{
		Start:  time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		End:    now,
		Period: enums.StatementPeriodMonth,
	}

	mayOrder := testOrder(enums.OrderStatusDelivered, time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "118000", qty: 1},
	)
	augustOrder := testOrder(enums.OrderStatusDelivered, time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "59000", qty: 1},
	)
	staleOrder := testOrder(enums.OrderStatusDelivered, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		lineSpec{vendorID: seller.ID, price: "77777", qty: 1},
	)

	svc := newTestService(t, ServiceParams{
		Sellers: &stubSellers{sellers: []models.User{seller}},
		Orders: &stubOrders{
			orders:      []models.Order{mayOrder, augustOrder, staleOrder},
			honorWindow: true,
		},
	})
	svc.(*service).now = func() time.Time { return now }

	out, err := svc.PlatformFinancials(context.Background(), window)
	require.NoError(t, err)

	// Metrics and seller rows stay window scoped.
	assert.Equal(t, 1, out.PlatformMetrics.TotalOrders)
	assert.True(t, out.PlatformMetrics.TotalRevenue.Equal(d("59000")))
	require.Len(t, out.SellerFinancials, 1)
	assert.True(t, out.SellerFinancials[0].TotalRevenue.Equal(d("59000")))

	// The series still reports the trailing twelve months.
	byMonth := make(map[string]MonthlyEntry, len(out.MonthlySales))
	for _, entry := range out.MonthlySales {
		byMonth[entry.Month] = entry
	}
	may, ok := byMonth["2026-05"]
	require.True(t, ok)
	assert.Equal(t, 1, may.Orders)
	assert.True(t, may.Revenue.Equal(d("118000")))
	august := byMonth["2026-08"]
	assert.True(t, august.Revenue.Equal(d("59000")))
	if _, ok := byMonth["2024-03"]; ok {
		t.Fatal("stale order must stay outside the series")
	}
}

func TestAdminStatsAggregates(t *testing.T) {
	svc := newTestService(t, ServiceParams{
		Orders:   &stubOrders{count: 7, sum: d("1000000")},
		Sellers:  &stubSellers{count: 4},
		Refunds:  &stubRefunds{sum: d("50000"), count: 2},
		Products: &stubProducts{count: 30},
	})

	stats, err := svc.AdminStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.Equal(d("1000000")))
	// 15% display rate, not the 10% statement rate.
	assert.True(t, stats.CommissionEarned.Equal(d("150000")))
	assert.Equal(t, 4, stats.TotalSellers)
	assert.Equal(t, 30, stats.TotalProducts)
	assert.True(t, stats.TotalRefunds.Equal(d("50000")))
	assert.Equal(t, 2, stats.PendingRefunds)
}

func TestAdminStatsIsolatesFailedMetrics(t *testing.T) {
	svc := newTestService(t, ServiceParams{
		Orders:   &stubOrders{aggErr: errors.New("orders db down")},
		Sellers:  &stubSellers{count: 4},
		Refunds:  &stubRefunds{sum: d("12000"), count: 1},
		Products: &stubProducts{err: errors.New("catalog down")},
	})

	stats, err := svc.AdminStats(context.Background())
	require.NoError(t, err)

	// Failed metrics report zero, healthy ones keep their values.
	assert.Equal(t, 0, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.True(t, stats.CommissionEarned.IsZero())
	assert.Equal(t, 0, stats.TotalProducts)
	assert.Equal(t, 4, stats.TotalSellers)
	assert.True(t, stats.TotalRefunds.Equal(d("12000")))
	assert.Equal(t, 1, stats.PendingRefunds)
}
