package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/ssemujju/sokoyetu-backend/internal/orders"
	"github.com/ssemujju/sokoyetu-backend/internal/refunds"
	"github.com/ssemujju/sokoyetu-backend/pkg/db"
	"github.com/ssemujju/sokoyetu-backend/pkg/db/models"
	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
	pkgerrors "github.com/ssemujju/sokoyetu-backend/pkg/errors"
	"github.com/ssemujju/sokoyetu-backend/pkg/logger"
)

// OrdersReader is the order data accessor consumed by the statement service.
type OrdersReader interface {
	FindOrders(ctx context.Context, filters orders.Filters) ([]models.Order, error)
	CountOrders(ctx context.Context, filters orders.Filters) (int64, error)
	SumOrderTotals(ctx context.Context, filters orders.Filters) (decimal.Decimal, error)
}

// SellersReader resolves sellers and platform-wide user counts.
type SellersReader interface {
	FindSeller(ctx context.Context, sellerID uuid.UUID) (*models.User, error)
	FindSellers(ctx context.Context) ([]models.User, error)
	CountUsersByRole(ctx context.Context, role enums.UserRole) (int64, error)
}

// RefundsReader loads refunds for netting and platform totals.
type RefundsReader interface {
	FindRefundsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID, filters refunds.Filters) ([]models.Refund, error)
	FindRefunds(ctx context.Context, filters refunds.Filters) ([]models.Refund, error)
	SumRefundAmounts(ctx context.Context, statuses []enums.RefundStatus) (decimal.Decimal, error)
	CountRefundsByStatus(ctx context.Context, status enums.RefundStatus) (int64, error)
}

// ProductsReader counts the catalog for admin KPIs.
type ProductsReader interface {
	CountProducts(ctx context.Context, activeOnly bool) (int64, error)
}

// Service computes financial statements and platform aggregates.
type Service interface {
	SellerStatement(ctx context.Context, sellerID uuid.UUID, window Window) (*SellerStatement, error)
	PlatformFinancials(ctx context.Context, window Window) (*PlatformFinancials, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
}

// ServiceParams bundle the service dependencies.
type ServiceParams struct {
	Orders   OrdersReader
	Sellers  SellersReader
	Refunds  RefundsReader
	Products ProductsReader
	Rates    Rates
	Logger   *logger.Logger
}

type service struct {
	orders   OrdersReader
	sellers  SellersReader
	refunds  RefundsReader
	products ProductsReader
	rates    Rates
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds a finance service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Orders == nil {
		return nil, fmt.Errorf("orders reader required")
	}
	if params.Sellers == nil {
		return nil, fmt.Errorf("sellers reader required")
	}
	if params.Refunds == nil {
		return nil, fmt.Errorf("refunds reader required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("products reader required")
	}
	if params.Rates.SellerPayout.IsZero() {
		return nil, fmt.Errorf("rates required")
	}
	return &service{
		orders:   params.Orders,
		sellers:  params.Sellers,
		refunds:  params.Refunds,
		products: params.Products,
		rates:    params.Rates,
		logg:     params.Logger,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// SellerStatement builds one seller's statement. Unlike the admin aggregates
// there is no per-metric isolation here: any persistence failure aborts the
// whole request.
func (s *service) SellerStatement(ctx context.Context, sellerID uuid.UUID, window Window) (*SellerStatement, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sellerId is required")
	}

	seller, err := s.sellers.FindSeller(ctx, sellerID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load seller")
	}
	if seller.Role != enums.UserRoleSeller {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
	}

	sellerOrders, err := s.orders.FindOrders(ctx, orders.Filters{
		VendorID:        &sellerID,
		ExcludeStatuses: []enums.OrderStatus{enums.OrderStatusCancelled},
		CreatedFrom:     &window.Start,
		CreatedTo:       &window.End,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load seller orders")
	}

	orderIDs := make([]uuid.UUID, 0, len(sellerOrders))
	for _, order := range sellerOrders {
		orderIDs = append(orderIDs, order.ID)
	}

	orderRefunds, err := s.refunds.FindRefundsByOrderIDs(ctx, orderIDs, refunds.Filters{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load refunds")
	}

	statement := BuildSellerStatement(StatementInput{
		Seller:  *seller,
		Orders:  sellerOrders,
		Refunds: orderRefunds,
		Window:  window,
		Now:     s.now(),
		Rates:   s.rates,
	})
	return &statement, nil
}

// PlatformFinancials builds the admin-financials payload. Each upstream read
// is isolated: a failed query logs and contributes an empty slice, and the
// handler still responds 200 with the best-effort aggregate.
func (s *service) PlatformFinancials(ctx context.Context, window Window) (*PlatformFinancials, error) {
	var errs error

	sellers, err := s.sellers.FindSellers(ctx)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("find sellers: %w", err))
		sellers = nil
	}

	// The monthly series always covers the trailing twelve calendar months,
	// so the fetch range is the union of that span and the requested window.
	// The window-scoped subset drives the metrics and per-seller rows.
	now := s.now()
	fetchFrom := window.Start
	if seriesStart := MonthlySeriesStart(now); seriesStart.Before(fetchFrom) {
		fetchFrom = seriesStart
	}
	fetchTo := window.End
	if now.After(fetchTo) {
		fetchTo = now
	}

	trailingOrders, err := s.orders.FindOrders(ctx, orders.Filters{
		ExcludeStatuses: []enums.OrderStatus{enums.OrderStatusCancelled},
		CreatedFrom:     &fetchFrom,
		CreatedTo:       &fetchTo,
	})
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("find orders: %w", err))
		trailingOrders = nil
	}

	windowOrders := make([]models.Order, 0, len(trailingOrders))
	orderIDs := make([]uuid.UUID, 0, len(trailingOrders))
	for _, order := range trailingOrders {
		if !window.Contains(order.CreatedAt) {
			continue
		}
		windowOrders = append(windowOrders, order)
		orderIDs = append(orderIDs, order.ID)
	}

	allRefunds, err := s.refunds.FindRefundsByOrderIDs(ctx, orderIDs, refunds.Filters{})
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("find refunds: %w", err))
		allRefunds = nil
	}

	if errs != nil && s.logg != nil {
		s.logg.Error(ctx, "platform financials degraded", errs)
	}

	result := BuildPlatformFinancials(PlatformInput{
		Sellers:        sellers,
		Orders:         windowOrders,
		TrailingOrders: trailingOrders,
		Refunds:        allRefunds,
		Window:         window,
		Now:            now,
		Rates:          s.rates,
	})
	return &result, nil
}

// AdminStats gathers the dashboard KPI counters. The counts and sums are
// independent reads, so they fan out concurrently; each metric that fails is
// logged and reported as zero without failing the snapshot.
func (s *service) AdminStats(ctx context.Context) (*AdminStats, error) {
	stats := AdminStats{
		TotalRevenue:     decimal.Zero,
		CommissionEarned: decimal.Zero,
		TotalRefunds:     decimal.Zero,
	}

	statusCounts := map[enums.OrderStatus]*int{
		enums.OrderStatusPending:    &stats.PendingOrders,
		enums.OrderStatusProcessing: &stats.ProcessingOrders,
		enums.OrderStatusShipped:    &stats.ShippedOrders,
		enums.OrderStatusDelivered:  &stats.DeliveredOrders,
		enums.OrderStatusCancelled:  &stats.CancelledOrders,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats.TotalOrders = int(s.metricCount(gctx, "total_orders", func(ctx context.Context) (int64, error) {
			return s.orders.CountOrders(ctx, orders.Filters{})
		}))
		return nil
	})

	for status, target := range statusCounts {
		status, target := status, target
		g.Go(func() error {
			*target = int(s.metricCount(gctx, "orders_"+string(status), func(ctx context.Context) (int64, error) {
				return s.orders.CountOrders(ctx, orders.Filters{Statuses: []enums.OrderStatus{status}})
			}))
			return nil
		})
	}

	g.Go(func() error {
		stats.TotalRevenue = s.metricSum(gctx, "total_revenue", func(ctx context.Context) (decimal.Decimal, error) {
			return s.orders.SumOrderTotals(ctx, orders.Filters{Statuses: []enums.OrderStatus{enums.OrderStatusDelivered}})
		})
		return nil
	})

	g.Go(func() error {
		stats.TotalSellers = int(s.metricCount(gctx, "total_sellers", func(ctx context.Context) (int64, error) {
			return s.sellers.CountUsersByRole(ctx, enums.UserRoleSeller)
		}))
		return nil
	})

	g.Go(func() error {
		stats.TotalCustomers = int(s.metricCount(gctx, "total_customers", func(ctx context.Context) (int64, error) {
			return s.sellers.CountUsersByRole(ctx, enums.UserRoleCustomer)
		}))
		return nil
	})

	g.Go(func() error {
		stats.TotalProducts = int(s.metricCount(gctx, "total_products", func(ctx context.Context) (int64, error) {
			return s.products.CountProducts(ctx, false)
		}))
		return nil
	})

	g.Go(func() error {
		stats.TotalRefunds = s.metricSum(gctx, "total_refunds", func(ctx context.Context) (decimal.Decimal, error) {
			return s.refunds.SumRefundAmounts(ctx, []enums.RefundStatus{
				enums.RefundStatusApproved,
				enums.RefundStatusProcessed,
			})
		})
		return nil
	})

	g.Go(func() error {
		stats.PendingRefunds = int(s.metricCount(gctx, "pending_refunds", func(ctx context.Context) (int64, error) {
			return s.refunds.CountRefundsByStatus(ctx, enums.RefundStatusPending)
		}))
		return nil
	})

	_ = g.Wait()

	stats.CommissionEarned = s.rates.AdminCommission(stats.TotalRevenue)
	return &stats, nil
}

// metricCount runs one isolated count query, defaulting to zero on failure.
func (s *service) metricCount(ctx context.Context, name string, fetch func(ctx context.Context) (int64, error)) int64 {
	value, err := fetch(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithField(ctx, "metric", name), "metric query failed", err)
		}
		return 0
	}
	return value
}

// metricSum runs one isolated sum query, defaulting to zero on failure.
func (s *service) metricSum(ctx context.Context, name string, fetch func(ctx context.Context) (decimal.Decimal, error)) decimal.Decimal {
	value, err := fetch(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithField(ctx, "metric", name), "metric query failed", err)
		}
		return decimal.Zero
	}
	return value
}
