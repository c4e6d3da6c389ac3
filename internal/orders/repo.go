package orders

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ssemujju/sokoyetu-backend/pkg/db/models"
)

// Repository defines the read surface over the orders tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindOrders(ctx context.Context, filters Filters) ([]models.Order, error)
	CountOrders(ctx context.Context, filters Filters) (int64, error)
	SumOrderTotals(ctx context.Context, filters Filters) (decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindOrders(ctx context.Context, filters Filters) ([]models.Order, error) {
	var results []models.Order
	err := r.applyFilters(r.db.WithContext(ctx).Model(&models.Order{}), filters).
		Preload("Items").
		Preload("Items.Product").
		Preload("Customer").
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repository) CountOrders(ctx context.Context, filters Filters) (int64, error) {
	var count int64
	err := r.applyFilters(r.db.WithContext(ctx).Model(&models.Order{}), filters).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) SumOrderTotals(ctx context.Context, filters Filters) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.applyFilters(r.db.WithContext(ctx).Model(&models.Order{}), filters).
		Select("COALESCE(SUM(total), 0) AS total").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *repository) applyFilters(query *gorm.DB, filters Filters) *gorm.DB {
	if len(filters.Statuses) > 0 {
		query = query.Where("orders.status IN ?", filters.Statuses)
	}
	if len(filters.ExcludeStatuses) > 0 {
		query = query.Where("orders.status NOT IN ?", filters.ExcludeStatuses)
	}
	if filters.CreatedFrom != nil {
		query = query.Where("orders.created_at >= ?", *filters.CreatedFrom)
	}
	if filters.CreatedTo != nil {
		query = query.Where("orders.created_at <= ?", *filters.CreatedTo)
	}
	if filters.VendorID != nil {
		query = query.Where(
			"orders.id IN (SELECT order_items.order_id FROM order_items JOIN products ON products.id = order_items.product_id WHERE products.vendor_id = ?)",
			*filters.VendorID,
		)
	}
	return query
}
