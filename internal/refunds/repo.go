package refunds

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ssemujju/sokoyetu-backend/pkg/db/models"
	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
)

// Filters describe the inputs supported by the refund queries.
type Filters struct {
	Statuses    []enums.RefundStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Repository defines the read surface over refunds.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindRefunds(ctx context.Context, filters Filters) ([]models.Refund, error)
	FindRefundsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID, filters Filters) ([]models.Refund, error)
	SumRefundAmounts(ctx context.Context, statuses []enums.RefundStatus) (decimal.Decimal, error)
	CountRefundsByStatus(ctx context.Context, status enums.RefundStatus) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a refunds repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindRefunds(ctx context.Context, filters Filters) ([]models.Refund, error) {
	var results []models.Refund
	err := r.applyFilters(r.db.WithContext(ctx).Model(&models.Refund{}), filters).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repository) FindRefundsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID, filters Filters) ([]models.Refund, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var results []models.Refund
	err := r.applyFilters(r.db.WithContext(ctx).Model(&models.Refund{}), filters).
		Where("order_id IN ?", orderIDs).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repository) SumRefundAmounts(ctx context.Context, statuses []enums.RefundStatus) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	query := r.db.WithContext(ctx).Model(&models.Refund{}).
		Select("COALESCE(SUM(amount), 0) AS total")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *repository) CountRefundsByStatus(ctx context.Context, status enums.RefundStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Refund{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) applyFilters(query *gorm.DB, filters Filters) *gorm.DB {
	if len(filters.Statuses) > 0 {
		query = query.Where("status IN ?", filters.Statuses)
	}
	if filters.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filters.CreatedFrom)
	}
	if filters.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filters.CreatedTo)
	}
	return query
}
