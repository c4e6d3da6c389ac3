package products

import (
	"context"

	"gorm.io/gorm"

	"github.com/ssemujju/sokoyetu-backend/pkg/db/models"
)

// Repository defines the catalog reads needed by the admin reports.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CountProducts(ctx context.Context, activeOnly bool) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a products repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CountProducts(ctx context.Context, activeOnly bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
