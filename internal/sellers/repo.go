package sellers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ssemujju/sokoyetu-backend/pkg/db/models"
	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
)

// Repository resolves sellers and user counts for the financial reports.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindSeller(ctx context.Context, sellerID uuid.UUID) (*models.User, error)
	FindSellers(ctx context.Context) ([]models.User, error)
	CountUsersByRole(ctx context.Context, role enums.UserRole) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sellers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindSeller(ctx context.Context, sellerID uuid.UUID) (*models.User, error) {
	var seller models.User
	err := r.db.WithContext(ctx).
		Where("id = ?", sellerID).
		First(&seller).Error
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *repository) FindSellers(ctx context.Context) ([]models.User, error) {
	var sellers []models.User
	err := r.db.WithContext(ctx).
		Where("role = ?", enums.UserRoleSeller).
		Order("created_at ASC").
		Find(&sellers).Error
	if err != nil {
		return nil, err
	}
	return sellers, nil
}

func (r *repository) CountUsersByRole(ctx context.Context, role enums.UserRole) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", role).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
