package food

import (
	"Food-Quality-Registry/domain"
	"Food-Quality-Registry/entities"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.FoodProduct, error)
		// FindByUserIDWithSearch matches keyword, case-insensitively, as a substring
		// of the product name, batch code or category.
		FindByUserIDWithSearch(ctx context.Context, userID uuid.UUID, keyword string) ([]*entities.FoodProduct, error)
		FindByIDAndUserID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entities.FoodProduct, error)
		DeleteByIDAndUserID(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
		CountByUserIDAndInspectionStatus(ctx context.Context, userID uuid.UUID, status string) (int64, error)
		FindDistinctBatchCodesByUserID(ctx context.Context, userID uuid.UUID) ([]string, error)
		// Save inserts or updates product. A batch code already held by any
		// record yields domain.ErrBatchCodeExists.
		Save(ctx context.Context, product *entities.FoodProduct) error
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.FoodProduct, error) {
	var products []*entities.FoodProduct
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *foodRepository) FindByUserIDWithSearch(ctx context.Context, userID uuid.UUID, keyword string) ([]*entities.FoodProduct, error) {
	var products []*entities.FoodProduct
	pattern := "%" + strings.ToLower(keyword) + "%"

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(product_name) LIKE ? OR LOWER(batch_code) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern, pattern).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *foodRepository) FindByIDAndUserID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entities.FoodProduct, error) {
	var product entities.FoodProduct
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *foodRepository) DeleteByIDAndUserID(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.FoodProduct{}).Error
}

func (r *foodRepository) CountByUserIDAndInspectionStatus(ctx context.Context, userID uuid.UUID, status string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.FoodProduct{}).
		Where("user_id = ? AND inspection_status = ?", userID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *foodRepository) FindDistinctBatchCodesByUserID(ctx context.Context, userID uuid.UUID) ([]string, error) {
	batchCodes := []string{}
	if err := r.db.WithContext(ctx).Model(&entities.FoodProduct{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("batch_code asc").
		Pluck("batch_code", &batchCodes).Error; err != nil {
		return nil, err
	}
	return batchCodes, nil
}

func (r *foodRepository) Save(ctx context.Context, product *entities.FoodProduct) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrBatchCodeExists
		}
		return err
	}
	return nil
}

// isDuplicateKey relies on gorm's TranslateError and falls back to the driver
// message for connections opened without it.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
