package food

import (
	"Food-Quality-Registry/domain"
	"Food-Quality-Registry/entities"
	"Food-Quality-Registry/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	FoodService interface {
		CreateProduct(ctx context.Context, userID uuid.UUID, form domain.FoodProductForm) (*entities.FoodProduct, error)
		GetProducts(ctx context.Context, userID uuid.UUID, keyword string) ([]*entities.FoodProduct, error)
		GetProductByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entities.FoodProduct, error)
		GetBatchCodes(ctx context.Context, userID uuid.UUID) ([]string, error)
		UpdateProduct(ctx context.Context, userID uuid.UUID, id uuid.UUID, form domain.FoodProductForm) (*entities.FoodProduct, error)
		UpdateProductImage(ctx context.Context, userID uuid.UUID, form domain.ProductImageForm) (bool, error)
		DeleteProduct(ctx context.Context, userID uuid.UUID, id uuid.UUID) (bool, error)
		GetInspectionStats(ctx context.Context, userID uuid.UUID) (map[string]int64, error)
	}

	foodService struct {
		foodRepository FoodRepository
		storage        storage.FileStorage
		log            *zap.Logger
	}
)

func NewFoodService(foodRepository FoodRepository, fileStorage storage.FileStorage, log *zap.Logger) FoodService {
	if log == nil {
		log = zap.NewNop()
	}
	return &foodService{
		foodRepository: foodRepository,
		storage:        fileStorage,
		log:            log.Named("food-service"),
	}
}

func (s *foodService) CreateProduct(ctx context.Context, userID uuid.UUID, form domain.FoodProductForm) (*entities.FoodProduct, error) {
	product := entities.NewFoodProduct(userID)
	if err := applyForm(product, form); err != nil {
		return nil, err
	}

	// The image goes first so a failed write leaves nothing persisted.
	if form.HasImage() {
		filename, err := s.storeImage(ctx, form.ImageFile)
		if err != nil {
			return nil, err
		}
		product.ProductImage = &filename
	}

	if err := s.foodRepository.Save(ctx, product); err != nil {
		s.log.Warn("create food product failed",
			zap.String("user_id", userID.String()),
			zap.String("batch_code", product.BatchCode),
			zap.Error(err))
		return nil, err
	}

	s.log.Info("food product created",
		zap.String("user_id", userID.String()),
		zap.String("id", product.ID.String()),
		zap.String("batch_code", product.BatchCode))
	return product, nil
}

func (s *foodService) GetProducts(ctx context.Context, userID uuid.UUID, keyword string) ([]*entities.FoodProduct, error) {
	if strings.TrimSpace(keyword) != "" {
		return s.foodRepository.FindByUserIDWithSearch(ctx, userID, strings.ToLower(keyword))
	}
	return s.foodRepository.FindByUserID(ctx, userID)
}

func (s *foodService) GetProductByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entities.FoodProduct, error) {
	return s.foodRepository.FindByIDAndUserID(ctx, id, userID)
}

func (s *foodService) GetBatchCodes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.foodRepository.FindDistinctBatchCodesByUserID(ctx, userID)
}

func (s *foodService) UpdateProduct(ctx context.Context, userID uuid.UUID, id uuid.UUID, form domain.FoodProductForm) (*entities.FoodProduct, error) {
	product, err := s.foodRepository.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := applyForm(product, form); err != nil {
		return nil, err
	}

	// The previous image stays on disk.
	if form.HasImage() {
		filename, err := s.storeImage(ctx, form.ImageFile)
		if err != nil {
			return nil, err
		}
		product.ProductImage = &filename
	}

	product.Touch()
	if err := s.foodRepository.Save(ctx, product); err != nil {
		s.log.Warn("update food product failed",
			zap.String("user_id", userID.String()),
			zap.String("id", id.String()),
			zap.Error(err))
		return nil, err
	}

	s.log.Info("food product updated",
		zap.String("user_id", userID.String()),
		zap.String("id", id.String()))
	return product, nil
}

func (s *foodService) UpdateProductImage(ctx context.Context, userID uuid.UUID, form domain.ProductImageForm) (bool, error) {
	if form.ImageFile == nil {
		return false, nil
	}
	id, err := uuid.Parse(form.ID)
	if err != nil {
		return false, nil
	}

	product, err := s.foodRepository.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrFoodProductNotFound) {
			return false, nil
		}
		return false, err
	}

	filename, err := s.storeImage(ctx, form.ImageFile)
	if err != nil {
		return false, err
	}
	product.ProductImage = &filename
	product.Touch()

	if err := s.foodRepository.Save(ctx, product); err != nil {
		return false, err
	}

	s.log.Info("food product image replaced",
		zap.String("user_id", userID.String()),
		zap.String("id", id.String()),
		zap.String("image", filename))
	return true, nil
}

func (s *foodService) DeleteProduct(ctx context.Context, userID uuid.UUID, id uuid.UUID) (bool, error) {
	if _, err := s.foodRepository.FindByIDAndUserID(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrFoodProductNotFound) {
			return false, nil
		}
		return false, err
	}

	// The image file is intentionally left in storage.
	if err := s.foodRepository.DeleteByIDAndUserID(ctx, id, userID); err != nil {
		return false, err
	}

	s.log.Info("food product deleted",
		zap.String("user_id", userID.String()),
		zap.String("id", id.String()))
	return true, nil
}

// GetInspectionStats counts only PASSED, REJECTED and PENDING; any other
// status is left out of every bucket including TOTAL.
func (s *foodService) GetInspectionStats(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	stats := make(map[string]int64, 4)
	var total int64

	for _, status := range []string{domain.StatusPassed, domain.StatusRejected, domain.StatusPending} {
		count, err := s.foodRepository.CountByUserIDAndInspectionStatus(ctx, userID, status)
		if err != nil {
			return nil, err
		}
		stats[status] = count
		total += count
	}
	stats[domain.StatsTotal] = total

	return stats, nil
}

func (s *foodService) storeImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		s.log.Error("open uploaded image failed", zap.String("filename", file.Filename), zap.Error(err))
		return "", fmt.Errorf("%w %s: %v", storage.ErrStoreFile, file.Filename, err)
	}
	defer src.Close()

	filename, err := s.storage.Store(ctx, src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		s.log.Error("store uploaded image failed", zap.String("filename", file.Filename), zap.Error(err))
		return "", err
	}
	return filename, nil
}

// applyForm overwrites every editable field of product with the form values.
func applyForm(product *entities.FoodProduct, form domain.FoodProductForm) error {
	productionDate, err := domain.ParseDate(form.ProductionDate)
	if err != nil {
		return err
	}
	expiryDate, err := domain.ParseDate(form.ExpiryDate)
	if err != nil {
		return err
	}

	product.ProductName = form.ProductName
	product.BatchCode = form.BatchCode
	product.Category = form.Category
	product.InspectionStatus = form.InspectionStatus
	product.Notes = form.Notes
	product.ProductionDate = productionDate
	product.ExpiryDate = expiryDate
	return nil
}

func ToFoodProductResponse(p *entities.FoodProduct) domain.FoodProductResponse {
	return domain.FoodProductResponse{
		ID:               p.ID.String(),
		UserID:           p.UserID.String(),
		BatchCode:        p.BatchCode,
		ProductName:      p.ProductName,
		Category:         p.Category,
		InspectionStatus: p.InspectionStatus,
		ProductImage:     p.ProductImage,
		Notes:            p.Notes,
		ProductionDate:   domain.FormatDate(p.ProductionDate),
		ExpiryDate:       domain.FormatDate(p.ExpiryDate),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func ToFoodProductResponses(products []*entities.FoodProduct) []domain.FoodProductResponse {
	response := make([]domain.FoodProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, ToFoodProductResponse(p))
	}
	return response
}
