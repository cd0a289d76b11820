package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	StatusPassed   = "PASSED"
	StatusRejected = "REJECTED"
	StatusPending  = "PENDING"
	StatsTotal     = "TOTAL"

	DateLayout = "2006-01-02"

	// MaxImageSize is the ceiling for image-only updates.
	MaxImageSize int64 = 5 * 1024 * 1024
)

// AllowedImageTypes lists the content types accepted for sample photos.
var AllowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/jpg",
	"image/gif",
	"image/webp",
}

var (
	MessageSuccessCreateFoodProduct = "food product registered successfully"
	MessageSuccessGetFoodProducts   = "food products retrieved successfully"
	MessageSuccessGetFoodProduct    = "food product detail retrieved successfully"
	MessageSuccessGetBatches        = "batch codes retrieved successfully"
	MessageSuccessUpdateFoodProduct = "inspection data updated successfully"
	MessageSuccessUpdateImage       = "sample photo updated successfully"
	MessageSuccessDeleteFoodProduct = "food product deleted successfully"
	MessageSuccessGetStats          = "quality statistics retrieved successfully"

	MessageFailedCreateFoodProduct = "failed to register food product"
	MessageFailedGetFoodProducts   = "failed to retrieve food products"
	MessageFailedUpdateFoodProduct = "failed to update inspection data"
	MessageFailedUpdateImage       = "failed to update sample photo, product not found"
	MessageFailedDeleteFoodProduct = "failed to delete food product"
	MessageFailedGetStats          = "failed to retrieve quality statistics"
	MessageFoodProductNotFound     = "food product not found"
	MessageBatchCodeUsed           = "batch code already used"
	MessageFailedStoreImage        = "failed to store sample photo"

	MessageInvalidProductName      = "product name invalid"
	MessageInvalidBatchCode        = "batch code invalid"
	MessageInvalidInspectionStatus = "inspection status invalid"
	MessageInvalidDate             = "date must use YYYY-MM-DD format"
	MessageImageRequired           = "product sample photo is required"
	MessageImageEmpty              = "image file must not be empty"
	MessageImageInvalidType        = "file must be an image (JPG/PNG/GIF/WEBP)"
	MessageImageTooLarge           = "file size too large (max 5MB)"

	ErrFoodProductNotFound = errors.New("food product not found")
	ErrBatchCodeExists     = errors.New("batch code already exists")
	ErrInvalidDate         = errors.New("invalid date")
)

// FoodProductFieldMessages maps a failed FoodProductForm field to its client message.
var FoodProductFieldMessages = map[string]string{
	"ProductName":      MessageInvalidProductName,
	"BatchCode":        MessageInvalidBatchCode,
	"InspectionStatus": MessageInvalidInspectionStatus,
	"ProductionDate":   MessageInvalidDate,
	"ExpiryDate":       MessageInvalidDate,
}

type (
	// FoodProductForm carries the text fields of a create or update request.
	// Field order is the order presence checks are reported in.
	FoodProductForm struct {
		ProductName      string                `json:"productName" form:"productName" validate:"required"`
		BatchCode        string                `json:"batchCode" form:"batchCode" validate:"required"`
		InspectionStatus string                `json:"inspectionStatus" form:"inspectionStatus" validate:"required"`
		Category         string                `json:"category" form:"category"`
		Notes            string                `json:"notes" form:"notes"`
		ProductionDate   string                `json:"productionDate" form:"productionDate" validate:"omitempty,datetime=2006-01-02"`
		ExpiryDate       string                `json:"expiryDate" form:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
		ImageFile        *multipart.FileHeader `json:"-" form:"-"`
	}

	ProductImageForm struct {
		ID        string                `json:"id" form:"id"`
		ImageFile *multipart.FileHeader `json:"-" form:"-"`
	}

	CreateFoodProductResponse struct {
		ID string `json:"id"`
	}

	FoodProductResponse struct {
		ID               string    `json:"id"`
		UserID           string    `json:"user_id"`
		BatchCode        string    `json:"batch_code"`
		ProductName      string    `json:"product_name"`
		Category         string    `json:"category"`
		InspectionStatus string    `json:"inspection_status"`
		ProductImage     *string   `json:"product_image"`
		Notes            string    `json:"notes"`
		ProductionDate   string    `json:"production_date,omitempty"`
		ExpiryDate       string    `json:"expiry_date,omitempty"`
		CreatedAt        time.Time `json:"created_at"`
		UpdatedAt        time.Time `json:"updated_at"`
	}
)

func (f ProductImageForm) IsEmpty() bool {
	return f.ImageFile == nil || f.ImageFile.Size == 0
}

func (f ProductImageForm) IsValidImage() bool {
	if f.IsEmpty() {
		return false
	}
	contentType := f.ImageFile.Header.Get("Content-Type")
	for _, allowed := range AllowedImageTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}

func (f ProductImageForm) IsSizeValid(maxSize int64) bool {
	return f.ImageFile != nil && f.ImageFile.Size <= maxSize
}

// HasImage reports whether the form carries non-empty image bytes.
func (f FoodProductForm) HasImage() bool {
	return f.ImageFile != nil && f.ImageFile.Size > 0
}

// ParseDate turns an optional YYYY-MM-DD string into a date; blank means unset.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
