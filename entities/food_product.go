package entities

import (
	"time"

	"github.com/google/uuid"
)

type FoodProduct struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;index:idx_food_products_id_user,priority:1" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index;index:idx_food_products_id_user,priority:2" json:"user_id"`
	BatchCode        string     `gorm:"not null;uniqueIndex:idx_food_products_batch_code" json:"batch_code"`
	ProductName      string     `gorm:"not null" json:"product_name"`
	Category         string     `json:"category"`
	InspectionStatus string     `gorm:"not null" json:"inspection_status"` // "PASSED", "REJECTED", "PENDING", or anything else
	ProductImage     *string    `json:"product_image"`
	Notes            string     `gorm:"size:1000" json:"notes,omitempty"`
	ProductionDate   *time.Time `gorm:"type:date" json:"production_date,omitempty"`
	ExpiryDate       *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`

	Timestamp
}

// NewFoodProduct assigns the id and both timestamps up front; nothing downstream
// is allowed to generate them.
func NewFoodProduct(userID uuid.UUID) *FoodProduct {
	created := now()
	return &FoodProduct{
		ID:     uuid.New(),
		UserID: userID,
		Timestamp: Timestamp{
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

// Touch refreshes UpdatedAt. The new value is always strictly after the old one,
// even when the clock has not advanced past the stored precision.
func (p *FoodProduct) Touch() {
	t := now()
	if !t.After(p.UpdatedAt) {
		t = p.UpdatedAt.Add(time.Millisecond)
	}
	p.UpdatedAt = t
}
