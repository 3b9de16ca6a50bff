package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodEntry is a single logged food item with AI-estimated nutrients.
// Entries are immutable after creation except for deletion. Nutrient fields
// are always present; values the estimator could not produce are stored as 0.
type FoodEntry struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	FoodName  string    `gorm:"size:255;not null" json:"foodName"`
	Quantity  string    `gorm:"size:100" json:"quantity"`
	Calories  float64   `gorm:"not null;default:0" json:"calories"`
	Protein   float64   `gorm:"not null;default:0" json:"protein"`
	Carbs     float64   `gorm:"not null;default:0" json:"carbs"`
	Fat       float64   `gorm:"not null;default:0" json:"fat"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *FoodEntry) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Date.IsZero() {
		f.Date = time.Now()
	}
	return nil
}
