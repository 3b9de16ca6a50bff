package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal is a user's fitness target together with the AI-derived daily macro
// budget and narrative plan. BMI and BMIStatus are recomputed from the
// biometrics on every create and update.
type Goal struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	GoalType      string    `gorm:"size:50;not null" json:"goalType"`
	Age           int       `gorm:"not null" json:"age"`
	Height        float64   `gorm:"not null" json:"height"`
	CurrentWeight float64   `gorm:"not null" json:"currentWeight"`
	TargetWeight  float64   `gorm:"not null" json:"targetWeight"`
	ExerciseLevel string    `gorm:"size:100;not null" json:"exerciseLevel"`
	TargetTime    string    `gorm:"size:50;not null" json:"targetTime"`
	BMI           string    `gorm:"size:16;not null" json:"bmi"`
	BMIStatus     string    `gorm:"size:32" json:"bmiStatus"`
	DailyCalories float64   `gorm:"not null" json:"dailyCalories"`
	DailyProtein  float64   `gorm:"not null" json:"dailyProtein"`
	DailyCarbs    float64   `gorm:"not null" json:"dailyCarbs"`
	DailyFat      float64   `gorm:"not null" json:"dailyFat"`
	Plan          string    `gorm:"type:text;not null" json:"plan"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
