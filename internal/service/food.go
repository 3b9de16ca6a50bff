package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitbite/fitbite-backend/internal/models"
)

// FoodService logs food entries with AI-estimated nutrients and aggregates
// them into daily and historical summaries.
type FoodService struct {
	db  *gorm.DB
	llm Generator
}

// Ensure FoodService implements IFoodService
var _ IFoodService = (*FoodService)(nil)

// NewFoodService creates a new FoodService instance
func NewFoodService(db *gorm.DB, llm Generator) *FoodService {
	return &FoodService{
		db:  db,
		llm: llm,
	}
}

// Macros represents nutritional macros information
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// TodaySummary is the current day's entries with their calorie total.
// Only calories are summed for this view; per-entry macros are still exposed.
type TodaySummary struct {
	Entries       []models.FoodEntry `json:"entries"`
	TotalCalories float64            `json:"totalCalories"`
}

// DailySummary is one calendar day's calorie total
type DailySummary struct {
	Date          string  `json:"date"`
	TotalCalories float64 `json:"totalCalories"`
}

// Allowance is what remains of the active goal's daily targets after
// today's intake. Values go negative when the user is over budget.
type Allowance struct {
	RemainingCalories float64 `json:"remainingCalories"`
	RemainingProtein  float64 `json:"remainingProtein"`
	RemainingCarbs    float64 `json:"remainingCarbs"`
	RemainingFat      float64 `json:"remainingFat"`
}

// MealSuggestion is a generator-proposed meal sized to the remaining allowance
type MealSuggestion struct {
	MealSuggestion     string `json:"meal_suggestion"`
	EstimatedNutrition Macros `json:"estimated_nutrition"`
}

func foodPrompt(foodName, quantity string) string {
	subject := foodName
	if quantity != "" {
		subject = quantity + " of " + foodName
	}
	return fmt.Sprintf(`Estimate the calories, protein, carbs, and fat in "%s".
Provide the response as a JSON object with keys "calories", "protein", "carbs", and "fat".
If you cannot estimate, return "0" for all values.
Example: {"calories": 250, "protein": 10, "carbs": 20, "fat": 15}`, subject)
}

// AddEntry estimates nutrients for the described food and persists the
// entry. Individually missing or non-numeric fields default to 0, but a
// response with no extractable JSON at all is still an error: a food log is
// non-blocking, not inventable.
func (s *FoodService) AddEntry(ctx context.Context, userID uuid.UUID, foodName, quantity string) (*models.FoodEntry, error) {
	foodName = strings.TrimSpace(foodName)
	if foodName == "" {
		return nil, fmt.Errorf("%w: food name is required", ErrValidation)
	}

	raw, err := s.llm.Generate(ctx, foodPrompt(foodName, quantity))
	if err != nil {
		return nil, err
	}

	obj, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	entry := models.FoodEntry{
		UserID:   userID,
		FoodName: foodName,
		Quantity: quantity,
		Calories: looseNumber(obj, "calories"),
		Protein:  looseNumber(obj, "protein"),
		Carbs:    looseNumber(obj, "carbs"),
		Fat:      looseNumber(obj, "fat"),
		Date:     time.Now(),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes a food entry. Entries are looked up by id alone first,
// then checked for ownership, so a foreign entry reads as not authorized
// rather than not found.
func (s *FoodService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	var entry models.FoodEntry
	if err := s.db.First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: food entry", ErrNotFound)
		}
		return err
	}

	if entry.UserID != userID {
		return fmt.Errorf("%w: food entry belongs to another user", ErrNotOwner)
	}

	return s.db.Delete(&entry).Error
}

// startOfToday returns local midnight of the current day
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Today returns the entries logged since local midnight and their calorie sum
func (s *FoodService) Today(ctx context.Context, userID uuid.UUID) (*TodaySummary, error) {
	entries, err := s.todayEntries(userID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, e := range entries {
		total += e.Calories
	}

	return &TodaySummary{Entries: entries, TotalCalories: total}, nil
}

func (s *FoodService) todayEntries(userID uuid.UUID) ([]models.FoodEntry, error) {
	entries := []models.FoodEntry{}
	err := s.db.
		Where("user_id = ? AND date >= ?", userID, startOfToday()).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// History groups all of a user's entries by calendar date and sums calories
// per day, sorted ascending by date string. Full-history scan; pagination is
// out of scope for the expected data volume.
func (s *FoodService) History(ctx context.Context, userID uuid.UUID) ([]DailySummary, error) {
	dateExpr := "strftime('%Y-%m-%d', date)"
	if s.db.Dialector.Name() == "postgres" {
		dateExpr = "to_char(date, 'YYYY-MM-DD')"
	}

	history := []DailySummary{}
	err := s.db.Model(&models.FoodEntry{}).
		Select(dateExpr+" AS date, SUM(calories) AS total_calories").
		Where("user_id = ?", userID).
		Group(dateExpr).
		Order("date ASC").
		Scan(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// RemainingAllowance subtracts today's intake from the active goal's daily
// targets, summing all four macros. Results are deliberately not clamped:
// negative values mean the user is over budget and callers render them as
// such.
func (s *FoodService) RemainingAllowance(ctx context.Context, userID uuid.UUID) (*Allowance, error) {
	var goal models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal", ErrNotFound)
		}
		return nil, err
	}

	entries, err := s.todayEntries(userID)
	if err != nil {
		return nil, err
	}

	var consumed Macros
	for _, e := range entries {
		consumed.Calories += e.Calories
		consumed.Protein += e.Protein
		consumed.Carbs += e.Carbs
		consumed.Fat += e.Fat
	}

	return &Allowance{
		RemainingCalories: goal.DailyCalories - consumed.Calories,
		RemainingProtein:  goal.DailyProtein - consumed.Protein,
		RemainingCarbs:    goal.DailyCarbs - consumed.Carbs,
		RemainingFat:      goal.DailyFat - consumed.Fat,
	}, nil
}

func suggestionPrompt(a *Allowance) string {
	return fmt.Sprintf(`Based on the remaining daily nutrition goals:
- Calories: %g
- Protein: %gg
- Carbs: %gg
- Fat: %gg

Suggest a single meal (breakfast, lunch, or dinner) that helps meet these targets.
Provide the response as a JSON object with keys "meal_suggestion" and "estimated_nutrition".
"meal_suggestion" should be a string describing the meal.
"estimated_nutrition" should be an object with "calories", "protein", "carbs", and "fat".
Example: {
  "meal_suggestion": "Grilled chicken salad with a light vinaigrette.",
  "estimated_nutrition": { "calories": 350, "protein": 40, "carbs": 10, "fat": 15 }
}`, a.RemainingCalories, a.RemainingProtein, a.RemainingCarbs, a.RemainingFat)
}

// SuggestMeal asks the generator for one meal sized to the remaining
// allowance. Requires an active goal.
func (s *FoodService) SuggestMeal(ctx context.Context, userID uuid.UUID) (*MealSuggestion, error) {
	allowance, err := s.RemainingAllowance(ctx, userID)
	if err != nil {
		return nil, err
	}

	raw, err := s.llm.Generate(ctx, suggestionPrompt(allowance))
	if err != nil {
		return nil, err
	}

	obj, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	mealRaw, ok := obj["meal_suggestion"]
	if !ok {
		return nil, fmt.Errorf("%w: meal_suggestion is required", ErrInvalidEstimationShape)
	}

	var meal string
	if err := json.Unmarshal(mealRaw, &meal); err != nil || meal == "" {
		return nil, fmt.Errorf("%w: meal_suggestion must be a non-empty string", ErrInvalidEstimationShape)
	}

	suggestion := MealSuggestion{MealSuggestion: meal}
	if nutritionRaw, ok := obj["estimated_nutrition"]; ok {
		var nutrition map[string]json.RawMessage
		if err := json.Unmarshal(nutritionRaw, &nutrition); err == nil {
			suggestion.EstimatedNutrition = Macros{
				Calories: looseNumber(nutrition, "calories"),
				Protein:  looseNumber(nutrition, "protein"),
				Carbs:    looseNumber(nutrition, "carbs"),
				Fat:      looseNumber(nutrition, "fat"),
			}
		}
	}

	return &suggestion, nil
}
