package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitbite/fitbite-backend/internal/models"
)

// GoalService turns raw biometrics into persisted Goal records enriched by
// the external generator.
type GoalService struct {
	db  *gorm.DB
	llm Generator
}

// Ensure GoalService implements IGoalService
var _ IGoalService = (*GoalService)(nil)

// NewGoalService creates a new GoalService instance
func NewGoalService(db *gorm.DB, llm Generator) *GoalService {
	return &GoalService{
		db:  db,
		llm: llm,
	}
}

// GoalInput carries the biometrics and goal parameters supplied by the user
type GoalInput struct {
	GoalType      string  `json:"goalType"`
	Age           int     `json:"age"`
	Height        float64 `json:"height"`
	CurrentWeight float64 `json:"currentWeight"`
	TargetWeight  float64 `json:"targetWeight"`
	ExerciseLevel string  `json:"exerciseLevel"`
	TargetTime    string  `json:"targetTime"`
}

func (in GoalInput) validate() error {
	switch {
	case in.GoalType == "":
		return fmt.Errorf("%w: goalType is required", ErrValidation)
	case in.Age <= 0:
		return fmt.Errorf("%w: age must be positive", ErrValidation)
	case in.Height <= 0:
		return fmt.Errorf("%w: height must be positive", ErrValidation)
	case in.CurrentWeight <= 0:
		return fmt.Errorf("%w: currentWeight must be positive", ErrValidation)
	case in.TargetWeight <= 0:
		return fmt.Errorf("%w: targetWeight must be positive", ErrValidation)
	case in.ExerciseLevel == "":
		return fmt.Errorf("%w: exerciseLevel is required", ErrValidation)
	case in.TargetTime == "":
		return fmt.Errorf("%w: targetTime is required", ErrValidation)
	}
	return nil
}

// ComputeBMI expects height in centimeters and weight in kilograms. It
// returns the BMI rounded to two decimals, rendered as a string, together
// with its category.
func ComputeBMI(heightCm, weightKg float64) (string, string) {
	meters := heightCm / 100
	bmi := math.Round(weightKg/(meters*meters)*100) / 100
	return strconv.FormatFloat(bmi, 'f', 2, 64), BMIStatus(bmi)
}

// BMIStatus maps a BMI value onto its qualitative category. Band lower
// bounds are inclusive: 18.5 is Normal and 25.0 is Overweight.
func BMIStatus(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

func goalPrompt(in GoalInput) string {
	return fmt.Sprintf(`Based on the following user data, calculate their daily calorie needs and create a brief, actionable fitness plan.
- Goal: %s
- Age: %d
- Height: %g cm
- Current Weight: %g kg
- Target Weight: %g kg
- Exercise Level: %s
- Time to Achieve Goal: %s

Provide the response as a single, minified JSON object with no markdown. The JSON should have two keys:
1. "daily_goals": An object with "calories", "protein", "carbs", and "fat" (all as numbers).
2. "plan": A short (2-3 sentences) descriptive and encouraging fitness plan.

Example:
{"daily_goals":{"calories":2000,"protein":150,"carbs":200,"fat":60},"plan":"To achieve your fat loss goal, focus on a consistent calorie deficit. Incorporate strength training 3-4 times a week to build muscle, and add 2-3 cardio sessions for heart health. Stay hydrated and be patient with your progress!"}`,
		in.GoalType, in.Age, in.Height, in.CurrentWeight, in.TargetWeight, in.ExerciseLevel, in.TargetTime)
}

type dailyTargets struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// estimateTargets asks the generator for daily macro targets and a plan.
// Unlike food estimation there is no zero-defaulting of the macro set as a
// whole: a response without daily_goals or plan is unusable for goal-setting.
func (s *GoalService) estimateTargets(ctx context.Context, in GoalInput) (dailyTargets, string, error) {
	raw, err := s.llm.Generate(ctx, goalPrompt(in))
	if err != nil {
		return dailyTargets{}, "", err
	}

	obj, err := ExtractJSON(raw)
	if err != nil {
		return dailyTargets{}, "", err
	}

	goalsRaw, hasGoals := obj["daily_goals"]
	planRaw, hasPlan := obj["plan"]
	if !hasGoals || !hasPlan {
		return dailyTargets{}, "", fmt.Errorf("%w: daily_goals and plan are required", ErrInvalidEstimationShape)
	}

	var plan string
	if err := json.Unmarshal(planRaw, &plan); err != nil || plan == "" {
		return dailyTargets{}, "", fmt.Errorf("%w: plan must be a non-empty string", ErrInvalidEstimationShape)
	}

	var goals map[string]json.RawMessage
	if err := json.Unmarshal(goalsRaw, &goals); err != nil {
		return dailyTargets{}, "", fmt.Errorf("%w: daily_goals must be an object", ErrInvalidEstimationShape)
	}

	targets := dailyTargets{
		Calories: looseNumber(goals, "calories"),
		Protein:  looseNumber(goals, "protein"),
		Carbs:    looseNumber(goals, "carbs"),
		Fat:      looseNumber(goals, "fat"),
	}
	return targets, plan, nil
}

// CreateGoal validates the input, derives BMI, enriches the record through
// the generator and persists it. Nothing is persisted when enrichment fails.
func (s *GoalService) CreateGoal(ctx context.Context, userID uuid.UUID, in GoalInput) (*models.Goal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	bmi, status := ComputeBMI(in.Height, in.CurrentWeight)

	targets, plan, err := s.estimateTargets(ctx, in)
	if err != nil {
		return nil, err
	}

	goal := models.Goal{
		UserID:        userID,
		GoalType:      in.GoalType,
		Age:           in.Age,
		Height:        in.Height,
		CurrentWeight: in.CurrentWeight,
		TargetWeight:  in.TargetWeight,
		ExerciseLevel: in.ExerciseLevel,
		TargetTime:    in.TargetTime,
		BMI:           bmi,
		BMIStatus:     status,
		DailyCalories: targets.Calories,
		DailyProtein:  targets.Protein,
		DailyCarbs:    targets.Carbs,
		DailyFat:      targets.Fat,
		Plan:          plan,
	}

	if err := s.db.Create(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal runs the creation pipeline against an existing record. Every
// derived field is replaced; nothing stale survives the update. The lookup
// is ownership-scoped, so another user's goal reads as not found.
func (s *GoalService) UpdateGoal(ctx context.Context, userID, goalID uuid.UUID, in GoalInput) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal", ErrNotFound)
		}
		return nil, err
	}

	if err := in.validate(); err != nil {
		return nil, err
	}

	bmi, status := ComputeBMI(in.Height, in.CurrentWeight)

	targets, plan, err := s.estimateTargets(ctx, in)
	if err != nil {
		return nil, err
	}

	goal.GoalType = in.GoalType
	goal.Age = in.Age
	goal.Height = in.Height
	goal.CurrentWeight = in.CurrentWeight
	goal.TargetWeight = in.TargetWeight
	goal.ExerciseLevel = in.ExerciseLevel
	goal.TargetTime = in.TargetTime
	goal.BMI = bmi
	goal.BMIStatus = status
	goal.DailyCalories = targets.Calories
	goal.DailyProtein = targets.Protein
	goal.DailyCarbs = targets.Carbs
	goal.DailyFat = targets.Fat
	goal.Plan = plan

	if err := s.db.Save(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// GetGoal retrieves a single goal scoped to its owner
func (s *GoalService) GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal", ErrNotFound)
		}
		return nil, err
	}
	return &goal, nil
}

// ListGoals returns all of a user's goals, newest first
func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]*models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, err
	}

	result := make([]*models.Goal, len(goals))
	for i := range goals {
		result[i] = &goals[i]
	}
	return result, nil
}

// DeleteGoal removes a goal scoped to its owner
func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID uuid.UUID) error {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: goal", ErrNotFound)
		}
		return err
	}
	return s.db.Delete(&goal).Error
}

// ActiveGoal returns the most recently created goal. It is re-evaluated
// fresh on every call rather than tracked through a mutable pointer, so
// deleting the active goal simply promotes the next most recent one.
func (s *GoalService) ActiveGoal(ctx context.Context, userID uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal", ErrNotFound)
		}
		return nil, err
	}
	return &goal, nil
}
