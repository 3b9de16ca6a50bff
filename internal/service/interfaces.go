package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/fitbite/fitbite-backend/internal/models"
	"github.com/fitbite/fitbite-backend/internal/types"
)

// Generator is the boundary to the external text-generation service. The
// concrete implementation is LLMService; tests substitute a deterministic
// stub.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IGoalService defines the interface for goal operations
type IGoalService interface {
	CreateGoal(ctx context.Context, userID uuid.UUID, in GoalInput) (*models.Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID uuid.UUID, in GoalInput) (*models.Goal, error)
	GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*models.Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*models.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID uuid.UUID) error
	ActiveGoal(ctx context.Context, userID uuid.UUID) (*models.Goal, error)
}

// IFoodService defines the interface for food logging and aggregation
type IFoodService interface {
	AddEntry(ctx context.Context, userID uuid.UUID, foodName, quantity string) (*models.FoodEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error
	Today(ctx context.Context, userID uuid.UUID) (*TodaySummary, error)
	History(ctx context.Context, userID uuid.UUID) ([]DailySummary, error)
	RemainingAllowance(ctx context.Context, userID uuid.UUID) (*Allowance, error)
	SuggestMeal(ctx context.Context, userID uuid.UUID) (*MealSuggestion, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
}
