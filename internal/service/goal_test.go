package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbite/fitbite-backend/internal/models"
	"github.com/fitbite/fitbite-backend/internal/testhelpers"
)

// stubGenerator is a deterministic Generator for tests
type stubGenerator struct {
	resp    string
	err     error
	prompts []string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.resp, nil
}

const goalResponse = `{"daily_goals":{"calories":2000,"protein":150,"carbs":200,"fat":60},"plan":"Keep a consistent calorie deficit and lift three times a week."}`

func validGoalInput() GoalInput {
	return GoalInput{
		GoalType:      "Fat Loss",
		Age:           30,
		Height:        175,
		CurrentWeight: 70,
		TargetWeight:  65,
		ExerciseLevel: "Moderately active (3-5 days/week)",
		TargetTime:    "3 months",
	}
}

func TestComputeBMI(t *testing.T) {
	bmi, status := ComputeBMI(175, 70)
	assert.Equal(t, "22.86", bmi)
	assert.Equal(t, "Normal", status)
}

func TestBMIStatusBoundaries(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{17.0, "Underweight"},
		{18.49, "Underweight"},
		{18.5, "Normal"},
		{24.99, "Normal"},
		{25.0, "Overweight"},
		{29.99, "Overweight"},
		{30.0, "Obese"},
		{42.0, "Obese"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BMIStatus(tt.bmi), "bmi %.2f", tt.bmi)
	}
}

func TestCreateGoal(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	userID := uuid.New()

	t.Run("should persist an enriched goal", func(t *testing.T) {
		gen := &stubGenerator{resp: goalResponse}
		svc := NewGoalService(db, gen)

		goal, err := svc.CreateGoal(context.Background(), userID, validGoalInput())
		require.NoError(t, err)

		assert.Equal(t, userID, goal.UserID)
		assert.Equal(t, "22.86", goal.BMI)
		assert.Equal(t, "Normal", goal.BMIStatus)
		assert.Equal(t, 2000.0, goal.DailyCalories)
		assert.Equal(t, 150.0, goal.DailyProtein)
		assert.Equal(t, 200.0, goal.DailyCarbs)
		assert.Equal(t, 60.0, goal.DailyFat)
		assert.NotEmpty(t, goal.Plan)
		assert.NotEqual(t, uuid.Nil, goal.ID)

		require.Len(t, gen.prompts, 1)
		assert.Contains(t, gen.prompts[0], "Fat Loss")
		assert.Contains(t, gen.prompts[0], "175 cm")

		var saved models.Goal
		require.NoError(t, db.First(&saved, "id = ?", goal.ID).Error)
		assert.Equal(t, goal.Plan, saved.Plan)
	})

	t.Run("should tolerate a fenced response", func(t *testing.T) {
		gen := &stubGenerator{resp: "```json\n" + goalResponse + "\n```"}
		svc := NewGoalService(db, gen)

		goal, err := svc.CreateGoal(context.Background(), userID, validGoalInput())
		require.NoError(t, err)
		assert.Equal(t, 2000.0, goal.DailyCalories)
	})

	t.Run("should reject missing required fields", func(t *testing.T) {
		svc := NewGoalService(db, &stubGenerator{resp: goalResponse})

		in := validGoalInput()
		in.GoalType = ""
		_, err := svc.CreateGoal(context.Background(), userID, in)
		assert.ErrorIs(t, err, ErrValidation)

		in = validGoalInput()
		in.Height = 0
		_, err = svc.CreateGoal(context.Background(), userID, in)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should fail on a response without plan", func(t *testing.T) {
		gen := &stubGenerator{resp: `{"daily_goals":{"calories":2000,"protein":150,"carbs":200,"fat":60}}`}
		svc := NewGoalService(db, gen)

		_, err := svc.CreateGoal(context.Background(), userID, validGoalInput())
		assert.ErrorIs(t, err, ErrInvalidEstimationShape)
	})

	t.Run("should fail on a response without daily_goals", func(t *testing.T) {
		gen := &stubGenerator{resp: `{"plan":"just eat less"}`}
		svc := NewGoalService(db, gen)

		_, err := svc.CreateGoal(context.Background(), userID, validGoalInput())
		assert.ErrorIs(t, err, ErrInvalidEstimationShape)
	})

	t.Run("should persist nothing when the generator fails", func(t *testing.T) {
		freshUser := uuid.New()
		gen := &stubGenerator{err: ErrEstimationUnavailable}
		svc := NewGoalService(db, gen)

		_, err := svc.CreateGoal(context.Background(), freshUser, validGoalInput())
		assert.ErrorIs(t, err, ErrEstimationUnavailable)

		var count int64
		require.NoError(t, db.Model(&models.Goal{}).Where("user_id = ?", freshUser).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestUpdateGoal(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	userID := uuid.New()

	gen := &stubGenerator{resp: goalResponse}
	svc := NewGoalService(db, gen)

	created, err := svc.CreateGoal(context.Background(), userID, validGoalInput())
	require.NoError(t, err)

	t.Run("should replace every derived field", func(t *testing.T) {
		gen.resp = `{"daily_goals":{"calories":2600,"protein":180,"carbs":260,"fat":80},"plan":"Eat in a surplus and train for strength."}`

		in := validGoalInput()
		in.GoalType = "Weight Gain"
		in.CurrentWeight = 95
		in.TargetWeight = 100

		updated, err := svc.UpdateGoal(context.Background(), userID, created.ID, in)
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Weight Gain", updated.GoalType)
		assert.Equal(t, "31.02", updated.BMI)
		assert.Equal(t, "Obese", updated.BMIStatus)
		assert.Equal(t, 2600.0, updated.DailyCalories)
		assert.Equal(t, 180.0, updated.DailyProtein)
		assert.Equal(t, "Eat in a surplus and train for strength.", updated.Plan)
	})

	t.Run("should hide other users' goals", func(t *testing.T) {
		otherUser := uuid.New()
		_, err := svc.UpdateGoal(context.Background(), otherUser, created.ID, validGoalInput())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should report missing goals", func(t *testing.T) {
		_, err := svc.UpdateGoal(context.Background(), userID, uuid.New(), validGoalInput())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestActiveGoal(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	userID := uuid.New()
	svc := NewGoalService(db, &stubGenerator{resp: goalResponse})

	t.Run("should report not found without goals", func(t *testing.T) {
		_, err := svc.ActiveGoal(context.Background(), userID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	older := models.Goal{
		UserID: userID, GoalType: "Fat Loss", Age: 30, Height: 175,
		CurrentWeight: 70, TargetWeight: 65,
		ExerciseLevel: "Sedentary", TargetTime: "6 months",
		BMI: "22.86", BMIStatus: "Normal",
		DailyCalories: 1800, Plan: "old plan",
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	newer := models.Goal{
		UserID: userID, GoalType: "Weight Gain", Age: 30, Height: 175,
		CurrentWeight: 70, TargetWeight: 75,
		ExerciseLevel: "Very active", TargetTime: "3 months",
		BMI: "22.86", BMIStatus: "Normal",
		DailyCalories: 2600, Plan: "new plan",
		CreatedAt: time.Now().Add(-1 * time.Hour),
	}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	t.Run("should pick the most recently created goal", func(t *testing.T) {
		active, err := svc.ActiveGoal(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, newer.ID, active.ID)
	})

	t.Run("should promote the next goal after a delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteGoal(context.Background(), userID, newer.ID))

		active, err := svc.ActiveGoal(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, older.ID, active.ID)
	})

	t.Run("should list newest first", func(t *testing.T) {
		goals, err := svc.ListGoals(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, older.ID, goals[0].ID)
	})
}
