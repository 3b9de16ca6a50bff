package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitbite/fitbite-backend/internal/models"
)

// ProfileService assembles the user's profile view
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// Profile is the account identity plus the active goal, or nil when the
// user has not set one.
type Profile struct {
	ID       uuid.UUID    `json:"id"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Goal     *models.Goal `json:"goal"`
}

// GetProfile retrieves a user's profile together with their most recently
// created goal.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	profile := &Profile{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}

	var goal models.Goal
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&goal).Error
	switch {
	case err == nil:
		profile.Goal = &goal
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no goal yet; profile.Goal stays nil
	default:
		return nil, err
	}

	return profile, nil
}
