package services

import (
	"context"
	"errors"

	"github.com/devconnector/backend/internal/models"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrHandleTaken     = errors.New("handle already exists")
	ErrEntryNotFound   = errors.New("entry not found")
)

// ProfileService manages profiles and their embedded experience/education
// collections. Entry mutations are scoped to the caller's own profile.
type ProfileService interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error)
	AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error)
	AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error)
}
