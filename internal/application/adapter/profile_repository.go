package adapter

import (
	"context"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// ProfileRepository defines the interface for user profile persistence operations.
type ProfileRepository interface {
	// Create inserts a new profile.
	Create(ctx context.Context, profile *entity.UserProfile) error

	// FindByUser retrieves the profile for a subject. Returns nil, nil when
	// no profile exists yet.
	FindByUser(ctx context.Context, subjectID string) (*entity.UserProfile, error)

	// Update persists changes to an existing profile.
	Update(ctx context.Context, profile *entity.UserProfile) error
}

// SettingsRepository defines the interface for user settings persistence operations.
type SettingsRepository interface {
	// Create inserts new settings.
	Create(ctx context.Context, settings *entity.UserSettings) error

	// FindByUser retrieves settings for a subject. Returns nil, nil when no
	// settings exist yet.
	FindByUser(ctx context.Context, subjectID string) (*entity.UserSettings, error)

	// Update persists changes to existing settings.
	Update(ctx context.Context, settings *entity.UserSettings) error
}
