package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budgetsnap/backend/internal/integration/persistence/model"
)

// tokenRepository implements the adapters.RefreshTokenStore interface.
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) *tokenRepository {
	return &tokenRepository{
		db: db,
	}
}

// Save records an issued refresh token.
func (r *tokenRepository) Save(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	tokenModel := &model.RefreshTokenModel{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).Create(tokenModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// IsValid reports whether the token is known, not invalidated, and not
// expired. Unknown tokens are invalid, not an error.
func (r *tokenRepository) IsValid(ctx context.Context, token string) (bool, error) {
	var tokenModel model.RefreshTokenModel
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&tokenModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	if tokenModel.Invalidated {
		return false, nil
	}
	return time.Now().Before(tokenModel.ExpiresAt), nil
}

// Invalidate marks the token as revoked. Unknown tokens are a no-op.
func (r *tokenRepository) Invalidate(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token = ?", token).
		Update("invalidated", true)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
