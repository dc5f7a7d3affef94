package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/application/adapter"
)

// RefreshTokenStore persists issued refresh tokens so they can be revoked.
type RefreshTokenStore interface {
	Save(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	IsValid(ctx context.Context, token string) (bool, error)
	Invalidate(ctx context.Context, token string) error
}

// JWTService implements adapter.TokenService using HS256 signed JWTs.
// Refresh tokens are additionally recorded in the store so logout and
// rotation can revoke them before expiry.
type JWTService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	store         RefreshTokenStore
}

// CustomClaims represents the claims embedded in issued tokens.
type CustomClaims struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	TokenType   string    `json:"token_type"`
	jwt.RegisteredClaims
}

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

// NewJWTService creates a new JWT service instance.
func NewJWTService(secret string, accessExpiry, refreshExpiry time.Duration, store RefreshTokenStore) *JWTService {
	if accessExpiry <= 0 {
		accessExpiry = 15 * time.Minute
	}
	if refreshExpiry <= 0 {
		refreshExpiry = 7 * 24 * time.Hour
	}
	return &JWTService{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		store:         store,
	}
}

// GenerateTokenPair generates a new access and refresh token pair.
func (s *JWTService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email, displayName string) (*adapter.TokenPair, error) {
	now := time.Now()

	accessToken, err := s.sign(userID, email, displayName, accessTokenType, now, now.Add(s.accessExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshExpiresAt := now.Add(s.refreshExpiry)
	refreshToken, err := s.sign(userID, email, displayName, refreshTokenType, now, refreshExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.store.Save(ctx, userID, refreshToken, refreshExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &adapter.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateAccessToken verifies an access token and returns its claims.
func (s *JWTService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.validate(token, accessTokenType)
}

// ValidateRefreshToken verifies a refresh token and returns its claims.
// The token must be cryptographically valid and not revoked in the store.
func (s *JWTService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.validate(token, refreshTokenType)
	if err != nil {
		return nil, err
	}

	valid, err := s.store.IsValid(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token validity: %w", err)
	}
	if !valid {
		return nil, errors.New("refresh token has been invalidated")
	}
	return claims, nil
}

// InvalidateRefreshToken invalidates a refresh token.
func (s *JWTService) InvalidateRefreshToken(ctx context.Context, token string) error {
	return s.store.Invalidate(ctx, token)
}

func (s *JWTService) sign(userID uuid.UUID, email, displayName, tokenType string, issuedAt, expiresAt time.Time) (string, error) {
	claims := CustomClaims{
		UserID:      userID,
		Email:       email,
		DisplayName: displayName,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique jti keeps tokens issued within the same second from
			// colliding on the store's unique token column.
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) validate(tokenString, expectedType string) (*adapter.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("unexpected token type: %s", claims.TokenType)
	}

	return &adapter.TokenClaims{
		UserID:      claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}
