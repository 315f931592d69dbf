package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/domain/dto"
	"github.com/nnmag/storefront/internal/domain/model"
	"github.com/nnmag/storefront/internal/repository"
)

// TokenService issues and validates the JWT pairs that staff accounts
// use against the upload endpoints.
type TokenService interface {
	// GenerateTokenPair issues a new access and refresh token pair.
	GenerateTokenPair(ctx context.Context, user *model.User) (*dto.TokenPair, error)
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	// ValidateRefreshToken validates a refresh token and returns its claims.
	ValidateRefreshToken(tokenString string) (*dto.Claims, error)
	// InvalidateAccessToken blacklists an access token until it expires.
	InvalidateAccessToken(ctx context.Context, tokenString string) error
	// InvalidateUserTokens removes all refresh tokens for an account.
	InvalidateUserTokens(ctx context.Context, userID primitive.ObjectID) error
	// DeleteRefreshToken removes a specific refresh token.
	DeleteRefreshToken(ctx context.Context, tokenString string) error
	// FindRefreshToken looks up a stored refresh token.
	FindRefreshToken(ctx context.Context, tokenString string) (*model.Token, error)
}

// TokenServiceImpl implements TokenService over the Mongo token store.
type TokenServiceImpl struct {
	secretKey        []byte
	refreshSecretKey []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	tokenRepo        repository.TokenRepositoryInterface
}

// TokenConfig holds configuration for the token service.
type TokenConfig struct {
	SecretKey        string
	RefreshSecretKey string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
}

// NewTokenConfigFromAuthConfig creates TokenConfig from config.AuthConfig.
func NewTokenConfigFromAuthConfig(authConfig config.AuthConfig) TokenConfig {
	return TokenConfig{
		SecretKey:        authConfig.JWTSecretKey,
		RefreshSecretKey: authConfig.JWTRefreshSecret,
		AccessTokenTTL:   authConfig.AccessTokenTTL,
		RefreshTokenTTL:  authConfig.RefreshTokenTTL,
	}
}

// NewTokenService creates a token service backed by the given repository.
func NewTokenService(tokenRepo repository.TokenRepositoryInterface, cfg TokenConfig) TokenService {
	return &TokenServiceImpl{
		secretKey:        []byte(cfg.SecretKey),
		refreshSecretKey: []byte(cfg.RefreshSecretKey),
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
		tokenRepo:        tokenRepo,
	}
}

// GenerateTokenPair issues an access and refresh token pair and persists
// the refresh token so it can be revoked on logout.
func (s *TokenServiceImpl) GenerateTokenPair(ctx context.Context, user *model.User) (*dto.TokenPair, error) {
	if user.ID.IsZero() {
		return nil, errors.New("user ID is zero, cannot create token")
	}

	accessToken, _, err := s.signToken(user, s.secretKey, s.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.signToken(user, s.refreshSecretKey, s.refreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	token := &model.Token{
		UserID:    user.ID,
		Token:     refreshToken,
		Type:      "refresh",
		ExpiresAt: refreshExpiresAt,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
	}, nil
}

// ValidateAccessToken checks the blacklist first, then verifies the
// signature and expiry.
func (s *TokenServiceImpl) ValidateAccessToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	isBlacklisted, err := s.tokenRepo.IsBlacklisted(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if isBlacklisted {
		return nil, ErrTokenBlacklisted
	}

	return parseClaims(tokenString, s.secretKey)
}

// ValidateRefreshToken verifies a refresh token's signature and expiry.
func (s *TokenServiceImpl) ValidateRefreshToken(tokenString string) (*dto.Claims, error) {
	return parseClaims(tokenString, s.refreshSecretKey)
}

// InvalidateAccessToken blacklists an access token. The blacklist entry
// expires together with the token itself.
func (s *TokenServiceImpl) InvalidateAccessToken(ctx context.Context, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &ClaimsWithJWT{}, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	})
	if err != nil {
		return err
	}

	claimsWithJWT, ok := token.Claims.(*ClaimsWithJWT)
	if !ok {
		return ErrInvalidToken
	}

	expiresAt := time.Now().Add(s.accessTokenTTL)
	if claimsWithJWT.ExpiresAt != nil {
		expiresAt = claimsWithJWT.ExpiresAt.Time
	}

	blacklistToken := &model.Token{
		UserID:    claimsWithJWT.UserID,
		Token:     tokenString,
		Type:      "blacklist",
		ExpiresAt: expiresAt,
	}

	return s.tokenRepo.Create(ctx, blacklistToken)
}

// InvalidateUserTokens removes all refresh tokens for an account.
func (s *TokenServiceImpl) InvalidateUserTokens(ctx context.Context, userID primitive.ObjectID) error {
	return s.tokenRepo.DeleteByUserID(ctx, userID, "refresh")
}

// DeleteRefreshToken removes a specific refresh token.
func (s *TokenServiceImpl) DeleteRefreshToken(ctx context.Context, tokenString string) error {
	return s.tokenRepo.DeleteByToken(ctx, tokenString)
}

// FindRefreshToken looks up a stored refresh token.
func (s *TokenServiceImpl) FindRefreshToken(ctx context.Context, tokenString string) (*model.Token, error) {
	return s.tokenRepo.FindByToken(ctx, tokenString)
}

// signToken signs an HS256 token carrying the account's claims.
func (s *TokenServiceImpl) signToken(user *model.User, key []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expirationTime := now.Add(ttl)

	claims := &ClaimsWithJWT{
		Claims: dto.Claims{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Roles:  user.Roles,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expirationTime, nil
}

// parseClaims verifies an HS256 token against key and extracts the claims.
func parseClaims(tokenString string, key []byte) (*dto.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ClaimsWithJWT{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return key, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claimsWithJWT, ok := token.Claims.(*ClaimsWithJWT); ok && token.Valid {
		return &claimsWithJWT.Claims, nil
	}

	return nil, ErrInvalidToken
}
