package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/suppository-service/config"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/domain/model"
)

const tokenIssuer = "suppository-service"

// TokenService issues and validates instructor access tokens.
type TokenService interface {
	// GenerateAccessToken signs a token for the instructor.
	GenerateAccessToken(instructor model.Instructor) (*dto.TokenPair, error)
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*dto.Claims, error)
}

// ClaimsWithJWT combines the application claims with the registered JWT claims.
type ClaimsWithJWT struct {
	dto.Claims
	jwt.RegisteredClaims
}

// TokenConfig holds configuration for the token service.
type TokenConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

// NewTokenConfigFromAuthConfig creates TokenConfig from config.AuthConfig.
func NewTokenConfigFromAuthConfig(authConfig config.AuthConfig) TokenConfig {
	return TokenConfig{
		SecretKey:      authConfig.JWTSecretKey,
		AccessTokenTTL: authConfig.AccessTokenTTL,
	}
}

// TokenServiceImpl implements TokenService with HS256-signed JWTs.
type TokenServiceImpl struct {
	secretKey      []byte
	accessTokenTTL time.Duration
	now            func() time.Time
}

// NewTokenService creates a new token service.
func NewTokenService(cfg TokenConfig) *TokenServiceImpl {
	return &TokenServiceImpl{
		secretKey:      []byte(cfg.SecretKey),
		accessTokenTTL: cfg.AccessTokenTTL,
		now:            time.Now,
	}
}

// GenerateAccessToken signs a token for the instructor.
func (s *TokenServiceImpl) GenerateAccessToken(instructor model.Instructor) (*dto.TokenPair, error) {
	if instructor.Email == "" {
		return nil, errors.New("instructor email is empty, cannot create token")
	}

	now := s.now()
	claims := &ClaimsWithJWT{
		Claims: dto.Claims{
			Email: instructor.Email,
			Role:  instructor.Role,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   instructor.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &dto.TokenPair{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessTokenTTL.Seconds()),
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *TokenServiceImpl) ValidateAccessToken(tokenString string) (*dto.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ClaimsWithJWT{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*ClaimsWithJWT); ok && token.Valid {
		return &claims.Claims, nil
	}
	return nil, ErrInvalidToken
}

var _ TokenService = (*TokenServiceImpl)(nil)
