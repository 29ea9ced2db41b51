package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/domain/model"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// dummyHash is checked for unknown emails so rejection takes the same time
// whether or not the account exists.
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return hash
})

// AuthService authenticates instructors.
type AuthService interface {
	// Login checks the credentials and issues an access token.
	Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.Instructor, error)
	// ValidateToken validates an access token and returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
}

// AuthServiceImpl implements AuthService over instructor accounts loaded
// from configuration.
type AuthServiceImpl struct {
	instructors  map[string]model.Instructor
	tokenService TokenService
}

// NewAuthService creates an auth service. accounts maps email to bcrypt hash;
// emails are matched case-insensitively.
func NewAuthService(accounts map[string]string, tokenService TokenService) *AuthServiceImpl {
	instructors := make(map[string]model.Instructor, len(accounts))
	for email, hash := range accounts {
		key := normalizeEmail(email)
		instructors[key] = model.Instructor{
			Email:        key,
			PasswordHash: hash,
			Role:         model.RoleInstructor,
		}
	}
	return &AuthServiceImpl{instructors: instructors, tokenService: tokenService}
}

// Login checks the credentials and issues an access token.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.Instructor, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	instructor, ok := s.instructors[normalizeEmail(email)]
	var hash []byte
	if ok {
		hash = []byte(instructor.PasswordHash)
	} else {
		hash = dummyHash()
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !ok {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.tokenService.GenerateAccessToken(instructor)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return pair, &instructor, nil
}

// ValidateToken validates an access token and returns its claims.
func (s *AuthServiceImpl) ValidateToken(_ context.Context, tokenString string) (*dto.Claims, error) {
	return s.tokenService.ValidateAccessToken(tokenString)
}

// HashPassword returns a bcrypt hash suitable for INSTRUCTOR_ACCOUNTS.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ AuthService = (*AuthServiceImpl)(nil)
