package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/items-api/internal/auth"
	"github.com/yukikurage/items-api/internal/constants"
	"github.com/yukikurage/items-api/internal/models"
	"github.com/yukikurage/items-api/internal/repository"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenIssuer
	validate *validator.Validate

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// Credentials is the email/password pair used for sign-up and sign-in.
type Credentials struct {
	Email    string
	Password string
}

// AuthResult is a user together with a freshly issued token.
type AuthResult struct {
	User  *models.User
	Token string
}

// SignUp registers a new user and issues a token for it.
func (s *AuthService) SignUp(ctx context.Context, input Credentials) (*AuthResult, error) {
	if err := s.validate.Var(input.Email, "required,email"); err != nil {
		return nil, validationError("a valid email is required")
	}
	if utf8.RuneCountInString(input.Password) < constants.MinPasswordLength {
		return nil, validationError("password must be at least %d characters", constants.MinPasswordLength)
	}
	if len(input.Password) > constants.MaxPasswordBytes {
		return nil, validationError("password must be at most %d bytes", constants.MaxPasswordBytes)
	}

	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, validationError("password must be at most %d bytes", constants.MaxPasswordBytes)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent sign-up won the race for this email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// SignIn verifies credentials and issues a token.
func (s *AuthService) SignIn(ctx context.Context, input Credentials) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Spend the same bcrypt time as a real comparison.
			s.hasher.Verify(input.Password, s.dummyPasswordHash())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		// Hash only fails for over-long input; on error Verify simply returns false.
		s.dummyHash, _ = s.hasher.Hash("dummy-password-for-timing")
	})
	return s.dummyHash
}
