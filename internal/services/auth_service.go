package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hailem/recallbox/internal/auth"
	"github.com/hailem/recallbox/internal/errors"
	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
)

// RegisterInput holds the fields needed to create an account.
type RegisterInput struct {
	FullName string
	Username string
	Email    string
	Password string
}

// AuthService handles registration, login and session revocation
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (string, *models.User, error)
	Logout(ctx context.Context, token *auth.Token) error
	Profile(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokens    *auth.TokenManager
	blocklist auth.Blocklist
	now       func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, blocklist auth.Blocklist) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokens:    tokens,
		blocklist: blocklist,
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	log := logger.FromContext(ctx)

	fullName := strings.TrimSpace(input.FullName)
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if fullName == "" {
		return nil, errors.NewValidationError("full_name", "must not be empty")
	}
	if len(username) < 3 {
		return nil, errors.NewValidationError("username", "must be at least 3 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errors.NewValidationError("email", "must be a valid email address")
	}
	if len(input.Password) < 8 {
		return nil, errors.NewValidationError("password", "must be at least 8 characters")
	}

	taken, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if taken {
		return nil, errors.NewConflictError("username is already taken")
	}
	taken, err = s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if taken {
		return nil, errors.NewConflictError("email is already registered")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.userRepo.Insert(ctx, user); err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Info("user registered: username=%s", username)
	return &user, nil
}

// Login accepts a username or an email as the identifier.
func (s *authService) Login(ctx context.Context, identifier, password string) (string, *models.User, error) {
	log := logger.FromContext(ctx)

	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return "", nil, errors.NewValidationError("credentials", "identifier and password are required")
	}

	user, err := s.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return "", nil, errors.NewInternalError(err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		// Same error for unknown identifier and wrong password.
		return "", nil, errors.NewUnauthorizedError("invalid credentials")
	}

	signed, _, err := s.tokens.Issue(user.ID, s.now())
	if err != nil {
		return "", nil, errors.NewInternalError(err)
	}

	log.Info("user logged in: username=%s", user.Username)
	return signed, user, nil
}

// Logout revokes the presented token for its remaining lifetime.
func (s *authService) Logout(ctx context.Context, token *auth.Token) error {
	if err := s.blocklist.Revoke(ctx, token.JTI, token.ExpiresAt); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	return user, nil
}
