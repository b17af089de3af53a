package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
	"github.com/Gopikasanthosh455/placement-app/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Register validates the whole form before the identity provider is called
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError(err)
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, validationError(err)
	}
	email := strings.TrimSpace(req.Email)

	taken, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "check email")
	}
	if taken {
		return nil, ErrEmailTaken
	}

	identity, err := s.repo.Identity().CreateAccount(ctx, email, req.Password, role)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: failed to create account: %w", ErrTransientStore, err)
	}

	user := &models.User{
		ID:          identity.ID,
		Role:        role,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Email:       email,
		Institution: strings.TrimSpace(req.Institution),
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		// the provider account exists without a profile row; sign-in will
		// work but the user has no role until an operator fixes it
		s.logger.Error("Account created without profile",
			"user_id", identity.ID,
			"email", email,
			"error", err)
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: failed to create profile: %w", ErrTransientStore, err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", role)
	return user, nil
}

func (s *authService) SignIn(ctx context.Context, req *SignInRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError(err)
	}
	email := strings.TrimSpace(req.Email)

	token, err := s.repo.Identity().SignIn(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrUnauthenticated) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: sign in: %w", ErrTransientStore, err)
	}

	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "load user")
	}
	return &AuthResponse{AuthToken: token, User: user}, nil
}

func (s *authService) SignOut(ctx context.Context, session *models.Session) error {
	if session == nil || session.Token == "" {
		return ErrUnauthorized
	}
	if err := s.repo.Identity().SignOut(ctx, session.Token); err != nil {
		return fmt.Errorf("%w: sign out: %w", ErrTransientStore, err)
	}
	s.logger.Info("User signed out", "user_id", session.UserID)
	return nil
}

func (s *authService) Me(ctx context.Context, session *models.Session) (*models.User, error) {
	if session == nil || session.UserID == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.repo.User().GetByID(ctx, session.UserID)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "get user")
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, session *models.Session, req *ChangePasswordRequest) error {
	if session == nil || session.UserID == "" {
		return ErrUnauthorized
	}
	if err := s.validator.Validate(req); err != nil {
		return validationError(err)
	}
	if err := s.repo.Identity().ChangePassword(ctx, session, req.Password); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: change password: %w", ErrTransientStore, err)
	}
	s.logger.Info("Password changed", "user_id", session.UserID)
	return nil
}

// Authenticate trusts the users table for the role; the token tag is only
// used when the row cannot be read
func (s *authService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.repo.Identity().CurrentUser(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUnauthenticated) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: resolve token: %w", ErrTransientStore, err)
	}

	user, err := s.repo.User().GetByID(ctx, session.UserID)
	switch {
	case err == nil:
		session.Role = user.Role
		if session.Email == "" {
			session.Email = user.Email
		}
	case repositories.IsNotFoundError(err):
		if session.Role == "" {
			return nil, ErrUnauthorized
		}
	default:
		if session.Role == "" {
			return nil, storeError(err, ErrUserNotFound, "resolve role")
		}
		s.logger.Warn("Falling back to token role", "user_id", session.UserID, "error", err)
	}
	return session, nil
}
