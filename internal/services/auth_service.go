package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/session"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account registration, credential checks and deletion.
type AuthService struct {
	userRepo   repositories.UserRepository
	bcryptCost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	IsAdmin  bool
}

// Register creates a new user after checking that neither the username nor
// the email is taken. The password is stored as a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := s.ensureAvailable(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}
	if in.IsAdmin {
		user.Role = models.RoleAdmin
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	log.Printf("Registered user %s (role %s)", user.Username, user.Role)
	return user, nil
}

func (s *AuthService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return fmt.Errorf("username '%s' already taken: %w", username, apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("email '%s' already registered: %w", email, apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

// Login checks the credentials and returns the user. Unknown usernames and
// wrong passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Burn the same bcrypt work as a real check.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(password))
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}
	return user, nil
}

// dummyHash is compared against when the username is unknown so that both
// login failures cost the same.
func (s *AuthService) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("storefront-dummy-password"), s.bcryptCost)
		if err != nil {
			log.Printf("Error generating dummy password hash: %v", err)
			return
		}
		s.dummy = hash
	})
	return s.dummy
}

// GetUser returns the user with the given username.
func (s *AuthService) GetUser(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// DeleteUser removes target on behalf of caller. Callers may always delete
// themselves; admins may delete anyone. The returned flag reports a
// self-delete so the caller's session can be ended.
func (s *AuthService) DeleteUser(ctx context.Context, caller *session.Identity, target string) (bool, error) {
	if err := session.Authorize(caller, ""); err != nil {
		return false, err
	}
	self := caller.Username == target
	if !self {
		if err := session.Authorize(caller, models.RoleAdmin); err != nil {
			return false, err
		}
	}
	if err := s.userRepo.DeleteByUsername(ctx, target); err != nil {
		return false, err
	}
	log.Printf("User %s deleted by %s", target, caller.Username)
	return self, nil
}

// EnsureAdmin creates an admin account when no admin exists yet. It returns
// false without error when an admin is already present.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password, email string) (bool, error) {
	n, err := s.userRepo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if password == "" {
		return false, fmt.Errorf("no admin account exists and no admin password is configured: %w", apperrors.ErrValidation)
	}
	if _, err := s.Register(ctx, RegisterInput{Username: username, Password: password, Email: email, IsAdmin: true}); err != nil {
		return false, fmt.Errorf("failed to create admin account: %w", err)
	}
	return true, nil
}
