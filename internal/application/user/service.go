// Package user is the application service over the user repository: account
// registration, credential checks, and password changes. Passwords only ever
// cross this boundary hashed.
package user

import (
	"context"
	"log/slog"

	"fixdesk/internal/domain/user"
	apperrors "fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
	"fixdesk/internal/shared/validation"
)

// PasswordHasher abstracts the bcrypt implementation for tests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type Service struct {
	users  user.Repository
	hasher PasswordHasher
	log    *slog.Logger
}

func NewService(users user.Repository, hasher PasswordHasher) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		log:    logger.WithComponent("user-service"),
	}
}

type RegisterCommand struct {
	Email    string  `json:"email" validate:"required,email,max=200"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	Role     string  `json:"role" validate:"omitempty,oneof=technician admin"`
}

// Register creates an account with the password stored as a bcrypt hash.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*user.User, error) {
	if err := validation.ValidateStruct("user", cmd); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, apperrors.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		Email:    cmd.Email,
		Password: &hash,
		Name:     cmd.Name,
		Phone:    cmd.Phone,
		Role:     cmd.Role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user registered", "user_id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}

// Authenticate checks the credentials and returns the account. Wrong email
// and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if apperrors.IsNotFound(err) {
		return nil, apperrors.NewValidation("user", "invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if u.Password == nil {
		return nil, apperrors.NewValidation("user", "invalid credentials")
	}

	if err := s.hasher.Verify(password, *u.Password); err != nil {
		s.log.Warn("failed login attempt", "email", email)
		return nil, apperrors.NewValidation("user", "invalid credentials")
	}
	return u, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *Service) ChangePassword(ctx context.Context, id, current, updated string) error {
	if len(updated) < 8 {
		return apperrors.NewValidation("user", "password must be at least 8 characters long")
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Password != nil {
		if err := s.hasher.Verify(current, *u.Password); err != nil {
			return apperrors.NewValidation("user", "invalid credentials")
		}
	}

	hash, err := s.hasher.Hash(updated)
	if err != nil {
		return apperrors.NewInternal("failed to hash password", err)
	}
	if _, err := s.users.Update(ctx, id, user.Update{Password: &hash}); err != nil {
		return err
	}

	s.log.Info("password changed", "user_id", id)
	return nil
}
