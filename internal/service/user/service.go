// Package user implements the registration workflow: per-field validation,
// email uniqueness, password hashing, and persistence.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/jbj828/express-tdd/internal/domain"
	"github.com/jbj828/express-tdd/internal/repository"
	"github.com/jbj828/express-tdd/pkg/config"
	"github.com/jbj828/express-tdd/pkg/crypto"
)

// Service handles user registration and listing.
type Service struct {
	users      repository.UserRepository
	logger     *slog.Logger
	bcryptCost int
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{users: users, logger: logger, bcryptCost: cfg.BcryptCost}
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidationError reports every failing field in declared order: username,
// email, password. At most one key per field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// Register validates the payload, verifies email uniqueness, hashes the
// password, and persists the user. Failing fields come back together as a
// *ValidationError; persistence is never touched unless every field passes.
func (s Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	usernameKey := validateUsername(in.Username)
	emailKey := validateEmail(in.Email)
	passwordKey := validatePassword(in.Password)

	// The uniqueness check runs whenever the email itself is structurally
	// valid, so an in-use email is reported alongside failures on the other
	// fields. A structurally invalid email never reaches the database.
	if emailKey == "" {
		_, err := s.users.GetUserByEmail(ctx, in.Email)
		switch {
		case err == nil:
			emailKey = KeyEmailInUse
		case errors.Is(err, repository.ErrNotFound):
			// email free
		default:
			return nil, fmt.Errorf("check email uniqueness: %w", err)
		}
	}

	if verr := collectFieldErrors(usernameKey, emailKey, passwordKey); verr != nil {
		return nil, verr
	}

	hash, err := crypto.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		// A concurrent duplicate submission can slip past the pre-check;
		// the unique index is authoritative and maps to the same error.
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, &ValidationError{Fields: []FieldError{{Field: "email", Key: KeyEmailInUse}}}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user registered", "user_id", u.ID)
	return u, nil
}

// List returns every registered user.
func (s Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

func collectFieldErrors(usernameKey, emailKey, passwordKey string) *ValidationError {
	var fields []FieldError
	if usernameKey != "" {
		fields = append(fields, FieldError{Field: "username", Key: usernameKey})
	}
	if emailKey != "" {
		fields = append(fields, FieldError{Field: "email", Key: emailKey})
	}
	if passwordKey != "" {
		fields = append(fields, FieldError{Field: "password", Key: passwordKey})
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
