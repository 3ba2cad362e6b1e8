package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/jbj828/express-tdd/internal/domain"
	"github.com/jbj828/express-tdd/internal/repository"
	"github.com/jbj828/express-tdd/pkg/config"
	"github.com/jbj828/express-tdd/pkg/crypto"
	jwtpkg "github.com/jbj828/express-tdd/pkg/jwt"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password, so
// the response never reveals which one failed.
var ErrInvalidCredentials = errors.New("auth: incorrect credentials")

// Service handles authentication workflows.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
	cfg    config.APIConfig
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{users: users, logger: logger, cfg: cfg}
}

// TokenPair contains access and refresh tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Login authenticates a user by email and password and returns tokens.
func (s Service) Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return user, tokens, nil
}

// Authorize validates a bearer token and returns the associated user.
func (s Service) Authorize(ctx context.Context, token string) (*domain.User, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, errors.New("token required")
	}
	claims, err := jwtpkg.Parse(trimmed, s.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, userID)
}

func (s Service) issueTokens(userID int64) (TokenPair, error) {
	access, err := jwtpkg.GenerateToken(userID, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := jwtpkg.GenerateToken(userID, s.cfg.JWTSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: s.cfg.AccessTokenTTL}, nil
}
