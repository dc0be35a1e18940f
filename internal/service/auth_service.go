package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskgarden/internal/logger"
	"taskgarden/internal/models/user"
	"taskgarden/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost 12 keeps hashing around tens of milliseconds.
const bcryptCost = 12

type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	sessionTTL time.Duration
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, NewValidationError(MsgMissingFields)
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, NewConflict(MsgUsernameTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, NewConflict(MsgEmailTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		// two registrations can race past the lookups above
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewConflict(MsgUsernameTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("Service: user registered",
		zap.Int64("user_id", u.ID),
		zap.String("username", u.Username))
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*user.Session, *user.User, error) {
	if username == "" || password == "" {
		return nil, nil, NewValidationError(MsgMissingCredentials)
	}

	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, NewAuthError(MsgBadCredentials)
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil, NewAuthError(MsgBadCredentials)
	}

	now := time.Now()
	sess := &user.Session{
		Token:     uuid.New(),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.CreateSession(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	logger.Info("Service: user logged in", zap.Int64("user_id", u.ID))
	return sess, u, nil
}

// Logout is idempotent: an already-gone session is not an error.
func (s *AuthService) Logout(ctx context.Context, token uuid.UUID) error {
	err := s.sessions.DeleteSession(ctx, token)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Authenticate resolves the session token to its user. Unknown and
// expired tokens both come back as an auth error.
func (s *AuthService) Authenticate(ctx context.Context, token uuid.UUID) (*user.User, error) {
	sess, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewAuthError(MsgLoginRequired)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if sess.Expired(time.Now()) {
		if err := s.sessions.DeleteSession(ctx, token); err != nil && !errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Service: drop expired session failed", zap.Error(err))
		}
		return nil, NewAuthError(MsgLoginRequired)
	}

	u, err := s.users.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewAuthError(MsgLoginRequired)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
