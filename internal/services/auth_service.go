package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitshop/internal/auth"
	"fitshop/internal/domain"
	"fitshop/internal/logging"
	"fitshop/internal/repository"
)

type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Session is a signed-in user together with its session credential.
type Session struct {
	User  *domain.User
	Token string
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if strings.TrimSpace(name) == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required: %w", domain.ErrInvalidInput)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Name: strings.TrimSpace(name), Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Uint64("user_id", user.ID).Msg("user signed up")
	return s.session(user)
}

// Login fails with ErrInvalidCredentials for both an unknown email and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Uint64("user_id", user.ID).Msg("stored password hash unreadable")
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return s.session(user)
}

func (s *AuthService) Verify(token string) (domain.Identity, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return domain.Identity{}, errors.Join(domain.ErrUnauthorized, err)
	}
	return id, nil
}

func (s *AuthService) session(user *domain.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}
