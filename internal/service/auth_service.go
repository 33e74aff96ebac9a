package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/basura/basura-api/internal/auth"
	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/repository"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService struct {
	users    UserRepository
	clients  ClientRepository
	tokens   *auth.TokenManager
	mailer   Mailer
	resetURL string
	log      zerolog.Logger
}

func NewAuthService(users UserRepository, clients ClientRepository, tokens *auth.TokenManager, mailer Mailer, resetURL string, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		clients:  clients,
		tokens:   tokens,
		mailer:   mailer,
		resetURL: strings.TrimRight(resetURL, "/"),
		log:      log,
	}
}

// Login checks user accounts first and falls back to client accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	if username == "" || password == "" {
		return nil, newError(ErrInvalidInput, "username and password are required")
	}

	principal, hash, err := s.lookupCredentials(ctx, username)
	if err != nil {
		return nil, err
	}
	if hash == "" || auth.CheckPassword(password, hash) != nil {
		return nil, newError(ErrUnauthorized, "Invalid username or password")
	}

	access, err := s.tokens.IssueAccess(principal)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(principal)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) lookupCredentials(ctx context.Context, username string) (model.Principal, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return model.Principal{Username: user.Username, Role: user.Role}, user.PasswordHash, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.Principal{}, "", err
	}

	client, err := s.clients.GetByUsername(ctx, username)
	if err == nil {
		return model.Principal{Username: client.Username, Role: model.RoleClient}, client.PasswordHash, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return model.Principal{}, "", newError(ErrUnauthorized, "Invalid username or password")
	}
	return model.Principal{}, "", err
}

// Refresh issues a new access token carrying the identity of a verified refresh token.
func (s *AuthService) Refresh(principal model.Principal) (string, error) {
	return s.tokens.IssueAccess(principal)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return newError(ErrInvalidInput, "email is required")
	}
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, "User not found")
		}
		return err
	}

	token, err := s.tokens.IssuePasswordReset(email)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/%s", s.resetURL, token)
	body := fmt.Sprintf("Your link to reset your password is %s", link)
	if err := s.mailer.Send(ctx, email, "Password Reset", body); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	s.log.Info().Str("email", email).Msg("password reset link sent")
	return nil
}

// ResetPassword accepts any unexpired reset token; tokens are not single-use.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := s.tokens.ParsePasswordReset(token)
	if err != nil {
		return newError(ErrInvalidToken, "Invalid or expired token")
	}
	if newPassword == "" {
		return newError(ErrInvalidInput, "new_password is required")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordByEmail(ctx, email, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrInvalidToken, "Invalid or expired token")
		}
		return err
	}
	return nil
}

func (s *AuthService) UserDetails(ctx context.Context, principal model.Principal) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, principal.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfilePhoto stores an already validated, base64 encoded upload.
func (s *AuthService) UpdateProfilePhoto(ctx context.Context, principal model.Principal, encoded string) error {
	err := s.users.UpdateByUsername(ctx, principal.Username, model.UserPatch{ProfilePhoto: &encoded})
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "User not found")
	}
	return err
}

// EnsureSuperAdmin creates the bootstrap admin account when it does not exist yet.
func (s *AuthService) EnsureSuperAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if password == "" {
		return false, newError(ErrInvalidInput, "super admin password is not configured")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	err = s.users.Create(ctx, &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
