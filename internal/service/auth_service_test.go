package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basura/basura-api/internal/auth"
	"github.com/basura/basura-api/internal/model"
)

func newAuthFixture(t *testing.T) (*AuthService, Repositories, *fakeMailer, *auth.TokenManager) {
	t.Helper()
	repos := newTestRepositories(t)
	mailer := &fakeMailer{}
	tokens := newTestTokens()
	svc := NewAuthService(repos.Users, repos.Clients, tokens, mailer, "http://localhost:5000/reset-password/", zerolog.Nop())
	return svc, repos, mailer, tokens
}

func createUser(t *testing.T, repos Repositories, username, email, password string, role model.Role) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, repos.Users.Create(context.Background(), &model.User{
		EmployeeID:   "EMP" + username,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}))
}

func TestLoginIssuesTokensWithIdentity(t *testing.T) {
	svc, repos, _, tokens := newAuthFixture(t)
	createUser(t, repos, "alice", "alice@example.com", "pw", model.RoleEmployee)

	pair, err := svc.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)

	principal, err := tokens.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.Principal{Username: "alice", Role: model.RoleEmployee}, principal)

	principal, err = tokens.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", principal.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, repos, _, _ := newAuthFixture(t)
	createUser(t, repos, "alice", "alice@example.com", "pw", model.RoleEmployee)

	_, err := svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid username or password", err.Error())

	_, err = svc.Login(context.Background(), "nobody", "pw")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginFallsBackToClients(t *testing.T) {
	svc, repos, _, tokens := newAuthFixture(t)
	hash, err := auth.HashPassword("clientpw")
	require.NoError(t, err)
	require.NoError(t, repos.Clients.Create(context.Background(), &model.Client{
		ClientID: "CLI00001", Username: "acme", PasswordHash: hash,
	}))

	pair, err := svc.Login(context.Background(), "acme", "clientpw")
	require.NoError(t, err)

	principal, err := tokens.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleClient, principal.Role)
}

func TestRefreshKeepsIdentity(t *testing.T) {
	svc, _, _, tokens := newAuthFixture(t)
	principal := model.Principal{Username: "bob", Role: model.RoleAdmin}

	access, err := svc.Refresh(principal)
	require.NoError(t, err)

	got, err := tokens.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, principal, got)
}

func TestPasswordResetEndToEnd(t *testing.T) {
	ctx := context.Background()
	svc, repos, mailer, _ := newAuthFixture(t)
	createUser(t, repos, "carol", "carol@example.com", "old", model.RoleEmployee)

	require.NoError(t, svc.ForgotPassword(ctx, "carol@example.com"))

	mail := mailer.last()
	assert.Equal(t, "carol@example.com", mail.To)
	assert.Equal(t, "Password Reset", mail.Subject)
	require.Contains(t, mail.Body, "http://localhost:5000/reset-password/")
	token := mail.Body[strings.LastIndex(mail.Body, "/")+1:]

	require.NoError(t, svc.ResetPassword(ctx, token, "new"))
	_, err := svc.Login(ctx, "carol", "new")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "carol", "old")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Tokens are not single-use: the same link still works after a second change.
	require.NoError(t, svc.ResetPassword(ctx, token, "newer"))
	_, err = svc.Login(ctx, "carol", "newer")
	require.NoError(t, err)
}

func TestPasswordResetFailures(t *testing.T) {
	ctx := context.Background()
	svc, _, _, tokens := newAuthFixture(t)

	err := svc.ForgotPassword(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.ResetPassword(ctx, "garbage", "pw")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, "Invalid or expired token", err.Error())

	token, err := tokens.IssuePasswordReset("ghost@example.com")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "pw"), ErrInvalidToken)
}

func TestForgotPasswordSurfacesMailFailure(t *testing.T) {
	svc, repos, mailer, _ := newAuthFixture(t)
	createUser(t, repos, "dave", "dave@example.com", "pw", model.RoleAdmin)
	mailer.err = errors.New("relay down")

	err := svc.ForgotPassword(context.Background(), "dave@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestUserDetailsAndProfilePhoto(t *testing.T) {
	ctx := context.Background()
	svc, repos, _, _ := newAuthFixture(t)
	createUser(t, repos, "erin", "erin@example.com", "pw", model.RoleEmployee)
	principal := model.Principal{Username: "erin", Role: model.RoleEmployee}

	require.NoError(t, svc.UpdateProfilePhoto(ctx, principal, "aGVsbG8="))

	user, err := svc.UserDetails(ctx, principal)
	require.NoError(t, err)
	require.NotNil(t, user.ProfilePhoto)
	assert.Equal(t, "aGVsbG8=", *user.ProfilePhoto)

	ghost := model.Principal{Username: "ghost", Role: model.RoleEmployee}
	_, err = svc.UserDetails(ctx, ghost)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.UpdateProfilePhoto(ctx, ghost, "x"), ErrNotFound)
}

func TestEnsureSuperAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAuthFixture(t)

	created, err := svc.EnsureSuperAdmin(ctx, "superadmin", "somepassword")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureSuperAdmin(ctx, "superadmin", "somepassword")
	require.NoError(t, err)
	assert.False(t, created)

	pair, err := svc.Login(ctx, "superadmin", "somepassword")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = svc.EnsureSuperAdmin(ctx, "root", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
