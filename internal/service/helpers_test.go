package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/basura/basura-api/internal/auth"
	"github.com/basura/basura-api/internal/config"
	"github.com/basura/basura-api/internal/db"
	"github.com/basura/basura-api/internal/repository"
)

func newTestRepositories(t *testing.T) Repositories {
	t.Helper()
	cfg := &config.Config{
		Environment: "test",
		DB:          config.DBConfig{Driver: config.DriverSQLite, DSN: ":memory:"},
	}
	database, err := db.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })

	return Repositories{
		Users:      repository.NewUserRepository(database),
		Properties: repository.NewPropertyRepository(database),
		Clients:    repository.NewClientRepository(database),
		Attributes: repository.NewAttributeRepository(database),
		Entries:    repository.NewEntryRepository(database),
	}
}

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Minute, time.Hour, time.Hour)
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}
