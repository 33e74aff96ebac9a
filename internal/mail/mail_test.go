package mail

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basura/basura-api/internal/config"
)

func TestBuildMessage(t *testing.T) {
	sender := NewSMTPSender(config.MailConfig{From: "noreply@basura.example"}, zerolog.Nop())

	msg, err := sender.buildMessage("user@example.com", "Password Reset", "link")
	require.NoError(t, err)
	assert.NotNil(t, msg)
}

func TestBuildMessageRejectsBadRecipient(t *testing.T) {
	sender := NewSMTPSender(config.MailConfig{From: "noreply@basura.example"}, zerolog.Nop())

	_, err := sender.buildMessage("not an address", "Password Reset", "link")
	assert.Error(t, err)
}

func TestClientOptionsAddAuthOnlyWithUsername(t *testing.T) {
	anonymous := NewSMTPSender(config.MailConfig{Port: 25}, zerolog.Nop())
	withAuth := NewSMTPSender(config.MailConfig{Port: 587, Username: "u", Password: "p", TLS: true}, zerolog.Nop())

	assert.Len(t, anonymous.clientOptions(), 3)
	assert.Len(t, withAuth.clientOptions(), 6)
}

func TestLogSenderNeverFails(t *testing.T) {
	assert.NoError(t, NewLogSender(zerolog.Nop()).Send(context.Background(), "a@example.com", "s", "b"))
}
