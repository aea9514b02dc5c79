// Package notify delivers best-effort push messages and emails. Failures are
// returned to the caller, which logs them and carries on.
package notify

import (
	"context"
	"fmt"

	"volunteer-backend/internal/config"
	"volunteer-backend/internal/logger"
)

// Pusher sends a push message to every device subscribed to a topic.
type Pusher interface {
	Push(ctx context.Context, topic, title, body string, data map[string]string) error
}

// Mailer sends a single plain-text and HTML email.
type Mailer interface {
	Send(ctx context.Context, to, toName, subject, plainText, html string) error
}

// UserTopic is the push topic a user's devices subscribe to.
func UserTopic(userID int32) string {
	return fmt.Sprintf("user-%d", userID)
}

type logPusher struct{}

// NewLogPusher returns a Pusher that only logs. Used when Firebase is not configured.
func NewLogPusher() Pusher {
	return logPusher{}
}

func (logPusher) Push(ctx context.Context, topic, title, body string, data map[string]string) error {
	logger.FromContext(ctx).Info("Push message (not sent)", "topic", topic, "title", title, "body", body, "data", data)
	return nil
}

type logMailer struct{}

// NewLogMailer returns a Mailer that only logs. Used when SendGrid is not configured.
func NewLogMailer() Mailer {
	return logMailer{}
}

func (logMailer) Send(ctx context.Context, to, toName, subject, plainText, html string) error {
	logger.FromContext(ctx).Info("Email (not sent)", "to", to, "subject", subject, "body", plainText)
	return nil
}

// NewPusherFromConfig returns an FCM pusher when credentials are configured,
// otherwise a logging pusher.
func NewPusherFromConfig(ctx context.Context, cfg config.PushConfig) (Pusher, error) {
	if cfg.CredentialsFile == "" {
		logger.Info("Push notifications disabled; logging instead")
		return NewLogPusher(), nil
	}
	return NewFCMPusher(ctx, cfg.ProjectID, cfg.CredentialsFile)
}

// NewMailerFromConfig returns a SendGrid mailer when an API key is
// configured, otherwise a logging mailer.
func NewMailerFromConfig(cfg config.EmailConfig) Mailer {
	if cfg.SendGridAPIKey == "" {
		logger.Info("SendGrid not configured; logging emails instead")
		return NewLogMailer()
	}
	return NewSendGridMailer(cfg.SendGridAPIKey, cfg.FromEmail, cfg.FromName)
}
