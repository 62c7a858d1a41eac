package service

import (
	"fmt"
	"strings"

	"github.com/vibast-solutions/ms-go-accounts/config"

	"github.com/sirupsen/logrus"
)

// Sender delivers password reset emails. Delivery is a collaborator; callers
// treat a false return as a logged non-fatal failure.
type Sender interface {
	SendPasswordReset(toEmail, token string) bool
}

// LogSender writes the reset link to the log instead of sending mail. It is
// the default in environments without a configured mail provider.
type LogSender struct {
	frontendURL string
}

func NewLogSender(cfg *config.Config) *LogSender {
	return &LogSender{frontendURL: strings.TrimRight(cfg.FrontendURL, "/")}
}

func (s *LogSender) SendPasswordReset(toEmail, token string) bool {
	resetURL := fmt.Sprintf("%s/auth/reset?token=%s", s.frontendURL, token)
	logrus.WithFields(logrus.Fields{
		"to":        toEmail,
		"reset_url": resetURL,
	}).Info("password reset link generated (mail delivery not configured)")
	return true
}
