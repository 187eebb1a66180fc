package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// ConsoleEmailSender writes reset emails to the log. It is used when no
// email provider is configured.
type ConsoleEmailSender struct {
	Logger     logrus.FieldLogger
	AppBaseURL string
	ResetPath  string
}

func (s ConsoleEmailSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	logger := s.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	message := PasswordResetMessage(s.AppBaseURL, s.ResetPath, token)
	logger.WithFields(logrus.Fields{
		"to":      email,
		"subject": message.Subject,
		"link":    message.Link,
	}).Info("password reset email")
	return nil
}
