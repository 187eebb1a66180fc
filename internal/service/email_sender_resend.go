package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/resendlabs/resend-go"
)

var ErrEmailNotConfigured = errors.New("email sender not configured")

type ResendEmailSender struct {
	From       string
	AppBaseURL string
	ResetPath  string

	send func(ctx context.Context, request *resend.SendEmailRequest) error
}

func NewResendEmailSender(apiKey string, from string, appBaseURL string) *ResendEmailSender {
	sender := &ResendEmailSender{
		From:       from,
		AppBaseURL: strings.TrimRight(appBaseURL, "/"),
		ResetPath:  "/reset-password",
	}
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return sender
	}
	client := resend.NewClient(apiKey)
	sender.send = func(ctx context.Context, request *resend.SendEmailRequest) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := client.Emails.Send(request)
		return err
	}
	return sender
}

func (s *ResendEmailSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	if s.send == nil {
		return ErrEmailNotConfigured
	}
	message := PasswordResetMessage(s.AppBaseURL, s.ResetPath, token)
	err := s.send(ctx, &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{email},
		Subject: message.Subject,
		Html:    message.HTML,
		Text:    message.Text,
	})
	if err != nil {
		return fmt.Errorf("resend password reset email: %w", err)
	}
	return nil
}

type EmailMessage struct {
	Subject string
	HTML    string
	Text    string
	Link    string
}

// PasswordResetMessage renders the reset email around a link that carries the
// plaintext token.
func PasswordResetMessage(baseURL string, path string, token string) EmailMessage {
	link := buildURL(baseURL, path, token)
	return EmailMessage{
		Subject: "Your Password Reset Link",
		HTML: fmt.Sprintf(
			"<p>Please click the link below to reset your password. The link expires in 10 minutes.</p><p><a href=\"%s\">Reset Password</a></p>",
			link,
		),
		Text: fmt.Sprintf("Please click the link below to reset your password.\n%s", link),
		Link: link,
	}
}

func buildURL(base string, path string, token string) string {
	base = strings.TrimRight(base, "/")
	if base == "" {
		return token
	}
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s%s?token=%s", base, path, url.QueryEscape(token))
}
