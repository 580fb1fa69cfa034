package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// MailSender delivers one message; internal/mail provides the SMTP
// implementation.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SendEmailHandler processes TaskTypeSendEmail tasks.
type SendEmailHandler struct {
	sender MailSender
	logger *slog.Logger
}

// NewSendEmailHandler constructs the handler.
func NewSendEmailHandler(sender MailSender, logger *slog.Logger) *SendEmailHandler {
	return &SendEmailHandler{sender: sender, logger: logger}
}

// Handle delivers the mail. A malformed payload is never retried.
func (h *SendEmailHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if err := h.sender.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		if h.logger != nil {
			h.logger.Error("send email", slog.String("to", payload.To), slog.Any("error", err))
		}
		return err
	}
	return nil
}
