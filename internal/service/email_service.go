package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/unimate-app/unimate-api/internal/models"
	"github.com/unimate-app/unimate-api/pkg/config"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
	"github.com/unimate-app/unimate-api/pkg/jobs"
)

const (
	jobTypeContact   = "contact"
	jobTypeSubscribe = "subscribe"
)

type emailPayload struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// EmailService relays contact-form submissions to the site inbox and sends
// subscription confirmations. Delivery happens off the request path through
// a background queue with retries.
type EmailService struct {
	queue        *jobs.Queue
	send         func(m *gomail.Message) error
	validator    *validator.Validate
	logger       *zap.Logger
	from         string
	contactEmail string
}

// NewEmailService constructs an EmailService backed by SMTP.
func NewEmailService(cfg config.EmailConfig, validate *validator.Validate, logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	s := &EmailService{
		send:         func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		validator:    validate,
		logger:       logger,
		from:         cfg.From,
		contactEmail: cfg.ContactEmail,
	}

	s.queue = jobs.NewQueue("email", s.deliver, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: 5 * time.Second,
		Logger:     logger,
	})

	return s
}

// Start launches the delivery workers.
func (s *EmailService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the delivery workers.
func (s *EmailService) Stop() {
	s.queue.Stop()
}

// SendContact queues a contact-form submission for delivery to the site
// inbox. Replies go straight to the sender.
func (s *EmailService) SendContact(ctx context.Context, req models.ContactRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Missing required fields")
	}
	if s.contactEmail == "" {
		return appErrors.Clone(appErrors.ErrInternal, "Contact inbox is not configured")
	}

	body := fmt.Sprintf("<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(req.Name), html.EscapeString(req.Email), html.EscapeString(req.Message))

	return s.enqueue(jobTypeContact, emailPayload{
		To:      s.contactEmail,
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("Contact form: %s", req.Subject),
		Body:    body,
	})
}

// Subscribe queues a confirmation mail for a newsletter signup.
func (s *EmailService) Subscribe(ctx context.Context, req models.SubscribeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "A valid email is required")
	}

	return s.enqueue(jobTypeSubscribe, emailPayload{
		To:      req.Email,
		Subject: "Thanks for subscribing!",
		Body:    "<p>You're on the list. We'll let you know when something new happens.</p>",
	})
}

func (s *EmailService) enqueue(jobType string, payload emailPayload) error {
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobType,
		Payload: payload,
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to queue email")
	}
	return nil
}

func (s *EmailService) deliver(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(emailPayload)
	if !ok {
		s.logger.Error("email job has unexpected payload", zap.String("job_id", job.ID), zap.String("type", job.Type))
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", payload.To)
	if payload.ReplyTo != "" {
		m.SetHeader("Reply-To", payload.ReplyTo)
	}
	m.SetHeader("Subject", payload.Subject)
	m.SetBody("text/html", payload.Body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("send email %s: %w", job.ID, err)
	}

	s.logger.Info("email sent", zap.String("job_id", job.ID), zap.String("type", job.Type))
	return nil
}
