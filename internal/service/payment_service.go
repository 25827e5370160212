package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unimate-app/unimate-api/internal/gateway"
	"github.com/unimate-app/unimate-api/internal/models"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
)

type paymentRepository interface {
	Create(ctx context.Context, tx *models.PaymentTransaction) error
	FindByRef(ctx context.Context, ref string) (*models.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, ref, status string) error
	List(ctx context.Context) ([]models.PaymentTransaction, error)
	Count(ctx context.Context) (int, error)
}

type payingUserRepository interface {
	SetPaid(ctx context.Context, id int64) error
	HasPaid(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

// GatewayVerifier checks the settled state of a transaction upstream.
type GatewayVerifier interface {
	VerifyTransaction(ctx context.Context, ref string) (gateway.Status, error)
}

// PaymentFlowConfig tunes the confirmation-polling loop.
type PaymentFlowConfig struct {
	Amount          int64
	PollInterval    time.Duration
	MaxPollAttempts int
}

// PaymentService coordinates the paid-access flow: it durably records the
// gateway callback, polls the gateway until the transaction settles, and
// flips the user's paid flag exactly once on confirmation. One confirmation
// attempt may be in flight per user at a time.
type PaymentService struct {
	payments  paymentRepository
	users     payingUserRepository
	verifier  GatewayVerifier
	validator *validator.Validate
	logger    *zap.Logger
	config    PaymentFlowConfig

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

// NewPaymentService constructs a PaymentService instance.
func NewPaymentService(payments paymentRepository, users payingUserRepository, verifier GatewayVerifier, validate *validator.Validate, logger *zap.Logger, config PaymentFlowConfig) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.Amount <= 0 {
		config.Amount = 500
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	if config.MaxPollAttempts <= 0 {
		config.MaxPollAttempts = 10
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &PaymentService{
		payments:  payments,
		users:     users,
		verifier:  verifier,
		validator: validate,
		logger:    logger,
		config:    config,
		baseCtx:   ctx,
		cancel:    cancel,
		inFlight:  make(map[int64]struct{}),
	}
}

// Close cancels outstanding confirmation polling and waits for it to stop.
func (s *PaymentService) Close() {
	s.cancel()
	s.wg.Wait()
}

// Record persists the gateway callback. The transaction row is written
// before confirmation polling begins; a reported success starts the polling
// loop, anything else leaves the row in its reported terminal state.
func (s *PaymentService) Record(ctx context.Context, req models.RecordPaymentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Missing required fields")
	}

	startPolling := req.PaymentStatus == models.PaymentStatusSuccessful
	if startPolling && !s.begin(req.UserID) {
		return appErrors.Clone(appErrors.ErrConflict, "payment verification already in progress")
	}

	tx := &models.PaymentTransaction{
		TransactionRef: req.TransactionID,
		Status:         req.PaymentStatus,
		Amount:         s.config.Amount,
		UserID:         req.UserID,
	}

	if err := s.payments.Create(ctx, tx); err != nil {
		if startPolling {
			s.finish(req.UserID)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to save payment transaction")
	}

	if startPolling {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.finish(req.UserID)
			s.awaitConfirmation(req.UserID, req.TransactionID)
		}()
	}

	return nil
}

// CheckPaid answers the paid-access check used to gate the chat surface.
func (s *PaymentService) CheckPaid(ctx context.Context, userID int64) (*models.PaidStatusResponse, error) {
	hasPaid, err := s.users.HasPaid(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "User not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check payment status")
	}

	message := "User has no valid payments"
	if hasPaid {
		message = "User has a valid payment"
	}
	return &models.PaidStatusResponse{HasPaid: hasPaid, Message: message}, nil
}

// Overview returns payment activity for the admin dashboard.
func (s *PaymentService) Overview(ctx context.Context) (*models.PaymentOverview, error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count users")
	}
	paymentCount, err := s.payments.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count payments")
	}

	return &models.PaymentOverview{
		Payments:     payments,
		UserCount:    userCount,
		PaymentCount: paymentCount,
	}, nil
}

// awaitConfirmation polls the gateway by transaction reference until the
// transaction settles or the attempt ceiling is reached. The counter is
// bounded; once it hits the maximum no further poll is issued.
func (s *PaymentService) awaitConfirmation(userID int64, ref string) {
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= s.config.MaxPollAttempts; attempt++ {
		select {
		case <-s.baseCtx.Done():
			return
		case <-ticker.C:
		}

		status, err := s.verifier.VerifyTransaction(s.baseCtx, ref)
		if err != nil {
			s.logger.Warn("payment verification failed",
				zap.String("transaction_ref", ref),
				zap.Int64("user_id", userID),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return
		}

		switch status {
		case gateway.StatusSuccessful:
			s.settle(userID, ref)
			return
		case gateway.StatusFailed:
			if err := s.payments.UpdateStatus(s.baseCtx, ref, models.PaymentStatusFailed); err != nil {
				s.logger.Error("failed to mark payment failed", zap.String("transaction_ref", ref), zap.Error(err))
			}
			return
		}
	}

	if err := s.payments.UpdateStatus(s.baseCtx, ref, models.PaymentStatusTimedOut); err != nil {
		s.logger.Error("failed to mark payment timed out", zap.String("transaction_ref", ref), zap.Error(err))
	}
	s.logger.Warn("payment verification timed out",
		zap.String("transaction_ref", ref),
		zap.Int64("user_id", userID),
		zap.Int("attempts", s.config.MaxPollAttempts))
}

// settle marks the transaction confirmed and unlocks paid access. SetPaid
// is idempotent, so repeated confirmations for the same user are harmless.
func (s *PaymentService) settle(userID int64, ref string) {
	if err := s.payments.UpdateStatus(s.baseCtx, ref, models.PaymentStatusConfirmed); err != nil {
		s.logger.Error("failed to mark payment confirmed", zap.String("transaction_ref", ref), zap.Error(err))
		return
	}
	if err := s.users.SetPaid(s.baseCtx, userID); err != nil {
		s.logger.Error("failed to unlock paid access", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	s.logger.Info("payment confirmed",
		zap.String("transaction_ref", ref),
		zap.Int64("user_id", userID))
}

func (s *PaymentService) begin(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *PaymentService) finish(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}
