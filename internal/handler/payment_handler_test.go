package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unimate-app/unimate-api/internal/gateway"
	"github.com/unimate-app/unimate-api/internal/models"
	"github.com/unimate-app/unimate-api/internal/service"
)

type fakePaymentRepo struct {
	txs map[string]*models.PaymentTransaction
}

func (f *fakePaymentRepo) Create(ctx context.Context, tx *models.PaymentTransaction) error {
	tx.ID = int64(len(f.txs) + 1)
	f.txs[tx.TransactionRef] = tx
	return nil
}

func (f *fakePaymentRepo) FindByRef(ctx context.Context, ref string) (*models.PaymentTransaction, error) {
	tx, ok := f.txs[ref]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return tx, nil
}

func (f *fakePaymentRepo) UpdateStatus(ctx context.Context, ref, status string) error {
	if tx, ok := f.txs[ref]; ok {
		tx.Status = status
	}
	return nil
}

func (f *fakePaymentRepo) List(ctx context.Context) ([]models.PaymentTransaction, error) {
	out := make([]models.PaymentTransaction, 0, len(f.txs))
	for _, tx := range f.txs {
		out = append(out, *tx)
	}
	return out, nil
}

func (f *fakePaymentRepo) Count(ctx context.Context) (int, error) {
	return len(f.txs), nil
}

type fakePayingUsers struct {
	paid map[int64]bool
}

func (f *fakePayingUsers) SetPaid(ctx context.Context, id int64) error {
	f.paid[id] = true
	return nil
}

func (f *fakePayingUsers) HasPaid(ctx context.Context, id int64) (bool, error) {
	paid, ok := f.paid[id]
	if !ok {
		return false, sql.ErrNoRows
	}
	return paid, nil
}

func (f *fakePayingUsers) Count(ctx context.Context) (int, error) {
	return len(f.paid), nil
}

type pendingVerifier struct{}

func (pendingVerifier) VerifyTransaction(ctx context.Context, ref string) (gateway.Status, error) {
	return gateway.StatusPending, nil
}

func newPaymentTestHandler(t *testing.T, users *fakePayingUsers) *PaymentHandler {
	t.Helper()
	svc := service.NewPaymentService(
		&fakePaymentRepo{txs: map[string]*models.PaymentTransaction{}},
		users,
		pendingVerifier{},
		validator.New(),
		zap.NewNop(),
		service.PaymentFlowConfig{Amount: 500, PollInterval: time.Millisecond, MaxPollAttempts: 1},
	)
	t.Cleanup(svc.Close)
	return NewPaymentHandler(svc)
}

func TestPaymentHandlerRecordMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPaymentTestHandler(t, &fakePayingUsers{paid: map[int64]bool{}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(`{"userId":1}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Record(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentHandlerRecordSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPaymentTestHandler(t, &fakePayingUsers{paid: map[int64]bool{1: false}})

	body := `{"userId":1,"paymentStatus":"successful","transactionId":"tx-1"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Record(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPaymentHandlerPaidStatusInvalidAction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPaymentTestHandler(t, &fakePayingUsers{paid: map[int64]bool{}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/paid?action=other", nil)

	handler.PaidStatus(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid action")
}

func TestPaymentHandlerPaidStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPaymentTestHandler(t, &fakePayingUsers{paid: map[int64]bool{7: true}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/paid?action=check-payment-status", strings.NewReader("userId=7"))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	handler.PaidStatus(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User has a valid payment")
}

func TestPaymentHandlerPaidStatusUnknownUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPaymentTestHandler(t, &fakePayingUsers{paid: map[int64]bool{}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/paid?action=check-payment-status", strings.NewReader("userId=99"))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	handler.PaidStatus(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}
