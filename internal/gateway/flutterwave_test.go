package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unimate-app/unimate-api/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.PaymentConfig{VerifyURL: server.URL, SecretKey: "sk_test"}, zap.NewNop())
}

func TestClientVerifyTransactionSuccessful(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		assert.Equal(t, "tx-1", r.URL.Query().Get("tx_ref"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":{"status":"successful","amount":500,"currency":"UGX"}}`))
	})

	status, err := client.VerifyTransaction(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccessful, status)
}

func TestClientVerifyTransactionFailed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":{"status":"failed"}}`))
	})

	status, err := client.VerifyTransaction(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, status)
}

func TestClientVerifyTransactionPendingByDefault(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":{"status":"processing"}}`))
	})

	status, err := client.VerifyTransaction(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)
}

func TestClientVerifyTransactionNotFoundIsPending(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	status, err := client.VerifyTransaction(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)
}

func TestClientVerifyTransactionServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.VerifyTransaction(context.Background(), "tx-1")
	require.Error(t, err)
}
