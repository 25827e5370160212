package models

import "time"

// Payment transaction statuses. The gateway reports "successful" in its
// callback; the confirmation poller settles the row into a terminal state.
const (
	PaymentStatusSuccessful = "successful"
	PaymentStatusConfirmed  = "confirmed"
	PaymentStatusFailed     = "failed"
	PaymentStatusTimedOut   = "verification_timeout"
)

// PaymentTransaction records one completed gateway callback. Rows are
// written once and only their status is settled afterwards.
type PaymentTransaction struct {
	ID             int64     `db:"id" json:"id"`
	TransactionRef string    `db:"transaction_ref" json:"transactionRef"`
	Status         string    `db:"status" json:"status"`
	Amount         int64     `db:"amount" json:"amount"`
	UserID         int64     `db:"user_id" json:"userId"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// RecordPaymentRequest is the gateway-callback payload forwarded by the
// client after the payment modal closes.
type RecordPaymentRequest struct {
	UserID        int64  `json:"userId" validate:"required"`
	PaymentStatus string `json:"paymentStatus" validate:"required"`
	TransactionID string `json:"transactionId" validate:"required"`
}

// PaidStatusResponse answers the paid-access check for a user.
type PaidStatusResponse struct {
	HasPaid bool   `json:"hasPaid"`
	Message string `json:"message"`
}

// PaymentOverview is the admin dashboard view of payment activity.
type PaymentOverview struct {
	Payments     []PaymentTransaction `json:"payments"`
	UserCount    int                  `json:"userCount"`
	PaymentCount int                  `json:"paymentCount"`
}
