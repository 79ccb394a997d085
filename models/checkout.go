package models

import "time"

// Checkout submission states.
const (
	CheckoutIdle            = "idle"
	CheckoutValidating      = "validating"
	CheckoutSubmitting      = "submitting"
	CheckoutAwaitingPayment = "awaiting_payment"
	CheckoutConfirmed       = "confirmed"
	CheckoutFailed          = "failed"
)

// CheckoutInput mirrors the navigation-state contract carried from the
// product page: checkout is never opened without a fully specified product.
type CheckoutInput struct {
	Product          *Product `json:"product"`
	Quantity         int      `json:"quantity"`
	SubscriptionType string   `json:"subscriptionType"`
}

// CheckoutStatus reflects the submission orchestrator for one session.
// PaymentError and PaymentDone report the deferred payment-completion call
// independently of subscription creation.
type CheckoutStatus struct {
	State          string    `json:"state"`
	SubscriptionID string    `json:"subscriptionId,omitempty"`
	PaymentRef     string    `json:"paymentRef,omitempty"`
	PaymentDone    bool      `json:"paymentDone,omitempty"`
	PaymentError   string    `json:"paymentError,omitempty"`
	Error          string    `json:"error,omitempty"`
	Redirect       string    `json:"redirect,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CheckoutView is the full checkout screen payload: the draft, its derived
// cost, and the independent load states of the address and wallet fetches.
type CheckoutView struct {
	Draft         *SubscriptionDraft `json:"draft"`
	Cost          CostBreakdown      `json:"cost"`
	HasAddress    bool               `json:"hasAddress"`
	AddressError  string             `json:"addressError,omitempty"`
	WalletBalance float64            `json:"walletBalance"`
	WalletError   string             `json:"walletError,omitempty"`
	Status        CheckoutStatus     `json:"status"`
}
