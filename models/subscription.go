package models

import "time"

// Delivery frequencies.
const (
	FrequencyDaily     = "daily"
	FrequencyAlternate = "alternate"
	FrequencyWeekly    = "weekly"
	FrequencyOneTime   = "one-time"
)

// Subscription plans (total duration commitment).
const (
	Plan15Days  = "15_days"
	Plan1Month  = "1_month"
	Plan2Months = "2_months"
	Plan3Months = "3_months"
	Plan6Months = "6_months"
	Plan1Year   = "1_year"
)

// Payment methods.
const (
	PaymentWallet = "wallet"
	PaymentOnline = "online"
)

// SubscriptionDraft is the transient checkout state. It is created when the
// user lands on checkout and destroyed on discard or successful submission.
type SubscriptionDraft struct {
	Product          Product `json:"product"`
	Quantity         int     `json:"quantity"`
	SubscriptionType string  `json:"subscriptionType"` // delivery frequency
	SubscriptionPlan string  `json:"subscriptionPlan"`
	Address          Address `json:"address"`
	PaymentMethod    string  `json:"paymentMethod"`
}

// CostBreakdown is derived from the draft on every read; it is never stored.
type CostBreakdown struct {
	DailyCost       float64 `json:"dailyCost"`
	TotalDeliveries int     `json:"totalDeliveries"`
	TotalCost       float64 `json:"totalCost"`
	DurationDays    int     `json:"durationDays"`
}

// CreateSubscriptionRequest is the payload sent to the backend.
type CreateSubscriptionRequest struct {
	ProductID         string  `json:"productId"`
	Quantity          int     `json:"quantity"`
	DeliveryFrequency string  `json:"deliveryFrequency"`
	SubscriptionPlan  string  `json:"subscriptionPlan"`
	Address           Address `json:"address"`
	PaymentMethod     string  `json:"paymentMethod"`
}

// Subscription is a backend-owned subscription record as shown on the
// profile screen.
type Subscription struct {
	ID                string    `json:"_id"`
	ProductID         string    `json:"productId"`
	ProductName       string    `json:"productName,omitempty"`
	Quantity          int       `json:"quantity"`
	DeliveryFrequency string    `json:"deliveryFrequency"`
	SubscriptionPlan  string    `json:"subscriptionPlan"`
	Status            string    `json:"status"`
	PaymentMethod     string    `json:"paymentMethod,omitempty"`
	TotalCost         float64   `json:"totalCost,omitempty"`
	StartDate         time.Time `json:"startDate,omitempty"`
	EndDate           time.Time `json:"endDate,omitempty"`
}
