package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dairyfront/models"
)

// GetSavedAddress fetches the user's previously saved delivery address.
// A nil address with a nil error means the user has none saved yet.
func (c *Client) GetSavedAddress(ctx context.Context, token string) (*models.Address, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/user/subscriptions/address", token, "subscriptions", &raw); err != nil {
		return nil, err
	}

	var wrapped struct {
		Address *models.Address `json:"address"`
	}
	if err := json.Unmarshal(unwrap(raw), &wrapped); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	return wrapped.Address, nil
}

// GetWalletBalance fetches the user's current wallet balance.
func (c *Client) GetWalletBalance(ctx context.Context, token string) (float64, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/user/subscriptions/wallet/balance", token, "subscriptions", &raw); err != nil {
		return 0, err
	}

	var wrapped struct {
		Balance float64 `json:"balance"`
	}
	if err := json.Unmarshal(unwrap(raw), &wrapped); err != nil {
		return 0, fmt.Errorf("decode wallet balance: %w", err)
	}
	return wrapped.Balance, nil
}

// CreateSubscription submits a new subscription and returns its backend ID.
func (c *Client) CreateSubscription(ctx context.Context, token string, req models.CreateSubscriptionRequest) (string, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/user/subscriptions", token, "subscriptions", req, &raw); err != nil {
		return "", err
	}

	var wrapped struct {
		Subscription *models.Subscription `json:"subscription"`
	}
	if err := json.Unmarshal(unwrap(raw), &wrapped); err != nil {
		return "", fmt.Errorf("decode subscription: %w", err)
	}
	if wrapped.Subscription == nil || wrapped.Subscription.ID == "" {
		return "", errors.New("backend returned no subscription id")
	}
	return wrapped.Subscription.ID, nil
}

// CompletePayment issues the second-phase payment call for an online
// subscription.
func (c *Client) CompletePayment(ctx context.Context, token, subscriptionID, paymentRef string) error {
	body := map[string]string{
		"paymentId":     paymentRef,
		"paymentMethod": models.PaymentOnline,
	}
	return c.post(ctx, "/user/subscriptions/"+subscriptionID+"/payment", token, "subscriptions", body, nil)
}

// ListSubscriptions fetches the user's subscriptions for the profile screen.
func (c *Client) ListSubscriptions(ctx context.Context, token string) ([]models.Subscription, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/subscriptions", token, "subscriptions", &raw); err != nil {
		return nil, err
	}

	inner := unwrap(raw)
	var wrapped struct {
		Subscriptions []models.Subscription `json:"subscriptions"`
	}
	if err := json.Unmarshal(inner, &wrapped); err == nil && wrapped.Subscriptions != nil {
		return wrapped.Subscriptions, nil
	}

	var list []models.Subscription
	if err := json.Unmarshal(inner, &list); err != nil {
		return nil, fmt.Errorf("decode subscriptions: %w", err)
	}
	return list, nil
}

// PauseSubscription pauses an active subscription.
func (c *Client) PauseSubscription(ctx context.Context, token, id string) error {
	return c.post(ctx, "/subscriptions/"+id+"/pause", token, "subscriptions", nil, nil)
}

// CancelSubscription cancels a subscription.
func (c *Client) CancelSubscription(ctx context.Context, token, id string) error {
	return c.post(ctx, "/subscriptions/"+id+"/cancel", token, "subscriptions", nil, nil)
}
