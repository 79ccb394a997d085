package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"dairyfront/models"
)

// GetWallet fetches balance and transaction history for the profile screen.
func (c *Client) GetWallet(ctx context.Context, token string) (*models.Wallet, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/wallet", token, "wallet", &raw); err != nil {
		return nil, err
	}

	var wallet models.Wallet
	if err := json.Unmarshal(unwrap(raw), &wallet); err != nil {
		return nil, fmt.Errorf("decode wallet: %w", err)
	}
	return &wallet, nil
}

// AddMoney tops up the wallet and returns the refreshed wallet.
func (c *Client) AddMoney(ctx context.Context, token string, amount float64) (*models.Wallet, error) {
	var raw json.RawMessage
	body := map[string]float64{"amount": amount}
	if err := c.post(ctx, "/wallet/add-money", token, "wallet", body, &raw); err != nil {
		return nil, err
	}

	var wallet models.Wallet
	if err := json.Unmarshal(unwrap(raw), &wallet); err != nil {
		return nil, fmt.Errorf("decode wallet: %w", err)
	}
	return &wallet, nil
}
