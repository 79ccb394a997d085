package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"dairyfront/models"
)

// AdminStats fetches the dashboard aggregates.
func (c *Client) AdminStats(ctx context.Context, token string) (*models.DashboardStats, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/admin/stats", token, "admin", &raw); err != nil {
		return nil, err
	}
	var stats models.DashboardStats
	if err := json.Unmarshal(unwrap(raw), &stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return &stats, nil
}

// AdminListUsers fetches users for the management screen.
func (c *Client) AdminListUsers(ctx context.Context, token string) ([]models.ManagedUser, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/admin/users", token, "admin", &raw); err != nil {
		return nil, err
	}

	inner := unwrap(raw)
	var wrapped struct {
		Users []models.ManagedUser `json:"users"`
	}
	if err := json.Unmarshal(inner, &wrapped); err == nil && wrapped.Users != nil {
		return wrapped.Users, nil
	}

	var list []models.ManagedUser
	if err := json.Unmarshal(inner, &list); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return list, nil
}

// AdminSetUserBlocked toggles a user's blocked flag.
func (c *Client) AdminSetUserBlocked(ctx context.Context, token, userID string, blocked bool) error {
	body := map[string]bool{"blocked": blocked}
	return c.put(ctx, "/admin/users/"+userID+"/blocked", token, "admin", body, nil)
}
