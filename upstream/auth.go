package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dairyfront/models"
)

// AuthResult is a normalized login/register response. The backend has
// shipped several shapes for this payload; decodeAuth maps all of them here.
type AuthResult struct {
	User  models.User
	Token string
}

func decodeAuth(raw json.RawMessage) (*AuthResult, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}

	res := &AuthResult{Token: env.Token}

	userRaw := env.User
	if len(env.Data) > 0 {
		// Newer shape: {data:{user, token}} or {data:<user>}.
		var inner struct {
			User  json.RawMessage `json:"user"`
			Token string          `json:"token"`
		}
		if err := json.Unmarshal(env.Data, &inner); err == nil {
			if inner.Token != "" {
				res.Token = inner.Token
			}
			if len(inner.User) > 0 {
				userRaw = inner.User
			} else {
				userRaw = env.Data
			}
		}
	}

	if len(userRaw) == 0 {
		return nil, errors.New("auth response carried no user")
	}
	if err := json.Unmarshal(userRaw, &res.User); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if res.Token == "" {
		return nil, errors.New("auth response carried no token")
	}
	return res, nil
}

func (c *Client) authCall(ctx context.Context, path string, body any) (*AuthResult, error) {
	var raw json.RawMessage
	if err := c.post(ctx, path, "", "auth", body, &raw); err != nil {
		return nil, err
	}
	return decodeAuth(raw)
}

// Login authenticates a storefront user.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*AuthResult, error) {
	return c.authCall(ctx, "/user/login", req)
}

// Register creates a storefront account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*AuthResult, error) {
	return c.authCall(ctx, "/user/register", req)
}

// SendOTP asks the backend to mail a signup OTP to the given address.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	return c.post(ctx, "/user/send-otp", "", "auth", map[string]string{"email": email}, nil)
}

// Logout invalidates the upstream bearer token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.get(ctx, "/user/logout", token, "auth", nil)
}

// AdminLogin authenticates an admin account.
func (c *Client) AdminLogin(ctx context.Context, req models.LoginRequest) (*AuthResult, error) {
	return c.authCall(ctx, "/admin/login", req)
}

// AdminRegister creates an admin account.
func (c *Client) AdminRegister(ctx context.Context, req models.RegisterRequest) (*AuthResult, error) {
	return c.authCall(ctx, "/admin/register", req)
}

// Me fetches the profile of the token's owner.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/users/me", token, "auth", &raw); err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(unwrap(raw), &user); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &user, nil
}
