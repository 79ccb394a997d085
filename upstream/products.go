package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"dairyfront/models"
)

func decodeProducts(raw json.RawMessage) ([]models.Product, error) {
	inner := unwrap(raw)

	// Preferred shape: {data:{products:[...]}}.
	var wrapped struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(inner, &wrapped); err == nil && wrapped.Products != nil {
		return wrapped.Products, nil
	}

	// Bare array fallback.
	var list []models.Product
	if err := json.Unmarshal(inner, &list); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return list, nil
}

// ListProducts fetches the public catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/user/products", "", "products", &raw); err != nil {
		return nil, err
	}
	return decodeProducts(raw)
}

// GetProduct fetches a single catalog item.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/user/products/"+id, "", "products", &raw); err != nil {
		return nil, err
	}

	inner := unwrap(raw)
	var wrapped struct {
		Product *models.Product `json:"product"`
	}
	if err := json.Unmarshal(inner, &wrapped); err == nil && wrapped.Product != nil {
		return wrapped.Product, nil
	}

	var product models.Product
	if err := json.Unmarshal(inner, &product); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &product, nil
}

// Admin catalog management.

func (c *Client) AdminListProducts(ctx context.Context, token string) ([]models.Product, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/admin/products", token, "admin", &raw); err != nil {
		return nil, err
	}
	return decodeProducts(raw)
}

func (c *Client) AdminAddProduct(ctx context.Context, token string, input models.ProductInput) (*models.Product, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/admin/products/add", token, "admin", input, &raw); err != nil {
		return nil, err
	}
	var product models.Product
	if err := json.Unmarshal(unwrap(raw), &product); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &product, nil
}

func (c *Client) AdminUpdateProduct(ctx context.Context, token, id string, input models.ProductInput) (*models.Product, error) {
	var raw json.RawMessage
	if err := c.put(ctx, "/admin/products/"+id, token, "admin", input, &raw); err != nil {
		return nil, err
	}
	var product models.Product
	if err := json.Unmarshal(unwrap(raw), &product); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &product, nil
}

func (c *Client) AdminDeleteProduct(ctx context.Context, token, id string) error {
	return c.delete(ctx, "/admin/products/"+id, token, "admin")
}
