package adminpanel

import (
	"context"
	"errors"

	"dairyfront/models"
	"dairyfront/upstream"
)

// AdminService backs the admin screens: catalog management, dashboard and
// user management.
type AdminService interface {
	ListProducts(ctx context.Context, token string) ([]models.Product, error)
	AddProduct(ctx context.Context, token string, input models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, token, id string, input models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
	Stats(ctx context.Context, token string) (*models.DashboardStats, error)
	ListUsers(ctx context.Context, token string) ([]models.ManagedUser, error)
	SetUserBlocked(ctx context.Context, token, userID string, blocked bool) error
}

type DefaultAdminService struct {
	Backend *upstream.Client
}

func validateProductInput(input models.ProductInput) error {
	if input.Name == "" {
		return errors.New("product name is required")
	}
	if input.Category == "" {
		return errors.New("product category is required")
	}
	if input.PricePerDay <= 0 {
		return errors.New("price per day must be positive")
	}
	if input.Quantity < 0 {
		return errors.New("stock quantity cannot be negative")
	}
	return nil
}

func (s *DefaultAdminService) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	return s.Backend.AdminListProducts(ctx, token)
}

func (s *DefaultAdminService) AddProduct(ctx context.Context, token string, input models.ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	return s.Backend.AdminAddProduct(ctx, token, input)
}

func (s *DefaultAdminService) UpdateProduct(ctx context.Context, token, id string, input models.ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	return s.Backend.AdminUpdateProduct(ctx, token, id, input)
}

func (s *DefaultAdminService) DeleteProduct(ctx context.Context, token, id string) error {
	return s.Backend.AdminDeleteProduct(ctx, token, id)
}

func (s *DefaultAdminService) Stats(ctx context.Context, token string) (*models.DashboardStats, error) {
	return s.Backend.AdminStats(ctx, token)
}

func (s *DefaultAdminService) ListUsers(ctx context.Context, token string) ([]models.ManagedUser, error) {
	return s.Backend.AdminListUsers(ctx, token)
}

func (s *DefaultAdminService) SetUserBlocked(ctx context.Context, token, userID string, blocked bool) error {
	return s.Backend.AdminSetUserBlocked(ctx, token, userID, blocked)
}
