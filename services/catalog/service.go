package catalog

import (
	"context"

	"dairyfront/models"
	"dairyfront/upstream"
)

// CatalogService serves product browsing for the storefront.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	RelatedProducts(ctx context.Context, product *models.Product, limit int) ([]models.Product, error)
}

type DefaultCatalogService struct {
	Backend *upstream.Client
}

func (s *DefaultCatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Backend.ListProducts(ctx)
}

func (s *DefaultCatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.Backend.GetProduct(ctx, id)
}

// RelatedProducts returns other available products from the same category,
// for the product-detail screen.
func (s *DefaultCatalogService) RelatedProducts(ctx context.Context, product *models.Product, limit int) ([]models.Product, error) {
	all, err := s.Backend.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	related := make([]models.Product, 0, limit)
	for _, p := range all {
		if p.ID == product.ID || p.Category != product.Category || !p.Availability {
			continue
		}
		related = append(related, p)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}
