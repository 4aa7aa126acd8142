package services

import (
	"context"
	"fmt"

	"petstore/internal/catalog"
	"petstore/internal/models"
	"petstore/internal/repositories"
)

// CatalogService serves products and the shop page's filter options.
type CatalogService struct {
	products     repositories.ProductRepository
	content      repositories.ContentRepository
	popularLimit int
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products repositories.ProductRepository, content repositories.ContentRepository, popularLimit int) *CatalogService {
	if popularLimit <= 0 {
		popularLimit = catalog.DefaultPopularLimit
	}
	return &CatalogService{
		products:     products,
		content:      content,
		popularLimit: popularLimit,
	}
}

// VisibleProducts fetches every product and applies cfg.
func (s *CatalogService) VisibleProducts(ctx context.Context, cfg models.FilterConfig) ([]models.Product, error) {
	all, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return catalog.VisibleProducts(all, cfg), nil
}

// Facets returns the filter options derived from the full product list.
func (s *CatalogService) Facets(ctx context.Context) (models.Facets, error) {
	all, err := s.products.GetAll(ctx)
	if err != nil {
		return models.Facets{}, fmt.Errorf("failed to load products: %w", err)
	}
	return catalog.BuildFacets(all, s.popularLimit), nil
}

// Product retrieves a single product by its ID.
func (s *CatalogService) Product(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Featured retrieves the featured products.
func (s *CatalogService) Featured(ctx context.Context) ([]models.Product, error) {
	return s.products.GetFeatured(ctx)
}

// BestSelling retrieves the best-selling products.
func (s *CatalogService) BestSelling(ctx context.Context) ([]models.Product, error) {
	return s.products.GetBestSelling(ctx)
}

// PetCategories retrieves the pet categories.
func (s *CatalogService) PetCategories(ctx context.Context) ([]models.PetCategory, error) {
	return s.content.GetPetCategories(ctx)
}

// Categories retrieves the product categories.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.content.GetCategories(ctx)
}
