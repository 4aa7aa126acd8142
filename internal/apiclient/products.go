package apiclient

import (
	"context"
	"encoding/json"
	"fmt"

	"petstore/internal/models"
)

// remoteProduct accepts the id spellings the API has been seen to use.
type remoteProduct struct {
	models.Product
	MongoID   string `json:"_id"`
	ProductID string `json:"productId"`
}

func (p remoteProduct) normalize() models.Product {
	product := p.Product
	if product.ID == "" {
		product.ID = p.MongoID
	}
	if product.ID == "" {
		product.ID = p.ProductID
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}
	return product
}

func normalizeProducts(remote []remoteProduct) []models.Product {
	products := make([]models.Product, 0, len(remote))
	for _, p := range remote {
		products = append(products, p.normalize())
	}
	return products
}

// CatalogAPI implements repositories.ProductRepository and
// repositories.ContentRepository.
type CatalogAPI struct {
	c *Client
}

// Catalog returns the product and content endpoints of the API.
func (c *Client) Catalog() *CatalogAPI {
	return &CatalogAPI{c: c}
}

func (api *CatalogAPI) productList(ctx context.Context, segments ...string) ([]models.Product, error) {
	remote, err := getList[remoteProduct](ctx, api.c, api.c.url(nil, segments...))
	if err != nil {
		return nil, err
	}
	return normalizeProducts(remote), nil
}

// GetAll fetches every product.
func (api *CatalogAPI) GetAll(ctx context.Context) ([]models.Product, error) {
	return api.productList(ctx, "items")
}

// GetByID fetches one product.
func (api *CatalogAPI) GetByID(ctx context.Context, id string) (*models.Product, error) {
	body, err := api.c.get(ctx, api.c.url(nil, "items", id))
	if err != nil {
		return nil, fmt.Errorf("product with ID %s: %w", id, err)
	}
	var remote remoteProduct
	if err := json.Unmarshal(body, &remote); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", id, err)
	}
	product := remote.normalize()
	return &product, nil
}

// GetFeatured fetches the featured products.
func (api *CatalogAPI) GetFeatured(ctx context.Context) ([]models.Product, error) {
	return api.productList(ctx, "items", "featured")
}

// GetBestSelling fetches the best-selling products.
func (api *CatalogAPI) GetBestSelling(ctx context.Context) ([]models.Product, error) {
	return api.productList(ctx, "items", "best-selling")
}

// GetPetCategories fetches the pet categories.
func (api *CatalogAPI) GetPetCategories(ctx context.Context) ([]models.PetCategory, error) {
	return getList[models.PetCategory](ctx, api.c, api.c.url(nil, "categories", "pet-categories"))
}

// GetCategories fetches the product categories.
func (api *CatalogAPI) GetCategories(ctx context.Context) ([]models.Category, error) {
	return getList[models.Category](ctx, api.c, api.c.url(nil, "categories"))
}

// GetTeam fetches the team members.
func (api *CatalogAPI) GetTeam(ctx context.Context) ([]models.TeamMember, error) {
	return getList[models.TeamMember](ctx, api.c, api.c.url(nil, "team"))
}

// GetTestimonials fetches the testimonials.
func (api *CatalogAPI) GetTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return getList[models.Testimonial](ctx, api.c, api.c.url(nil, "testimonials"))
}

// GetBlogPosts fetches the blog posts.
func (api *CatalogAPI) GetBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	return getList[models.BlogPost](ctx, api.c, api.c.url(nil, "blogs"))
}
