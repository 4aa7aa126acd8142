package repositories

import (
	"context"

	"petstore/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetFeatured(ctx context.Context) ([]models.Product, error)
	GetBestSelling(ctx context.Context) ([]models.Product, error)
}

// ContentRepository defines the interface for the storefront's editorial content.
type ContentRepository interface {
	GetPetCategories(ctx context.Context) ([]models.PetCategory, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetTeam(ctx context.Context) ([]models.TeamMember, error)
	GetTestimonials(ctx context.Context) ([]models.Testimonial, error)
	GetBlogPosts(ctx context.Context) ([]models.BlogPost, error)
}
