package repositories

import (
	"context"
	"fmt"
	"sync"

	"petstore/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository
// and ContentRepository. Products keep the order they were created in.
type MockProductRepository struct {
	products      []models.Product
	index         map[string]int
	featured      []string
	bestSelling   []string
	petCategories []models.PetCategory
	categories    []models.Category
	team          []models.TeamMember
	testimonials  []models.Testimonial
	blog          []models.BlogPost
	mu            sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		index: make(map[string]int),
	}
}

// Create adds a new product, generating an ID if none is set.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, ok := r.index[product.ID]; ok {
		return fmt.Errorf("product with ID %s already exists", product.ID)
	}
	r.index[product.ID] = len(r.products)
	r.products = append(r.products, *product)
	return nil
}

// SetFeatured marks the given product IDs as featured.
func (r *MockProductRepository) SetFeatured(ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.featured = ids
}

// SetBestSelling marks the given product IDs as best-selling.
func (r *MockProductRepository) SetBestSelling(ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bestSelling = ids
}

// SetContent replaces the editorial content served by the repository.
func (r *MockProductRepository) SetContent(pets []models.PetCategory, categories []models.Category, team []models.TeamMember, testimonials []models.Testimonial, blog []models.BlogPost) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.petCategories = pets
	r.categories = categories
	r.team = team
	r.testimonials = testimonials
	r.blog = blog
}

// GetAll returns all products in creation order.
func (r *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product := r.products[i]
	return &product, nil
}

// GetFeatured returns the featured products.
func (r *MockProductRepository) GetFeatured(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pick(r.featured), nil
}

// GetBestSelling returns the best-selling products.
func (r *MockProductRepository) GetBestSelling(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pick(r.bestSelling), nil
}

func (r *MockProductRepository) pick(ids []string) []models.Product {
	picked := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if i, ok := r.index[id]; ok {
			picked = append(picked, r.products[i])
		}
	}
	return picked
}

// GetPetCategories returns the pet categories.
func (r *MockProductRepository) GetPetCategories(ctx context.Context) ([]models.PetCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.PetCategory(nil), r.petCategories...), nil
}

// GetCategories returns the product categories.
func (r *MockProductRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Category(nil), r.categories...), nil
}

// GetTeam returns the team members.
func (r *MockProductRepository) GetTeam(ctx context.Context) ([]models.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.TeamMember(nil), r.team...), nil
}

// GetTestimonials returns the testimonials.
func (r *MockProductRepository) GetTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Testimonial(nil), r.testimonials...), nil
}

// GetBlogPosts returns the blog posts.
func (r *MockProductRepository) GetBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.BlogPost(nil), r.blog...), nil
}
