package services

import (
	"context"

	"petstore/internal/models"
	"petstore/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// homeFetchLimit bounds the number of concurrent upstream requests per page.
const homeFetchLimit = 4

// ContentService serves the editorial sections of the storefront.
type ContentService struct {
	products repositories.ProductRepository
	content  repositories.ContentRepository
	logger   *zap.Logger
}

// NewContentService creates a new ContentService.
func NewContentService(products repositories.ProductRepository, content repositories.ContentRepository, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{
		products: products,
		content:  content,
		logger:   logger,
	}
}

// Team retrieves the team members.
func (s *ContentService) Team(ctx context.Context) ([]models.TeamMember, error) {
	return s.content.GetTeam(ctx)
}

// Testimonials retrieves the testimonials.
func (s *ContentService) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.content.GetTestimonials(ctx)
}

// BlogPosts retrieves the blog posts.
func (s *ContentService) BlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	return s.content.GetBlogPosts(ctx)
}

// Home loads the landing page sections concurrently. A failing section
// carries its error message and an empty list; the others are unaffected.
func (s *ContentService) Home(ctx context.Context) models.HomePage {
	var page models.HomePage

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(homeFetchLimit)
	g.Go(func() error {
		page.Featured = loadSection(gctx, s.logger, "featured", s.products.GetFeatured)
		return nil
	})
	g.Go(func() error {
		page.BestSelling = loadSection(gctx, s.logger, "best_selling", s.products.GetBestSelling)
		return nil
	})
	g.Go(func() error {
		page.PetCategories = loadSection(gctx, s.logger, "pet_categories", s.content.GetPetCategories)
		return nil
	})
	g.Go(func() error {
		page.Testimonials = loadSection(gctx, s.logger, "testimonials", s.content.GetTestimonials)
		return nil
	})
	g.Go(func() error {
		page.Blog = loadSection(gctx, s.logger, "blog", s.content.GetBlogPosts)
		return nil
	})
	_ = g.Wait()

	return page
}

func loadSection[T any](ctx context.Context, logger *zap.Logger, name string, fetch func(context.Context) ([]T, error)) models.Section[T] {
	items, err := fetch(ctx)
	if err != nil {
		logger.Warn("failed to load home section", zap.String("section", name), zap.Error(err))
		return models.Section[T]{Items: []T{}, Error: err.Error()}
	}
	if items == nil {
		items = []T{}
	}
	return models.Section[T]{Items: items}
}
