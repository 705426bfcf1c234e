// Package catalog is the application service over brands and categories.
// Category slugs are derived from the name, never supplied by the caller.
package catalog

import (
	"context"
	"log/slog"

	"github.com/gosimple/slug"

	"fixdesk/internal/domain/catalog"
	"fixdesk/internal/shared/logger"
	"fixdesk/internal/shared/validation"
)

type Service struct {
	brands     catalog.BrandRepository
	categories catalog.CategoryRepository
	log        *slog.Logger
}

func NewService(brands catalog.BrandRepository, categories catalog.CategoryRepository) *Service {
	return &Service{
		brands:     brands,
		categories: categories,
		log:        logger.WithComponent("catalog-service"),
	}
}

type CreateBrandCommand struct {
	Name string `json:"name" validate:"required,max=200"`
}

func (s *Service) CreateBrand(ctx context.Context, cmd CreateBrandCommand) (*catalog.Brand, error) {
	if err := validation.ValidateStruct("brand", cmd); err != nil {
		return nil, err
	}

	b := &catalog.Brand{Name: cmd.Name}
	if err := s.brands.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("brand created", "brand_id", b.ID, "name", b.Name)
	return b, nil
}

type CreateCategoryCommand struct {
	Name   string `json:"name" validate:"required,max=200"`
	Prefix string `json:"prefix" validate:"max=10"`
}

// CreateCategory derives the URL slug from the name.
func (s *Service) CreateCategory(ctx context.Context, cmd CreateCategoryCommand) (*catalog.Category, error) {
	if err := validation.ValidateStruct("category", cmd); err != nil {
		return nil, err
	}

	c := &catalog.Category{
		Name:   cmd.Name,
		Slug:   slug.Make(cmd.Name),
		Prefix: cmd.Prefix,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info("category created", "category_id", c.ID, "slug", c.Slug)
	return c, nil
}

// RenameCategory updates the name and rederives the slug to match.
func (s *Service) RenameCategory(ctx context.Context, id uint, name string) (*catalog.Category, error) {
	if err := validation.ValidateStruct("category", CreateCategoryCommand{Name: name}); err != nil {
		return nil, err
	}

	newSlug := slug.Make(name)
	updated, err := s.categories.Update(ctx, id, catalog.CategoryUpdate{
		Name: &name,
		Slug: &newSlug,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("category renamed", "category_id", id, "slug", newSlug)
	return updated, nil
}
