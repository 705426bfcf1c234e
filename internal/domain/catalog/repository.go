package catalog

import (
	"context"

	"fixdesk/internal/shared/query"
)

// BrandRepository is the persistence contract for brands. GetByID fails with a
// not-found error when the row is absent; FindByID returns nil instead.
// Deleting a brand still referenced by tickets is rejected with a foreign-key
// violation.
type BrandRepository interface {
	Create(ctx context.Context, b *Brand) error
	GetByID(ctx context.Context, id uint) (*Brand, error)
	FindByID(ctx context.Context, id uint) (*Brand, error)
	GetByName(ctx context.Context, name string) (*Brand, error)
	List(ctx context.Context, f query.Filter) ([]*Brand, int64, error)
	Update(ctx context.Context, id uint, u BrandUpdate) (*Brand, error)
	Delete(ctx context.Context, id uint) error
	Upsert(ctx context.Context, id uint, create *Brand, update BrandUpdate) (*Brand, error)
	Aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error)
	GroupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error)
}

// CategoryRepository is the persistence contract for categories, with the same
// delete-restriction semantics as brands.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	FindByID(ctx context.Context, id uint) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context, f query.Filter) ([]*Category, int64, error)
	Update(ctx context.Context, id uint, u CategoryUpdate) (*Category, error)
	Delete(ctx context.Context, id uint) error
	Upsert(ctx context.Context, id uint, create *Category, update CategoryUpdate) (*Category, error)
	Aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error)
	GroupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error)
}
