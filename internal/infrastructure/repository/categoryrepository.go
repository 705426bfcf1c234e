package repository

import (
	"context"

	"gorm.io/gorm"

	"fixdesk/internal/domain/catalog"
	"fixdesk/internal/domain/ticket"
	apperrors "fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/query"
)

type CategoryRepository struct {
	crud[catalog.Category]
}

func NewCategoryRepository(gdb *gorm.DB) *CategoryRepository {
	return &CategoryRepository{crud: newCRUD[catalog.Category](gdb, catalog.CategorySchema)}
}

func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	return r.create(ctx, c)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*catalog.Category, error) {
	return r.getByID(ctx, id)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*catalog.Category, error) {
	return r.findByID(ctx, id)
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *CategoryRepository) List(ctx context.Context, f query.Filter) ([]*catalog.Category, int64, error) {
	return r.list(ctx, f)
}

func (r *CategoryRepository) Update(ctx context.Context, id uint, u catalog.CategoryUpdate) (*catalog.Category, error) {
	return r.update(ctx, id, u.Changes())
}

// Delete refuses to remove a category that tickets still reference.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	var referencing int64
	if err := r.conn(ctx).Model(&ticket.Ticket{}).Where("category_id = ?", id).Count(&referencing).Error; err != nil {
		return translateError(r.entity(), err)
	}
	if referencing > 0 {
		return apperrors.NewForeignKeyViolation(r.entity(), "category is referenced by tickets").WithConstraint("category_id")
	}
	return r.deleteByID(ctx, id)
}

func (r *CategoryRepository) Upsert(ctx context.Context, id uint, create *catalog.Category, update catalog.CategoryUpdate) (*catalog.Category, error) {
	return r.upsert(ctx, id, func(tx *gorm.DB) error {
		create.ID = id
		return tx.Create(create).Error
	}, update.Changes())
}

func (r *CategoryRepository) Aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error) {
	return r.aggregate(ctx, p, agg)
}

func (r *CategoryRepository) GroupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error) {
	return r.groupBy(ctx, p, g)
}
