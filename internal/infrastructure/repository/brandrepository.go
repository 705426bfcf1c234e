package repository

import (
	"context"

	"gorm.io/gorm"

	"fixdesk/internal/domain/catalog"
	"fixdesk/internal/domain/ticket"
	apperrors "fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/query"
)

type BrandRepository struct {
	crud[catalog.Brand]
}

func NewBrandRepository(gdb *gorm.DB) *BrandRepository {
	return &BrandRepository{crud: newCRUD[catalog.Brand](gdb, catalog.BrandSchema)}
}

func (r *BrandRepository) Create(ctx context.Context, b *catalog.Brand) error {
	return r.create(ctx, b)
}

func (r *BrandRepository) GetByID(ctx context.Context, id uint) (*catalog.Brand, error) {
	return r.getByID(ctx, id)
}

func (r *BrandRepository) FindByID(ctx context.Context, id uint) (*catalog.Brand, error) {
	return r.findByID(ctx, id)
}

func (r *BrandRepository) GetByName(ctx context.Context, name string) (*catalog.Brand, error) {
	return r.getBy(ctx, "name", name)
}

func (r *BrandRepository) List(ctx context.Context, f query.Filter) ([]*catalog.Brand, int64, error) {
	return r.list(ctx, f)
}

func (r *BrandRepository) Update(ctx context.Context, id uint, u catalog.BrandUpdate) (*catalog.Brand, error) {
	return r.update(ctx, id, u.Changes())
}

// Delete refuses to remove a brand that tickets still reference.
func (r *BrandRepository) Delete(ctx context.Context, id uint) error {
	var referencing int64
	if err := r.conn(ctx).Model(&ticket.Ticket{}).Where("brand_id = ?", id).Count(&referencing).Error; err != nil {
		return translateError(r.entity(), err)
	}
	if referencing > 0 {
		return apperrors.NewForeignKeyViolation(r.entity(), "brand is referenced by tickets").WithConstraint("brand_id")
	}
	return r.deleteByID(ctx, id)
}

func (r *BrandRepository) Upsert(ctx context.Context, id uint, create *catalog.Brand, update catalog.BrandUpdate) (*catalog.Brand, error) {
	return r.upsert(ctx, id, func(tx *gorm.DB) error {
		create.ID = id
		return tx.Create(create).Error
	}, update.Changes())
}

func (r *BrandRepository) Aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error) {
	return r.aggregate(ctx, p, agg)
}

func (r *BrandRepository) GroupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error) {
	return r.groupBy(ctx, p, g)
}
