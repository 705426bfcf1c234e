package repository

import (
	"context"

	"gorm.io/gorm"

	"fixdesk/internal/domain/inventory"
	"fixdesk/internal/shared/query"
)

type SparePartRepository struct {
	crud[inventory.SparePart]
}

func NewSparePartRepository(gdb *gorm.DB) *SparePartRepository {
	return &SparePartRepository{crud: newCRUD[inventory.SparePart](gdb, inventory.Schema)}
}

func (r *SparePartRepository) Create(ctx context.Context, p *inventory.SparePart) error {
	return r.create(ctx, p)
}

func (r *SparePartRepository) GetByID(ctx context.Context, id uint) (*inventory.SparePart, error) {
	return r.getByID(ctx, id)
}

func (r *SparePartRepository) FindByID(ctx context.Context, id uint) (*inventory.SparePart, error) {
	return r.findByID(ctx, id)
}

func (r *SparePartRepository) GetBySKU(ctx context.Context, sku string) (*inventory.SparePart, error) {
	return r.getBy(ctx, "sku", sku)
}

func (r *SparePartRepository) List(ctx context.Context, f query.Filter) ([]*inventory.SparePart, int64, error) {
	return r.list(ctx, f)
}

func (r *SparePartRepository) Update(ctx context.Context, id uint, u inventory.Update) (*inventory.SparePart, error) {
	return r.update(ctx, id, u.Changes())
}

func (r *SparePartRepository) Delete(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, id)
}

func (r *SparePartRepository) Upsert(ctx context.Context, id uint, create *inventory.SparePart, update inventory.Update) (*inventory.SparePart, error) {
	return r.upsert(ctx, id, func(tx *gorm.DB) error {
		create.ID = id
		return tx.Create(create).Error
	}, update.Changes())
}

func (r *SparePartRepository) Aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error) {
	return r.aggregate(ctx, p, agg)
}

func (r *SparePartRepository) GroupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error) {
	return r.groupBy(ctx, p, g)
}
