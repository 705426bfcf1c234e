package repository

import (
	"context"

	"gorm.io/gorm"

	"fixdesk/internal/domain/user"
	"fixdesk/internal/shared/query"
)

type UserRepository struct {
	crud[user.User]
}

func NewUserRepository(gdb *gorm.DB) *UserRepository {
	return &UserRepository{crud: newCRUD[user.User](gdb, user.Schema)}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.create(ctx, u)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.getByID(ctx, id)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findByID(ctx, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) List(ctx context.Context, f query.Filter) ([]*user.User, int64, error) {
	return r.list(ctx, f)
}

func (r *UserRepository) Update(ctx context.Context, id string, u user.Update) (*user.User, error) {
	return r.update(ctx, id, u.Changes())
}

// Delete removes the staff account. Assigned tickets keep their technician_id
// as a dangling soft reference, matching the weak-relation semantics.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}

func (r *UserRepository) Upsert(ctx context.Context, id string, create *user.User, update user.Update) (*user.User, error) {
	return r.upsert(ctx, id, func(tx *gorm.DB) error {
		create.ID = id
		return tx.Create(create).Error
	}, update.Changes())
}

func (r *UserRepository) Aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error) {
	return r.aggregate(ctx, p, agg)
}

func (r *UserRepository) GroupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error) {
	return r.groupBy(ctx, p, g)
}
