package repository

import (
	"context"

	"gorm.io/gorm"

	"fixdesk/internal/domain/customer"
	"fixdesk/internal/shared/query"
)

type CustomerRepository struct {
	crud[customer.Customer]
}

func NewCustomerRepository(gdb *gorm.DB) *CustomerRepository {
	return &CustomerRepository{crud: newCRUD[customer.Customer](gdb, customer.Schema)}
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return r.create(ctx, c)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	return r.getByID(ctx, id)
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	return r.findByID(ctx, id)
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	return r.getBy(ctx, "phone", phone)
}

func (r *CustomerRepository) List(ctx context.Context, f query.Filter) ([]*customer.Customer, int64, error) {
	return r.list(ctx, f)
}

func (r *CustomerRepository) Update(ctx context.Context, id string, u customer.Update) (*customer.Customer, error) {
	return r.update(ctx, id, u.Changes())
}

// Delete removes the customer record. Tickets keep their denormalized
// name/phone copies, so the soft references on tickets stay valid.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}

func (r *CustomerRepository) Upsert(ctx context.Context, id string, create *customer.Customer, update customer.Update) (*customer.Customer, error) {
	return r.upsert(ctx, id, func(tx *gorm.DB) error {
		create.ID = id
		return tx.Create(create).Error
	}, update.Changes())
}

func (r *CustomerRepository) Aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error) {
	return r.aggregate(ctx, p, agg)
}

func (r *CustomerRepository) GroupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error) {
	return r.groupBy(ctx, p, g)
}
