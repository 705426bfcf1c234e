package customer

import (
	"context"

	"fixdesk/internal/shared/query"
)

// Repository is the persistence contract for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	FindByID(ctx context.Context, id string) (*Customer, error)
	GetByPhone(ctx context.Context, phone string) (*Customer, error)
	List(ctx context.Context, f query.Filter) ([]*Customer, int64, error)
	Update(ctx context.Context, id string, u Update) (*Customer, error)
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, id string, create *Customer, update Update) (*Customer, error)
	Aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error)
	GroupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error)
}
