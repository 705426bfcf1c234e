package user

import (
	"context"

	"fixdesk/internal/shared/query"
)

// Repository is the persistence contract for staff accounts. The password
// column is deliberately absent from Schema, so filters and sorts can never
// target it.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, f query.Filter) ([]*User, int64, error)
	Update(ctx context.Context, id string, u Update) (*User, error)
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, id string, create *User, update Update) (*User, error)
	Aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error)
	GroupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error)
}
