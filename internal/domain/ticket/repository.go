package ticket

import (
	"context"

	"fixdesk/internal/shared/query"
)

// Repository is the persistence contract for tickets and their photos.
//
// Create allocates the sequential ticket number inside the insert
// transaction. Delete cascades to the ticket's photos. GetByID fails with a
// not-found error when the row is absent; FindByID returns nil instead.
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)
	FindByID(ctx context.Context, id string) (*Ticket, error)
	GetByNumber(ctx context.Context, number int) (*Ticket, error)
	List(ctx context.Context, f query.Filter) ([]*Ticket, int64, error)
	Update(ctx context.Context, id string, u Update) (*Ticket, error)
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, id string, create *Ticket, update Update) (*Ticket, error)
	Aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error)
	GroupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error)

	AddPhoto(ctx context.Context, p *Photo) error
	GetPhotosByTicketID(ctx context.Context, ticketID string) ([]*Photo, error)
	UpdatePhoto(ctx context.Context, id string, u PhotoUpdate) (*Photo, error)
	DeletePhoto(ctx context.Context, id string) error
}
