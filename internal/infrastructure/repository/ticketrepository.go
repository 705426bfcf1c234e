package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fixdesk/internal/domain/ticket"
	apperrors "fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/query"
)

type TicketRepository struct {
	crud[ticket.Ticket]
}

func NewTicketRepository(gdb *gorm.DB) *TicketRepository {
	return &TicketRepository{crud: newCRUD[ticket.Ticket](gdb, ticket.Schema)}
}

// Create inserts the ticket and allocates its sequential display number
// inside the same transaction, so concurrent creates never skip or reuse a
// number within a committed sequence.
func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	conn := r.conn(ctx)
	err := conn.Transaction(func(tx *gorm.DB) error {
		if t.TicketNumber == 0 {
			number, err := nextTicketNumber(tx)
			if err != nil {
				return err
			}
			t.TicketNumber = number
		}
		return tx.Create(t).Error
	})
	if err != nil {
		return translateError(r.entity(), err)
	}
	return nil
}

// nextTicketNumber returns MAX(ticket_number)+1 within the given transaction.
func nextTicketNumber(tx *gorm.DB) (int, error) {
	var current int
	err := tx.Model(&ticket.Ticket{}).
		Select("COALESCE(MAX(ticket_number), 0)").
		Scan(&current).Error
	if err != nil {
		return 0, fmt.Errorf("failed to allocate ticket number: %w", err)
	}
	return current + 1, nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	return r.getByID(ctx, id)
}

func (r *TicketRepository) FindByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	return r.findByID(ctx, id)
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number int) (*ticket.Ticket, error) {
	return r.getBy(ctx, "ticket_number", number)
}

func (r *TicketRepository) List(ctx context.Context, f query.Filter) ([]*ticket.Ticket, int64, error) {
	return r.list(ctx, f)
}

func (r *TicketRepository) Update(ctx context.Context, id string, u ticket.Update) (*ticket.Ticket, error) {
	return r.update(ctx, id, u.Changes())
}

// Delete removes the ticket and every photo attached to it, atomically.
func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	conn := r.conn(ctx)
	err := conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", id).Delete(&ticket.Photo{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&ticket.Ticket{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NewNotFound(r.entity(), "ticket not found")
		}
		return nil
	})
	return translateError(r.entity(), err)
}

// Upsert creates the ticket (allocating its number) when absent and applies
// the update otherwise.
func (r *TicketRepository) Upsert(ctx context.Context, id string, create *ticket.Ticket, update ticket.Update) (*ticket.Ticket, error) {
	return r.upsert(ctx, id, func(tx *gorm.DB) error {
		create.ID = id
		if create.TicketNumber == 0 {
			number, err := nextTicketNumber(tx)
			if err != nil {
				return err
			}
			create.TicketNumber = number
		}
		return tx.Create(create).Error
	}, update.Changes())
}

func (r *TicketRepository) Aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error) {
	return r.aggregate(ctx, p, agg)
}

func (r *TicketRepository) GroupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error) {
	return r.groupBy(ctx, p, g)
}

// AddPhoto attaches a photo to an existing ticket.
func (r *TicketRepository) AddPhoto(ctx context.Context, p *ticket.Photo) error {
	conn := r.conn(ctx)

	// Explicit parent check keeps the error deterministic across engines.
	var exists int64
	if err := conn.Model(&ticket.Ticket{}).Where("id = ?", p.TicketID).Count(&exists).Error; err != nil {
		return translateError("photo", err)
	}
	if exists == 0 {
		return apperrors.NewForeignKeyViolation("photo", "ticket does not exist").WithConstraint("ticket_id")
	}

	if err := conn.Create(p).Error; err != nil {
		return translateError("photo", err)
	}
	return nil
}

func (r *TicketRepository) GetPhotosByTicketID(ctx context.Context, ticketID string) ([]*ticket.Photo, error) {
	var photos []ticket.Photo
	err := r.conn(ctx).
		Where("ticket_id = ?", ticketID).
		Order("id ASC").
		Find(&photos).Error
	if err != nil {
		return nil, translateError("photo", err)
	}

	out := make([]*ticket.Photo, len(photos))
	for i := range photos {
		out[i] = &photos[i]
	}
	return out, nil
}

func (r *TicketRepository) UpdatePhoto(ctx context.Context, id string, u ticket.PhotoUpdate) (*ticket.Photo, error) {
	conn := r.conn(ctx)

	var p ticket.Photo
	if err := conn.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("photo", "photo not found", err)
		}
		return nil, translateError("photo", err)
	}

	changes := u.Changes()
	if len(changes) > 0 {
		if err := conn.Model(&ticket.Photo{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, translateError("photo", err)
		}
		if err := conn.Where("id = ?", id).First(&p).Error; err != nil {
			return nil, translateError("photo", err)
		}
	}
	return &p, nil
}

func (r *TicketRepository) DeletePhoto(ctx context.Context, id string) error {
	res := r.conn(ctx).Where("id = ?", id).Delete(&ticket.Photo{})
	if res.Error != nil {
		return translateError("photo", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("photo", "photo not found")
	}
	return nil
}
