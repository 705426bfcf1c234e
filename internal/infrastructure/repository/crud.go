// Package repository implements the persistence contracts of the domain
// packages on top of GORM. One generic core carries the schema-driven CRUD,
// aggregation, and grouping plumbing; the per-aggregate repositories embed it
// and add their entity-specific operations. All repositories pick up an
// in-flight transaction from the context, so the same code runs inside and
// outside the transaction coordinator.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	db "fixdesk/internal/shared/db"
	apperrors "fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/query"
)

// crud is the generic persistence core shared by every repository.
type crud[T any] struct {
	db     *gorm.DB
	schema query.Schema
}

func newCRUD[T any](gdb *gorm.DB, schema query.Schema) crud[T] {
	return crud[T]{db: gdb, schema: schema}
}

func (r *crud[T]) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *crud[T]) entity() string {
	return r.schema.Entity
}

func (r *crud[T]) create(ctx context.Context, e *T) error {
	if err := r.conn(ctx).Create(e).Error; err != nil {
		return translateError(r.entity(), err)
	}
	return nil
}

// getByID is the strict keyed lookup: absent rows are a not-found error.
func (r *crud[T]) getByID(ctx context.Context, id any) (*T, error) {
	return r.getBy(ctx, r.schema.PrimaryKey, id)
}

// findByID is the lenient variant: absent rows yield (nil, nil).
func (r *crud[T]) findByID(ctx context.Context, id any) (*T, error) {
	e, err := r.getByID(ctx, id)
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	return e, err
}

// getBy looks a row up by a single column, strictly.
func (r *crud[T]) getBy(ctx context.Context, column string, value any) (*T, error) {
	var e T
	err := r.conn(ctx).Where(column+" = ?", value).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound(r.entity(), fmt.Sprintf("%s not found", r.entity()), err)
		}
		return nil, translateError(r.entity(), err)
	}
	return &e, nil
}

// list applies filter, sort, and pagination, returning the page plus the
// total count of matching rows before paging.
func (r *crud[T]) list(ctx context.Context, f query.Filter) ([]*T, int64, error) {
	if err := f.Validate(r.schema); err != nil {
		return nil, 0, err
	}

	whereSQL, whereArgs, err := query.Compile(r.schema, f.Predicate)
	if err != nil {
		return nil, 0, err
	}
	orderClause, err := f.Sort.Clause(r.schema)
	if err != nil {
		return nil, 0, err
	}

	q := r.conn(ctx).Model(new(T))
	if whereSQL != "" {
		q = q.Where(whereSQL, whereArgs...)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(r.entity(), err)
	}

	pk := r.schema.PrimaryKey
	if f.Page.After != nil {
		// Keyset paging resumes past the given key and is ordered by it; an
		// explicit sort would break the cursor invariant.
		q = q.Where(pk+" > ?", f.Page.After).Order(pk + " ASC")
	} else if orderClause != "" {
		// Primary key as final tiebreaker keeps page boundaries stable.
		q = q.Order(orderClause + ", " + pk + " ASC")
	} else {
		q = q.Order(pk + " ASC")
	}

	if f.Page.Offset > 0 {
		q = q.Offset(f.Page.Offset)
	}
	if f.Page.Limit > 0 {
		q = q.Limit(f.Page.Limit)
	}

	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, translateError(r.entity(), err)
	}

	out := make([]*T, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, total, nil
}

// update applies the given column changes to one row and returns the fresh
// row. Entities with an updated_at column get it touched by GORM.
func (r *crud[T]) update(ctx context.Context, id any, changes map[string]any) (*T, error) {
	if _, err := r.getByID(ctx, id); err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return r.getByID(ctx, id)
	}

	res := r.conn(ctx).Model(new(T)).Where(r.schema.PrimaryKey+" = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, translateError(r.entity(), res.Error)
	}
	return r.getByID(ctx, id)
}

func (r *crud[T]) deleteByID(ctx context.Context, id any) error {
	res := r.conn(ctx).Where(r.schema.PrimaryKey+" = ?", id).Delete(new(T))
	if res.Error != nil {
		return translateError(r.entity(), res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound(r.entity(), fmt.Sprintf("%s not found", r.entity()))
	}
	return nil
}

// upsert creates the row when absent and applies the update otherwise, in one
// atomic step. GORM turns the inner Transaction into a savepoint when the
// context already carries one.
func (r *crud[T]) upsert(ctx context.Context, id any, create func(tx *gorm.DB) error, changes map[string]any) (*T, error) {
	conn := r.conn(ctx)
	err := conn.Transaction(func(tx *gorm.DB) error {
		var existing T
		err := tx.Where(r.schema.PrimaryKey+" = ?", id).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return create(tx)
		case err != nil:
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(new(T)).Where(r.schema.PrimaryKey+" = ?", id).Updates(changes).Error
	})
	if err != nil {
		return nil, translateError(r.entity(), err)
	}
	return r.getByID(ctx, id)
}

// aggregate computes the requested aggregates over the rows matching p.
func (r *crud[T]) aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error) {
	selects, err := agg.Selects(r.schema)
	if err != nil {
		return nil, err
	}
	whereSQL, whereArgs, err := query.Compile(r.schema, p)
	if err != nil {
		return nil, err
	}

	q := r.conn(ctx).Model(new(T)).Select(strings.Join(selects, ", "))
	if whereSQL != "" {
		q = q.Where(whereSQL, whereArgs...)
	}

	row := query.AggregateRow{}
	if err := q.Take(&row).Error; err != nil {
		return nil, translateError(r.entity(), err)
	}
	return row, nil
}

// groupBy groups the rows matching p and computes aggregates per group. The
// grouping is validated first, so a having or order-by clause referencing a
// column outside the grouped set never reaches the database.
func (r *crud[T]) groupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error) {
	if err := g.Validate(r.schema); err != nil {
		return nil, err
	}
	groupSchema, err := g.GroupSchema(r.schema)
	if err != nil {
		return nil, err
	}

	whereSQL, whereArgs, err := query.Compile(r.schema, p)
	if err != nil {
		return nil, err
	}
	havingSQL, havingArgs, err := query.Compile(groupSchema, g.Having)
	if err != nil {
		return nil, err
	}
	orderClause, err := g.Sort.Clause(groupSchema)
	if err != nil {
		return nil, err
	}

	selects := append([]string{}, g.By...)
	if !g.Aggregates.IsEmpty() {
		aggSelects, err := g.Aggregates.Selects(r.schema)
		if err != nil {
			return nil, err
		}
		selects = append(selects, aggSelects...)
	}

	q := r.conn(ctx).Model(new(T)).
		Select(strings.Join(selects, ", ")).
		Group(strings.Join(g.By, ", "))
	if whereSQL != "" {
		q = q.Where(whereSQL, whereArgs...)
	}
	if havingSQL != "" {
		q = q.Having(havingSQL, havingArgs...)
	}
	if orderClause != "" {
		q = q.Order(orderClause)
	}

	var rows []query.AggregateRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, translateError(r.entity(), err)
	}
	return rows, nil
}
