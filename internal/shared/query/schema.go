// Package query implements the schema-driven query surface of the data-access
// layer: composable filter predicates, sorting, offset and keyset pagination,
// aggregation, and grouping. Every column reference is validated against a
// per-entity Schema before any SQL is built, so malformed requests fail as
// validation errors instead of reaching the database.
package query

import (
	"fmt"

	apperrors "fixdesk/internal/shared/errors"
)

// ColumnKind is the coarse type of a column, used to validate which operators
// and aggregates may target it.
type ColumnKind int

const (
	ColumnString ColumnKind = iota
	ColumnNumeric
	ColumnBool
	ColumnTime
)

// Schema describes the queryable surface of one entity: its table name, its
// primary key column, and the whitelist of filterable/sortable columns.
type Schema struct {
	Entity     string
	Table      string
	PrimaryKey string
	Columns    map[string]ColumnKind
}

// HasColumn reports whether the schema whitelists the given column.
func (s Schema) HasColumn(name string) bool {
	_, ok := s.Columns[name]
	return ok
}

// ColumnKind returns the kind of a whitelisted column.
func (s Schema) ColumnKind(name string) (ColumnKind, bool) {
	k, ok := s.Columns[name]
	return k, ok
}

// checkColumn returns a validation error when the column is not whitelisted.
func (s Schema) checkColumn(name string) error {
	if !s.HasColumn(name) {
		return apperrors.NewValidation(s.Entity, fmt.Sprintf("unknown column %q", name))
	}
	return nil
}

// checkNumericColumn returns a validation error unless the column is
// whitelisted and numeric.
func (s Schema) checkNumericColumn(name string) error {
	kind, ok := s.ColumnKind(name)
	if !ok {
		return apperrors.NewValidation(s.Entity, fmt.Sprintf("unknown column %q", name))
	}
	if kind != ColumnNumeric {
		return apperrors.NewValidation(s.Entity, fmt.Sprintf("column %q is not numeric", name))
	}
	return nil
}
