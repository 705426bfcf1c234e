package query

import (
	"fmt"
	"strings"

	apperrors "fixdesk/internal/shared/errors"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// OrderBy is one element of a sort specification.
type OrderBy struct {
	Column    string
	Direction Direction
}

// Sort is an ordered list of (column, direction) pairs.
type Sort []OrderBy

// Clause renders the sort into an ORDER BY body, validating every column
// against the schema.
func (s Sort) Clause(schema Schema) (string, error) {
	if len(s) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(s))
	for _, o := range s {
		if err := schema.checkColumn(o.Column); err != nil {
			return "", err
		}
		dir := o.Direction
		if dir != Desc {
			dir = Asc
		}
		parts = append(parts, o.Column+" "+string(dir))
	}
	return strings.Join(parts, ", "), nil
}

// Page selects a window of a result set. Offset/Limit give classic paging;
// After resumes past the row with the given primary-key value (keyset paging).
// Both styles may be requested, matching the access patterns of the consuming
// application.
type Page struct {
	Offset int
	Limit  int
	After  any
}

// Filter bundles the three read-query knobs that findMany-style operations
// accept.
type Filter struct {
	Predicate Predicate
	Sort      Sort
	Page      Page
}

// Validate checks the filter against a schema without building SQL. It is used
// by repositories that want to fail fast before acquiring a connection.
func (f Filter) Validate(schema Schema) error {
	if _, _, err := Compile(schema, f.Predicate); err != nil {
		return err
	}
	if _, err := f.Sort.Clause(schema); err != nil {
		return err
	}
	if f.Page.Offset < 0 || f.Page.Limit < 0 {
		return apperrors.NewValidation(schema.Entity, fmt.Sprintf("negative pagination bounds (offset=%d, limit=%d)", f.Page.Offset, f.Page.Limit))
	}
	return nil
}
