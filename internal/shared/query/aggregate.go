package query

import (
	"fmt"

	apperrors "fixdesk/internal/shared/errors"
)

// AggregateRow is one row of an aggregate or grouped result, keyed by the
// grouped column names and aggregate aliases.
type AggregateRow = map[string]any

// Aggregation selects which aggregate functions to compute. Avg and Sum are
// restricted to numeric columns; Min and Max accept any whitelisted column.
type Aggregation struct {
	Count bool
	Avg   []string
	Sum   []string
	Min   []string
	Max   []string
}

// CountAlias is the result column name for the row count aggregate.
const CountAlias = "row_count"

// AvgAlias returns the result column name for AVG over the given column.
func AvgAlias(column string) string { return "avg_" + column }

// SumAlias returns the result column name for SUM over the given column.
func SumAlias(column string) string { return "sum_" + column }

// MinAlias returns the result column name for MIN over the given column.
func MinAlias(column string) string { return "min_" + column }

// MaxAlias returns the result column name for MAX over the given column.
func MaxAlias(column string) string { return "max_" + column }

// IsEmpty reports whether no aggregate was requested.
func (a Aggregation) IsEmpty() bool {
	return !a.Count && len(a.Avg) == 0 && len(a.Sum) == 0 && len(a.Min) == 0 && len(a.Max) == 0
}

// Selects renders the aggregation into SELECT expressions, validating every
// column reference against the schema.
func (a Aggregation) Selects(s Schema) ([]string, error) {
	var selects []string
	if a.Count {
		selects = append(selects, "COUNT(*) AS "+CountAlias)
	}
	for _, col := range a.Avg {
		if err := s.checkNumericColumn(col); err != nil {
			return nil, err
		}
		selects = append(selects, fmt.Sprintf("AVG(%s) AS %s", col, AvgAlias(col)))
	}
	for _, col := range a.Sum {
		if err := s.checkNumericColumn(col); err != nil {
			return nil, err
		}
		selects = append(selects, fmt.Sprintf("SUM(%s) AS %s", col, SumAlias(col)))
	}
	for _, col := range a.Min {
		if err := s.checkColumn(col); err != nil {
			return nil, err
		}
		selects = append(selects, fmt.Sprintf("MIN(%s) AS %s", col, MinAlias(col)))
	}
	for _, col := range a.Max {
		if err := s.checkColumn(col); err != nil {
			return nil, err
		}
		selects = append(selects, fmt.Sprintf("MAX(%s) AS %s", col, MaxAlias(col)))
	}
	if len(selects) == 0 {
		return nil, apperrors.NewValidation(s.Entity, "empty aggregation selection")
	}
	return selects, nil
}

// aliases returns the derived result columns of the aggregation and their
// kinds, for validating having/order-by references in grouped queries.
func (a Aggregation) aliases(s Schema) map[string]ColumnKind {
	out := make(map[string]ColumnKind)
	if a.Count {
		out[CountAlias] = ColumnNumeric
	}
	for _, col := range a.Avg {
		out[AvgAlias(col)] = ColumnNumeric
	}
	for _, col := range a.Sum {
		out[SumAlias(col)] = ColumnNumeric
	}
	for _, col := range a.Min {
		if kind, ok := s.ColumnKind(col); ok {
			out[MinAlias(col)] = kind
		}
	}
	for _, col := range a.Max {
		if kind, ok := s.ColumnKind(col); ok {
			out[MaxAlias(col)] = kind
		}
	}
	return out
}

// Grouping describes a grouped aggregate query. Having and Sort may reference
// only grouped columns or aggregate aliases; anything else is rejected before
// the query executes.
type Grouping struct {
	By         []string
	Aggregates Aggregation
	Having     Predicate
	Sort       Sort
}

// GroupSchema derives the schema visible to Having and Sort: the grouped
// columns plus the aggregate result aliases.
func (g Grouping) GroupSchema(s Schema) (Schema, error) {
	if len(g.By) == 0 {
		return Schema{}, apperrors.NewValidation(s.Entity, "groupBy requires at least one column")
	}
	derived := Schema{
		Entity:  s.Entity,
		Table:   s.Table,
		Columns: make(map[string]ColumnKind, len(g.By)),
	}
	for _, col := range g.By {
		kind, ok := s.ColumnKind(col)
		if !ok {
			return Schema{}, apperrors.NewValidation(s.Entity, fmt.Sprintf("unknown column %q", col))
		}
		derived.Columns[col] = kind
	}
	for alias, kind := range g.Aggregates.aliases(s) {
		derived.Columns[alias] = kind
	}
	return derived, nil
}

// Validate checks the whole grouping request against the schema, including the
// constraint that Having and Sort stay within By plus the aggregate aliases.
func (g Grouping) Validate(s Schema) error {
	groupSchema, err := g.GroupSchema(s)
	if err != nil {
		return err
	}
	if !g.Aggregates.IsEmpty() {
		if _, err := g.Aggregates.Selects(s); err != nil {
			return err
		}
	}
	if _, _, err := Compile(groupSchema, g.Having); err != nil {
		return err
	}
	if _, err := g.Sort.Clause(groupSchema); err != nil {
		return err
	}
	return nil
}
