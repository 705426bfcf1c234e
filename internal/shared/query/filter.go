package query

import (
	"fmt"
	"strings"

	apperrors "fixdesk/internal/shared/errors"
)

// Op is a comparison operator usable in a leaf condition.
type Op string

const (
	OpEq         Op = "eq"
	OpNe         Op = "ne"
	OpGt         Op = "gt"
	OpGte        Op = "gte"
	OpLt         Op = "lt"
	OpLte        Op = "lte"
	OpContains   Op = "contains"
	OpStartsWith Op = "starts_with"
	OpEndsWith   Op = "ends_with"
	OpIn         Op = "in"
	OpIsNull     Op = "is_null"
	OpNotNull    Op = "not_null"
)

// Predicate is a node of a composable filter tree. Leaves compare one column
// against a value; branches combine children with AND/OR/NOT.
type Predicate interface {
	compile(s Schema) (string, []any, error)
}

// Condition is a leaf predicate over a single column.
type Condition struct {
	Column string
	Op     Op
	Value  any
	Values []any // used with OpIn
}

// Where is shorthand for a leaf condition.
func Where(column string, op Op, value any) Condition {
	return Condition{Column: column, Op: op, Value: value}
}

// Eq is shorthand for an equality condition.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Op: OpEq, Value: value}
}

// In matches rows whose column equals any of the given values.
func In(column string, values ...any) Condition {
	return Condition{Column: column, Op: OpIn, Values: values}
}

// IsNull matches rows whose column is NULL.
func IsNull(column string) Condition {
	return Condition{Column: column, Op: OpIsNull}
}

func (c Condition) compile(s Schema) (string, []any, error) {
	if err := s.checkColumn(c.Column); err != nil {
		return "", nil, err
	}

	switch c.Op {
	case OpEq:
		return c.Column + " = ?", []any{c.Value}, nil
	case OpNe:
		return c.Column + " <> ?", []any{c.Value}, nil
	case OpGt:
		return c.Column + " > ?", []any{c.Value}, nil
	case OpGte:
		return c.Column + " >= ?", []any{c.Value}, nil
	case OpLt:
		return c.Column + " < ?", []any{c.Value}, nil
	case OpLte:
		return c.Column + " <= ?", []any{c.Value}, nil
	case OpContains:
		return c.Column + likeClause, []any{"%" + escapeLike(c.Value) + "%"}, nil
	case OpStartsWith:
		return c.Column + likeClause, []any{escapeLike(c.Value) + "%"}, nil
	case OpEndsWith:
		return c.Column + likeClause, []any{"%" + escapeLike(c.Value)}, nil
	case OpIn:
		if len(c.Values) == 0 {
			// Empty IN matches nothing.
			return "1 = 0", nil, nil
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(c.Values)), ",")
		return c.Column + " IN (" + placeholders + ")", c.Values, nil
	case OpIsNull:
		return c.Column + " IS NULL", nil, nil
	case OpNotNull:
		return c.Column + " IS NOT NULL", nil, nil
	default:
		return "", nil, apperrors.NewValidation(s.Entity, fmt.Sprintf("unsupported operator %q", c.Op))
	}
}

// likeClause declares the escape character explicitly; without it SQLite
// treats the escapes in the operand as literal characters. Pipe is used
// because a backslash in a quoted SQL literal reads differently on MySQL and
// SQLite.
const likeClause = " LIKE ? ESCAPE '|'"

// escapeLike renders a LIKE operand, escaping the SQL wildcard characters so
// user input matches literally.
func escapeLike(v any) string {
	str := fmt.Sprint(v)
	str = strings.ReplaceAll(str, "|", "||")
	str = strings.ReplaceAll(str, "%", "|%")
	str = strings.ReplaceAll(str, "_", "|_")
	return str
}

type conjunction struct {
	op       string
	children []Predicate
}

// And combines predicates so that all must match.
func And(children ...Predicate) Predicate {
	return conjunction{op: "AND", children: children}
}

// Or combines predicates so that at least one must match.
func Or(children ...Predicate) Predicate {
	return conjunction{op: "OR", children: children}
}

func (c conjunction) compile(s Schema) (string, []any, error) {
	if len(c.children) == 0 {
		return "", nil, nil
	}
	if len(c.children) == 1 {
		return c.children[0].compile(s)
	}

	parts := make([]string, 0, len(c.children))
	var args []any
	for _, child := range c.children {
		sql, childArgs, err := child.compile(s)
		if err != nil {
			return "", nil, err
		}
		if sql == "" {
			continue
		}
		parts = append(parts, "("+sql+")")
		args = append(args, childArgs...)
	}
	if len(parts) == 0 {
		return "", nil, nil
	}
	return strings.Join(parts, " "+c.op+" "), args, nil
}

type negation struct {
	child Predicate
}

// Not inverts a predicate.
func Not(child Predicate) Predicate {
	return negation{child: child}
}

func (n negation) compile(s Schema) (string, []any, error) {
	sql, args, err := n.child.compile(s)
	if err != nil {
		return "", nil, err
	}
	if sql == "" {
		return "", nil, nil
	}
	return "NOT (" + sql + ")", args, nil
}

// Compile renders a predicate tree into a parameterized SQL condition against
// the given schema. A nil predicate compiles to the empty condition. Unknown
// columns and operators yield a validation error before any SQL executes.
func Compile(s Schema, p Predicate) (string, []any, error) {
	if p == nil {
		return "", nil, nil
	}
	return p.compile(s)
}
