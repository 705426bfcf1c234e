package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fixdesk/internal/shared/errors"
)

func testSchema() Schema {
	return Schema{
		Entity:     "ticket",
		Table:      "tickets",
		PrimaryKey: "id",
		Columns: map[string]ColumnKind{
			"id":            ColumnString,
			"ticket_number": ColumnNumeric,
			"status":        ColumnString,
			"priority":      ColumnString,
			"customer_name": ColumnString,
			"labor_cost":    ColumnNumeric,
			"parts_cost":    ColumnNumeric,
			"is_repaired":   ColumnBool,
			"created_at":    ColumnTime,
		},
	}
}

func TestCompile_LeafConditions(t *testing.T) {
	s := testSchema()

	t.Run("equality", func(t *testing.T) {
		sql, args, err := Compile(s, Eq("status", "open"))
		require.NoError(t, err)
		assert.Equal(t, "status = ?", sql)
		assert.Equal(t, []any{"open"}, args)
	})

	t.Run("range operators", func(t *testing.T) {
		sql, args, err := Compile(s, Where("labor_cost", OpGte, 100.0))
		require.NoError(t, err)
		assert.Equal(t, "labor_cost >= ?", sql)
		assert.Equal(t, []any{100.0}, args)
	})

	t.Run("contains escapes wildcards", func(t *testing.T) {
		sql, args, err := Compile(s, Where("customer_name", OpContains, "50%"))
		require.NoError(t, err)
		assert.Equal(t, "customer_name LIKE ? ESCAPE '|'", sql)
		assert.Equal(t, []any{"%50|%%"}, args)
	})

	t.Run("contains escapes the escape character itself", func(t *testing.T) {
		sql, args, err := Compile(s, Where("customer_name", OpContains, "a|b_c"))
		require.NoError(t, err)
		assert.Equal(t, "customer_name LIKE ? ESCAPE '|'", sql)
		assert.Equal(t, []any{"%a||b|_c%"}, args)
	})

	t.Run("starts and ends with", func(t *testing.T) {
		sql, args, err := Compile(s, Where("customer_name", OpStartsWith, "Jane"))
		require.NoError(t, err)
		assert.Equal(t, "customer_name LIKE ? ESCAPE '|'", sql)
		assert.Equal(t, []any{"Jane%"}, args)

		sql, args, err = Compile(s, Where("customer_name", OpEndsWith, "Doe"))
		require.NoError(t, err)
		assert.Equal(t, "customer_name LIKE ? ESCAPE '|'", sql)
		assert.Equal(t, []any{"%Doe"}, args)
	})

	t.Run("in list", func(t *testing.T) {
		sql, args, err := Compile(s, In("status", "open", "in_progress"))
		require.NoError(t, err)
		assert.Equal(t, "status IN (?,?)", sql)
		assert.Equal(t, []any{"open", "in_progress"}, args)
	})

	t.Run("empty in matches nothing", func(t *testing.T) {
		sql, args, err := Compile(s, In("status"))
		require.NoError(t, err)
		assert.Equal(t, "1 = 0", sql)
		assert.Empty(t, args)
	})

	t.Run("null checks", func(t *testing.T) {
		sql, args, err := Compile(s, IsNull("priority"))
		require.NoError(t, err)
		assert.Equal(t, "priority IS NULL", sql)
		assert.Empty(t, args)
	})
}

func TestCompile_Composition(t *testing.T) {
	s := testSchema()

	t.Run("and", func(t *testing.T) {
		sql, args, err := Compile(s, And(Eq("status", "open"), Eq("priority", "high")))
		require.NoError(t, err)
		assert.Equal(t, "(status = ?) AND (priority = ?)", sql)
		assert.Equal(t, []any{"open", "high"}, args)
	})

	t.Run("or nested in and", func(t *testing.T) {
		p := And(
			Eq("is_repaired", false),
			Or(Eq("priority", "high"), Eq("priority", "urgent")),
		)
		sql, args, err := Compile(s, p)
		require.NoError(t, err)
		assert.Equal(t, "(is_repaired = ?) AND ((priority = ?) OR (priority = ?))", sql)
		assert.Equal(t, []any{false, "high", "urgent"}, args)
	})

	t.Run("not", func(t *testing.T) {
		sql, args, err := Compile(s, Not(Eq("status", "cancelled")))
		require.NoError(t, err)
		assert.Equal(t, "NOT (status = ?)", sql)
		assert.Equal(t, []any{"cancelled"}, args)
	})

	t.Run("single-child and collapses", func(t *testing.T) {
		sql, _, err := Compile(s, And(Eq("status", "open")))
		require.NoError(t, err)
		assert.Equal(t, "status = ?", sql)
	})

	t.Run("nil predicate compiles empty", func(t *testing.T) {
		sql, args, err := Compile(s, nil)
		require.NoError(t, err)
		assert.Empty(t, sql)
		assert.Empty(t, args)
	})
}

func TestCompile_UnknownColumn(t *testing.T) {
	s := testSchema()

	_, _, err := Compile(s, Eq("no_such_column", 1))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	// Deeply nested references are validated too.
	_, _, err = Compile(s, And(Eq("status", "open"), Not(Or(Eq("bogus", 1)))))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSort_Clause(t *testing.T) {
	s := testSchema()

	t.Run("multi column", func(t *testing.T) {
		clause, err := Sort{
			{Column: "priority", Direction: Desc},
			{Column: "created_at", Direction: Asc},
		}.Clause(s)
		require.NoError(t, err)
		assert.Equal(t, "priority DESC, created_at ASC", clause)
	})

	t.Run("direction defaults to asc", func(t *testing.T) {
		clause, err := Sort{{Column: "status"}}.Clause(s)
		require.NoError(t, err)
		assert.Equal(t, "status ASC", clause)
	})

	t.Run("unknown column rejected", func(t *testing.T) {
		_, err := Sort{{Column: "nope"}}.Clause(s)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestFilter_Validate(t *testing.T) {
	s := testSchema()

	err := Filter{
		Predicate: Eq("status", "open"),
		Sort:      Sort{{Column: "created_at", Direction: Desc}},
		Page:      Page{Offset: 10, Limit: 20},
	}.Validate(s)
	assert.NoError(t, err)

	err = Filter{Page: Page{Offset: -1}}.Validate(s)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
