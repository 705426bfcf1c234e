package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixdesk/internal/domain/catalog"
	apperrors "fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/query"
)

func TestBrandRepository(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewBrandRepository(gdb)

	t.Run("rejects a duplicate name", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &catalog.Brand{Name: "Samsung"}))

		err := repo.Create(ctx, &catalog.Brand{Name: "Samsung"})
		require.Error(t, err)
		assert.True(t, apperrors.IsUniqueViolation(err), "got %v", err)

		derr := apperrors.AsDataError(err)
		require.NotNil(t, derr)
		assert.Equal(t, "name", derr.Constraint)
	})

	t.Run("delete is restricted while tickets reference the brand", func(t *testing.T) {
		brand := createTestBrand(t, gdb, "LG")
		category := createTestCategory(t, gdb, "Washer", "washer")
		createTestTicket(t, gdb, brand.ID, category.ID)

		err := repo.Delete(ctx, brand.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsForeignKeyViolation(err))

		got, err := repo.GetByID(ctx, brand.ID)
		require.NoError(t, err)
		assert.Equal(t, "LG", got.Name)
	})

	t.Run("delete removes an unreferenced brand", func(t *testing.T) {
		brand := createTestBrand(t, gdb, "Acme")
		require.NoError(t, repo.Delete(ctx, brand.ID))

		got, err := repo.FindByID(ctx, brand.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("upsert creates then updates", func(t *testing.T) {
		got, err := repo.Upsert(ctx, 500, &catalog.Brand{Name: "Initial"}, catalog.BrandUpdate{})
		require.NoError(t, err)
		assert.Equal(t, uint(500), got.ID)
		assert.Equal(t, "Initial", got.Name)

		name := "Renamed"
		got, err = repo.Upsert(ctx, 500, &catalog.Brand{Name: "ignored"}, catalog.BrandUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
	})
}

func TestCategoryRepository(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(gdb)

	t.Run("rejects duplicate names and slugs", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &catalog.Category{Name: "Refrigerator", Slug: "refrigerator"}))

		err := repo.Create(ctx, &catalog.Category{Name: "Refrigerator", Slug: "other"})
		require.Error(t, err)
		assert.True(t, apperrors.IsUniqueViolation(err))

		err = repo.Create(ctx, &catalog.Category{Name: "Other", Slug: "refrigerator"})
		require.Error(t, err)
		assert.True(t, apperrors.IsUniqueViolation(err))
	})

	t.Run("finds by slug", func(t *testing.T) {
		got, err := repo.GetBySlug(ctx, "refrigerator")
		require.NoError(t, err)
		assert.Equal(t, "Refrigerator", got.Name)
	})

	t.Run("delete is restricted while tickets reference the category", func(t *testing.T) {
		brand := createTestBrand(t, gdb, "Samsung")
		category := createTestCategory(t, gdb, "Washer", "washer")
		createTestTicket(t, gdb, brand.ID, category.ID)

		err := repo.Delete(ctx, category.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsForeignKeyViolation(err))
	})

	t.Run("lists with name prefix matching", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &catalog.Category{Name: "Washer Dryer Combo", Slug: "washer-dryer-combo"}))

		rows, _, err := repo.List(ctx, query.Filter{
			Predicate: query.Where("name", query.OpStartsWith, "Washer"),
			Sort:      query.Sort{{Column: "name", Direction: query.Asc}},
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Washer", rows[0].Name)
		assert.Equal(t, "Washer Dryer Combo", rows[1].Name)
	})
}
