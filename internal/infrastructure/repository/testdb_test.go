package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fixdesk/internal/domain/catalog"
	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/infrastructure/migration"
)

var testDBSeq atomic.Int64

// setupTestDB opens a uniquely named shared in-memory database so the
// connection pool sees one schema, with foreign keys enforced.
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migration.AutoMigrate(gdb))
	return gdb
}

func createTestBrand(t *testing.T, gdb *gorm.DB, name string) *catalog.Brand {
	repo := NewBrandRepository(gdb)
	b := &catalog.Brand{Name: name}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func createTestCategory(t *testing.T, gdb *gorm.DB, name, slug string) *catalog.Category {
	repo := NewCategoryRepository(gdb)
	c := &catalog.Category{Name: name, Slug: slug}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

// newTestTicket returns a minimal unsaved ticket for the given brand and
// category.
func newTestTicket(brandID, categoryID uint) *ticket.Ticket {
	return &ticket.Ticket{
		CustomerName:     "Jane Doe",
		CustomerPhone:    "555-0100",
		BrandID:          brandID,
		CategoryID:       categoryID,
		IssueDescription: "not cooling",
		TriageData:       "{}",
	}
}

func createTestTicket(t *testing.T, gdb *gorm.DB, brandID, categoryID uint) *ticket.Ticket {
	repo := NewTicketRepository(gdb)
	tk := newTestTicket(brandID, categoryID)
	require.NoError(t, repo.Create(context.Background(), tk))
	return tk
}
