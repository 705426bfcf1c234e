package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/shared/db"
	apperrors "fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/query"
)

func TestTicketRepository_Create(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewTicketRepository(gdb)

	brand := createTestBrand(t, gdb, "Samsung")
	category := createTestCategory(t, gdb, "Refrigerator", "refrigerator")

	t.Run("applies defaults on a minimal ticket", func(t *testing.T) {
		tk := newTestTicket(brand.ID, category.ID)
		require.NoError(t, repo.Create(ctx, tk))

		assert.NotEmpty(t, tk.ID)
		assert.Equal(t, 1, tk.TicketNumber)
		assert.Equal(t, ticket.StatusOpen, tk.Status)
		assert.Equal(t, ticket.DefaultPriority, tk.Priority)
		assert.Equal(t, 0.0, tk.TotalCost)
		assert.False(t, tk.IsRepaired)
		assert.Equal(t, "Jane Doe", tk.CustomerName)
	})

	t.Run("allocates sequential ticket numbers", func(t *testing.T) {
		first := newTestTicket(brand.ID, category.ID)
		second := newTestTicket(brand.ID, category.ID)
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))

		assert.Equal(t, first.TicketNumber+1, second.TicketNumber)
	})

	t.Run("rejects a dangling brand reference", func(t *testing.T) {
		tk := newTestTicket(9999, category.ID)
		err := repo.Create(ctx, tk)
		require.Error(t, err)
		assert.True(t, apperrors.IsForeignKeyViolation(err), "got %v", err)
	})
}

func TestTicketRepository_Lookups(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewTicketRepository(gdb)

	brand := createTestBrand(t, gdb, "LG")
	category := createTestCategory(t, gdb, "Washer", "washer")
	tk := createTestTicket(t, gdb, brand.ID, category.ID)

	t.Run("GetByID returns the ticket", func(t *testing.T) {
		got, err := repo.GetByID(ctx, tk.ID)
		require.NoError(t, err)
		assert.Equal(t, tk.ID, got.ID)
		assert.Equal(t, tk.TicketNumber, got.TicketNumber)
	})

	t.Run("GetByID reports missing tickets", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "no-such-id")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("FindByID is lenient on missing tickets", func(t *testing.T) {
		got, err := repo.FindByID(ctx, "no-such-id")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetByNumber finds by the sequential number", func(t *testing.T) {
		got, err := repo.GetByNumber(ctx, tk.TicketNumber)
		require.NoError(t, err)
		assert.Equal(t, tk.ID, got.ID)
	})
}

func TestTicketRepository_List(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewTicketRepository(gdb)

	brand := createTestBrand(t, gdb, "Bosch")
	category := createTestCategory(t, gdb, "Dryer", "dryer")

	for i := 0; i < 7; i++ {
		tk := newTestTicket(brand.ID, category.ID)
		if i%2 == 0 {
			tk.Status = ticket.StatusCompleted
		}
		require.NoError(t, repo.Create(ctx, tk))
	}

	t.Run("filters by status", func(t *testing.T) {
		rows, total, err := repo.List(ctx, query.Filter{
			Predicate: query.Eq("status", ticket.StatusCompleted),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, rows, 4)
		for _, r := range rows {
			assert.Equal(t, ticket.StatusCompleted, r.Status)
		}
	})

	t.Run("composes predicates", func(t *testing.T) {
		rows, _, err := repo.List(ctx, query.Filter{
			Predicate: query.And(
				query.Eq("customer_name", "Jane Doe"),
				query.Not(query.Eq("status", ticket.StatusCompleted)),
			),
		})
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("rejects unknown filter columns", func(t *testing.T) {
		_, _, err := repo.List(ctx, query.Filter{
			Predicate: query.Eq("password", "x"),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("offset pages concatenate to the full set", func(t *testing.T) {
		sort := query.Sort{{Column: "ticket_number", Direction: query.Asc}}

		all, total, err := repo.List(ctx, query.Filter{Sort: sort})
		require.NoError(t, err)
		require.Equal(t, int64(7), total)

		var paged []*ticket.Ticket
		for offset := 0; offset < 7; offset += 3 {
			page, pageTotal, err := repo.List(ctx, query.Filter{
				Sort: sort,
				Page: query.Page{Offset: offset, Limit: 3},
			})
			require.NoError(t, err)
			assert.Equal(t, total, pageTotal)
			paged = append(paged, page...)
		}

		require.Len(t, paged, len(all))
		for i := range all {
			assert.Equal(t, all[i].ID, paged[i].ID)
		}
	})

	t.Run("cursor paging resumes past the given key", func(t *testing.T) {
		first, _, err := repo.List(ctx, query.Filter{Page: query.Page{Limit: 3}})
		require.NoError(t, err)
		require.Len(t, first, 3)

		rest, _, err := repo.List(ctx, query.Filter{
			Page: query.Page{Limit: 10, After: first[2].ID},
		})
		require.NoError(t, err)
		assert.Len(t, rest, 4)
		for _, r := range rest {
			assert.Greater(t, r.ID, first[2].ID)
		}
	})
}

func TestTicketRepository_TriageData(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewTicketRepository(gdb)

	brand := createTestBrand(t, gdb, "Teka")
	category := createTestCategory(t, gdb, "Dishwasher", "dishwasher")

	tk := newTestTicket(brand.ID, category.ID)
	tk.TriageData = `{"noise":"grinding"}`
	require.NoError(t, repo.Create(ctx, tk))
	createTestTicket(t, gdb, brand.ID, category.ID)

	t.Run("the payload is filterable like any column", func(t *testing.T) {
		rows, _, err := repo.List(ctx, query.Filter{
			Predicate: query.Where("triage_data", query.OpContains, "grinding"),
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, tk.ID, rows[0].ID)
	})
}

func TestTicketRepository_Update(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewTicketRepository(gdb)

	brand := createTestBrand(t, gdb, "Whirlpool")
	category := createTestCategory(t, gdb, "Stove", "stove")

	t.Run("applies only the provided fields", func(t *testing.T) {
		tk := createTestTicket(t, gdb, brand.ID, category.ID)

		status := ticket.StatusCompleted
		got, err := repo.Update(ctx, tk.ID, ticket.Update{Status: &status})
		require.NoError(t, err)

		assert.Equal(t, ticket.StatusCompleted, got.Status)
		assert.Equal(t, tk.CustomerName, got.CustomerName)
		assert.Equal(t, tk.TicketNumber, got.TicketNumber)
	})

	t.Run("sequential updates merge like one combined update", func(t *testing.T) {
		a := createTestTicket(t, gdb, brand.ID, category.ID)
		b := createTestTicket(t, gdb, brand.ID, category.ID)

		labor, parts := 350.0, 120.5
		notes := "compressor replaced"

		_, err := repo.Update(ctx, a.ID, ticket.Update{LaborCost: &labor})
		require.NoError(t, err)
		_, err = repo.Update(ctx, a.ID, ticket.Update{PartsCost: &parts, TechnicianNotes: &notes})
		require.NoError(t, err)

		_, err = repo.Update(ctx, b.ID, ticket.Update{
			LaborCost:       &labor,
			PartsCost:       &parts,
			TechnicianNotes: &notes,
		})
		require.NoError(t, err)

		gotA, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		gotB, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)

		assert.Equal(t, gotB.LaborCost, gotA.LaborCost)
		assert.Equal(t, gotB.PartsCost, gotA.PartsCost)
		assert.Equal(t, gotB.TechnicianNotes, gotA.TechnicianNotes)
	})

	t.Run("empty update is a no-op fetch", func(t *testing.T) {
		tk := createTestTicket(t, gdb, brand.ID, category.ID)
		got, err := repo.Update(ctx, tk.ID, ticket.Update{})
		require.NoError(t, err)
		assert.Equal(t, tk.Status, got.Status)
	})

	t.Run("missing ticket is a not-found error", func(t *testing.T) {
		status := ticket.StatusCancelled
		_, err := repo.Update(ctx, "no-such-id", ticket.Update{Status: &status})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestTicketRepository_Delete(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewTicketRepository(gdb)

	brand := createTestBrand(t, gdb, "Mabe")
	category := createTestCategory(t, gdb, "Oven", "oven")

	t.Run("cascades photo deletion", func(t *testing.T) {
		tk := createTestTicket(t, gdb, brand.ID, category.ID)

		for _, typ := range []string{ticket.PhotoTypeBefore, ticket.PhotoTypeAfter} {
			require.NoError(t, repo.AddPhoto(ctx, &ticket.Photo{
				URL:      "https://cdn.example.com/" + typ + ".jpg",
				Type:     typ,
				TicketID: tk.ID,
			}))
		}

		require.NoError(t, repo.Delete(ctx, tk.ID))

		photos, err := repo.GetPhotosByTicketID(ctx, tk.ID)
		require.NoError(t, err)
		assert.Empty(t, photos)

		var count int64
		require.NoError(t, gdb.Model(&ticket.Photo{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("missing ticket is a not-found error", func(t *testing.T) {
		err := repo.Delete(ctx, "no-such-id")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestTicketRepository_Upsert(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewTicketRepository(gdb)

	brand := createTestBrand(t, gdb, "Frigidaire")
	category := createTestCategory(t, gdb, "Freezer", "freezer")

	t.Run("creates when absent", func(t *testing.T) {
		id := "11111111-1111-1111-1111-111111111111"
		create := newTestTicket(brand.ID, category.ID)

		got, err := repo.Upsert(ctx, id, create, ticket.Update{})
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, 1, got.TicketNumber)
	})

	t.Run("updates when present", func(t *testing.T) {
		tk := createTestTicket(t, gdb, brand.ID, category.ID)

		status := ticket.StatusCompleted
		got, err := repo.Upsert(ctx, tk.ID, newTestTicket(brand.ID, category.ID), ticket.Update{Status: &status})
		require.NoError(t, err)

		assert.Equal(t, tk.ID, got.ID)
		assert.Equal(t, ticket.StatusCompleted, got.Status)
		assert.Equal(t, tk.TicketNumber, got.TicketNumber)
	})
}

func TestTicketRepository_Photos(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewTicketRepository(gdb)

	brand := createTestBrand(t, gdb, "GE")
	category := createTestCategory(t, gdb, "Microwave", "microwave")
	tk := createTestTicket(t, gdb, brand.ID, category.ID)

	t.Run("rejects photos for a missing ticket", func(t *testing.T) {
		err := repo.AddPhoto(ctx, &ticket.Photo{
			URL:      "https://cdn.example.com/orphan.jpg",
			Type:     ticket.PhotoTypeBefore,
			TicketID: "no-such-ticket",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsForeignKeyViolation(err), "got %v", err)
	})

	t.Run("lists photos in insertion order", func(t *testing.T) {
		urls := []string{"a.jpg", "b.jpg", "c.jpg"}
		for _, u := range urls {
			require.NoError(t, repo.AddPhoto(ctx, &ticket.Photo{
				URL:      u,
				Type:     ticket.PhotoTypeBefore,
				TicketID: tk.ID,
			}))
		}

		photos, err := repo.GetPhotosByTicketID(ctx, tk.ID)
		require.NoError(t, err)
		require.Len(t, photos, 3)
	})

	t.Run("updates a photo type", func(t *testing.T) {
		photos, err := repo.GetPhotosByTicketID(ctx, tk.ID)
		require.NoError(t, err)
		require.NotEmpty(t, photos)

		typ := ticket.PhotoTypeAfter
		got, err := repo.UpdatePhoto(ctx, photos[0].ID, ticket.PhotoUpdate{Type: &typ})
		require.NoError(t, err)
		assert.Equal(t, ticket.PhotoTypeAfter, got.Type)
	})

	t.Run("deletes one photo", func(t *testing.T) {
		photos, err := repo.GetPhotosByTicketID(ctx, tk.ID)
		require.NoError(t, err)
		before := len(photos)
		require.NotZero(t, before)

		require.NoError(t, repo.DeletePhoto(ctx, photos[0].ID))

		photos, err = repo.GetPhotosByTicketID(ctx, tk.ID)
		require.NoError(t, err)
		assert.Len(t, photos, before-1)
	})
}

func TestTicketRepository_AggregateAndGroupBy(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewTicketRepository(gdb)

	brand := createTestBrand(t, gdb, "Haier")
	category := createTestCategory(t, gdb, "AC", "ac")

	costs := map[string][]float64{
		ticket.StatusOpen:      {100, 300},
		ticket.StatusCompleted: {200, 400, 600},
	}
	for status, values := range costs {
		for _, v := range values {
			tk := newTestTicket(brand.ID, category.ID)
			tk.Status = status
			tk.LaborCost = v
			tk.RecalculateTotal()
			require.NoError(t, repo.Create(ctx, tk))
		}
	}

	t.Run("aggregates over the matching rows", func(t *testing.T) {
		row, err := repo.Aggregate(ctx,
			query.Eq("status", ticket.StatusCompleted),
			query.Aggregation{
				Count: true,
				Sum:   []string{"total_cost"},
				Min:   []string{"total_cost"},
				Max:   []string{"total_cost"},
			})
		require.NoError(t, err)

		assert.EqualValues(t, 3, row[query.CountAlias])
		assert.EqualValues(t, 1200, row[query.SumAlias("total_cost")])
		assert.EqualValues(t, 200, row[query.MinAlias("total_cost")])
		assert.EqualValues(t, 600, row[query.MaxAlias("total_cost")])
	})

	t.Run("groups by status", func(t *testing.T) {
		rows, err := repo.GroupBy(ctx, nil, query.Grouping{
			By:         []string{"status"},
			Aggregates: query.Aggregation{Count: true, Avg: []string{"total_cost"}},
			Sort:       query.Sort{{Column: "status", Direction: query.Asc}},
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, ticket.StatusCompleted, rows[0]["status"])
		assert.EqualValues(t, 3, rows[0][query.CountAlias])
		assert.EqualValues(t, 400, rows[0][query.AvgAlias("total_cost")])

		assert.Equal(t, ticket.StatusOpen, rows[1]["status"])
		assert.EqualValues(t, 2, rows[1][query.CountAlias])
	})

	t.Run("having may filter on aggregate aliases", func(t *testing.T) {
		rows, err := repo.GroupBy(ctx, nil, query.Grouping{
			By:         []string{"status"},
			Aggregates: query.Aggregation{Count: true},
			Having:     query.Where(query.CountAlias, query.OpGt, 2),
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, ticket.StatusCompleted, rows[0]["status"])
	})

	t.Run("having outside the grouped set is rejected", func(t *testing.T) {
		_, err := repo.GroupBy(ctx, nil, query.Grouping{
			By:         []string{"status"},
			Aggregates: query.Aggregation{Count: true},
			Having:     query.Eq("category_id", category.ID),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestTicketRepository_InTransaction(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewTicketRepository(gdb)
	tm := db.NewTransactionManager(gdb)

	brand := createTestBrand(t, gdb, "Panasonic")
	category := createTestCategory(t, gdb, "Heater", "heater")

	a := createTestTicket(t, gdb, brand.ID, category.ID)
	b := createTestTicket(t, gdb, brand.ID, category.ID)

	t.Run("rollback leaves neither update visible", func(t *testing.T) {
		status := ticket.StatusCompleted
		boom := errors.New("boom")

		err := tm.RunInTransaction(ctx, db.Options{}, func(txCtx context.Context) error {
			if _, err := repo.Update(txCtx, a.ID, ticket.Update{Status: &status}); err != nil {
				return err
			}
			if _, err := repo.Update(txCtx, b.ID, ticket.Update{Status: &status}); err != nil {
				return err
			}
			return boom
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsTransactionAborted(err))

		gotA, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		gotB, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, ticket.StatusOpen, gotA.Status)
		assert.Equal(t, ticket.StatusOpen, gotB.Status)
	})

	t.Run("commit makes both updates visible", func(t *testing.T) {
		status := ticket.StatusCompleted

		err := tm.RunInTransaction(ctx, db.Options{}, func(txCtx context.Context) error {
			if _, err := repo.Update(txCtx, a.ID, ticket.Update{Status: &status}); err != nil {
				return err
			}
			_, err := repo.Update(txCtx, b.ID, ticket.Update{Status: &status})
			return err
		})
		require.NoError(t, err)

		gotA, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, ticket.StatusCompleted, gotA.Status)
	})
}
