// Package inventory holds the spare-part stock kept by the workshop. Spare
// parts are free-standing rows with no relations to other entities.
package inventory

import (
	"context"

	"fixdesk/internal/shared/query"
)

// SparePart is one stocked part. SKU is unique across the table.
type SparePart struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"size:200;not null" json:"name"`
	SKU   string  `gorm:"column:sku;size:100;uniqueIndex;not null" json:"sku"`
	Price float64 `gorm:"not null" json:"price"`
	Stock int     `gorm:"not null;default:0" json:"stock"`
}

func (SparePart) TableName() string { return "spare_parts" }

// Schema is the queryable surface of the spare_parts table.
var Schema = query.Schema{
	Entity:     "spare_part",
	Table:      "spare_parts",
	PrimaryKey: "id",
	Columns: map[string]query.ColumnKind{
		"id":    query.ColumnNumeric,
		"name":  query.ColumnString,
		"sku":   query.ColumnString,
		"price": query.ColumnNumeric,
		"stock": query.ColumnNumeric,
	},
}

// Update is a partial update of a spare part; nil fields are left untouched.
type Update struct {
	Name  *string
	SKU   *string
	Price *float64
	Stock *int
}

// Changes renders the update into the column map applied by the repository.
func (u Update) Changes() map[string]any {
	m := make(map[string]any)
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.SKU != nil {
		m["sku"] = *u.SKU
	}
	if u.Price != nil {
		m["price"] = *u.Price
	}
	if u.Stock != nil {
		m["stock"] = *u.Stock
	}
	return m
}

// Repository is the persistence contract for spare parts.
type Repository interface {
	Create(ctx context.Context, p *SparePart) error
	GetByID(ctx context.Context, id uint) (*SparePart, error)
	FindByID(ctx context.Context, id uint) (*SparePart, error)
	GetBySKU(ctx context.Context, sku string) (*SparePart, error)
	List(ctx context.Context, f query.Filter) ([]*SparePart, int64, error)
	Update(ctx context.Context, id uint, u Update) (*SparePart, error)
	Delete(ctx context.Context, id uint) error
	Upsert(ctx context.Context, id uint, create *SparePart, update Update) (*SparePart, error)
	Aggregate(ctx context.Context, p query.Predicate, agg query.Aggregation) (query.AggregateRow, error)
	GroupBy(ctx context.Context, p query.Predicate, g query.Grouping) ([]query.AggregateRow, error)
}
