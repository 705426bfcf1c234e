// Package catalog holds the classification entities tickets are filed under:
// appliance brands and repair categories.
package catalog

import (
	"fixdesk/internal/shared/query"
)

// Brand is an appliance manufacturer. Names are unique across the table.
type Brand struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Brand) TableName() string { return "brands" }

// Category is an appliance/repair category. Prefix is prepended to printed
// ticket references by the consuming application.
type Category struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug   string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Prefix string `gorm:"size:20;not null;default:''" json:"prefix"`
}

func (Category) TableName() string { return "categories" }

// BrandSchema is the queryable surface of the brands table.
var BrandSchema = query.Schema{
	Entity:     "brand",
	Table:      "brands",
	PrimaryKey: "id",
	Columns: map[string]query.ColumnKind{
		"id":   query.ColumnNumeric,
		"name": query.ColumnString,
	},
}

// CategorySchema is the queryable surface of the categories table.
var CategorySchema = query.Schema{
	Entity:     "category",
	Table:      "categories",
	PrimaryKey: "id",
	Columns: map[string]query.ColumnKind{
		"id":     query.ColumnNumeric,
		"name":   query.ColumnString,
		"slug":   query.ColumnString,
		"prefix": query.ColumnString,
	},
}

// BrandUpdate is a partial update of a brand; nil fields are left untouched.
type BrandUpdate struct {
	Name *string
}

// Changes renders the update into the column map applied by the repository.
func (u BrandUpdate) Changes() map[string]any {
	m := make(map[string]any)
	if u.Name != nil {
		m["name"] = *u.Name
	}
	return m
}

// CategoryUpdate is a partial update of a category; nil fields are left
// untouched.
type CategoryUpdate struct {
	Name   *string
	Slug   *string
	Prefix *string
}

func (u CategoryUpdate) Changes() map[string]any {
	m := make(map[string]any)
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Slug != nil {
		m["slug"] = *u.Slug
	}
	if u.Prefix != nil {
		m["prefix"] = *u.Prefix
	}
	return m
}
