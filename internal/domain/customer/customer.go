// Package customer holds the registered-customer entity. Tickets may link to
// a customer record or carry denormalized name/phone copies for walk-ins.
package customer

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fixdesk/internal/shared/query"
)

// Customer is a registered customer. Phone and document number are unique;
// multiple rows without a document number are allowed.
type Customer struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt      time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	Phone          string    `gorm:"size:50;uniqueIndex;not null" json:"phone"`
	Email          *string   `gorm:"size:200" json:"email,omitempty"`
	Address        *string   `gorm:"size:300" json:"address,omitempty"`
	DocumentNumber *string   `gorm:"size:100;uniqueIndex" json:"documentNumber,omitempty"`
}

func (Customer) TableName() string { return "customers" }

// BeforeCreate assigns a UUID primary key when none was supplied.
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Schema is the queryable surface of the customers table.
var Schema = query.Schema{
	Entity:     "customer",
	Table:      "customers",
	PrimaryKey: "id",
	Columns: map[string]query.ColumnKind{
		"id":              query.ColumnString,
		"created_at":      query.ColumnTime,
		"updated_at":      query.ColumnTime,
		"name":            query.ColumnString,
		"phone":           query.ColumnString,
		"email":           query.ColumnString,
		"address":         query.ColumnString,
		"document_number": query.ColumnString,
	},
}

// Update is a partial update of a customer; nil fields are left untouched.
type Update struct {
	Name           *string
	Phone          *string
	Email          *string
	Address        *string
	DocumentNumber *string
}

// Changes renders the update into the column map applied by the repository.
func (u Update) Changes() map[string]any {
	m := make(map[string]any)
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Phone != nil {
		m["phone"] = *u.Phone
	}
	if u.Email != nil {
		m["email"] = *u.Email
	}
	if u.Address != nil {
		m["address"] = *u.Address
	}
	if u.DocumentNumber != nil {
		m["document_number"] = *u.DocumentNumber
	}
	return m
}
