package ticket

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fixdesk/internal/shared/query"
)

// Photo classification values used by the consuming application.
const (
	PhotoTypeBefore    = "before"
	PhotoTypeAfter     = "after"
	PhotoTypeSignature = "signature"
)

// Photo is an image attached to a ticket. A photo cannot outlive its ticket;
// the schema cascades the delete.
type Photo struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	URL      string `gorm:"size:500;not null" json:"url"`
	Type     string `gorm:"size:50;not null" json:"type"`
	TicketID string `gorm:"size:36;not null;index" json:"ticketId"`
}

func (Photo) TableName() string { return "photos" }

// BeforeCreate assigns a UUID primary key when none was supplied.
func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PhotoSchema is the queryable surface of the photos table.
var PhotoSchema = query.Schema{
	Entity:     "photo",
	Table:      "photos",
	PrimaryKey: "id",
	Columns: map[string]query.ColumnKind{
		"id":        query.ColumnString,
		"url":       query.ColumnString,
		"type":      query.ColumnString,
		"ticket_id": query.ColumnString,
	},
}

// PhotoUpdate is a partial update of a photo; nil fields are left untouched.
type PhotoUpdate struct {
	URL  *string
	Type *string
}

func (u PhotoUpdate) Changes() map[string]any {
	m := make(map[string]any)
	if u.URL != nil {
		m["url"] = *u.URL
	}
	if u.Type != nil {
		m["type"] = *u.Type
	}
	return m
}
