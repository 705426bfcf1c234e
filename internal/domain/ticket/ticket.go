// Package ticket holds the central repair-ticket entity, its photos, and the
// persistence contract. A ticket always belongs to one brand and one category;
// the customer and technician links are soft references that may be absent,
// with denormalized customer name/phone kept on the ticket for walk-ins.
package ticket

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fixdesk/internal/domain/catalog"
	"fixdesk/internal/shared/query"
)

// Status and priority are free-text columns; only the defaults are named
// here. The full value sets live in the consuming application.
const (
	StatusOpen      = "open"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"

	DefaultPriority = "normal"
)

// Ticket is one repair job.
type Ticket struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	TicketNumber       int       `gorm:"uniqueIndex;not null" json:"ticketNumber"`
	CreatedAt          time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
	Status             string    `gorm:"size:50;not null;default:open;index" json:"status"`
	Priority           string    `gorm:"size:50;not null;index" json:"priority"`
	CancellationReason *string   `gorm:"size:500" json:"cancellationReason,omitempty"`

	// Soft customer reference: the link may be absent, the denormalized
	// name/phone copies are always present.
	CustomerID    *string `gorm:"size:36;index" json:"customerId,omitempty"`
	CustomerName  string  `gorm:"size:200;not null" json:"customerName"`
	CustomerPhone string  `gorm:"size:50;not null" json:"customerPhone"`
	ContactMethod *string `gorm:"size:50" json:"contactMethod,omitempty"`

	AddressStreet string `gorm:"size:200;not null;default:''" json:"addressStreet"`
	AddressColony string `gorm:"size:200;not null;default:''" json:"addressColony"`
	AddressZip    string `gorm:"size:20;not null;default:''" json:"addressZip"`
	AddressCity   string `gorm:"size:100;not null;default:''" json:"addressCity"`
	PropertyType  string `gorm:"size:50;not null;default:''" json:"propertyType"`

	BrandID      uint    `gorm:"not null;index" json:"brandId"`
	CategoryID   uint    `gorm:"not null;index" json:"categoryId"`
	Model        *string `gorm:"size:100" json:"model,omitempty"`
	SerialNumber *string `gorm:"size:100" json:"serialNumber,omitempty"`

	IssueDescription string `gorm:"type:text;not null" json:"issueDescription"`
	// TriageData is an opaque serialized diagnostic payload; this layer never
	// inspects it.
	TriageData string `gorm:"type:text;not null" json:"triageData"`

	TechnicianID    *string `gorm:"size:36;index" json:"technicianId,omitempty"`
	TechnicianNotes *string `gorm:"type:text" json:"technicianNotes,omitempty"`

	LaborCost float64 `gorm:"not null;default:0" json:"laborCost"`
	PartsCost float64 `gorm:"not null;default:0" json:"partsCost"`
	TotalCost float64 `gorm:"not null;default:0" json:"totalCost"`

	InvoiceURL   *string `gorm:"size:500" json:"invoiceUrl,omitempty"`
	SignatureURL *string `gorm:"size:500" json:"signatureUrl,omitempty"`
	IsRepaired   bool    `gorm:"not null;default:false" json:"isRepaired"`

	InvoiceName    *string `gorm:"size:200" json:"invoiceName,omitempty"`
	InvoiceTaxID   *string `gorm:"size:100" json:"invoiceTaxId,omitempty"`
	InvoiceEmail   *string `gorm:"size:200" json:"invoiceEmail,omitempty"`
	InvoiceAddress *string `gorm:"size:300" json:"invoiceAddress,omitempty"`

	IncludeIVA           bool    `gorm:"column:include_iva;not null;default:false" json:"includeIva"`
	AppliedIVAPercentage float64 `gorm:"column:applied_iva_percentage;not null;default:0" json:"appliedIvaPercentage"`

	Brand    catalog.Brand    `gorm:"foreignKey:BrandID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"brand,omitempty"`
	Category catalog.Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Photos   []Photo          `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
}

func (Ticket) TableName() string { return "tickets" }

// BeforeCreate assigns a UUID primary key and the defaulted free-text fields.
// The sequential ticket number is allocated by the repository inside the
// insert transaction.
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = StatusOpen
	}
	if t.Priority == "" {
		t.Priority = DefaultPriority
	}
	return nil
}

// RecalculateTotal derives the total from labor and parts, applying the
// recorded IVA percentage when IVA is included. The stored total must always
// match this derivation; repositories persist whatever the caller computed.
func (t *Ticket) RecalculateTotal() {
	subtotal := t.LaborCost + t.PartsCost
	if t.IncludeIVA {
		subtotal *= 1 + t.AppliedIVAPercentage/100
	}
	t.TotalCost = subtotal
}

// Cancel moves the ticket to the cancelled status with the given reason.
func (t *Ticket) Cancel(reason string) {
	t.Status = StatusCancelled
	t.CancellationReason = &reason
}

// Schema is the queryable surface of the tickets table.
var Schema = query.Schema{
	Entity:     "ticket",
	Table:      "tickets",
	PrimaryKey: "id",
	Columns: map[string]query.ColumnKind{
		"id":                     query.ColumnString,
		"ticket_number":          query.ColumnNumeric,
		"created_at":             query.ColumnTime,
		"updated_at":             query.ColumnTime,
		"status":                 query.ColumnString,
		"priority":               query.ColumnString,
		"cancellation_reason":    query.ColumnString,
		"customer_id":            query.ColumnString,
		"customer_name":          query.ColumnString,
		"customer_phone":         query.ColumnString,
		"contact_method":         query.ColumnString,
		"address_street":         query.ColumnString,
		"address_colony":         query.ColumnString,
		"address_zip":            query.ColumnString,
		"address_city":           query.ColumnString,
		"property_type":          query.ColumnString,
		"brand_id":               query.ColumnNumeric,
		"category_id":            query.ColumnNumeric,
		"model":                  query.ColumnString,
		"serial_number":          query.ColumnString,
		"issue_description":      query.ColumnString,
		"triage_data":            query.ColumnString,
		"technician_id":          query.ColumnString,
		"technician_notes":       query.ColumnString,
		"labor_cost":             query.ColumnNumeric,
		"parts_cost":             query.ColumnNumeric,
		"total_cost":             query.ColumnNumeric,
		"invoice_url":            query.ColumnString,
		"signature_url":          query.ColumnString,
		"is_repaired":            query.ColumnBool,
		"invoice_name":           query.ColumnString,
		"invoice_tax_id":         query.ColumnString,
		"invoice_email":          query.ColumnString,
		"invoice_address":        query.ColumnString,
		"include_iva":            query.ColumnBool,
		"applied_iva_percentage": query.ColumnNumeric,
	},
}
