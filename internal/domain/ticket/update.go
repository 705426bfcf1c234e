package ticket

// Update is a partial update of a ticket; nil fields are left untouched.
// Status, priority, and the cost fields travel together with the rest so a
// single Update call can merge any subset of columns.
type Update struct {
	Status             *string
	Priority           *string
	CancellationReason *string

	CustomerID    *string
	CustomerName  *string
	CustomerPhone *string
	ContactMethod *string

	AddressStreet *string
	AddressColony *string
	AddressZip    *string
	AddressCity   *string
	PropertyType  *string

	BrandID      *uint
	CategoryID   *uint
	Model        *string
	SerialNumber *string

	IssueDescription *string
	TriageData       *string

	TechnicianID    *string
	TechnicianNotes *string

	LaborCost *float64
	PartsCost *float64
	TotalCost *float64

	InvoiceURL   *string
	SignatureURL *string
	IsRepaired   *bool

	InvoiceName    *string
	InvoiceTaxID   *string
	InvoiceEmail   *string
	InvoiceAddress *string

	IncludeIVA           *bool
	AppliedIVAPercentage *float64
}

// Changes renders the update into the column map applied by the repository.
func (u Update) Changes() map[string]any {
	m := make(map[string]any)
	if u.Status != nil {
		m["status"] = *u.Status
	}
	if u.Priority != nil {
		m["priority"] = *u.Priority
	}
	if u.CancellationReason != nil {
		m["cancellation_reason"] = *u.CancellationReason
	}
	if u.CustomerID != nil {
		m["customer_id"] = *u.CustomerID
	}
	if u.CustomerName != nil {
		m["customer_name"] = *u.CustomerName
	}
	if u.CustomerPhone != nil {
		m["customer_phone"] = *u.CustomerPhone
	}
	if u.ContactMethod != nil {
		m["contact_method"] = *u.ContactMethod
	}
	if u.AddressStreet != nil {
		m["address_street"] = *u.AddressStreet
	}
	if u.AddressColony != nil {
		m["address_colony"] = *u.AddressColony
	}
	if u.AddressZip != nil {
		m["address_zip"] = *u.AddressZip
	}
	if u.AddressCity != nil {
		m["address_city"] = *u.AddressCity
	}
	if u.PropertyType != nil {
		m["property_type"] = *u.PropertyType
	}
	if u.BrandID != nil {
		m["brand_id"] = *u.BrandID
	}
	if u.CategoryID != nil {
		m["category_id"] = *u.CategoryID
	}
	if u.Model != nil {
		m["model"] = *u.Model
	}
	if u.SerialNumber != nil {
		m["serial_number"] = *u.SerialNumber
	}
	if u.IssueDescription != nil {
		m["issue_description"] = *u.IssueDescription
	}
	if u.TriageData != nil {
		m["triage_data"] = *u.TriageData
	}
	if u.TechnicianID != nil {
		m["technician_id"] = *u.TechnicianID
	}
	if u.TechnicianNotes != nil {
		m["technician_notes"] = *u.TechnicianNotes
	}
	if u.LaborCost != nil {
		m["labor_cost"] = *u.LaborCost
	}
	if u.PartsCost != nil {
		m["parts_cost"] = *u.PartsCost
	}
	if u.TotalCost != nil {
		m["total_cost"] = *u.TotalCost
	}
	if u.InvoiceURL != nil {
		m["invoice_url"] = *u.InvoiceURL
	}
	if u.SignatureURL != nil {
		m["signature_url"] = *u.SignatureURL
	}
	if u.IsRepaired != nil {
		m["is_repaired"] = *u.IsRepaired
	}
	if u.InvoiceName != nil {
		m["invoice_name"] = *u.InvoiceName
	}
	if u.InvoiceTaxID != nil {
		m["invoice_tax_id"] = *u.InvoiceTaxID
	}
	if u.InvoiceEmail != nil {
		m["invoice_email"] = *u.InvoiceEmail
	}
	if u.InvoiceAddress != nil {
		m["invoice_address"] = *u.InvoiceAddress
	}
	if u.IncludeIVA != nil {
		m["include_iva"] = *u.IncludeIVA
	}
	if u.AppliedIVAPercentage != nil {
		m["applied_iva_percentage"] = *u.AppliedIVAPercentage
	}
	return m
}
