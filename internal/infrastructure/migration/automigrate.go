// Package migration registers every persisted model for schema
// synchronization. Ordering matters: referenced tables must exist before the
// tables that declare foreign keys onto them.
package migration

import (
	"gorm.io/gorm"

	"fixdesk/internal/domain/catalog"
	"fixdesk/internal/domain/customer"
	"fixdesk/internal/domain/inventory"
	"fixdesk/internal/domain/settings"
	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/domain/user"
)

// Models lists every table-backed entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&catalog.Brand{},
		&catalog.Category{},
		&customer.Customer{},
		&user.User{},
		&ticket.Ticket{},
		&ticket.Photo{},
		&inventory.SparePart{},
		&settings.CompanySettings{},
	}
}

// AutoMigrate synchronizes the schema for all registered models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
