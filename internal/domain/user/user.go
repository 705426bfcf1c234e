// Package user holds staff accounts. Users with the technician role can be
// assigned to tickets.
package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fixdesk/internal/shared/query"
)

// Roles are plain strings; RoleTechnician is the schema default.
const (
	RoleTechnician = "technician"
	RoleAdmin      = "admin"
)

// User is a staff member. Email is the unique login identifier; Password
// holds a bcrypt hash, never plaintext.
type User struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	Email    string  `gorm:"size:200;uniqueIndex;not null" json:"email"`
	Name     *string `gorm:"size:200" json:"name,omitempty"`
	Password *string `gorm:"size:200" json:"-"`
	Phone    *string `gorm:"size:50" json:"phone,omitempty"`
	Role     string  `gorm:"size:50;not null;default:technician" json:"role"`
}

func (User) TableName() string { return "users" }

// BeforeCreate assigns a UUID primary key and the default role.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleTechnician
	}
	return nil
}

// Schema is the queryable surface of the users table.
var Schema = query.Schema{
	Entity:     "user",
	Table:      "users",
	PrimaryKey: "id",
	Columns: map[string]query.ColumnKind{
		"id":    query.ColumnString,
		"email": query.ColumnString,
		"name":  query.ColumnString,
		"phone": query.ColumnString,
		"role":  query.ColumnString,
	},
}

// Update is a partial update of a user; nil fields are left untouched.
type Update struct {
	Email    *string
	Name     *string
	Password *string
	Phone    *string
	Role     *string
}

// Changes renders the update into the column map applied by the repository.
func (u Update) Changes() map[string]any {
	m := make(map[string]any)
	if u.Email != nil {
		m["email"] = *u.Email
	}
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Password != nil {
		m["password"] = *u.Password
	}
	if u.Phone != nil {
		m["phone"] = *u.Phone
	}
	if u.Role != nil {
		m["role"] = *u.Role
	}
	return m
}
