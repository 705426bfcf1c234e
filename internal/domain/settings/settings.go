// Package settings holds the company-wide configuration row. The table is a
// singleton: the repository pins every read and write to SingletonID, since
// the schema itself cannot prevent extra rows.
package settings

import (
	"context"
	"time"
)

// SingletonID is the fixed primary key of the one and only settings row.
const SingletonID uint = 1

// DefaultIVAPercentage matches the column default, for callers that need the
// rate before the settings row exists.
const DefaultIVAPercentage = 16.0

// CompanySettings carries invoicing, currency, and upload credentials for the
// workshop.
type CompanySettings struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:200;not null" json:"name"`
	TaxID               string    `gorm:"size:100;not null" json:"taxId"`
	Address             string    `gorm:"size:300;not null" json:"address"`
	Phone               string    `gorm:"size:50;not null" json:"phone"`
	Email               string    `gorm:"size:200;not null" json:"email"`
	LogoURL             *string   `gorm:"size:500" json:"logoUrl,omitempty"`
	IVAPercentage       float64   `gorm:"column:iva_percentage;not null;default:16" json:"ivaPercentage"`
	CurrencySymbol      string    `gorm:"size:10;not null;default:$" json:"currencySymbol"`
	CurrencyCode        string    `gorm:"size:10;not null;default:MXN" json:"currencyCode"`
	CountryCode         string    `gorm:"size:10;not null;default:MX" json:"countryCode"`
	CloudinaryCloudName string    `gorm:"size:200;not null;default:''" json:"cloudinaryCloudName"`
	CloudinaryAPIKey    string    `gorm:"size:200;not null;default:''" json:"cloudinaryApiKey"`
	CloudinaryAPISecret string    `gorm:"size:200;not null;default:''" json:"-"`
	ExternalDBURL       string    `gorm:"column:external_db_url;size:500;not null;default:''" json:"externalDbUrl"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (CompanySettings) TableName() string { return "company_settings" }

// Update is a partial update of the settings row; nil fields are left
// untouched.
type Update struct {
	Name                *string
	TaxID               *string
	Address             *string
	Phone               *string
	Email               *string
	LogoURL             *string
	IVAPercentage       *float64
	CurrencySymbol      *string
	CurrencyCode        *string
	CountryCode         *string
	CloudinaryCloudName *string
	CloudinaryAPIKey    *string
	CloudinaryAPISecret *string
	ExternalDBURL       *string
}

// Changes renders the update into the column map applied by the repository.
func (u Update) Changes() map[string]any {
	m := make(map[string]any)
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.TaxID != nil {
		m["tax_id"] = *u.TaxID
	}
	if u.Address != nil {
		m["address"] = *u.Address
	}
	if u.Phone != nil {
		m["phone"] = *u.Phone
	}
	if u.Email != nil {
		m["email"] = *u.Email
	}
	if u.LogoURL != nil {
		m["logo_url"] = *u.LogoURL
	}
	if u.IVAPercentage != nil {
		m["iva_percentage"] = *u.IVAPercentage
	}
	if u.CurrencySymbol != nil {
		m["currency_symbol"] = *u.CurrencySymbol
	}
	if u.CurrencyCode != nil {
		m["currency_code"] = *u.CurrencyCode
	}
	if u.CountryCode != nil {
		m["country_code"] = *u.CountryCode
	}
	if u.CloudinaryCloudName != nil {
		m["cloudinary_cloud_name"] = *u.CloudinaryCloudName
	}
	if u.CloudinaryAPIKey != nil {
		m["cloudinary_api_key"] = *u.CloudinaryAPIKey
	}
	if u.CloudinaryAPISecret != nil {
		m["cloudinary_api_secret"] = *u.CloudinaryAPISecret
	}
	if u.ExternalDBURL != nil {
		m["external_db_url"] = *u.ExternalDBURL
	}
	return m
}

// Repository is the persistence contract for the settings singleton. Get
// returns the pinned row; Init creates it with defaults when absent.
type Repository interface {
	Get(ctx context.Context) (*CompanySettings, error)
	Init(ctx context.Context, s *CompanySettings) (*CompanySettings, error)
	Update(ctx context.Context, u Update) (*CompanySettings, error)
}
