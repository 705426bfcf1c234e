package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fixdesk/internal/domain/settings"
	db "fixdesk/internal/shared/db"
	apperrors "fixdesk/internal/shared/errors"
)

// SettingsRepository manages the company-settings singleton. Every read and
// write is pinned to settings.SingletonID, so extra rows can never appear
// through this layer.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(gdb *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: gdb}
}

func (r *SettingsRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *SettingsRepository) Get(ctx context.Context) (*settings.CompanySettings, error) {
	var s settings.CompanySettings
	err := r.conn(ctx).Where("id = ?", settings.SingletonID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("company_settings", "company settings not initialized", err)
		}
		return nil, translateError("company_settings", err)
	}
	return &s, nil
}

// Init creates the singleton row when absent and returns the stored row
// either way.
func (r *SettingsRepository) Init(ctx context.Context, s *settings.CompanySettings) (*settings.CompanySettings, error) {
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var existing settings.CompanySettings
		err := tx.Where("id = ?", settings.SingletonID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.ID = settings.SingletonID
			return tx.Create(s).Error
		}
		return err
	})
	if err != nil {
		return nil, translateError("company_settings", err)
	}
	return r.Get(ctx)
}

func (r *SettingsRepository) Update(ctx context.Context, u settings.Update) (*settings.CompanySettings, error) {
	if _, err := r.Get(ctx); err != nil {
		return nil, err
	}
	changes := u.Changes()
	if len(changes) > 0 {
		res := r.conn(ctx).Model(&settings.CompanySettings{}).
			Where("id = ?", settings.SingletonID).
			Updates(changes)
		if res.Error != nil {
			return nil, translateError("company_settings", res.Error)
		}
	}
	return r.Get(ctx)
}
