// Package settings is the application service over the company settings
// singleton.
package settings

import (
	"context"
	"log/slog"

	"fixdesk/internal/domain/settings"
	apperrors "fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
	"fixdesk/internal/shared/validation"
)

type Service struct {
	settings settings.Repository
	log      *slog.Logger
}

func NewService(repo settings.Repository) *Service {
	return &Service{
		settings: repo,
		log:      logger.WithComponent("settings-service"),
	}
}

// Get returns the settings row, creating it with column defaults on first
// access.
func (s *Service) Get(ctx context.Context) (*settings.CompanySettings, error) {
	cfg, err := s.settings.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	cfg, err = s.settings.Init(ctx, &settings.CompanySettings{})
	if err != nil {
		return nil, err
	}
	s.log.Info("company settings initialized", "iva_percentage", cfg.IVAPercentage)
	return cfg, nil
}

type UpdateCommand struct {
	Name          *string  `json:"name" validate:"omitempty,max=200"`
	TaxID         *string  `json:"taxId" validate:"omitempty,max=100"`
	Address       *string  `json:"address" validate:"omitempty,max=300"`
	Phone         *string  `json:"phone" validate:"omitempty,max=50"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	LogoURL       *string  `json:"logoUrl" validate:"omitempty,url,max=500"`
	IVAPercentage *float64 `json:"ivaPercentage" validate:"omitempty,gte=0,max=100"`
	ExternalDBURL *string  `json:"externalDbUrl" validate:"omitempty,max=500"`
}

// Update applies a partial change to the singleton.
func (s *Service) Update(ctx context.Context, cmd UpdateCommand) (*settings.CompanySettings, error) {
	if err := validation.ValidateStruct("company_settings", cmd); err != nil {
		return nil, err
	}

	updated, err := s.settings.Update(ctx, settings.Update{
		Name:          cmd.Name,
		TaxID:         cmd.TaxID,
		Address:       cmd.Address,
		Phone:         cmd.Phone,
		Email:         cmd.Email,
		LogoURL:       cmd.LogoURL,
		IVAPercentage: cmd.IVAPercentage,
		ExternalDBURL: cmd.ExternalDBURL,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("company settings updated")
	return updated, nil
}
