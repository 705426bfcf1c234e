// Package ticket is the application service over the ticket repository. It
// owns the workflows that span more than one write or consult company
// settings, and keeps the stored total cost in step with the cost fields.
package ticket

import (
	"context"
	"log/slog"

	"fixdesk/internal/domain/settings"
	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/domain/user"
	"fixdesk/internal/shared/db"
	apperrors "fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
	"fixdesk/internal/shared/validation"
)

type Service struct {
	tickets  ticket.Repository
	users    user.Repository
	settings settings.Repository
	tx       *db.TransactionManager
	log      *slog.Logger
}

func NewService(
	tickets ticket.Repository,
	users user.Repository,
	settingsRepo settings.Repository,
	tx *db.TransactionManager,
) *Service {
	return &Service{
		tickets:  tickets,
		users:    users,
		settings: settingsRepo,
		tx:       tx,
		log:      logger.WithComponent("ticket-service"),
	}
}

type CreateCommand struct {
	CustomerName  string  `json:"customerName" validate:"required,max=200"`
	CustomerPhone string  `json:"customerPhone" validate:"required,max=50"`
	CustomerID    *string `json:"customerId" validate:"omitempty,len=36"`
	ContactMethod *string `json:"contactMethod" validate:"omitempty,max=50"`

	AddressStreet string `json:"addressStreet" validate:"max=200"`
	AddressColony string `json:"addressColony" validate:"max=200"`
	AddressZip    string `json:"addressZip" validate:"max=20"`
	AddressCity   string `json:"addressCity" validate:"max=100"`
	PropertyType  string `json:"propertyType" validate:"max=50"`

	BrandID      uint    `json:"brandId" validate:"required"`
	CategoryID   uint    `json:"categoryId" validate:"required"`
	Model        *string `json:"model" validate:"omitempty,max=100"`
	SerialNumber *string `json:"serialNumber" validate:"omitempty,max=100"`

	IssueDescription string `json:"issueDescription" validate:"required"`
	TriageData       string `json:"triageData"`

	Priority   string `json:"priority" validate:"omitempty,max=50"`
	IncludeIVA bool   `json:"includeIva"`
}

// Create opens a new ticket. The sequential number, the applied IVA
// percentage snapshot, and the derived total are all settled inside one
// transaction.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*ticket.Ticket, error) {
	if err := validation.ValidateStruct("ticket", cmd); err != nil {
		return nil, err
	}

	tk := &ticket.Ticket{
		CustomerName:     cmd.CustomerName,
		CustomerPhone:    cmd.CustomerPhone,
		CustomerID:       cmd.CustomerID,
		ContactMethod:    cmd.ContactMethod,
		AddressStreet:    cmd.AddressStreet,
		AddressColony:    cmd.AddressColony,
		AddressZip:       cmd.AddressZip,
		AddressCity:      cmd.AddressCity,
		PropertyType:     cmd.PropertyType,
		BrandID:          cmd.BrandID,
		CategoryID:       cmd.CategoryID,
		Model:            cmd.Model,
		SerialNumber:     cmd.SerialNumber,
		IssueDescription: cmd.IssueDescription,
		TriageData:       cmd.TriageData,
		Priority:         cmd.Priority,
		IncludeIVA:       cmd.IncludeIVA,
	}
	if tk.TriageData == "" {
		tk.TriageData = "{}"
	}

	err := s.tx.RunInTransaction(ctx, db.Options{}, func(txCtx context.Context) error {
		if tk.IncludeIVA {
			iva, err := s.currentIVA(txCtx)
			if err != nil {
				return err
			}
			tk.AppliedIVAPercentage = iva
		}
		tk.RecalculateTotal()
		return s.tickets.Create(txCtx, tk)
	})
	if err != nil {
		s.log.Error("failed to create ticket", "error", err)
		return nil, err
	}

	s.log.Info("ticket created",
		"ticket_id", tk.ID,
		"ticket_number", tk.TicketNumber,
		"brand_id", tk.BrandID,
	)
	return tk, nil
}

type UpdateCostsCommand struct {
	LaborCost  *float64 `json:"laborCost" validate:"omitempty,gte=0"`
	PartsCost  *float64 `json:"partsCost" validate:"omitempty,gte=0"`
	IncludeIVA *bool    `json:"includeIva"`
}

// UpdateCosts changes the cost fields of a ticket and rederives the stored
// total in the same transaction. Turning IVA on refreshes the applied
// percentage snapshot from company settings.
func (s *Service) UpdateCosts(ctx context.Context, id string, cmd UpdateCostsCommand) (*ticket.Ticket, error) {
	if err := validation.ValidateStruct("ticket", cmd); err != nil {
		return nil, err
	}

	var updated *ticket.Ticket
	err := s.tx.RunInTransaction(ctx, db.Options{}, func(txCtx context.Context) error {
		tk, err := s.tickets.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if cmd.LaborCost != nil {
			tk.LaborCost = *cmd.LaborCost
		}
		if cmd.PartsCost != nil {
			tk.PartsCost = *cmd.PartsCost
		}
		if cmd.IncludeIVA != nil {
			tk.IncludeIVA = *cmd.IncludeIVA
			if tk.IncludeIVA {
				iva, err := s.currentIVA(txCtx)
				if err != nil {
					return err
				}
				tk.AppliedIVAPercentage = iva
			}
		}
		tk.RecalculateTotal()

		updated, err = s.tickets.Update(txCtx, id, ticket.Update{
			LaborCost:            &tk.LaborCost,
			PartsCost:            &tk.PartsCost,
			TotalCost:            &tk.TotalCost,
			IncludeIVA:           &tk.IncludeIVA,
			AppliedIVAPercentage: &tk.AppliedIVAPercentage,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("ticket costs updated", "ticket_id", id, "total_cost", updated.TotalCost)
	return updated, nil
}

// Complete marks the repair done, moving the ticket to the completed status.
func (s *Service) Complete(ctx context.Context, id string, notes *string) (*ticket.Ticket, error) {
	status := ticket.StatusCompleted
	repaired := true

	updated, err := s.tickets.Update(ctx, id, ticket.Update{
		Status:          &status,
		IsRepaired:      &repaired,
		TechnicianNotes: notes,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("ticket completed", "ticket_id", id)
	return updated, nil
}

// Cancel moves the ticket to the cancelled status with a mandatory reason.
func (s *Service) Cancel(ctx context.Context, id, reason string) (*ticket.Ticket, error) {
	if reason == "" {
		return nil, apperrors.NewValidation("ticket", "cancellation reason is required")
	}

	status := ticket.StatusCancelled
	updated, err := s.tickets.Update(ctx, id, ticket.Update{
		Status:             &status,
		CancellationReason: &reason,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("ticket cancelled", "ticket_id", id, "reason", reason)
	return updated, nil
}

// AssignTechnician links the ticket to an existing user.
func (s *Service) AssignTechnician(ctx context.Context, id, technicianID string) (*ticket.Ticket, error) {
	if _, err := s.users.GetByID(ctx, technicianID); err != nil {
		return nil, err
	}

	updated, err := s.tickets.Update(ctx, id, ticket.Update{TechnicianID: &technicianID})
	if err != nil {
		return nil, err
	}

	s.log.Info("technician assigned", "ticket_id", id, "technician_id", technicianID)
	return updated, nil
}

type AttachPhotoCommand struct {
	TicketID string `json:"ticketId" validate:"required,len=36"`
	URL      string `json:"url" validate:"required,max=500"`
	Type     string `json:"type" validate:"required,oneof=before after signature"`
}

// AttachPhoto stores one photo against a ticket.
func (s *Service) AttachPhoto(ctx context.Context, cmd AttachPhotoCommand) (*ticket.Photo, error) {
	if err := validation.ValidateStruct("photo", cmd); err != nil {
		return nil, err
	}

	p := &ticket.Photo{
		TicketID: cmd.TicketID,
		URL:      cmd.URL,
		Type:     cmd.Type,
	}
	if err := s.tickets.AddPhoto(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("photo attached", "ticket_id", cmd.TicketID, "photo_id", p.ID, "type", p.Type)
	return p, nil
}

// currentIVA reads the IVA percentage from company settings, falling back to
// the seeded default when settings were never initialized.
func (s *Service) currentIVA(ctx context.Context) (float64, error) {
	cfg, err := s.settings.Get(ctx)
	if apperrors.IsNotFound(err) {
		return settings.DefaultIVAPercentage, nil
	}
	if err != nil {
		return 0, err
	}
	return cfg.IVAPercentage, nil
}
