package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
	"github.com/99minutos/invoice-dashboard/internal/pkg/metrics"
)

// InvoicesPerPage matches the page size of the invoices table.
const InvoicesPerPage = 6

type InvoiceService struct {
	invoices  ports.InvoiceRepository
	customers ports.CustomerRepository
	idem      ports.IdempotencyStore
	audit     ports.Auditor
	logger    zerolog.Logger
	now       func() time.Time
}

func NewInvoiceService(
	invoices ports.InvoiceRepository,
	customers ports.CustomerRepository,
	idem ports.IdempotencyStore,
	audit ports.Auditor,
	logger zerolog.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		customers: customers,
		idem:      idem,
		audit:     audit,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateInvoice stores a new invoice dated today. When an idempotency key is
// supplied the key is reserved first; a key already bound to an invoice
// replays that invoice and a key still being processed is rejected with
// domain.ErrRequestInProgress.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input ports.InvoiceInput) (*ports.InvoiceResult, error) {
	idemKey := ""
	if input.IdempotencyKey != "" && s.idem != nil {
		key := input.ActorID + ":" + input.IdempotencyKey
		id, reserved, err := s.idem.Reserve(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency reserve failed, creating anyway")
		case reserved:
			idemKey = key
		case id == "":
			return nil, domain.ErrRequestInProgress
		default:
			existing, err := s.invoices.FindByID(ctx, id)
			if err == nil {
				metrics.IdempotentReplaysTotal.Inc()
				s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("invoice_id", id).Msg("idempotent replay")
				return &ports.InvoiceResult{Invoice: existing, AlreadyExisted: true}, nil
			}
			if !errors.Is(err, domain.ErrInvoiceNotFound) {
				return nil, fmt.Errorf("create invoice: %w", err)
			}
			// The replayed invoice was deleted; create a new one and rebind the key.
			idemKey = key
		}
	}

	invoice, err := s.createInvoice(ctx, input)
	if err != nil {
		if idemKey != "" {
			if rerr := s.idem.Release(ctx, idemKey); rerr != nil {
				s.logger.Warn().Err(rerr).Str("idempotency_key", input.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if idemKey != "" {
		if err := s.idem.Complete(ctx, idemKey, invoice.ID); err != nil {
			s.logger.Warn().Err(err).Str("invoice_id", invoice.ID).Msg("failed to store idempotency key")
		}
	}

	metrics.InvoiceMutationsTotal.WithLabelValues("create", string(invoice.Status)).Inc()
	s.record(input.ActorID, domain.AuditInvoiceCreated, invoice)
	s.logger.Info().Str("invoice_id", invoice.ID).Str("customer_id", invoice.CustomerID).Msg("invoice created")
	return &ports.InvoiceResult{Invoice: invoice}, nil
}

func (s *InvoiceService) createInvoice(ctx context.Context, input ports.InvoiceInput) (*domain.Invoice, error) {
	invoice, err := s.buildInvoice(ctx, input)
	if err != nil {
		return nil, err
	}
	invoice.Date = truncateToDate(s.now())

	if err := s.invoices.Create(ctx, invoice); err != nil {
		s.logger.Error().Err(err).Msg("failed to create invoice")
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return invoice, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoices.FindByID(ctx, id)
}

// UpdateInvoice replaces customer, amount and status. The date is kept.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, input ports.InvoiceInput) (*domain.Invoice, error) {
	current, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := s.buildInvoice(ctx, input)
	if err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.Date = current.Date

	if err := s.invoices.Update(ctx, next); err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("invoice_id", id).Msg("failed to update invoice")
		return nil, fmt.Errorf("update invoice: %w", err)
	}

	metrics.InvoiceMutationsTotal.WithLabelValues("update", string(next.Status)).Inc()
	s.record(input.ActorID, domain.AuditInvoiceUpdated, next)
	return next, nil
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, id, actorID string) error {
	if err := s.invoices.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("invoice_id", id).Msg("failed to delete invoice")
		return fmt.Errorf("delete invoice: %w", err)
	}

	metrics.InvoiceMutationsTotal.WithLabelValues("delete", "").Inc()
	s.record(actorID, domain.AuditInvoiceDeleted, &domain.Invoice{ID: id})
	return nil
}

// ListInvoices returns one page of the filtered invoices table and the total
// page count for the same query.
func (s *InvoiceService) ListInvoices(ctx context.Context, query string, page int) (*ports.ListInvoicesResult, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.invoices.CountFiltered(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count invoices: %w", err)
	}
	items, err := s.invoices.Filtered(ctx, query, InvoicesPerPage, (page-1)*InvoicesPerPage)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	return &ports.ListInvoicesResult{
		Items:      items,
		Page:       page,
		TotalPages: totalPages(total, InvoicesPerPage),
	}, nil
}

// buildInvoice runs the field checks shared by create and update.
func (s *InvoiceService) buildInvoice(ctx context.Context, input ports.InvoiceInput) (*domain.Invoice, error) {
	verr := &domain.ValidationError{Message: "Missing Fields. Failed to save invoice"}
	if input.CustomerID == "" {
		verr.Add("customer_id", "Please select a customer.")
	}
	cents, ok := domain.ToCents(input.Amount)
	if !ok {
		verr.Add("amount", "Please enter an amount greater than $0.")
	}
	status := domain.InvoiceStatus(input.Status)
	if !status.Valid() {
		verr.Add("status", "Please select an invoice status.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	ok, err := s.customers.Exists(ctx, input.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("check customer: %w", err)
	}
	if !ok {
		verr.Add("customer_id", "Please select a customer.")
		return nil, verr
	}

	return &domain.Invoice{
		CustomerID: input.CustomerID,
		Amount:     cents,
		Status:     status,
	}, nil
}

func (s *InvoiceService) record(actorID string, action domain.AuditAction, inv *domain.Invoice) {
	if s.audit == nil {
		return
	}
	detail := map[string]string{}
	if inv.CustomerID != "" {
		detail["customer_id"] = inv.CustomerID
		detail["amount"] = domain.FormatCurrency(inv.Amount)
		detail["status"] = string(inv.Status)
	}
	s.audit.Record(domain.AuditEvent{
		ActorID:  actorID,
		Action:   action,
		Entity:   "invoice",
		EntityID: inv.ID,
		At:       s.now(),
		Detail:   detail,
	})
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
