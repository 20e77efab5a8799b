package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
	"github.com/99minutos/invoice-dashboard/internal/pkg/metrics"
)

const (
	defaultAccountsPerPage = 10
	maxAccountsPerPage     = 100
	minPasswordLength      = 6
)

// AccountService implements account management on top of the domain guard.
type AccountService struct {
	repo     ports.AccountRepository
	audit    ports.Auditor
	logger   zerolog.Logger
	hashCost int
}

func NewAccountService(repo ports.AccountRepository, audit ports.Auditor, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, audit: audit, logger: logger, hashCost: bcrypt.DefaultCost}
}

// CreateAccount rejects the request when the email is already taken. The
// lookup is an exact match; the unique index backs it up for concurrent creates.
func (s *AccountService) CreateAccount(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("create account: %w", err)
	}
	if err := domain.CheckEmailAvailable(existing); err != nil {
		s.rejected(err, "create", input.Email)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			s.rejected(err, "create", input.Email)
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create account")
		return nil, fmt.Errorf("create account: %w", err)
	}

	metrics.AccountMutationsTotal.WithLabelValues("create").Inc()
	s.record(input.ActorID, domain.AuditAccountCreated, created.ID, map[string]string{"role": string(created.Role)})
	s.logger.Info().Str("account_id", created.ID).Str("role", string(created.Role)).Msg("account created")
	return created, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AccountService) ListAccounts(ctx context.Context, input ports.ListAccountsInput) (*ports.ListAccountsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	switch {
	case limit <= 0:
		limit = defaultAccountsPerPage
	case limit > maxAccountsPerPage:
		limit = maxAccountsPerPage
	}

	items, total, err := s.repo.List(ctx, ports.ListAccountsFilter{Query: input.Query, Page: page, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	admins, err := s.repo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}

	return &ports.ListAccountsResult{
		Items:      items,
		Total:      total,
		Admins:     admins,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// UpdateAccount applies a partial update. A role change goes through the
// last-admin guard; every other field is accepted as is.
func (s *AccountService) UpdateAccount(ctx context.Context, input ports.UpdateAccountInput) (*domain.Account, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	patch := domain.AccountPatch{Email: input.Email, Role: input.Role}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		patch.Name = &name
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.hashCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		h := string(hash)
		patch.PasswordHash = &h
	}
	if patch.Empty() {
		return s.repo.FindByID(ctx, input.ID)
	}

	updated, err := s.repo.Update(ctx, input.ID, patch, domain.PatchCheck(patch))
	if err != nil {
		return nil, s.mutationError(err, "update", input.ID)
	}

	metrics.AccountMutationsTotal.WithLabelValues("update").Inc()
	s.record(input.ActorID, domain.AuditAccountUpdated, updated.ID, patchDetail(patch))
	s.logger.Info().Str("account_id", updated.ID).Msg("account updated")
	return updated, nil
}

// ChangeRole sets the account role, refusing to demote the last admin.
func (s *AccountService) ChangeRole(ctx context.Context, id string, role domain.Role, actorID string) (*domain.Account, error) {
	return s.UpdateAccount(ctx, ports.UpdateAccountInput{ID: id, Role: &role, ActorID: actorID})
}

// DeleteAccount removes the account, refusing to delete the last admin.
// Standard accounts are always removable.
func (s *AccountService) DeleteAccount(ctx context.Context, id, actorID string) error {
	if err := s.repo.Delete(ctx, id, domain.CheckRemoval); err != nil {
		return s.mutationError(err, "delete", id)
	}

	metrics.AccountMutationsTotal.WithLabelValues("delete").Inc()
	s.record(actorID, domain.AuditAccountDeleted, id, nil)
	s.logger.Info().Str("account_id", id).Msg("account deleted")
	return nil
}

func (s *AccountService) Bootstrap(ctx context.Context, input ports.CreateAccountInput) (bool, error) {
	admins, err := s.repo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if admins > 0 {
		return false, nil
	}
	input.Role = domain.RoleAdmin
	if input.ActorID == "" {
		input.ActorID = "system"
	}
	if _, err := s.CreateAccount(ctx, input); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AccountService) mutationError(err error, op, id string) error {
	switch {
	case errors.Is(err, domain.ErrLastAdmin), errors.Is(err, domain.ErrDuplicateEmail):
		s.rejected(err, op, id)
		return err
	case errors.Is(err, domain.ErrAccountNotFound):
		return err
	}
	s.logger.Error().Err(err).Str("account_id", id).Str("op", op).Msg("account mutation failed")
	return fmt.Errorf("%s account: %w", op, err)
}

func (s *AccountService) rejected(err error, op, subject string) {
	reason := "duplicate_email"
	if errors.Is(err, domain.ErrLastAdmin) {
		reason = "last_admin"
	}
	metrics.GuardRejectionsTotal.WithLabelValues(op, reason).Inc()
	s.logger.Warn().Str("op", op).Str("subject", subject).Str("reason", err.Error()).Msg("mutation rejected")
}

func (s *AccountService) record(actorID string, action domain.AuditAction, id string, detail map[string]string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		ActorID:  actorID,
		Action:   action,
		Entity:   "account",
		EntityID: id,
		At:       time.Now().UTC(),
		Detail:   detail,
	})
}

func validateCreate(in ports.CreateAccountInput) error {
	verr := &domain.ValidationError{Message: "invalid account"}
	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "name is required")
	}
	if in.Email == "" {
		verr.Add("email", "email is required")
	} else if !strings.Contains(in.Email, "@") {
		verr.Add("email", "email must be a valid email")
	}
	if len(in.Password) < minPasswordLength {
		verr.Add("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if !in.Role.Valid() {
		verr.Add("role", "role must be one of: admin user")
	}
	return verr.OrNil()
}

func validateUpdate(in ports.UpdateAccountInput) error {
	verr := &domain.ValidationError{Message: "invalid account"}
	if in.ID == "" {
		verr.Add("id", "id is required")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		verr.Add("name", "name must not be empty")
	}
	if in.Email != nil && !strings.Contains(*in.Email, "@") {
		verr.Add("email", "email must be a valid email")
	}
	if in.Password != nil && len(*in.Password) < minPasswordLength {
		verr.Add("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if in.Role != nil && !in.Role.Valid() {
		verr.Add("role", "role must be one of: admin user")
	}
	return verr.OrNil()
}

func patchDetail(p domain.AccountPatch) map[string]string {
	detail := map[string]string{}
	if p.Name != nil {
		detail["name"] = *p.Name
	}
	if p.Email != nil {
		detail["email"] = *p.Email
	}
	if p.Role != nil {
		detail["role"] = string(*p.Role)
	}
	if p.PasswordHash != nil {
		detail["password"] = "changed"
	}
	return detail
}

func totalPages(total int64, limit int) int {
	if limit <= 0 || total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
