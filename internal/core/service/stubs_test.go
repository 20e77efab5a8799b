package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory account repository. The mutex stands in for the row locks the
// Postgres implementation takes around guarded mutations.
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu       sync.Mutex
	byID     map[string]*domain.Account
	nextID   int
	inserts  int
	findErr  error
	writeErr error
}

func newStubAccountRepo(accounts ...domain.Account) *stubAccountRepo {
	r := &stubAccountRepo{byID: make(map[string]*domain.Account)}
	for i := range accounts {
		a := accounts[i]
		r.byID[a.ID] = &a
	}
	return r
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return nil, r.writeErr
	}
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	clone := cloneAccount(a)
	clone.ID = "acc-" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = clone
	r.inserts++
	return cloneAccount(clone), nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, a := range r.byID {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) List(_ context.Context, f ports.ListAccountsFilter) ([]*domain.Account, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Account
	for _, a := range r.byID {
		q := strings.ToLower(f.Query)
		if q != "" && !strings.Contains(strings.ToLower(a.Name), q) && !strings.Contains(strings.ToLower(a.Email), q) {
			continue
		}
		matched = append(matched, cloneAccount(a))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.Account{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubAccountRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(r.countLocked(role)), nil
}

func (r *stubAccountRepo) countLocked(role domain.Role) int {
	n := 0
	for _, a := range r.byID {
		if a.Role == role {
			n++
		}
	}
	return n
}

func (r *stubAccountRepo) Update(_ context.Context, id string, patch domain.AccountPatch, check domain.MutationCheck) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if err := check(*current, r.countLocked(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	if patch.Email != nil {
		for otherID, other := range r.byID {
			if otherID != id && other.Email == *patch.Email {
				return nil, domain.ErrDuplicateEmail
			}
		}
	}
	next := patch.Apply(*current)
	r.byID[id] = &next
	return cloneAccount(&next), nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string, check domain.MutationCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if err := check(*current, r.countLocked(domain.RoleAdmin)); err != nil {
		return err
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Recording auditor
// ---------------------------------------------------------------------------

type stubAuditor struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *stubAuditor) Record(e domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *stubAuditor) actions() []domain.AuditAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditAction, len(a.events))
	for i, e := range a.events {
		out[i] = e.Action
	}
	return out
}

func hashed(t interface{ Fatalf(string, ...any) }, password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(h)
}
