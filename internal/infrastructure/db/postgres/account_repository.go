package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

const accountColumns = `id, name, email, password_hash, role, created_at, updated_at`

// AccountRepository implements ports.AccountRepository on Postgres.
//
// Update and Delete run the supplied check inside a transaction holding row
// locks on every admin row and on the target, so concurrent guarded
// mutations observe each other's committed result.
type AccountRepository struct {
	db *sql.DB
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	created := *a
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now
	}
	created.UpdatedAt = created.CreatedAt

	_, err := r.db.ExecContext(ctx, `
INSERT INTO accounts (id, name, email, password_hash, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		created.ID,
		created.Name,
		created.Email,
		created.PasswordHash,
		string(created.Role),
		created.CreatedAt,
		created.UpdatedAt,
	)
	if err != nil {
		if pqCode(err) == codeUniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return &created, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	if !validID(id) {
		return nil, domain.ErrAccountNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccountRow(row)
}

// FindByEmail is an exact, case-sensitive match.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccountRow(row)
}

func (r *AccountRepository) List(ctx context.Context, f ports.ListAccountsFilter) ([]*domain.Account, int64, error) {
	pattern := likePattern(f.Query)

	var total int64
	if err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM accounts
WHERE name ILIKE $1 ESCAPE '\' OR email ILIKE $1 ESCAPE '\'`,
		pattern,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+accountColumns+`
FROM accounts
WHERE name ILIKE $1 ESCAPE '\' OR email ILIKE $1 ESCAPE '\'
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`,
		pattern,
		f.Limit,
		(f.Page-1)*f.Limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0, f.Limit)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, total, nil
}

func (r *AccountRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE role = $1`, string(role)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts by role: %w", err)
	}
	return n, nil
}

func (r *AccountRepository) Update(ctx context.Context, id string, patch domain.AccountPatch, check domain.MutationCheck) (*domain.Account, error) {
	var updated domain.Account
	err := r.guarded(ctx, id, check, func(tx *sql.Tx, current domain.Account) error {
		updated = patch.Apply(current)
		updated.UpdatedAt = time.Now().UTC()
		_, err := tx.ExecContext(ctx, `
UPDATE accounts
SET name = $2, email = $3, password_hash = $4, role = $5, updated_at = $6
WHERE id = $1`,
			updated.ID,
			updated.Name,
			updated.Email,
			updated.PasswordHash,
			string(updated.Role),
			updated.UpdatedAt,
		)
		if err != nil {
			if pqCode(err) == codeUniqueViolation {
				return domain.ErrDuplicateEmail
			}
			return fmt.Errorf("update account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string, check domain.MutationCheck) error {
	return r.guarded(ctx, id, check, func(tx *sql.Tx, _ domain.Account) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		return nil
	})
}

// guarded locks the admin rows (ordered by id) and then the target row,
// evaluates check against the locked admin count and runs write before
// committing. Any error rolls the transaction back.
func (r *AccountRepository) guarded(ctx context.Context, id string, check domain.MutationCheck, write func(*sql.Tx, domain.Account) error) error {
	if !validID(id) {
		return domain.ErrAccountNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	admins, err := lockAdmins(ctx, tx)
	if err != nil {
		return err
	}

	current, err := scanAccountRow(tx.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return err
	}

	if err := check(*current, admins); err != nil {
		return err
	}
	if err := write(tx, *current); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func lockAdmins(ctx context.Context, tx *sql.Tx) (int, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM accounts WHERE role = $1 ORDER BY id FOR UPDATE`, string(domain.RoleAdmin))
	if err != nil {
		return 0, fmt.Errorf("lock admins: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("lock admins: %w", err)
	}
	return n, nil
}

func scanAccountRow(row scanner) (*domain.Account, error) {
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	return a, err
}

func scanAccount(row scanner) (*domain.Account, error) {
	var (
		a    domain.Account
		role string
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &role, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	a.Role = domain.Role(role)
	return &a, nil
}
