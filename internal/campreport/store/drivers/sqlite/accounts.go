package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
)

type accountsRepo struct {
	db dbtx
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, password_hash, user_type, full_name, created_at, last_login)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.PasswordHash, a.UserType, a.FullName, a.CreatedAt, mapOptionalTime(a.LastLogin),
	)
	return mapConstraint(err)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, user_type, full_name, created_at, last_login
		FROM accounts
		WHERE email = ?`,
		email,
	)
	return scanAccount(row)
}

func (r *accountsRepo) SetAccountLastLogin(ctx context.Context, accountID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET last_login = ? WHERE id = ?`,
		at, accountID,
	)
	return err
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account
	var lastLogin sql.NullTime
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.UserType, &a.FullName, &a.CreatedAt, &lastLogin)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.LastLogin = mapNullTimePtr(lastLogin)
	return a, nil
}
