package sqlite

import (
	"context"
	"database/sql"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
)

type coachesRepo struct {
	db dbtx
}

func (r *coachesRepo) CreateCoach(ctx context.Context, c domain.Coach) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO coaches (id, email, full_name, team_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Email, c.FullName, c.TeamName, c.CreatedAt, c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *coachesRepo) GetCoachByID(ctx context.Context, id string) (domain.Coach, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, team_name, created_at, updated_at
		FROM coaches
		WHERE id = ?`,
		id,
	)
	return scanCoach(row)
}

func (r *coachesRepo) GetCoachByEmail(ctx context.Context, email string) (domain.Coach, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, team_name, created_at, updated_at
		FROM coaches
		WHERE email = ?`,
		email,
	)
	return scanCoach(row)
}

func scanCoach(row *sql.Row) (domain.Coach, error) {
	var c domain.Coach
	err := row.Scan(&c.ID, &c.Email, &c.FullName, &c.TeamName, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Coach{}, mapNotFound(err)
	}
	return c, nil
}
