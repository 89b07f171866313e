package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
)

type playersRepo struct {
	db dbtx
}

const playerColumns = `id, coach_id, name, position, age, jersey_number, email, invite_sent, last_login, created_at, updated_at`

func (r *playersRepo) CreatePlayer(ctx context.Context, p domain.Player) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO players (`+playerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CoachID, p.Name, p.Position, mapOptionalInt(p.Age), mapOptionalInt(p.JerseyNumber),
		p.Email, p.InviteSent, mapOptionalTime(p.LastLogin), p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *playersRepo) GetPlayerByID(ctx context.Context, id string) (domain.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+playerColumns+` FROM players WHERE id = ?`,
		id,
	)
	return scanPlayerRow(row)
}

// GetPlayerByEmail resolves the roster entry backing a portal login. If the
// same email was ever attached to more than one roster row, the most
// recently created row wins.
func (r *playersRepo) GetPlayerByEmail(ctx context.Context, email string) (domain.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+playerColumns+` FROM players
		WHERE email = ? AND email != ''
		ORDER BY created_at DESC
		LIMIT 1`,
		email,
	)
	return scanPlayerRow(row)
}

func (r *playersRepo) ListPlayersByCoach(ctx context.Context, coachID string) ([]domain.Player, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+playerColumns+` FROM players
		WHERE coach_id = ?
		ORDER BY name ASC`,
		coachID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *playersRepo) UpdatePlayer(ctx context.Context, p domain.Player) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE players
		SET name = ?, position = ?, age = ?, jersey_number = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Position, mapOptionalInt(p.Age), mapOptionalInt(p.JerseyNumber), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *playersRepo) SetPlayerInvited(ctx context.Context, playerID, email string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE players
		SET email = ?, invite_sent = 1, updated_at = ?
		WHERE id = ?`,
		email, at, playerID,
	)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *playersRepo) SetPlayerLastLogin(ctx context.Context, playerID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE players SET last_login = ? WHERE id = ?`,
		at, playerID,
	)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *playersRepo) DeletePlayer(ctx context.Context, playerID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM players WHERE id = ?`,
		playerID,
	)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// requireRows turns a zero-row UPDATE/DELETE into ErrNotFound so callers
// learn when the id they targeted does not exist.
func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (domain.Player, error) {
	var p domain.Player
	var age, jersey sql.NullInt64
	var lastLogin sql.NullTime
	err := row.Scan(
		&p.ID, &p.CoachID, &p.Name, &p.Position, &age, &jersey,
		&p.Email, &p.InviteSent, &lastLogin, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Player{}, err
	}
	p.Age = mapNullIntPtr(age)
	p.JerseyNumber = mapNullIntPtr(jersey)
	p.LastLogin = mapNullTimePtr(lastLogin)
	return p, nil
}

func scanPlayerRow(row *sql.Row) (domain.Player, error) {
	p, err := scanPlayer(row)
	if err != nil {
		return domain.Player{}, mapNotFound(err)
	}
	return p, nil
}
