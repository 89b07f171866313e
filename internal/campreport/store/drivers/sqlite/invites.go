package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
)

type invitesRepo struct {
	db dbtx
}

const inviteColumns = `id, player_id, coach_id, email, invite_code, created_at, expires_at, accepted_at`

// GenerateCode mints a random UUID invite code that no prior invite has
// ever used. Collisions are vanishingly rare but checked anyway because the
// code is the invite's public identity; the unique index on invite_code is
// the backstop for races between concurrent issuers.
func (r *invitesRepo) GenerateCode(ctx context.Context) (string, error) {
	const maxAttempts = 5

	for range maxAttempts {
		code := uuid.NewString()

		var one int
		err := r.db.QueryRowContext(ctx, `
			SELECT 1 FROM player_invites WHERE invite_code = ?`,
			code,
		).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("failed to generate a unique invite code after %d attempts", maxAttempts)
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO player_invites (`+inviteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.PlayerID, inv.CoachID, inv.Email, inv.Code,
		inv.CreatedAt, inv.ExpiresAt, mapOptionalTime(inv.AcceptedAt),
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetUsableInviteByCode(ctx context.Context, code string, now time.Time) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+inviteColumns+` FROM player_invites
		WHERE invite_code = ? AND expires_at > ? AND accepted_at IS NULL`,
		code, now,
	)
	return scanInviteRow(row)
}

func (r *invitesRepo) GetUsableInviteDetails(ctx context.Context, code string, now time.Time) (domain.InviteDetails, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT i.id, i.player_id, i.coach_id, i.email, i.invite_code, i.created_at, i.expires_at, i.accepted_at,
		       p.name, p.position, c.full_name, c.team_name
		FROM player_invites i
		JOIN players p ON p.id = i.player_id
		JOIN coaches c ON c.id = i.coach_id
		WHERE i.invite_code = ? AND i.expires_at > ? AND i.accepted_at IS NULL`,
		code, now,
	)

	var d domain.InviteDetails
	var acceptedAt sql.NullTime
	err := row.Scan(
		&d.ID, &d.PlayerID, &d.CoachID, &d.Email, &d.Code, &d.CreatedAt, &d.ExpiresAt, &acceptedAt,
		&d.PlayerName, &d.PlayerPosition, &d.CoachName, &d.TeamName,
	)
	if err != nil {
		return domain.InviteDetails{}, mapNotFound(err)
	}
	d.AcceptedAt = mapNullTimePtr(acceptedAt)
	return d, nil
}

// MarkInviteAccepted is guarded on accepted_at IS NULL so an invite can be
// consumed at most once, even under concurrent acceptance attempts. A
// zero-row update means the invite was already used and maps to ErrNotFound.
func (r *invitesRepo) MarkInviteAccepted(ctx context.Context, inviteID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE player_invites SET accepted_at = ?
		WHERE id = ? AND accepted_at IS NULL`,
		at, inviteID,
	)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *invitesRepo) ListInvitesByPlayer(ctx context.Context, playerID string) ([]domain.Invite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+inviteColumns+` FROM player_invites
		WHERE player_id = ?
		ORDER BY created_at DESC`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

func scanInvite(row rowScanner) (domain.Invite, error) {
	var inv domain.Invite
	var acceptedAt sql.NullTime
	err := row.Scan(
		&inv.ID, &inv.PlayerID, &inv.CoachID, &inv.Email, &inv.Code,
		&inv.CreatedAt, &inv.ExpiresAt, &acceptedAt,
	)
	if err != nil {
		return domain.Invite{}, err
	}
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	return inv, nil
}

func scanInviteRow(row *sql.Row) (domain.Invite, error) {
	inv, err := scanInvite(row)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}
