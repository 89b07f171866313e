package sqlite

import (
	"context"
	"database/sql"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
)

type reportsRepo struct {
	db dbtx
}

const reportColumns = `r.id, r.player_id, r.coach_id, r.technical_skills, r.physical_condition,
	r.teamwork, r.attitude, r.strengths, r.areas_for_improvement, r.additional_notes,
	r.report_date, r.created_at, p.name`

func (r *reportsRepo) CreateReport(ctx context.Context, rep domain.Report) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reports (id, player_id, coach_id, technical_skills, physical_condition,
			teamwork, attitude, strengths, areas_for_improvement, additional_notes,
			report_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.ID, rep.PlayerID, rep.CoachID, rep.TechnicalSkills, rep.PhysicalCondition,
		rep.Teamwork, rep.Attitude, rep.Strengths, rep.AreasForImprovement, rep.AdditionalNotes,
		rep.ReportDate, rep.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *reportsRepo) ListRecentReportsByCoach(ctx context.Context, coachID string, limit int) ([]domain.Report, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reportColumns+`
		FROM reports r
		JOIN players p ON p.id = r.player_id
		WHERE r.coach_id = ?
		ORDER BY r.created_at DESC
		LIMIT ?`,
		coachID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

func (r *reportsRepo) ListReportsByPlayer(ctx context.Context, playerID string) ([]domain.Report, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reportColumns+`
		FROM reports r
		JOIN players p ON p.id = r.player_id
		WHERE r.player_id = ?
		ORDER BY r.created_at DESC`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

func collectReports(rows *sql.Rows) ([]domain.Report, error) {
	var reports []domain.Report
	for rows.Next() {
		var rep domain.Report
		err := rows.Scan(
			&rep.ID, &rep.PlayerID, &rep.CoachID, &rep.TechnicalSkills, &rep.PhysicalCondition,
			&rep.Teamwork, &rep.Attitude, &rep.Strengths, &rep.AreasForImprovement, &rep.AdditionalNotes,
			&rep.ReportDate, &rep.CreatedAt, &rep.PlayerName,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
