package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/idx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/slogx"
)

// RecentReportLimit caps the dashboard's recent-reports list.
const RecentReportLimit = 5

var ErrRatingOutOfRange = errors.New("ratings must be between 1 and 10")

// ReportService creates and lists performance reports. Writes are scoped to
// the coach who owns the player; reads are available to both the coach and
// the player the report is about.
type ReportService struct {
	Store store.Store
}

// ReportParams carries one report's worth of coach input.
type ReportParams struct {
	PlayerID            string
	TechnicalSkills     int
	PhysicalCondition   int
	Teamwork            int
	Attitude            int
	Strengths           string
	AreasForImprovement string
	AdditionalNotes     string
	ReportDate          time.Time
}

func (s *ReportService) CreateReport(ctx context.Context, coachID string, params ReportParams) (domain.Report, error) {
	log := slogx.FromContext(ctx)

	// 1. Ratings must all sit on the 1..10 scale
	for _, rating := range []int{params.TechnicalSkills, params.PhysicalCondition, params.Teamwork, params.Attitude} {
		if rating < domain.RatingMin || rating > domain.RatingMax {
			return domain.Report{}, ErrRatingOutOfRange
		}
	}

	// 2. The player must belong to the writing coach
	player, err := s.Store.Players().GetPlayerByID(ctx, params.PlayerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Report{}, ErrPlayerNotFound
		}
		return domain.Report{}, err
	}
	if player.CoachID != coachID {
		return domain.Report{}, ErrPlayerNotFound
	}

	now := time.Now().UTC()
	reportDate := params.ReportDate
	if reportDate.IsZero() {
		reportDate = now
	}

	report := domain.Report{
		ID:                  idx.New().String(),
		PlayerID:            player.ID,
		CoachID:             coachID,
		TechnicalSkills:     params.TechnicalSkills,
		PhysicalCondition:   params.PhysicalCondition,
		Teamwork:            params.Teamwork,
		Attitude:            params.Attitude,
		Strengths:           strings.TrimSpace(params.Strengths),
		AreasForImprovement: strings.TrimSpace(params.AreasForImprovement),
		AdditionalNotes:     strings.TrimSpace(params.AdditionalNotes),
		ReportDate:          reportDate,
		CreatedAt:           now,
	}

	if err := s.Store.Reports().CreateReport(ctx, report); err != nil {
		return domain.Report{}, err
	}

	report.PlayerName = player.Name
	log.Info("report created",
		slog.String("report_id", report.ID),
		slog.String("player_id", player.ID),
	)
	return report, nil
}

// ListRecentReports feeds the coach dashboard: the newest few reports across
// the whole roster, each tagged with the player's name.
func (s *ReportService) ListRecentReports(ctx context.Context, coachID string) ([]domain.Report, error) {
	return s.Store.Reports().ListRecentReportsByCoach(ctx, coachID, RecentReportLimit)
}

// ListPlayerReports returns every report about one player, for the coach who
// owns them.
func (s *ReportService) ListPlayerReports(ctx context.Context, coachID, playerID string) ([]domain.Report, error) {
	player, err := s.Store.Players().GetPlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if player.CoachID != coachID {
		return nil, ErrPlayerNotFound
	}
	return s.Store.Reports().ListReportsByPlayer(ctx, playerID)
}

// ListOwnReports returns a player's reports for the portal. The subject is
// the player id straight from their session.
func (s *ReportService) ListOwnReports(ctx context.Context, playerID string) ([]domain.Report, error) {
	return s.Store.Reports().ListReportsByPlayer(ctx, playerID)
}
