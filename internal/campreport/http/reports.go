package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/service"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/campsdk"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/httpx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/slogx"
)

type ReportsHandler struct {
	ReportService *service.ReportService
}

// HandleCreate writes a performance report for one of the coach's players.
func (h *ReportsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req campsdk.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	var reportDate time.Time
	if req.ReportDate != nil {
		reportDate = *req.ReportDate
	}

	report, err := h.ReportService.CreateReport(ctx, httpx.SubjectID(ctx), service.ReportParams{
		PlayerID:            req.PlayerID,
		TechnicalSkills:     req.TechnicalSkills,
		PhysicalCondition:   req.PhysicalCondition,
		Teamwork:            req.Teamwork,
		Attitude:            req.Attitude,
		Strengths:           req.Strengths,
		AreasForImprovement: req.AreasForImprovement,
		AdditionalNotes:     req.AdditionalNotes,
		ReportDate:          reportDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRatingOutOfRange):
			httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Ratings must be between 1 and 10",
			})
		case errors.Is(err, service.ErrPlayerNotFound):
			writePlayerNotFound(w)
		default:
			log.Error("failed to create report", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to create report",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, reportResponse(report))
}

// HandleRecent feeds the coach dashboard's recent-reports list.
func (h *ReportsHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	reports, err := h.ReportService.ListRecentReports(ctx, httpx.SubjectID(ctx))
	if err != nil {
		log.Error("failed to list recent reports", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to list reports",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, reportsResponse(reports))
}

// HandlePlayerReports lists every report about one player.
func (h *ReportsHandler) HandlePlayerReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	reports, err := h.ReportService.ListPlayerReports(ctx, httpx.SubjectID(ctx), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			writePlayerNotFound(w)
			return
		}
		log.Error("failed to list player reports", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to list reports",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, reportsResponse(reports))
}

func reportResponse(rep domain.Report) campsdk.Report {
	return campsdk.Report{
		ID:                  rep.ID,
		PlayerID:            rep.PlayerID,
		PlayerName:          rep.PlayerName,
		TechnicalSkills:     rep.TechnicalSkills,
		PhysicalCondition:   rep.PhysicalCondition,
		Teamwork:            rep.Teamwork,
		Attitude:            rep.Attitude,
		Strengths:           rep.Strengths,
		AreasForImprovement: rep.AreasForImprovement,
		AdditionalNotes:     rep.AdditionalNotes,
		ReportDate:          rep.ReportDate,
		CreatedAt:           rep.CreatedAt,
	}
}

func reportsResponse(reports []domain.Report) []campsdk.Report {
	out := make([]campsdk.Report, 0, len(reports))
	for _, rep := range reports {
		out = append(out, reportResponse(rep))
	}
	return out
}
