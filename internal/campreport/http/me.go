package http

import (
	"errors"
	"net/http"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/service"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/campsdk"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/httpx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/jwtx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/slogx"
)

type MeHandler struct {
	Store         store.Store
	ReportService *service.ReportService
}

// HandleProfile returns the authenticated subject's profile. Coaches also
// get their team name.
func (h *MeHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := ctx.Value(httpx.CtxKeyClaims).(jwtx.Claims)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeInvalidToken,
			ErrorDescription: "Authentication required",
		})
		return
	}

	profile := campsdk.Profile{
		ID:       claims.Subject,
		Email:    claims.Email,
		FullName: claims.FullName,
	}

	switch {
	case claims.HasScope(jwtx.ScopeCoach):
		profile.Scope = jwtx.ScopeCoach
		coach, err := h.Store.Coaches().GetCoachByID(ctx, claims.Subject)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to load coach profile", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to load profile",
			})
			return
		}
		profile.TeamName = coach.TeamName
	case claims.HasScope(jwtx.ScopePlayer):
		profile.Scope = jwtx.ScopePlayer
	}

	httpx.WriteJSON(w, http.StatusOK, profile)
}

// HandleReports returns the authenticated player's own reports.
func (h *MeHandler) HandleReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	reports, err := h.ReportService.ListOwnReports(ctx, httpx.SubjectID(ctx))
	if err != nil {
		log.Error("failed to list own reports", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to list reports",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, reportsResponse(reports))
}
