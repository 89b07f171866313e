package http

import (
	"errors"
	"net/http"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/service"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/campsdk"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/httpx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/slogx"
)

type InviteValidateHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP resolves an invite code into the join-page snapshot. Unknown,
// expired and already used codes all get the same 404 so the response leaks
// nothing about which invites exist.
func (h *InviteValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	details, err := h.InviteService.ValidateInvite(ctx, r.PathValue("code"))
	if err != nil {
		if errors.Is(err, service.ErrInviteNotFound) {
			writeInviteNotFound(w)
			return
		}
		log.Error("failed to validate invite", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to validate invite",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, campsdk.InviteDetailsResponse{
		Code:           details.Code,
		Email:          details.Email,
		PlayerName:     details.PlayerName,
		PlayerPosition: details.PlayerPosition,
		CoachName:      details.CoachName,
		TeamName:       details.TeamName,
		ExpiresAt:      details.ExpiresAt,
	})
}

func writeInviteNotFound(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusNotFound, campsdk.ErrorResponse{
		Error:            campsdk.ErrorCodeNotFound,
		ErrorDescription: "Invalid or expired invite code",
	})
}
