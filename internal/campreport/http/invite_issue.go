package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/service"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/campsdk"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/httpx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/slogx"
)

type InviteIssueHandler struct {
	InviteService *service.InviteService
}

// HandleIssue mints an invite link for one of the coach's players.
func (h *InviteIssueHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req campsdk.IssueInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	issued, err := h.InviteService.IssueInvite(ctx, httpx.SubjectID(ctx), r.PathValue("id"), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired):
			httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "email is required",
			})
		case errors.Is(err, service.ErrPlayerNotFound):
			writePlayerNotFound(w)
		default:
			log.Error("failed to issue invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to issue invite",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, campsdk.IssueInviteResponse{
		Code:      issued.Invite.Code,
		Link:      issued.Link,
		Email:     issued.Invite.Email,
		ExpiresAt: issued.Invite.ExpiresAt,
	})
}

// HandleHistory lists every invite ever issued for a player.
func (h *InviteIssueHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	invites, err := h.InviteService.ListInviteHistory(ctx, httpx.SubjectID(ctx), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			writePlayerNotFound(w)
			return
		}
		log.Error("failed to list invite history", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to list invites",
		})
		return
	}

	out := make([]campsdk.InviteRecord, 0, len(invites))
	for _, inv := range invites {
		out = append(out, campsdk.InviteRecord{
			Code:       inv.Code,
			Email:      inv.Email,
			CreatedAt:  inv.CreatedAt,
			ExpiresAt:  inv.ExpiresAt,
			AcceptedAt: inv.AcceptedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
