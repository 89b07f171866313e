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

type InviteAcceptHandler struct {
	InviteService *service.InviteService
	AuthService   *service.AuthService
}

// ServeHTTP consumes an invite, creates the player's login and logs them
// straight in.
func (h *InviteAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req campsdk.AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.Code == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "code is required",
		})
		return
	}

	accepted, err := h.InviteService.AcceptInvite(ctx, req.Code, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Passwords do not match",
			})
		case errors.Is(err, service.ErrPasswordTooShort):
			httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Password must be at least 6 characters",
			})
		case errors.Is(err, service.ErrInviteNotFound):
			writeInviteNotFound(w)
		case errors.Is(err, service.ErrAccountExists):
			httpx.WriteJSON(w, http.StatusConflict, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeConflict,
				ErrorDescription: "An account with this email already exists",
			})
		default:
			log.Error("failed to accept invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to accept invite",
			})
		}
		return
	}

	// The invite is burned; log the new player in immediately
	session, err := h.AuthService.LoginPlayer(ctx, accepted.Account.Email, req.Password)
	if err != nil {
		log.Error("failed to start session after invite acceptance", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeServerError,
			ErrorDescription: "Account created but login failed; please log in",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, tokenResponse(session))
}
