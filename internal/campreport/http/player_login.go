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

type PlayerLoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP authenticates a player for the portal. Credentials alone are not
// enough; the email must still be on a roster.
func (h *PlayerLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req campsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	session, err := h.AuthService.LoginPlayer(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadCredentials):
			httpx.WriteJSON(w, http.StatusUnauthorized, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeInvalidGrant,
				ErrorDescription: "Invalid email or password",
			})
		case errors.Is(err, service.ErrNotAPlayer):
			httpx.WriteJSON(w, http.StatusForbidden, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeAccessDenied,
				ErrorDescription: "This account is not associated with any player. Please contact your coach.",
			})
		default:
			log.Error("player login failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to log in",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(session))
}
