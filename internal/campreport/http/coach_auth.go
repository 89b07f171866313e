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

type SignUpHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP registers a new coach and returns a session token.
func (h *SignUpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req campsdk.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	session, err := h.AuthService.SignUpCoach(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired),
			errors.Is(err, service.ErrNameRequired),
			errors.Is(err, service.ErrPasswordTooShort):
			httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeInvalidRequest,
				ErrorDescription: err.Error(),
			})
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteJSON(w, http.StatusConflict, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeConflict,
				ErrorDescription: "An account with this email already exists",
			})
		default:
			log.Error("coach signup failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to create account",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, tokenResponse(session))
}

type CoachLoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP authenticates a coach.
func (h *CoachLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	session, err := h.AuthService.LoginCoach(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			httpx.WriteJSON(w, http.StatusUnauthorized, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeInvalidGrant,
				ErrorDescription: "Invalid email or password",
			})
			return
		}
		log.Error("coach login failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to log in",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(session))
}

func tokenResponse(session service.Session) campsdk.TokenResponse {
	return campsdk.TokenResponse{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
		ExpiresIn:   session.ExpiresIn,
		Scope:       session.Scope,
	}
}
