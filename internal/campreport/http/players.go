package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/service"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/campsdk"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/httpx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/slogx"
)

type PlayersHandler struct {
	RosterService *service.RosterService
}

// HandleList returns the coach's roster.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	players, err := h.RosterService.ListPlayers(ctx, httpx.SubjectID(ctx))
	if err != nil {
		log.Error("failed to list players", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to list players",
		})
		return
	}

	out := make([]campsdk.Player, 0, len(players))
	for _, p := range players {
		out = append(out, playerResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate adds a player to the roster.
func (h *PlayersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req campsdk.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	player, err := h.RosterService.AddPlayer(ctx, httpx.SubjectID(ctx), service.PlayerParams{
		Name:         req.Name,
		Position:     req.Position,
		Age:          req.Age,
		JerseyNumber: req.JerseyNumber,
	})
	if err != nil {
		if errors.Is(err, service.ErrPlayerNameRequired) {
			httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "name is required",
			})
			return
		}
		log.Error("failed to add player", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to add player",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, playerResponse(player))
}

// HandleUpdate changes a roster entry.
func (h *PlayersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req campsdk.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	player, err := h.RosterService.UpdatePlayer(ctx, httpx.SubjectID(ctx), r.PathValue("id"), service.PlayerParams{
		Name:         req.Name,
		Position:     req.Position,
		Age:          req.Age,
		JerseyNumber: req.JerseyNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlayerNameRequired):
			httpx.WriteJSON(w, http.StatusBadRequest, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "name is required",
			})
		case errors.Is(err, service.ErrPlayerNotFound):
			writePlayerNotFound(w)
		default:
			log.Error("failed to update player", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
				Error:            campsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to update player",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, playerResponse(player))
}

// HandleDelete removes a roster entry and everything attached to it.
func (h *PlayersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.RosterService.DeletePlayer(ctx, httpx.SubjectID(ctx), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			writePlayerNotFound(w)
			return
		}
		log.Error("failed to delete player", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, campsdk.ErrorResponse{
			Error:            campsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to delete player",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writePlayerNotFound(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusNotFound, campsdk.ErrorResponse{
		Error:            campsdk.ErrorCodeNotFound,
		ErrorDescription: "Player not found",
	})
}

func playerResponse(p domain.Player) campsdk.Player {
	return campsdk.Player{
		ID:           p.ID,
		Name:         p.Name,
		Position:     p.Position,
		Age:          p.Age,
		JerseyNumber: p.JerseyNumber,
		Email:        p.Email,
		InviteSent:   p.InviteSent,
		LastLogin:    p.LastLogin,
		CreatedAt:    p.CreatedAt,
	}
}
