// Package v1alpha1 implements the HTTP API for characters and sheets
package v1alpha1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/herosheet/sheet-api/internal/entities/pf"
	"github.com/herosheet/sheet-api/internal/errors"
	sheetsvc "github.com/herosheet/sheet-api/internal/services/sheet"
)

// HandlerConfig holds the handler's dependencies
type HandlerConfig struct {
	Service sheetsvc.Service
	Logger  *slog.Logger
}

// Validate ensures required dependencies are provided
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Service == nil {
		return errors.InvalidArgument("service is required")
	}
	return nil
}

// Handler serves the v1alpha1 character and sheet endpoints
type Handler struct {
	service sheetsvc.Service
	logger  *slog.Logger
}

// NewHandler creates a new API handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		service: cfg.Service,
		logger:  logger,
	}, nil
}

// Register installs the handler's routes on a mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1alpha1/characters", h.createCharacter)
	mux.HandleFunc("GET /v1alpha1/characters", h.listCharacters)
	mux.HandleFunc("GET /v1alpha1/characters/{id}", h.getCharacter)
	mux.HandleFunc("PUT /v1alpha1/characters/{id}", h.updateCharacter)
	mux.HandleFunc("DELETE /v1alpha1/characters/{id}", h.deleteCharacter)
	mux.HandleFunc("GET /v1alpha1/characters/{id}/sheet", h.getSheet)
	mux.HandleFunc("POST /v1alpha1/characters/{id}/rolls", h.rollCheck)
}

// createCharacterRequest is the create payload
type createCharacterRequest struct {
	PlayerID string              `json:"player_id"`
	Record   *pf.CharacterRecord `json:"record"`
}

func (h *Handler) createCharacter(w http.ResponseWriter, r *http.Request) {
	var req createCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.service.CreateCharacter(r.Context(), &sheetsvc.CreateCharacterInput{
		PlayerID: req.PlayerID,
		Record:   req.Record,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, out.Record)
}

func (h *Handler) getCharacter(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.GetCharacter(r.Context(), &sheetsvc.GetCharacterInput{
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, out.Record)
}

func (h *Handler) updateCharacter(w http.ResponseWriter, r *http.Request) {
	var record pf.CharacterRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.writeError(w, r, errors.InvalidArgument("invalid request body"))
		return
	}
	record.ID = r.PathValue("id")

	out, err := h.service.UpdateCharacter(r.Context(), &sheetsvc.UpdateCharacterInput{
		Record: &record,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, out.Record)
}

func (h *Handler) deleteCharacter(w http.ResponseWriter, r *http.Request) {
	_, err := h.service.DeleteCharacter(r.Context(), &sheetsvc.DeleteCharacterInput{
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCharacters(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")

	out, err := h.service.ListCharacters(r.Context(), &sheetsvc.ListCharactersInput{
		PlayerID: playerID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"characters": out.Records})
}

func (h *Handler) getSheet(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.GetSheet(r.Context(), &sheetsvc.GetSheetInput{
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("X-Sheet-Cache", cacheHeader(out.FromCache))
	h.writeJSON(w, http.StatusOK, out.Sheet)
}

// rollCheckRequest is the roll payload
type rollCheckRequest struct {
	Target string `json:"target"`
}

func (h *Handler) rollCheck(w http.ResponseWriter, r *http.Request) {
	var req rollCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.service.RollCheck(r.Context(), &sheetsvc.RollCheckInput{
		CharacterID: r.PathValue("id"),
		Target:      req.Target,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, out)
}

func cacheHeader(fromCache bool) string {
	if fromCache {
		return "hit"
	}
	return "miss"
}

// errorBody is the JSON error envelope
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	h.writeJSON(w, status, errorBody{
		Code:    code.String(),
		Message: errors.GetMessage(err),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
