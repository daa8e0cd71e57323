// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/ninebox/internal/domain/types"
)

// moveRequest mirrors the POST /sessions/{id}/moves payload.
type moveRequest struct {
	PersonID string `json:"person_id"`
	To       int    `json:"to"`
}

func (m moveRequest) validate() error {
	if strings.TrimSpace(m.PersonID) == "" {
		return fmt.Errorf("%w: missing person_id", ErrBadRequest)
	}
	return nil
}

// moveResponse returns the person's view after the move, and the net-change
// record if one now exists (null when the person is back on the original
// cell).
type moveResponse struct {
	Person types.PersonView  `json:"person"`
	Change *types.ChangeView `json:"change"`
}

func (h *SessionsHandler) handleMove(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	person, change, err := h.deps.Move(r.Context(), sessionID, req.PersonID, req.To)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moveResponse{Person: person, Change: change})
}

// notesRequest mirrors the PUT /sessions/{id}/people/{pid}/notes payload.
type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *SessionsHandler) handleNotes(w http.ResponseWriter, r *http.Request, sessionID, personID string) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}

	var req notesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	if err := h.deps.SetNotes(r.Context(), sessionID, personID, req.Notes); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
