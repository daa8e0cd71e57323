// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/ninebox/internal/adapters/roster"
)

// SessionsHandler handles the /sessions resource tree.
type SessionsHandler struct {
	deps Dependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps Dependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// HandleSessions handles POST /sessions: the request body is a CSV roster,
// the optional ?source= query names the originating file.
func (h *SessionsHandler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	people, err := roster.Read(r.Body)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	source := r.URL.Query().Get("source")
	id, err := h.deps.Begin(r.Context(), people, source)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": id,
		"roster":     len(people),
	})
}

// HandleSession dispatches /sessions/{id} and its subresources.
func (h *SessionsHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/sessions/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "validation_error", fmt.Errorf("%w: missing session id", ErrBadRequest))
		return
	}
	sessionID := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodDelete:
			h.handleClose(w, r, sessionID)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch {
	case parts[1] == "moves" && len(parts) == 2:
		h.handleMove(w, r, sessionID)
	case parts[1] == "people" && len(parts) == 2:
		h.handlePeople(w, r, sessionID)
	case parts[1] == "people" && len(parts) == 3:
		h.handlePerson(w, r, sessionID, parts[2])
	case parts[1] == "people" && len(parts) == 4 && parts[3] == "notes":
		h.handleNotes(w, r, sessionID, parts[2])
	case parts[1] == "statistics" && len(parts) == 2:
		h.handleStatistics(w, r, sessionID)
	case parts[1] == "changes" && len(parts) == 2:
		h.handleChanges(w, r, sessionID)
	case parts[1] == "insights" && len(parts) == 2:
		h.handleInsights(w, r, sessionID)
	case parts[1] == "export" && len(parts) == 2:
		h.handleExport(w, r, sessionID)
	default:
		http.NotFound(w, r)
	}
}

func (h *SessionsHandler) handleClose(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := h.deps.Close(r.Context(), sessionID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

func (h *SessionsHandler) handlePeople(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	people, err := h.deps.People(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, people)
}

func (h *SessionsHandler) handlePerson(w http.ResponseWriter, r *http.Request, sessionID, personID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	person, err := h.deps.Person(r.Context(), sessionID, personID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (h *SessionsHandler) handleStatistics(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	view, err := h.deps.Statistics(r.Context(), sessionID, q.Get("dimension"), q.Get("value"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *SessionsHandler) handleChanges(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	changes, err := h.deps.Changes(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, changes)
}

func (h *SessionsHandler) handleInsights(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	insights, err := h.deps.Analyze(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (h *SessionsHandler) handleExport(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	records, err := h.deps.Export(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="roster.csv"`)
	// Headers are already written; a mid-stream error can only abort.
	_ = roster.Write(w, records)
}
