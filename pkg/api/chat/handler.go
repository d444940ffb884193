// Package chat exposes the sidebar assistant endpoints.
package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"finlens/pkg/core/chat"
)

type Handler struct {
	svc *chat.Service
}

func NewHandler(svc *chat.Service) *Handler {
	return &Handler{svc: svc}
}

type startResponse struct {
	SessionID string `json:"session_id"`
}

type messageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type messageResponse struct {
	Answer string `json:"answer"`
	Failed bool   `json:"failed,omitempty"`
}

// HandleStart creates a new chat session.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(startResponse{SessionID: h.svc.Start()})
}

// HandleMessage sends a question to a session. A provider failure still
// returns 200 with the recorded error turn; the session stays usable.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "Empty message", http.StatusBadRequest)
		return
	}

	answer, err := h.svc.Send(r.Context(), req.SessionID, req.Message)
	if errors.Is(err, chat.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messageResponse{Answer: answer, Failed: err != nil})
}

// HandleHistory returns a session transcript.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("session_id")
	history, ok := h.svc.History(id)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"session_id": id,
		"messages":   history,
	})
}

func cors(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
