package api

import (
	"context"
	"encoding/json"
	"net/http"

	respond "github.com/grest/greenspace-server/internal/api/respond"
)

// ChatSender abstracts the assistant client so tests can stub it.
type ChatSender interface {
	Send(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	sender ChatSender
}

func NewChatHandler(sender ChatSender) *ChatHandler { return &ChatHandler{sender: sender} }

// SendMessage POST /api/chat
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	reply, err := h.sender.Send(r.Context(), req.Message)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
