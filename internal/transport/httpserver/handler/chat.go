package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	chatdomain "finance-app-go/internal/domain/chat"
	"finance-app-go/internal/transport/httpserver/middleware"
)

type chatSendRequest struct {
	Content string `json:"content"`
}

type chatMessageResponse struct {
	ID           string    `json:"id"`
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	MessageOrder int       `json:"message_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *Handlers) ListChatMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	messages, err := h.Chat.ListMessages(r.Context(), user.ID, chi.URLParam(r, "context"))
	if err != nil {
		if errors.Is(err, chatdomain.ErrInvalidContext) {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid chat context")
			return
		}
		h.log.InternalError("chat.list: list messages failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]chatMessageResponse, 0, len(messages))
	for i := range messages {
		response = append(response, toChatMessageResponse(&messages[i]))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"items": response})
}

func (h *Handlers) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req chatSendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	reply, err := h.Chat.Send(r.Context(), chatdomain.SendInput{
		UserID:  user.ID,
		Context: chi.URLParam(r, "context"),
		Content: req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, chatdomain.ErrInvalidContext):
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid chat context")
		case errors.Is(err, chatdomain.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, "invalid_request", "content is required")
		default:
			h.log.InternalError("chat.send: send message failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toChatMessageResponse(reply))
}

func (h *Handlers) ClearChatMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Chat.ClearMessages(r.Context(), user.ID, chi.URLParam(r, "context")); err != nil {
		if errors.Is(err, chatdomain.ErrInvalidContext) {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid chat context")
			return
		}
		h.log.InternalError("chat.clear: clear messages failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

func toChatMessageResponse(message *chatdomain.Message) chatMessageResponse {
	return chatMessageResponse{
		ID:           message.ID,
		Role:         message.Role,
		Content:      message.Content,
		MessageOrder: message.MessageOrder,
		CreatedAt:    message.CreatedAt,
	}
}
