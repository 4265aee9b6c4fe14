// internal/httpapi/chat_handler.go
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"realty-assistant/internal/models"
	"realty-assistant/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ChatRequest struct {
	ChatID  string `json:"chat_id,omitempty"`
	Message string `json:"message"`
}

type ChatResponse struct {
	ChatID    string           `json:"chat_id"`
	SessionID string           `json:"session_id"`
	Status    string           `json:"status"`
	Messages  []models.Message `json:"messages"`
	Map       MapState         `json:"map"`
}

type MessagesResponse struct {
	ChatID   string           `json:"chat_id"`
	Status   string           `json:"status"`
	Messages []models.Message `json:"messages"`
}

func RegisterChat(r chi.Router, d Deps) {
	r.Post("/v1/chat", func(w http.ResponseWriter, req *http.Request) {
		var body ChatRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}

		ctrl, chatID := d.Sessions.Get(body.ChatID)
		if err := ctrl.SubmitText(req.Context(), body.Message); err != nil {
			if errors.Is(err, session.ErrTurnInFlight) {
				render.Status(req, http.StatusConflict)
				render.JSON(w, req, map[string]any{"error": "turn_in_flight"})
				return
			}
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"error": "internal", "detail": err.Error()})
			return
		}

		render.JSON(w, req, ChatResponse{
			ChatID:    chatID,
			SessionID: ctrl.SessionID(),
			Status:    string(ctrl.Status()),
			Messages:  ctrl.Messages(),
			Map:       mapStateOf(ctrl),
		})
	})

	r.Get("/v1/chat/{id}/messages", func(w http.ResponseWriter, req *http.Request) {
		ctrl, ok := d.Sessions.Lookup(chi.URLParam(req, "id"))
		if !ok {
			render.Status(req, http.StatusNotFound)
			render.JSON(w, req, map[string]any{"error": "chat_not_found"})
			return
		}
		render.JSON(w, req, MessagesResponse{
			ChatID:   chi.URLParam(req, "id"),
			Status:   string(ctrl.Status()),
			Messages: ctrl.Messages(),
		})
	})
}
