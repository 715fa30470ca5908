package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lazypower/momentum/internal/gateway"
)

// update is the subset of the Telegram Update payload the command layer
// needs.
type update struct {
	UpdateID int64    `json:"update_id"`
	Message  *message `json:"message"`
}

type message struct {
	MessageID int64 `json:"message_id"`
	From      *struct {
		ID        int64  `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
	} `json:"from"`
	Chat struct {
		ID int64 `json:"id"`
	} `json:"chat"`
	Text string `json:"text"`
}

// handleWebhook receives a Telegram update, dispatches the command, and
// replies through the delivery gateway. It always answers 200 to anything
// well-formed: a non-2xx makes Telegram re-deliver the update, and a command
// that failed once should not be replayed.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "secret") != s.secret {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
		return
	}

	var u update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	if u.Message != nil && u.Message.From != nil && u.Message.Text != "" {
		userID := u.Message.Chat.ID
		username := u.Message.From.Username
		if username == "" {
			username = u.Message.From.FirstName
		}

		reply := s.dispatch(userID, username, u.Message.Text)
		if reply != "" {
			if outcome, err := s.notifier.Notify(r.Context(), userID, reply); outcome != gateway.Delivered {
				s.log.Warn("command reply not delivered", "user", userID, "outcome", outcome, "err", err)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
