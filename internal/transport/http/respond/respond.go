// Package respond writes the JSON envelope shared by handlers and middleware.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/mystery-message/internal/domain"
)

// Envelope is the response wrapper shared by every endpoint.
type Envelope struct {
	Success             bool              `json:"success"`
	Message             string            `json:"message"`
	Username            string            `json:"username,omitempty"`
	IsAcceptingMessages *bool             `json:"isAcceptingMessages,omitempty"`
	Messages            *[]domain.Message `json:"messages,omitempty"`
	Token               string            `json:"token,omitempty"`
	Suggestions         []string          `json:"suggestions,omitempty"`
	URL                 string            `json:"url,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, status int, env Envelope) {
	env.Success = true
	JSON(w, status, env)
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{Success: false, Message: msg})
}
