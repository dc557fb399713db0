// Package response writes the JSON bodies shared by every HTTP handler.
package response

import (
	"encoding/json"
	"net/http"
)

// Message is the body of every error response.
type Message struct {
	Msg string `json:"msg"`
}

// Results is the body of catalog reads.
type Results struct {
	Msg     string      `json:"msg"`
	Results interface{} `json:"results"`
}

// OK is the msg value of successful responses.
const OK = "ok"

// JSON sends payload with status
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error sends {"msg": msg} with status
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Message{Msg: msg})
}
