package httpadapter

import (
	"encoding/json"
	"net/http"
)

func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("[HTTP] Encode response: %v", err)
	}
}

type errorResponse struct {
	Error string      `json:"error"`
	Steps interface{} `json:"steps,omitempty"`
}

func sendError(w http.ResponseWriter, status int, msg string) {
	sendJSON(w, status, errorResponse{Error: msg})
}
