// Package httpx holds the JSON response helpers shared by every HTTP handler.
package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON response body with the given status.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error writes an error response as {"error": msg}, the shape every API
// endpoint uses for failures.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}
