// Package response centralizes the JSON envelope the HTTP handlers write,
// so every endpoint reports errors the same shape.
package response

import (
	"encoding/json"
	"net/http"
)

// errorBody is the JSON shape returned by Error.
type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a {"error": msg} JSON body with the given status code.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}
