// Package response writes the API's JSON envelope.
//
// Every endpoint replies with the same shape:
//
//	{ "success": true, "count": 3, "data": [...] }
//	{ "success": false, "message": "Pickup request not found" }
//
// count is present only on list responses; message only on errors and
// bare acknowledgements. Clients branch on the success flag, never on
// the presence of data.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape shared by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// List sends a 200 with data and its element count.
func List(w http.ResponseWriter, data interface{}, count int) {
	write(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

// Created sends a 201 with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

// Message sends a 200 acknowledgement with no data payload.
func Message(w http.ResponseWriter, msg string) {
	write(w, http.StatusOK, Envelope{Success: true, Message: msg})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Message: message})
}

// ValidationError sends a 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Not found"
	}
	Error(w, http.StatusNotFound, message)
}

// Conflict sends a 409, used for illegal status transitions.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, message)
}
