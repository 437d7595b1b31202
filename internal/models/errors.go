package models

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the structured payload for every failed request. Tool is
// set when the failure belongs to a specific tool invocation.
type ErrorResponse struct {
	Status  string `json:"status"`
	Tool    string `json:"tool,omitempty"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: message,
		Code:    code,
	})
}

func WriteToolError(w http.ResponseWriter, code int, tool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Tool:    tool,
		Message: message,
		Code:    code,
	})
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// ValidationError reports a malformed request, raised before any external
// call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UpstreamError reports a failed call to an external service. Service names
// the collaborator (weather, gmail, calendar).
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string { return e.Service + ": " + e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

// CredentialError reports that no usable credential is available for a
// protected adapter.
type CredentialError struct {
	Message string
}

func (e *CredentialError) Error() string { return e.Message }
