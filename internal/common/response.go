package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// SuccessEnvelope is the uniform shape of every 2xx response.
type SuccessEnvelope struct {
	Status  string      `json:"status"`
	Payload interface{} `json:"payload,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorEnvelope is the uniform shape of every error response.
type ErrorEnvelope struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
}

func RespondWithPayload(w http.ResponseWriter, code int, payload interface{}) {
	RespondWithJSON(w, code, SuccessEnvelope{Status: "success", Payload: payload})
}

func RespondWithMessage(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, SuccessEnvelope{Status: "success", Message: message})
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorEnvelope{Status: "error", Error: message})
}

// RespondWithDomainError is the single error boundary: it logs the
// failure and emits the envelope with the HTTP status and dictionary
// kind mapped from the error chain. Unclassified errors become a
// generic 500 so internals never leak to clients.
func RespondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatusFromError(err)
	log.Printf("WARN: %s %s failed: %v", r.Method, r.URL.Path, err)

	message := err.Error()
	if status == http.StatusInternalServerError && !errors.Is(err, ErrInternalServer) {
		message = ErrInternalServer.Error()
	}
	RespondWithJSON(w, status, ErrorEnvelope{Status: "error", Error: message, Code: ErrorKind(err)})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status": "error", "error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
