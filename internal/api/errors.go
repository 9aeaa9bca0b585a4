package api

import (
	"encoding/json"
	"net/http"
)

// Stable machine-readable error codes. Callers branch on these, not on
// messages.
const (
	CodeInvalidJSON             = "INVALID_JSON"
	CodeInvalidCharacterPayload = "INVALID_CHARACTER_PAYLOAD"
	CodeInvalidScenesPayload    = "INVALID_SCENES_PAYLOAD"
	CodeInvalidTimelinePayload  = "INVALID_TIMELINE_PAYLOAD"
	CodeInvalidEnginePayload    = "INVALID_ENGINE_PAYLOAD"
	CodeInvalidGeneratePayload  = "INVALID_GENERATE_PAYLOAD"
	CodeCharacterNotFound       = "CHARACTER_NOT_FOUND"
	CodeCharacterAlreadyExists  = "CHARACTER_ALREADY_EXISTS"
	CodeMethodNotAllowed        = "METHOD_NOT_ALLOWED"
	CodeInternalError           = "INTERNAL_ERROR"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}
