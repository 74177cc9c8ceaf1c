package devstub

import (
	"encoding/json"
	"net/http"

	"github.com/hotelbook/hotel-web/pkg/logger"
)

// Error codes in the stub's JSON envelope. The front end's client relies on
// the envelope shape, not on individual codes.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInvalidToken = "INVALID_TOKEN"
	CodePastDate     = "PAST_DATE"
	CodeUnknownRoom  = "UNKNOWN_ROOM_TYPE"
)

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, statusCode int, message, code string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
		"code":  code,
	})
}
