package transport

import (
	"encoding/json"
	"net/http"

	"github.com/goliatone/go-repo-activity/core"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Message  string `json:"message"`
	TextCode string `json:"text_code"`
}

// writeError normalizes err through core.MapError and renders the JSON
// envelope with the mapped HTTP status.
func writeError(w http.ResponseWriter, logger core.Logger, err error) {
	mapped := core.MapError(err)
	if mapped == nil {
		return
	}
	if logger != nil {
		logger.Error("request failed",
			"status", mapped.Code,
			"text_code", mapped.TextCode,
			"error", mapped.Message,
		)
	}
	writeJSON(w, mapped.Code, errorEnvelope{
		Error: errorBody{
			Message:  mapped.Message,
			TextCode: mapped.TextCode,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
