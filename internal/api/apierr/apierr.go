// Package apierr writes the JSON error envelope every failed request gets:
// {"error": "...", "details": [...]}. Client errors log at warn, server
// errors at error, using the request-scoped logger.
package apierr

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type Response struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type Option func(*Response)

// WithDetails attaches itemized messages (validation failures).
func WithDetails(details []string) Option {
	return func(resp *Response) {
		resp.Details = details
	}
}

func Write(w http.ResponseWriter, r *http.Request, status int, message string, err error, opts ...Option) {
	resp := Response{Error: message}
	for _, opt := range opts {
		opt(&resp)
	}

	if err != nil && r != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	}

	payload, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
