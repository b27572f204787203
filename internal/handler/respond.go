package handler

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/rs/zerolog/log"
)

// Envelope is the uniform wrapper applied to every response, success or
// failure. Count is set only when Data is a sequence.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

// writeJSON sends a JSON response with the given status code and body.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("write JSON response")
	}
}

// writeSuccess sends a success envelope. When data is a slice, count is
// populated with its length. An empty message is omitted.
func writeSuccess(w http.ResponseWriter, status int, data any, message string) {
	env := Envelope{Success: true, Data: data, Message: message}
	if data != nil {
		if rv := reflect.ValueOf(data); rv.Kind() == reflect.Slice {
			n := rv.Len()
			env.Count = &n
		}
	}
	writeJSON(w, status, env)
}

// writeError sends a failure envelope with the given message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
