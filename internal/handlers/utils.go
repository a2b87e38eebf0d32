package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/exertrack/apiserver/types"
)

// HTTPError is a failure with a declared status and message.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// RespondError is the terminal failure responder. Validation failures
// render 400 with the first field's message; an HTTPError renders its
// declared status and message; anything else renders a generic 500.
// All bodies are plain text.
func RespondError(w http.ResponseWriter, err error) {
	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Fields) > 0 {
		writeText(w, http.StatusBadRequest, validationErr.Fields[0].Message)
		return
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		status := httpErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		message := httpErr.Message
		if message == "" {
			message = "Internal Server Error"
		}
		writeText(w, status, message)
		return
	}

	writeText(w, http.StatusInternalServerError, "Internal Server Error")
}

// NotFound answers any unmatched route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusNotFound, "not found")
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

// bodyFields extracts the named fields from either a JSON object body or
// a urlencoded form, mirroring the legacy server's body parsing. Values
// are trimmed; absent fields come back empty.
func bodyFields(r *http.Request, keys ...string) map[string]string {
	fields := make(map[string]string, len(keys))

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var body map[string]any
		// UseNumber keeps numeric literals intact; a plain decode turns
		// large integers into float64 scientific notation.
		decoder := json.NewDecoder(r.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&body); err == nil {
			for _, key := range keys {
				if value, ok := body[key]; ok && value != nil {
					fields[key] = strings.TrimSpace(fmt.Sprint(value))
				}
			}
		}
		return fields
	}

	_ = r.ParseForm()
	for _, key := range keys {
		fields[key] = strings.TrimSpace(r.FormValue(key))
	}
	return fields
}
