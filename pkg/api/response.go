package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Response is the JSON envelope of every API answer.
type Response struct {
	Code  string       `json:"code,omitempty"`
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError renders err. An HTTPError anywhere in the chain decides status and
// code; the full error text goes into the message. Anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	httpErr := ErrInternal
	_ = errors.As(err, &httpErr)

	message := err.Error()
	if httpErr == ErrInternal {
		message = http.StatusText(http.StatusInternalServerError)
	}

	writeJSON(w, httpErr.Status, Response{
		Code:  httpErr.Key,
		Error: &ErrorDetail{Code: httpErr.Key, Message: message},
	})
}
