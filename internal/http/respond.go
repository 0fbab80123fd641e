package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const maxRequestBody = 1 << 20 // 1 MiB

type messageResponse struct {
	Message string `json:"message"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondMessage(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, messageResponse{Message: message})
}

func (s *Server) respondServerError(w http.ResponseWriter, context string, err error) {
	s.logger.Printf("%s: %v", context, err)
	s.respondMessage(w, http.StatusInternalServerError, "Server error")
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondMessage(w, http.StatusBadRequest, "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondMessage(w, http.StatusBadRequest, "Invalid value for field "+typeError.Field)
	case errors.Is(err, io.EOF):
		s.respondMessage(w, http.StatusBadRequest, "Request body cannot be empty")
	default:
		s.respondMessage(w, http.StatusBadRequest, "Unable to parse request body")
	}
}
