package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// BaseRes is the response envelope every endpoint returns. Data is
// suppressed when a handler has nothing to attach.
type BaseRes struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(BaseRes{
		StatusCode: status,
		Message:    message,
		Data:       data,
	}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// WriteError maps a service error onto the envelope. Anything that is
// not a StatusError is treated as a server fault.
func WriteError(w http.ResponseWriter, err error) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		WriteJSON(w, statusErr.Status, statusErr.Message, nil)
		return
	}
	log.Printf("Internal error: %v", err)
	WriteJSON(w, http.StatusInternalServerError, "서버 오류가 발생했습니다.", nil)
}
