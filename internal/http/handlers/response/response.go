package response

import (
	"encoding/json"
	"net/http"
)

// Level mirrors the severity classes shown to the requester.
type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Danger  Level = "danger"
)

type Status struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type statusResponse struct {
	Statuses []Status `json:"statuses"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func RenderStatuses(rw http.ResponseWriter, status int, statuses ...Status) {
	Render(rw, statusResponse{Statuses: statuses}, status)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter) {
	RenderError(rw, "rate limit exceeded", http.StatusTooManyRequests)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorResponse{Error: msg}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
