package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"moviebase/internal/app"
)

// response is the envelope every endpoint returns. Status is a success
// flag, not the HTTP code.
type response struct {
	Message string `json:"message"`
	Status  bool   `json:"status"`
	Data    any    `json:"data,omitempty"`
}

// pageData wraps paginated results.
type pageData struct {
	CurrentPage int `json:"currentPage"`
	Pages       int `json:"pages"`
	Count       int `json:"count"`
	Data        any `json:"data"`
}

func newPageData(page, limit, count int, data any) pageData {
	pages := count / limit
	if count%limit != 0 {
		pages++
	}
	return pageData{CurrentPage: page, Pages: pages, Count: count, Data: data}
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	ok := status < http.StatusBadRequest
	if err := json.NewEncoder(w).Encode(response{Message: message, Status: ok, Data: data}); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		if s.env == "production" {
			message = "Internal Server Error"
		}
	}
	writeJSON(w, status, message, nil)
}

func statusFor(err error) int {
	var verr *app.ValidationError
	var ferr *forbiddenError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, app.ErrInvalidUserID),
		errors.Is(err, app.ErrInvalidMovieID),
		errors.Is(err, app.ErrSelfDelete),
		errors.Is(err, app.ErrFileRequired),
		errors.Is(err, app.ErrUnsupportedFileType),
		errors.Is(err, app.ErrEmailExists),
		errors.Is(err, app.ErrTitleExists):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.As(err, &ferr):
		return http.StatusForbidden
	case errors.Is(err, app.ErrEmailNotFound),
		errors.Is(err, app.ErrWrongCredentials),
		errors.Is(err, app.ErrUserNotFound),
		errors.Is(err, app.ErrAdminNotFound),
		errors.Is(err, app.ErrMovieNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
