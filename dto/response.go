package dto

import "errors"

// Custom errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoPDFsInArchive = errors.New("no PDF files found in ZIP archive")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// BatchStartResponse is returned when a ZIP extraction session begins.
type BatchStartResponse struct {
	SessionID  string `json:"session_id"`
	TotalFiles int    `json:"total_files"`
}
