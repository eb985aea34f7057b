package domain

import "errors"

var (
	// ErrInvalidConfiguration is returned when a question bank cannot back a session.
	ErrInvalidConfiguration = errors.New("invalid quiz configuration")
	// ErrSessionNotStarted is returned when a session is used before Start.
	ErrSessionNotStarted = errors.New("quiz session not started")
	// ErrSessionNotFound is returned when a quiz session has not been initialized.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionExists is returned when a session ID is already in use.
	ErrSessionExists = errors.New("quiz session already exists")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
)
