package common

import "errors"

var (
	// ErrNotLoggedIn is returned when an operation needs a session token
	// and the session store is empty.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrorNotFound is returned when a remote resource does not exist.
	ErrorNotFound = errors.New("not found")
)
