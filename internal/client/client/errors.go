package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
)

// GenericMessage is shown when the server gave no usable message or
// when no response arrived at all.
const GenericMessage = "An error occurred. Please try again."

// ErrUnauthorized matches any call the server answered with 401.
var ErrUnauthorized = errors.New("unauthorized")

// AuthError is a request the server received and rejected with a non-2xx
// status. Message is the body's "message" field, or GenericMessage.
type AuthError struct {
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is lets callers match on status with the package sentinels.
func (e *AuthError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case common.ErrorNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// NetworkError is a request that produced no response: dial failure,
// timeout, cancellation or a body that could not be read.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text to show for err under the "api" form key.
func UserMessage(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	return GenericMessage
}
