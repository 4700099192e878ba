package validation

import (
	"sort"
	"strings"
)

const (
	// KeyAPI is the reserved slot for server and network messages.
	KeyAPI = "api"
	// KeyOTP holds local errors about the verification code.
	KeyOTP = "otp"
)

// FormErrors maps a field name to a user-facing message. It is rebuilt on
// every validation pass or failed call and is never merged across passes.
type FormErrors map[string]string

// Valid reports whether there are no errors.
func (e FormErrors) Valid() bool {
	return len(e) == 0
}

func (e FormErrors) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Keys returns the field names in display order: sorted, with KeyAPI last.
func (e FormErrors) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		if k != KeyAPI {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if e.Has(KeyAPI) {
		keys = append(keys, KeyAPI)
	}
	return keys
}

// Clone returns an independent copy; nil stays nil.
func (e FormErrors) Clone() FormErrors {
	if e == nil {
		return nil
	}
	out := make(FormErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Error carries field errors across an error return.
type Error struct {
	Fields FormErrors
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range e.Fields.Keys() {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
