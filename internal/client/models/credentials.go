// Package models defines the client-side data shapes exchanged with the
// contact manager API and used by the auth flow.
package models

// Mode selects which credential form is being submitted.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// Credentials is the login/register form. Username is only meaningful
// in ModeRegister.
type Credentials struct {
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}
