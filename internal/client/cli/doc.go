// Package cli provides the contacts command-line client.
//
// It wires configuration, the local session store, the API client and the
// auth flow, and exposes them as cobra commands plus an interactive REPL.
// Typical flow: register, enter the emailed code, log in, then browse and
// edit contacts.
//
// Key features:
//   - Register / verify code / resend code
//   - Login / Logout with a session kept in a local SQLite file
//   - Dashboard summary
//   - List / Show / Add / Edit contacts
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewRootCmd, App and runREPL for details.
package cli
