// Package client talks to the contact manager HTTP API and bootstraps the
// local session database.
//
// # Overview
//
//  1. AuthClient and ContactsClient describe the remote API; HTTPClient is
//     the JSON-over-HTTP implementation. Base URL, timeout and logger are set
//     with functional options.
//  2. InitDatabase and RunMigrations open the local SQLite file and apply the
//     embedded goose migrations.
//
// # Error Handling
//
// A response with a non-2xx status becomes *AuthError carrying the server's
// "message" (or GenericMessage). No response at all becomes *NetworkError.
// errors.Is(err, ErrUnauthorized) matches any 401. UserMessage extracts the
// user-facing text of either.
//
// Calls are never retried.
package client
