// Package session implements the credential and session core of the todo
// service.
//
// It owns registration, password login, refresh-token redemption, and the
// two persisted stores behind them (credentials, refresh tokens), built on
// the docstore boundary. Access tokens are short-lived HS256 JWTs; refresh
// tokens are opaque random strings stored hashed (SHA-256), never in
// plaintext.
//
// HTTP transport integration is intentionally out of scope here.
package session
