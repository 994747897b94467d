// Package token provides the credential token primitives for the todo
// service.
//
// Two kinds of tokens live here:
//
//   - Access tokens: short-lived, self-contained HS256 JWTs carrying the
//     subject identifier and an absolute expiry. They are never persisted;
//     verification is stateless.
//   - Opaque tokens: cryptographically random strings used as refresh
//     tokens. Only their SHA-256 hex digest is meant to be stored.
//
// The signing secret is explicit constructor state. There is no ambient
// global key; rotating the secret invalidates all outstanding access
// tokens, which is acceptable given their short lifetime.
package token
