// Package password provides password hashing and verification for the todo
// service.
//
// It wraps bcrypt with a per-call random salt embedded in the encoded hash,
// so two hashes of the same plaintext never compare equal. Verification uses
// bcrypt's own constant-time comparison.
//
// Input validation (non-empty password, length policy) belongs to callers;
// this package only rejects input bcrypt itself cannot hash.
package password
