// Package hash turns secrets into values that are safe to persist.
//
// Passwords go through a salted, slow hasher (bcrypt or argon2id) and are
// checked later with Verify. Refresh tokens go through a keyed HMAC so the
// stored digest can be looked up directly while the raw token never reaches
// storage.
package hash
