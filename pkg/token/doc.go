// Package token mints and verifies signed session identifiers.
//
// A Codec generates opaque, cryptographically random session ids and encodes
// them into a tamper-evident cookie value of the form "<id>.<signature>",
// where the signature is an HMAC-SHA256 over the id using a server-held
// secret. Verification recomputes the signature in constant time; any
// structural or cryptographic failure collapses into the single
// ErrInvalidToken value so callers cannot build an oracle from the error.
//
// Multiple secrets enable key rotation: the first secret signs new tokens,
// every secret is tried during verification so tokens issued under a retired
// key stay valid during the transition window.
package token
