// Package session implements the server-side session lifecycle for
// cookie-based authentication.
//
// A Manager orchestrates four collaborators: a token.Codec that mints and
// verifies signed session identifiers, a Transport that moves the signed
// value between client and server (cookies by default), a Store that holds
// the authoritative session records with TTL enforcement, and a Directory
// that answers credential checks during login.
//
//	┌────────┐  signed cookie  ┌───────────┐
//	│ Client │ ──────────────► │ Transport │
//	└────────┘                 └───────────┘
//	                                 │ token
//	                                 ▼
//	┌─────────────────────────────────────┐
//	│               Manager               │──► token.Codec (verify / issue)
//	└─────────────────────────────────────┘
//	                                 │ load / create / destroy
//	                                 ▼
//	                            ┌───────┐
//	                            │ Store │ (redis, memory)
//	                            └───────┘
//
// # Resolution
//
// Resolve classifies every request into exactly two externally visible
// states: Valid (a live record was found for a correctly signed token) or
// Absent (everything else — no cookie, forged or corrupt cookie, expired or
// destroyed record, unreachable store). The internal cause is kept for
// diagnostics only; clients can never distinguish why a request resolved
// Absent. Store outages fail closed on the read path.
//
// # Lifecycle
//
// Login always mints a fresh session id, never upgrading an id the client
// presented earlier, which defeats session fixation. Logout destroys the
// record (idempotently) and clears the cookie even when the store call
// failed. Expiry is owned entirely by the store's TTL mechanism; by default
// the TTL is fixed from creation, with sliding expiry as an explicit opt-in.
package session
