// Package sessionstorage turns inbound request cookies into session records
// and mutated session records back into outbound Set-Cookie headers,
// delegating persistence to a pluggable Store.
//
// # Architecture
//
// Three pieces cooperate:
//
//   - cookie.Cookie owns the wire format: header parsing, serialization, and
//     optional signing.
//   - session.Session is the per-request in-memory record with flash
//     (read-once) value semantics.
//   - Store is the create/read/update/delete contract a persistence backend
//     implements, keyed by identifiers the backend itself generates.
//
// Storage orchestrates them through three entry points:
//
//	storage := sessionstorage.New(sessionCookie, store)
//
//	// Request in: header -> session (never fails on a bad cookie)
//	sess, err := storage.GetSession(ctx, r.Header.Get("Cookie"))
//
//	// Application code mutates the record
//	sess.Set("theme", "dark")
//	sess.Flash("notice", "profile saved")
//
//	// Response out: session -> Set-Cookie header
//	header, err := storage.CommitSession(ctx, sess)
//	w.Header().Add("Set-Cookie", header)
//
//	// Or terminate it
//	header, err = storage.DestroySession(ctx, sess)
//
// # Stores
//
// MemoryStore and FileStore ship in this package. Redis, Postgres, MongoDB,
// and S3 implementations live under integration/sessionstore. CookieStorage
// is the identifierless variant that keeps all data in the cookie value
// itself.
//
// # Error Policy
//
// Absent or invalid cookies and unknown identifiers are valid outcomes that
// yield empty sessions, never errors. Store failures propagate unchanged to
// the caller; there are no retries or fallbacks.
//
// # Concurrency
//
// Each GetSession call produces an independent record. Two requests
// committing against the same identifier race; the later update wins. The
// only process-wide state is the unsigned-cookie warn-once registry, which is
// safe for concurrent factory use.
package sessionstorage
