// Package session provides the in-memory session record used by the
// sessionstorage layer to carry per-visitor state across stateless
// request/response exchanges.
//
// A Session is a mapping from string names to arbitrary values, plus a
// disjoint namespace of flash values. Flash values survive exactly one Get
// before being deleted, which makes them suitable for one-time notices like
// form errors or "saved" confirmations.
//
// # Basic Usage
//
//	sess := session.New("", nil)
//
//	sess.Set("theme", "dark")
//	sess.Flash("error", "invalid credentials")
//
//	theme, _ := sess.Get("theme") // "dark", durable
//	msg, _ := sess.Get("error")   // "invalid credentials", consumed
//	_, ok := sess.Get("error")    // ok == false
//
// # Flash Namespace
//
// Flash values live in the same backing map as ordinary values, under keys
// derived by a private name transform. Has and Get check the ordinary key
// first and fall back to the flash key, consuming it on Get. Unset targets
// only the ordinary namespace.
//
// The transform assumes application keys never literally match the
// "__flash_<name>__" pattern; behavior on such a collision is undefined.
//
// # Lifecycle
//
// Records are created by sessionstorage.Storage.GetSession, mutated by
// application code, and handed back to CommitSession or DestroySession.
// Each request gets a fresh record; Session performs no locking and must not
// be shared across goroutines.
package session
