package session

import "maps"

// flashPrefix and flashSuffix namespace flash entries inside the backing map
// so they never collide with ordinary keys. Application keys that literally
// match the "__flash_<name>__" pattern produce undefined behavior; this is a
// documented assumption, not an enforced rule.
const (
	flashPrefix = "__flash_"
	flashSuffix = "__"
)

// flashKey maps a flash name to its backing-map key.
// Kept private so callers never observe transformed keys.
func flashKey(name string) string {
	return flashPrefix + name + flashSuffix
}

// Session holds per-request application state keyed by name, plus a disjoint
// namespace of flash values that survive exactly one Get before being deleted.
//
// A Session is created fresh for each request by the storage layer and is not
// safe for concurrent use; nothing in this layer shares a record across
// requests.
type Session struct {
	id   string
	data map[string]any
}

// New creates a session record with the given identifier and initial data.
// An empty id marks the session as not yet persisted (or as belonging to an
// identifierless storage). The data map is adopted as the backing store; pass
// nil for an empty session.
func New(id string, data map[string]any) *Session {
	if data == nil {
		data = make(map[string]any)
	}
	return &Session{id: id, data: data}
}

// ID returns the session identifier. Empty string means the session has not
// been persisted yet.
func (s *Session) ID() string {
	return s.id
}

// SetID assigns the identifier after the storage layer persists a new record.
func (s *Session) SetID(id string) {
	s.id = id
}

// Has reports whether name has an ordinary value or an unconsumed flash value.
func (s *Session) Has(name string) bool {
	if _, ok := s.data[name]; ok {
		return true
	}
	_, ok := s.data[flashKey(name)]
	return ok
}

// Get returns the value stored under name. Ordinary values win over flash
// values; a flash value is deleted on read, so it can be retrieved at most
// once. The second return is false when neither namespace holds the name.
func (s *Session) Get(name string) (any, bool) {
	if v, ok := s.data[name]; ok {
		return v, true
	}
	fk := flashKey(name)
	if v, ok := s.data[fk]; ok {
		delete(s.data, fk)
		return v, true
	}
	return nil, false
}

// Set stores or overwrites an ordinary value. Ordinary values persist until
// Unset or the record is discarded.
func (s *Session) Set(name string, value any) {
	s.data[name] = value
}

// Flash stores a value that will be deleted after its first Get.
// Used for transient messages shown once and then discarded.
func (s *Session) Flash(name string, value any) {
	s.data[flashKey(name)] = value
}

// Unset removes the ordinary value stored under name. A flash value under the
// same name is untouched and remains readable once.
func (s *Session) Unset(name string) {
	delete(s.data, name)
}

// Data returns a copy of the whole backing map, with flash entries still
// under their transformed keys. The storage layer uses this snapshot to
// persist the session; mutating the returned map does not affect the session.
func (s *Session) Data() map[string]any {
	snapshot := make(map[string]any, len(s.data))
	maps.Copy(snapshot, s.data)
	return snapshot
}
