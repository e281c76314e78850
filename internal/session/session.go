// ABOUTME: Persisted session record: bearer token plus serialized user record
// ABOUTME: Defines the Store contract that keeps both halves written and cleared together

package session

import (
	"errors"
)

// ErrCorrupt is returned by Load when the stored document cannot be used
var ErrCorrupt = errors.New("session record is corrupt")

// ErrIncomplete is returned by Save when only one half of a record is present
var ErrIncomplete = errors.New("session record requires both token and user")

// Record is the persisted {token, user} pair.
// User holds the JSON-serialized user record exactly as it was written.
type Record struct {
	Token string `json:"token"`
	User  string `json:"user"`
}

// Complete reports whether both halves of the record are present
func (r Record) Complete() bool {
	return r.Token != "" && r.User != ""
}

// Empty reports whether neither half is present
func (r Record) Empty() bool {
	return r.Token == "" && r.User == ""
}

// Store persists a single session record.
//
// Load returns nil, nil when no session is stored and ErrCorrupt when the
// stored data is unreadable or holds only one half of a record.
// Save writes both halves in one step. Clear removes both and is idempotent.
type Store interface {
	Load() (*Record, error)
	Save(rec Record) error
	Clear() error
}
