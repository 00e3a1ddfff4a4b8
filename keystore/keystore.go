// Copyright 2019 Paul Furley and Ian Drysdale
//
// This file is part of Fluidkeys WebOfTrust which makes it simple to use OpenPGP.
//
// Fluidkeys WebOfTrust is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Fluidkeys WebOfTrust is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Fluidkeys WebOfTrust.  If not, see <https://www.gnu.org/licenses/>.

package keystore

import (
	"time"

	fpr "github.com/fluidkeys/weboftrust/fingerprint"
	"github.com/fluidkeys/weboftrust/trustlevel"
)

// Key is one known key as the trust engine sees it: identity, the trust
// level its owner assigned to it, validity flags and the raw certificate
// material the certifications are extracted from.
//
// Keys are read-only input to the engine. They are owned and mutated by
// whichever store supplied them.
type Key struct {
	// Fingerprint uniquely identifies the key.
	Fingerprint fpr.Fingerprint

	// UserIDs are the key's user ID strings, e.g. `Jane <jane@example.com>`.
	UserIDs []string

	// TrustLevel is the trust the local user assigned to this key.
	TrustLevel trustlevel.Level

	// ExpiresAt is when the key expires, or nil if it doesn't.
	ExpiresAt *time.Time

	// Revoked records whether the key carries a valid revocation.
	Revoked bool

	// Material is the key's raw certificate material, armored or binary.
	Material []byte
}

// IsExpired returns whether the key's expiry has passed.
func (k Key) IsExpired(now time.Time) bool {
	return k.ExpiresAt != nil && k.ExpiresAt.Before(now)
}

// PrimaryUserID returns the key's first user ID, or empty if it has none.
func (k Key) PrimaryUserID() string {
	if len(k.UserIDs) == 0 {
		return ""
	}
	return k.UserIDs[0]
}

// Store supplies the set of known keys. Implementations may be mutated by
// other callers at any time, so consumers take one snapshot with AllKeys
// and never call back mid-computation.
type Store interface {
	// AllKeys returns every known key, in a stable order.
	AllKeys() []Key
}

// MemoryStore is an ordered, in-memory Store, used by tests and for
// embedding the engine with keys sourced elsewhere.
type MemoryStore struct {
	keys []Key
}

// NewMemoryStore returns a MemoryStore holding the given keys in the given
// order.
func NewMemoryStore(keys ...Key) *MemoryStore {
	store := MemoryStore{}
	store.keys = append(store.keys, keys...)
	return &store
}

// AllKeys returns a copy of the stored keys in insertion order.
func (s *MemoryStore) AllKeys() []Key {
	keys := make([]Key, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Add appends a key, replacing any existing key with the same fingerprint
// in place.
func (s *MemoryStore) Add(key Key) {
	for i := range s.keys {
		if s.keys[i].Fingerprint == key.Fingerprint {
			s.keys[i] = key
			return
		}
	}
	s.keys = append(s.keys, key)
}
