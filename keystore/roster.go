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
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/uuid"
	"github.com/natefinch/atomic"

	fpr "github.com/fluidkeys/weboftrust/fingerprint"
	"github.com/fluidkeys/weboftrust/trustlevel"
)

const rosterFilename = "keystore.toml"

// RosterStore is a Store backed by a TOML roster file, one [[key]] block
// per known key.
type RosterStore struct {
	filename string
	uuid     uuid.UUID
	keys     []Key
}

// Load reads `keystore.toml` from the given directory. A missing file is
// not an error: it loads as an empty store and is created on first Save.
func Load(directory string) (*RosterStore, error) {
	store := RosterStore{
		filename: filepath.Join(directory, rosterFilename),
	}

	serialized, err := os.ReadFile(store.filename)
	if err != nil {
		if os.IsNotExist(err) {
			store.uuid = newUUID()
			return &store, nil
		}
		return nil, fmt.Errorf("couldn't open '%s': %v", store.filename, err)
	}

	if err := store.parse(serialized); err != nil {
		return nil, fmt.Errorf("error parsing %s: %v", store.filename, err)
	}
	return &store, nil
}

// AllKeys returns a copy of the stored keys in roster order.
func (s *RosterStore) AllKeys() []Key {
	keys := make([]Key, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// UUID identifies this roster, so logs and exported graphs can say which
// keystore they came from.
func (s *RosterStore) UUID() uuid.UUID {
	return s.uuid
}

// Add inserts a key, replacing any existing key with the same fingerprint.
// Call Save to persist.
func (s *RosterStore) Add(key Key) {
	for i := range s.keys {
		if s.keys[i].Fingerprint == key.Fingerprint {
			s.keys[i] = key
			return
		}
	}
	s.keys = append(s.keys, key)
}

// SetTrustLevel updates the trust level of the key with the given
// fingerprint. Call Save to persist.
func (s *RosterStore) SetTrustLevel(fingerprint fpr.Fingerprint, level trustlevel.Level) error {
	for i := range s.keys {
		if s.keys[i].Fingerprint == fingerprint {
			s.keys[i].TrustLevel = level
			return nil
		}
	}
	return fmt.Errorf("no key in keystore with fingerprint %s", fingerprint)
}

// Save writes the roster back to keystore.toml. The write is atomic: a
// crash mid-write can't leave a half-written roster behind.
func (s *RosterStore) Save() error {
	serialized, err := s.serialize()
	if err != nil {
		return err
	}
	return atomic.WriteFile(s.filename, bytes.NewReader(serialized))
}

type rosterFile struct {
	UUID string     `toml:"uuid"`
	Keys []keyEntry `toml:"key"`
}

type keyEntry struct {
	Fingerprint string           `toml:"fingerprint"`
	UserIDs     []string         `toml:"user_ids,omitempty"`
	TrustLevel  trustlevel.Level `toml:"trust_level"`
	Revoked     bool             `toml:"revoked"`
	ExpiresAt   *time.Time       `toml:"expires_at,omitempty"`
	ArmoredKey  string           `toml:"armored_key,omitempty"`
}

func (s *RosterStore) parse(serialized []byte) error {
	var parsed rosterFile
	if _, err := toml.Decode(string(serialized), &parsed); err != nil {
		return err
	}

	rosterUUID, err := uuid.FromString(parsed.UUID)
	if err != nil {
		return fmt.Errorf("bad roster uuid '%s': %v", parsed.UUID, err)
	}

	var keys []Key
	for _, entry := range parsed.Keys {
		fingerprint, err := fpr.Parse(entry.Fingerprint)
		if err != nil {
			return fmt.Errorf("bad fingerprint '%s': %v", entry.Fingerprint, err)
		}
		keys = append(keys, Key{
			Fingerprint: fingerprint,
			UserIDs:     entry.UserIDs,
			TrustLevel:  entry.TrustLevel,
			ExpiresAt:   entry.ExpiresAt,
			Revoked:     entry.Revoked,
			Material:    []byte(entry.ArmoredKey),
		})
	}

	s.uuid = rosterUUID
	s.keys = keys
	return nil
}

func (s *RosterStore) serialize() ([]byte, error) {
	serializable := rosterFile{
		UUID: s.uuid.String(),
	}
	for _, key := range s.keys {
		serializable.Keys = append(serializable.Keys, keyEntry{
			Fingerprint: key.Fingerprint.Hex(),
			UserIDs:     key.UserIDs,
			TrustLevel:  key.TrustLevel,
			Revoked:     key.Revoked,
			ExpiresAt:   key.ExpiresAt,
			ArmoredKey:  string(key.Material),
		})
	}

	buf := bytes.NewBuffer(nil)
	buf.WriteString("# Fluidkeys web of trust keystore\n\n")
	if err := toml.NewEncoder(buf).Encode(serializable); err != nil {
		return nil, fmt.Errorf("error encoding keystore: %v", err)
	}
	return buf.Bytes(), nil
}

func newUUID() uuid.UUID {
	generated, err := uuid.NewV4()
	if err != nil {
		panic(err)
	}
	return generated
}
