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

package pgpkey

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"

	fpr "github.com/fluidkeys/weboftrust/fingerprint"
)

// PgpKey wraps an openpgp.Entity, providing typed fingerprints and the
// small surface the trust engine needs from a key.
type PgpKey struct {
	openpgp.Entity
}

// LoadFromArmoredPublicKey takes a single ascii-armored public key and
// returns a PgpKey.
func LoadFromArmoredPublicKey(armoredPublicKey string) (*PgpKey, error) {
	entityList, err := openpgp.ReadArmoredKeyRing(strings.NewReader(armoredPublicKey))
	if err != nil {
		return nil, fmt.Errorf("error reading armored key ring: %v", err)
	}
	if len(entityList) != 1 {
		return nil, fmt.Errorf("expected 1 openpgp.Entity, got %d", len(entityList))
	}
	entity := entityList[0]

	pgpKey := PgpKey{*entity}
	return &pgpKey, nil
}

// Fingerprint returns the key's v4 fingerprint.
func (p *PgpKey) Fingerprint() fpr.Fingerprint {
	fingerprint, err := fpr.FromSlice(p.PrimaryKey.Fingerprint)
	if err != nil {
		panic(fmt.Errorf("primary key has a non-v4 fingerprint: %v", err))
	}
	return fingerprint
}

// UserIDs returns the key's user ID strings, sorted for deterministic
// output (openpgp.Entity holds identities in a map).
func (p *PgpKey) UserIDs() []string {
	var userIDs []string
	for name := range p.Identities {
		userIDs = append(userIDs, name)
	}
	sort.Strings(userIDs)
	return userIDs
}

// Armor returns the public part of the key, ascii armored, including any
// certification signatures from other keys.
func (p *PgpKey) Armor() (string, error) {
	buf := bytes.NewBuffer(nil)
	armorWriter, err := armor.Encode(buf, openpgp.PublicKeyType, nil)
	if err != nil {
		return "", fmt.Errorf("error encoding armor: %v", err)
	}

	if err := p.Serialize(armorWriter); err != nil {
		return "", fmt.Errorf("error serializing key: %v", err)
	}
	if err := armorWriter.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
