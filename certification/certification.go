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

package certification

import (
	"time"

	fpr "github.com/fluidkeys/weboftrust/fingerprint"
)

// Certification records one inter-key certification signature: the issuer
// key attests that the given user ID genuinely belongs to the owner of the
// subject key.
//
// Certifications are derived, ephemeral records: they are recomputed from a
// key's raw certificate material on demand and never stored.
type Certification struct {
	// IssuerKeyID is the 64-bit key ID the signature declares as its
	// issuer. Always present: a signature with no issuer information at
	// all can't become an edge and is never emitted.
	IssuerKeyID uint64

	// IssuerFingerprint is only set when the signature carried an issuer
	// fingerprint subpacket. When set it identifies the issuer
	// unambiguously; otherwise resolution falls back to the key ID, which
	// can collide across unrelated keys.
	IssuerFingerprint fpr.Fingerprint

	// SubjectFingerprint is the fingerprint of the certified key.
	SubjectFingerprint fpr.Fingerprint

	// UserID is the user ID string the certification applies to.
	UserID string

	// CreatedAt is the signature's declared creation time.
	CreatedAt time.Time
}

// IssuerMatches returns whether the certification was issued by the key with
// the given fingerprint. With an issuer fingerprint subpacket this is an
// exact comparison; without one it is only a key ID suffix match, so a true
// result is not on its own proof of identity.
func (c Certification) IssuerMatches(fingerprint fpr.Fingerprint) bool {
	if c.IssuerFingerprint.IsSet() {
		return c.IssuerFingerprint == fingerprint
	}
	return fingerprint.MatchesKeyID(c.IssuerKeyID)
}
