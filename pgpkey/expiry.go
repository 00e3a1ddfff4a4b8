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
	"time"
)

// CalculateExpiry takes a creation time and a key lifetime in seconds
// (pointer) and returns a corresponding time.Time
//
// From https://tools.ietf.org/html/rfc4880#section-5.2.3.6
// "If this is not present or has a value of zero, the key never expires."
func CalculateExpiry(creationTime time.Time, lifetimeSecs *uint32) (bool, *time.Time) {
	if lifetimeSecs == nil {
		return false, nil
	}

	if *lifetimeSecs == 0 {
		return false, nil
	}

	expiry := creationTime.Add(time.Duration(*lifetimeSecs) * time.Second).In(time.UTC)
	return true, &expiry
}

// PrimaryKeyExpiry returns true and a time if the primary key has an expiry
// set through any of its user IDs' self signatures, taking the earliest
// when they differ, or false if it doesn't expire.
func (p *PgpKey) PrimaryKeyExpiry() (bool, *time.Time) {
	var earliest *time.Time

	for _, identity := range p.Identities {
		if identity.SelfSignature == nil {
			continue
		}
		hasExpiry, expiry := CalculateExpiry(
			p.PrimaryKey.CreationTime,
			identity.SelfSignature.KeyLifetimeSecs,
		)
		if !hasExpiry {
			continue
		}
		if earliest == nil || expiry.Before(*earliest) {
			earliest = expiry
		}
	}

	return earliest != nil, earliest
}
