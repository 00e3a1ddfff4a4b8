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

package trustlevel

import (
	"fmt"
)

// Level is a user-assigned confidence rating for a key, independent of the
// key's cryptographic validity.
//
// Levels are totally ordered for weakest-link comparison:
//
//	Never < Unknown < Marginal < Full < Ultimate
//
// Never sits below the ordinal scale because it is not merely "less trust":
// it is an unconditional override, checked before any path search. See
// wot.CalculateEffectiveTrust.
type Level int

const (
	// Never means the key's owner has been actively marked as not to be
	// trusted, whatever anyone else says about them.
	Never Level = -1

	// Unknown means no trust information is held about the key.
	Unknown Level = 0

	// Marginal means the key's owner is believed to make reasonable checks
	// before certifying other keys.
	Marginal Level = 1

	// Full means the key's owner is believed to make rigorous checks before
	// certifying other keys.
	Full Level = 2

	// Ultimate is reserved for the user's own keys: the anchors from which
	// all trust paths are searched.
	Ultimate Level = 3
)

func (l Level) String() string {
	switch l {
	case Never:
		return "never"
	case Unknown:
		return "unknown"
	case Marginal:
		return "marginal"
	case Full:
		return "full"
	case Ultimate:
		return "ultimate"
	}
	return fmt.Sprintf("Level[%d]", int(l))
}

// Parse returns the Level named by the given string, for example "marginal".
func Parse(level string) (Level, error) {
	switch level {
	case "never":
		return Never, nil
	case "unknown":
		return Unknown, nil
	case "marginal":
		return Marginal, nil
	case "full":
		return Full, nil
	case "ultimate":
		return Ultimate, nil
	}
	return Unknown, fmt.Errorf("unrecognised trust level '%s'", level)
}

// Min returns the lower of the two levels: the single comparison function
// used everywhere a weakest link is computed.
func Min(a Level, b Level) Level {
	if a < b {
		return a
	}
	return b
}

// Compare returns a negative number if a is a lower trust level than b,
// zero if they're equal and a positive number if a is higher than b.
func Compare(a Level, b Level) int {
	return int(a) - int(b)
}

// CanCertify returns whether a key at this level is allowed to vouch for
// other keys: only full and ultimate certifiers count.
func (l Level) CanCertify() bool {
	return l >= Full
}
