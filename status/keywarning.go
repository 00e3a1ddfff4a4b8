package status

import (
	"fmt"
)

type WarningType int

const (
	KeyRevoked       WarningType = 1
	KeyExpired       WarningType = 2
	KeyNeverTrusted  WarningType = 3
	KeyTrustUnknown  WarningType = 4
	KeyTrustMarginal WarningType = 5
)

// KeyWarning is a problem found with a key when deciding whether it should
// be used. Warnings are ordered: the lowest Type is the most severe.
type KeyWarning struct {
	Type WarningType

	DaysSinceExpiry uint
}

func (w KeyWarning) String() string {
	switch w.Type {
	case KeyRevoked:
		return "Key has been revoked"

	case KeyExpired:
		if w.DaysSinceExpiry == 1 {
			return "Key expired yesterday"
		}
		return fmt.Sprintf("Key expired %d days ago", w.DaysSinceExpiry)

	case KeyNeverTrusted:
		return "Key is marked as never trusted"

	case KeyTrustUnknown:
		return "No trust path from your keys to this key"

	case KeyTrustMarginal:
		return "Key is only marginally trusted"
	}

	return "KeyWarning[unknown]"
}

// BlocksEncryption reports whether the warning means the key must not be
// used as an encryption target, rather than merely advising caution.
func (w KeyWarning) BlocksEncryption() bool {
	switch w.Type {
	case KeyRevoked, KeyExpired, KeyNeverTrusted:
		return true
	}
	return false
}
