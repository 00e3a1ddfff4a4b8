package status

import (
	"time"

	"github.com/fluidkeys/weboftrust/keystore"
	"github.com/fluidkeys/weboftrust/trustlevel"
)

// GetKeyWarnings returns the problems found with the given key, most severe
// first, given the effective trust computed for it from the web of trust.
func GetKeyWarnings(key keystore.Key, effectiveTrust trustlevel.Level,
	now time.Time) []KeyWarning {

	var warnings []KeyWarning

	if key.Revoked {
		warnings = append(warnings, KeyWarning{Type: KeyRevoked})
	}

	if key.IsExpired(now) {
		warnings = append(warnings, KeyWarning{
			Type:            KeyExpired,
			DaysSinceExpiry: getDaysSinceExpiry(*key.ExpiresAt, now),
		})
	}

	switch effectiveTrust {
	case trustlevel.Never:
		warnings = append(warnings, KeyWarning{Type: KeyNeverTrusted})

	case trustlevel.Unknown:
		warnings = append(warnings, KeyWarning{Type: KeyTrustUnknown})

	case trustlevel.Marginal:
		warnings = append(warnings, KeyWarning{Type: KeyTrustMarginal})
	}

	return warnings
}

// IsValidForEncryption returns whether the key is usable as an encryption
// target: not revoked, not expired, not locally marked never. Unknown and
// marginal trust keys remain usable: trust gates advisory warnings, not
// technical capability.
func IsValidForEncryption(key keystore.Key, now time.Time) bool {
	if key.Revoked {
		return false
	}
	if key.IsExpired(now) {
		return false
	}
	if key.TrustLevel == trustlevel.Never {
		return false
	}
	return true
}

func getDaysSinceExpiry(expiry time.Time, now time.Time) uint {
	days := now.Sub(expiry).Hours() / 24
	return uint(days)
}
