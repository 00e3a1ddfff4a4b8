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

package table

import (
	"github.com/fluidkeys/weboftrust/colour"
	"github.com/fluidkeys/weboftrust/keystore"
	"github.com/fluidkeys/weboftrust/status"
	"github.com/fluidkeys/weboftrust/trustlevel"
)

// A KeyWithWarnings defines a key, the effective trust computed for it from
// the web of trust, and the warnings found with it, used to format a row in
// the table.
type KeyWithWarnings struct {
	Key            keystore.Key
	EffectiveTrust trustlevel.Level
	Warnings       []status.KeyWarning
}

// FormatKeyTable takes a slice of keys with warnings and returns a string
// containing a formatted table of the keys, their stored and effective trust,
// and any warnings.
func FormatKeyTable(keysWithWarnings []KeyWithWarnings) (output string) {
	rows := makeTableRows(keysWithWarnings)
	rowStrings := formatTableStringsFromRows(rows)
	for _, rowString := range rowStrings {
		output += rowString + "\n"
	}
	return output + "\n"
}

func makeTableRows(keysWithWarnings []KeyWithWarnings) []row {
	var rows []row
	rows = append(rows, header)
	rows = append(rows, keyTablePlaceholderDividerRow)
	rows = append(rows, makeRowsForKeys(keysWithWarnings)...)
	return rows
}

// makeRowsForKeys takes a slice of keys and returns a slice of rows
// representing the user IDs, stored trust, effective trust and warning
// lines for each key.
// It adds a dividing line between each key.
func makeRowsForKeys(keysWithWarnings []KeyWithWarnings) []row {
	var allRows []row
	for _, keyWithWarnings := range keysWithWarnings {
		columns := []column{
			keyWithWarnings.Key.UserIDs,
			[]string{keyWithWarnings.Key.Fingerprint.Hex()},
			[]string{colour.TrustLevel(keyWithWarnings.Key.TrustLevel)},
			[]string{colour.TrustLevel(keyWithWarnings.EffectiveTrust)},
			keyStatus(keyWithWarnings.Warnings),
		}
		keyRows := makeRowsFromColumns(columns)
		allRows = append(allRows, keyRows...)
		allRows = append(allRows, keyTablePlaceholderDividerRow)
	}
	return allRows
}

// keyStatus takes a slice of warnings and returns a slice of coloured strings
// for printing in the table. If no warnings, the status is reported as Good.
func keyStatus(keyWarnings []status.KeyWarning) []string {
	if len(keyWarnings) == 0 {
		return []string{colour.Success("Good ✔")}
	}

	var keyWarningLines []string
	for _, keyWarning := range keyWarnings {
		line := keyWarning.String()
		if keyWarning.BlocksEncryption() {
			line = colour.Failure(line)
		} else {
			line = colour.Warning(line)
		}
		keyWarningLines = append(keyWarningLines, line)
	}
	return keyWarningLines
}

var header = row{
	colour.TableHeader("User ID"),
	colour.TableHeader("Fingerprint"),
	colour.TableHeader("Trust"),
	colour.TableHeader("Effective"),
	colour.TableHeader("Status"),
}

var keyTablePlaceholderDividerRow = row{divider, divider, divider, divider, divider}
