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

package fkwot

import (
	"time"

	docopt "github.com/docopt/docopt-go"

	"github.com/fluidkeys/weboftrust/out"
	"github.com/fluidkeys/weboftrust/status"
	"github.com/fluidkeys/weboftrust/table"
)

// statusSubcommand prints a table of every key in the keystore with its
// stored trust, its effective trust computed from the web of trust, and any
// warnings. The exit code is non-zero if any key carries a warning, so cron
// can tell whether anything needs doing.
func statusSubcommand(args docopt.Opts) exitCode {
	out.Print("\n")

	now := time.Now()
	keysWithWarnings := []table.KeyWithWarnings{}
	anyWarnings := false

	for _, key := range store.AllKeys() {
		effectiveTrust := web.CalculateEffectiveTrust(key.Fingerprint)
		warnings := status.GetKeyWarnings(key, effectiveTrust, now)
		if len(warnings) > 0 {
			anyWarnings = true
		}

		keysWithWarnings = append(keysWithWarnings, table.KeyWithWarnings{
			Key:            key,
			EffectiveTrust: effectiveTrust,
			Warnings:       warnings,
		})
	}

	if len(keysWithWarnings) == 0 {
		out.Print("No keys in the keystore. Add one by running:\n")
		out.Print("    " + cmdKeyFromGpg() + "\n\n")
		return 0
	}

	out.Print(table.FormatKeyTable(keysWithWarnings))

	if anyWarnings {
		return 1
	}
	return 0
}
