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
	"fmt"

	docopt "github.com/docopt/docopt-go"

	"github.com/fluidkeys/weboftrust/colour"
	"github.com/fluidkeys/weboftrust/out"
	"github.com/fluidkeys/weboftrust/wot"
)

// pathsSubcommand prints the shortest trust path from each of the user's
// ultimately trusted keys to the given key, each with its weakest link, plus
// the overall effective trust.
func pathsSubcommand(args docopt.Opts) exitCode {
	fingerprint, code := parseFingerprintArg(args)
	if code != 0 {
		return code
	}

	out.Print("\n")

	paths := web.FindTrustPaths(fingerprint)
	if len(paths) == 0 {
		printFailed("No trust path from your keys to " + fingerprint.Hex())
		out.Print("\nCertify the key with one of your keys, or raise your trust in\n")
		out.Print("someone who has already certified it.\n\n")
		return 1
	}

	for _, path := range paths {
		out.Print(formatTrustPath(path))
	}

	effectiveTrust := web.CalculateEffectiveTrust(fingerprint)
	out.Print(fmt.Sprintf("Effective trust: %s\n\n", colour.TrustLevel(effectiveTrust)))
	return 0
}

// formatTrustPath renders one path as an indented chain, one node per line:
// the anchor first, then each certified key with the user ID the
// certification names.
func formatTrustPath(path wot.TrustPath) string {
	output := ""

	for i, node := range path.Nodes {
		if i == 0 {
			output += fmt.Sprintf("%s  %s (%s)\n",
				node.Key.Fingerprint.Hex(),
				node.Key.PrimaryUserID(),
				colour.TrustLevel(node.TrustLevel))
			continue
		}

		edge := path.Edges[i-1]
		output += fmt.Sprintf("  └─ certifies %s  %s (%s)\n",
			node.Key.Fingerprint.Hex(),
			edge.UserID,
			colour.TrustLevel(node.TrustLevel))
	}

	output += fmt.Sprintf("   path trust: %s\n\n", colour.TrustLevel(path.EffectiveTrust()))
	return output
}
