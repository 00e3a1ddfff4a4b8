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

package wot

import (
	fpr "github.com/fluidkeys/weboftrust/fingerprint"
	"github.com/fluidkeys/weboftrust/policy"
	"github.com/fluidkeys/weboftrust/trustlevel"
)

// CalculateEffectiveTrust aggregates the trust paths from all anchors to
// target into one effective classification, applying the rules in order:
//
//  1. a local never marking is an unconditional override, before any path
//     search
//  2. the user's own (ultimate) keys need no external corroboration
//  3. one path whose weakest link is full or better classifies the key as
//     full
//  4. three paths whose weakest link is marginal classify the key as
//     marginal
//  5. anything else is unknown
func (g *Graph) CalculateEffectiveTrust(target fpr.Fingerprint) trustlevel.Level {
	node, known := g.Node(target)
	if !known {
		return trustlevel.Unknown
	}

	switch node.TrustLevel {
	case trustlevel.Never:
		return trustlevel.Never
	case trustlevel.Ultimate:
		return trustlevel.Ultimate
	}

	fullPaths, marginalPaths := 0, 0
	for _, path := range g.FindTrustPaths(target) {
		if !path.IsValid() {
			continue
		}
		effective := path.EffectiveTrust()
		switch {
		case effective >= trustlevel.Full:
			fullPaths++
		case effective == trustlevel.Marginal:
			marginalPaths++
		}
	}

	if fullPaths >= policy.FullCertifiersRequired {
		return trustlevel.Full
	}
	if marginalPaths >= policy.MarginalCertifiersRequired {
		return trustlevel.Marginal
	}
	return trustlevel.Unknown
}

// HasValidTrustPath reports whether at least one certification path rooted
// at an anchor key reaches the given key.
func (g *Graph) HasValidTrustPath(target fpr.Fingerprint) bool {
	for _, path := range g.FindTrustPaths(target) {
		if path.IsValid() {
			return true
		}
	}
	return false
}
