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

package policy

import (
	"crypto"
	_ "crypto/sha256"
)

const (
	// FullCertifiersRequired is the number of trust paths with a weakest
	// link of full (or better) needed to classify a key as fully valid.
	// Per longstanding OpenPGP convention, one is enough.
	FullCertifiersRequired = 1

	// MarginalCertifiersRequired is the number of distinct trust paths with
	// a weakest link of marginal needed to classify a key as marginally
	// valid, per OpenPGP's "three marginals" convention.
	MarginalCertifiersRequired = 3

	// MaxKeystoreKeys is the most keys a trust graph will be built over.
	// A personal keystore holds at most a few hundred keys in practice.
	MaxKeystoreKeys = 10000
)

var (
	// SignatureHashFunction is the hash algorithm used when creating new
	// certification signatures.
	SignatureHashFunction crypto.Hash = crypto.SHA256
)
