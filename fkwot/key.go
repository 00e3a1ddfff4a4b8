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

	"github.com/fluidkeys/weboftrust/colour"
	fpr "github.com/fluidkeys/weboftrust/fingerprint"
	"github.com/fluidkeys/weboftrust/keystore"
	"github.com/fluidkeys/weboftrust/out"
	"github.com/fluidkeys/weboftrust/pgpkey"
	"github.com/fluidkeys/weboftrust/trustlevel"
)

// keyList prints each key in the keystore with its fingerprint, user IDs and
// stored trust level.
func keyList() exitCode {
	keys := store.AllKeys()
	if len(keys) == 0 {
		out.Print("No keys in the keystore. Add one by running:\n")
		out.Print("    " + cmdKeyFromGpg() + "\n\n")
		return 0
	}

	out.Print("\n")
	for index, key := range keys {
		out.Print(formatKeyListing(index+1, key))
	}
	return 0
}

func formatKeyListing(listNumber int, key keystore.Key) string {
	formattedListNumber := colour.Info(fmt.Sprintf("%-4s", fmt.Sprintf("%d.", listNumber)))
	output := fmt.Sprintf("%s%s\n", formattedListNumber, key.Fingerprint)
	output += fmt.Sprintf("    Trust: %s\n", colour.TrustLevel(key.TrustLevel))
	for _, uid := range key.UserIDs {
		output += fmt.Sprintf("      %v\n", uid)
	}
	output += "\n"
	return output
}

// keyFromGpg exports the given key from the system GnuPG keyring and adds it
// to the keystore with unknown trust, keeping its full armored material so
// the trust engine can see every certification it carries.
func keyFromGpg(fingerprint fpr.Fingerprint) exitCode {
	armoredPublicKey, err := gpg.ExportPublicKey(fingerprint)
	if err != nil {
		printFailed(fmt.Sprintf("Failed to export %s from GnuPG: %v", fingerprint.Hex(), err))
		return 1
	}

	key, err := pgpkey.LoadFromArmoredPublicKey(armoredPublicKey)
	if err != nil {
		printFailed(fmt.Sprintf("GnuPG exported something that isn't a single key: %v", err))
		return 1
	}

	storeKey := keystore.Key{
		Fingerprint: key.Fingerprint(),
		UserIDs:     key.UserIDs(),
		TrustLevel:  trustlevel.Unknown,
		Material:    []byte(armoredPublicKey),
	}

	if hasExpiry, expiry := key.PrimaryKeyExpiry(); hasExpiry {
		storeKey.ExpiresAt = expiry
	}

	if revoked, found := gpgSaysRevoked(fingerprint); found {
		storeKey.Revoked = revoked
	}

	store.Add(storeKey)
	if err := store.Save(); err != nil {
		printFailed(fmt.Sprintf("Failed to save the keystore: %v", err))
		return 1
	}

	printSuccess("Added " + key.Fingerprint().Hex() + " to the keystore")
	out.Print("\nSet how much you trust its owner to certify other keys:\n")
	out.Print("    " + colour.Cmd("wot key trust "+key.Fingerprint().Hex()+" marginal") + "\n\n")
	return 0
}

// gpgSaysRevoked looks the key up in GnuPG's public key listing and reports
// whether GnuPG lists it as revoked. The second return is false if the key
// couldn't be found in the listing.
func gpgSaysRevoked(fingerprint fpr.Fingerprint) (revoked bool, found bool) {
	listings, err := gpg.ListPublicKeys()
	if err != nil {
		return false, false
	}
	for _, listing := range listings {
		if listing.Fingerprint == fingerprint {
			return listing.Revoked, true
		}
	}
	return false, false
}

// keyTrust sets the trust level of a key already in the keystore.
func keyTrust(fingerprint fpr.Fingerprint, levelString string) exitCode {
	level, err := trustlevel.Parse(levelString)
	if err != nil {
		printFailed(fmt.Sprintf("%v", err))
		out.Print("\nValid trust levels are: never, unknown, marginal, full, ultimate\n\n")
		return 1
	}

	if err := store.SetTrustLevel(fingerprint, level); err != nil {
		printFailed(fmt.Sprintf("%v", err))
		out.Print("\nAdd the key to the keystore first:\n")
		out.Print("    " + cmdKeyFromGpg() + "\n\n")
		return 1
	}

	if err := store.Save(); err != nil {
		printFailed(fmt.Sprintf("Failed to save the keystore: %v", err))
		return 1
	}

	printSuccess("Set trust of " + fingerprint.Hex() + " to " + colour.TrustLevel(level))
	out.Print("\n")
	return 0
}

func cmdKeyFromGpg() string {
	return colour.Cmd("wot key from-gpg <fingerprint>")
}
