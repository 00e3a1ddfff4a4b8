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

package gpgwrapper

import (
	"testing"
	"time"

	"github.com/fluidkeys/weboftrust/assert"
	"github.com/fluidkeys/weboftrust/fingerprint"
)

func TestParseListPublicKeys(t *testing.T) {
	t.Run("test parsing example colon delimited data", func(t *testing.T) {
		result, err := parseListPublicKeys(exampleListPublicKeys)
		if err != nil {
			t.Fatalf("error running parseListPublicKeys(..): %v", err)
		}

		if len(result) != 2 {
			t.Fatalf("expected 2 keys, got %d: %v", len(result), result)
		}

		joeExpiry := time.Unix(1613831697, 0).UTC()
		janeExpiry := time.Unix(1613831715, 0).UTC()

		expectedFirst := KeyListing{
			Fingerprint: fingerprint.MustParse("86FF 75A3 8CB4 756A 5DDC  E541 7A5F DAF6 E82A 2CC6"),
			Created:     time.Date(2019, 02, 21, 14, 34, 57, 0, time.UTC), // 21 Feb 2019 14:34:57
			ExpiresAt:   &joeExpiry,
			Uids: []string{
				"Joe Smith <joe@example.com>",
				"<joe-work@example.com>",
			},
		}

		expectedSecond := KeyListing{
			Fingerprint: fingerprint.MustParse("CFA8 A534 0CCD E66D 633A  9F4E 61A2 89A5 106B 040C"),
			Created:     time.Date(2019, 02, 21, 14, 35, 15, 0, time.UTC), // 21 Feb 2019 14:35:15
			ExpiresAt:   &janeExpiry,
			Uids:        []string{"<jane@example.com>"},
		}

		assert.Equal(t, expectedFirst, result[0])
		assert.Equal(t, expectedSecond, result[1])
	})

	t.Run("parser ignores keys with invalid creation time", func(t *testing.T) {
		result, err := parseListPublicKeys(exampleListPublicKeysInvalidCreationTime)
		if err != nil {
			t.Fatalf("error running parseListPublicKeys(..): %v", err)
		}

		if len(result) != 0 {
			t.Fatalf("expected 0 keys, got %d: %v", len(result), result)
		}
	})

	t.Run("parser keeps revoked keys, flagged as revoked", func(t *testing.T) {
		result, err := parseListPublicKeys(exampleListPublicKeysRevoked)
		if err != nil {
			t.Fatalf("error running parseListPublicKeys(..): %v", err)
		}

		if len(result) != 1 {
			t.Fatalf("expected 1 key, got %d: %v", len(result), result)
		}

		assert.Equal(t, true, result[0].Revoked)
		assert.Equal(t,
			fingerprint.MustParse("CFA8A5340CCDE66D633A9F4E61A289A5106B040C"),
			result[0].Fingerprint)
	})

	t.Run("parser unescapes colons in uids", func(t *testing.T) {
		result, err := parseListPublicKeys(exampleListPublicKeysQuotedColon)
		if err != nil {
			t.Fatalf("error running parseListPublicKeys(..): %v", err)
		}

		if len(result) != 1 {
			t.Fatalf("expected 1 key, got %d: %v", len(result), result)
		}
		assert.Equal(t, []string{"Jane (comment: here) <jane@example.com>"}, result[0].Uids)
	})
}

func TestParseVersionString(t *testing.T) {
	t.Run("with a valid version string", func(t *testing.T) {
		version, err := parseVersionString("gpg (GnuPG) 2.2.4\nlibgcrypt 1.8.1\n")
		assert.ErrorIsNil(t, err)
		assert.Equal(t, "2.2.4", version)
	})

	t.Run("with no version string present", func(t *testing.T) {
		_, err := parseVersionString("gpg: no such thing")
		assert.Equal(t, ErrNoVersionStringFound, err)
	})
}

const exampleListPublicKeys = `pub:u:2048:1:7A5FDAF6E82A2CC6:1550759697:1613831697::u:::scESC::::::23::0:
fpr:::::::::86FF75A38CB4756A5DDCE5417A5FDAF6E82A2CC6:
uid:u::::1550760409::5317EC69F0E306292D6387EBBE963BF677A0256E::Joe Smith <joe@example.com>::::::::::0:
uid:u::::1550759697::B7C30333ADD309F60660D170326BAA027E51B68F::<joe-work@example.com>::::::::::0:
sub:u:2048:1:756E1B445E29D81D:1550759697::::::e::::::23:
fpr:::::::::2E839BC22948C456D22CA4D4756E1B445E29D81D:
pub:u:2048:1:61A289A5106B040C:1550759715:1613831715::u:::scESC::::::23::0:
fpr:::::::::CFA8A5340CCDE66D633A9F4E61A289A5106B040C:
uid:u::::1550759715::D0535A5433696A9AD9C60C92F31E63E90E62BF75::<jane@example.com>::::::::::0:
sub:u:2048:1:A9EF283407CA7724:1550759715::::::e::::::23:
fpr:::::::::3A762DC026AB117DA75EC9E2A9EF283407CA7724:`

const exampleListPublicKeysInvalidCreationTime = `pub:u:2048:1:61A289A5106B040C:1550759715XXX:1613831715::u:::scESC::::::23::0:
fpr:::::::::CFA8A5340CCDE66D633A9F4E61A289A5106B040C:
uid:u::::1550759715::D0535A5433696A9AD9C60C92F31E63E90E62BF75::<jane@example.com>::::::::::0:`

const exampleListPublicKeysRevoked = `pub:r:2048:1:61A289A5106B040C:1550759715:1613831715::u:::sc::::::23::0:
fpr:::::::::CFA8A5340CCDE66D633A9F4E61A289A5106B040C:
uid:r::::1550759715::D0535A5433696A9AD9C60C92F31E63E90E62BF75::<jane@example.com>::::::::::0:`

const exampleListPublicKeysQuotedColon = `pub:u:2048:1:61A289A5106B040C:1550759715:::u:::scESC::::::23::0:
fpr:::::::::CFA8A5340CCDE66D633A9F4E61A289A5106B040C:
uid:u::::1550759715::D0535A5433696A9AD9C60C92F31E63E90E62BF75::Jane (comment\x3a here) <jane@example.com>::::::::::0:`
