package fingerprint

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

type fingerprintBytes = [20]byte

// Fingerprint represents a 20-byte OpenPGP v4 fingerprint.
type Fingerprint struct {
	fingerprintBytes

	isSet bool
}

// Parse takes a string and returns a Fingerprint.
// Accepts fingerprints with spaces, uppercase, lowercase etc.
func Parse(fp string) (Fingerprint, error) {
	var nilFingerprint Fingerprint
	withoutSpaces := strings.Replace(fp, " ", "", -1)

	expectedPattern := `^(0x)?[A-Fa-f0-9]{40}$`
	if matched, err := regexp.MatchString(expectedPattern, withoutSpaces); !matched || err != nil {
		return nilFingerprint, fmt.Errorf("fingerprint doesn't match pattern '%v', err=%v", expectedPattern, err)
	}

	withoutLeading0x := strings.TrimPrefix(withoutSpaces, "0x")

	decoded, err := hex.DecodeString(withoutLeading0x)
	if err != nil {
		return nilFingerprint, err
	}
	var f Fingerprint
	copy(f.fingerprintBytes[:], decoded)
	f.isSet = true
	return f, nil
}

// MustParse takes a string and returns a Fingerprint. If the
// string is not a valid fingerprint (e.g. 40 hex characters) it will panic.
func MustParse(fp string) Fingerprint {
	result, err := Parse(fp)
	if err != nil {
		panic(err)
	}
	return result
}

// FromBytes returns a Fingerprint from 20 raw bytes, for example the
// Fingerprint field of a packet.PublicKey.
func FromBytes(bytes [20]byte) Fingerprint {
	return Fingerprint{
		fingerprintBytes: bytes,
		isSet:            true,
	}
}

// FromSlice returns a Fingerprint from a byte slice, or an error if the
// slice isn't exactly 20 bytes long (a v4 fingerprint).
func FromSlice(bytes []byte) (Fingerprint, error) {
	var f Fingerprint
	if len(bytes) != 20 {
		return f, fmt.Errorf("expected 20 bytes, got %d", len(bytes))
	}
	copy(f.fingerprintBytes[:], bytes)
	f.isSet = true
	return f, nil
}

// String returns the fingerprint in the "human friendly" format, for example
// `AB01 AB01 AB01 AB01 AB01  AB01 AB01 AB01 AB01 AB01`
func (f Fingerprint) String() string {
	f.assertIsSet()
	b := f.fingerprintBytes

	return fmt.Sprintf(
		"%0X %0X %0X %0X %0X  %0X %0X %0X %0X %0X",
		b[0:2], b[2:4], b[4:6], b[6:8], b[8:10],
		b[10:12], b[12:14], b[14:16], b[16:18], b[18:20],
	)
}

// Hex returns the fingerprint as uppercase hex (20 bytes, 40 characters)
// without spaces, for example:
// `AB01AB01AB01AB01AB01AB01AB01AB01AB01AB01`
func (f Fingerprint) Hex() string {
	f.assertIsSet()
	b := f.fingerprintBytes

	return fmt.Sprintf("%0X", b)
}

func (f Fingerprint) Bytes() [20]byte {
	f.assertIsSet()
	return f.fingerprintBytes
}

// KeyID returns the 64-bit OpenPGP key ID which, for a v4 key, is the low 64
// bits of the fingerprint.
// See https://tools.ietf.org/html/rfc4880#section-12.2
func (f Fingerprint) KeyID() uint64 {
	f.assertIsSet()
	return binary.BigEndian.Uint64(f.fingerprintBytes[12:20])
}

// MatchesKeyID returns whether the given 64-bit key ID belongs to this
// fingerprint. A key ID match is weaker than a fingerprint match: unrelated
// keys can share a key ID, so a caller that finds more than one matching key
// must treat the match as ambiguous rather than pick one.
func (f Fingerprint) MatchesKeyID(keyID uint64) bool {
	return f.KeyID() == keyID
}

func (f Fingerprint) IsSet() bool {
	return f.isSet
}

func (f Fingerprint) assertIsSet() {
	if !f.IsSet() {
		panic(fmt.Errorf("Fingerprint method called when fingerprint hasn't been set."))
	}
}
