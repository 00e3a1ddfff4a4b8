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

package certification

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	fpr "github.com/fluidkeys/weboftrust/fingerprint"
)

const armorHeader = "-----BEGIN PGP"

// maxConsecutiveParseErrors guards the packet loop against input that keeps
// erroring without ever reaching the end of the stream.
const maxConsecutiveParseErrors = 50

// Extract parses one key's certificate material (armored or binary) and
// returns the inter-key certifications attached to its user IDs.
//
// Individual signature packets that fail to parse are skipped: a key with
// unrecognised signature sub-formats still contributes whatever
// certifications decode cleanly. Extract only returns an error when the
// material contains no recognisable OpenPGP primary key at all, and the
// caller should then treat the key as contributing zero certifications.
func Extract(material []byte) ([]Certification, error) {
	reader, err := materialReader(material)
	if err != nil {
		return nil, err
	}

	var subject fpr.Fingerprint
	var subjectKeyID uint64
	var currentUserID string
	haveUserID := false

	var candidates []Certification
	revocations := map[revocationKey]time.Time{}

	consecutiveErrors := 0

	packets := packet.NewReader(reader)
	for {
		p, err := packets.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			consecutiveErrors++
			if consecutiveErrors > maxConsecutiveParseErrors {
				break
			}
			continue
		}
		consecutiveErrors = 0

		switch pkt := p.(type) {
		case *packet.PublicKey:
			if pkt.IsSubkey {
				// subkeys end the user ID section of the certificate
				haveUserID = false
				continue
			}
			if !subject.IsSet() {
				subjectFpr, err := fpr.FromSlice(pkt.Fingerprint)
				if err != nil {
					continue
				}
				subject = subjectFpr
				subjectKeyID = pkt.KeyId
			}

		case *packet.UserId:
			currentUserID = pkt.Id
			haveUserID = true

		case *packet.Signature:
			if !haveUserID || !subject.IsSet() {
				continue
			}
			issuerKeyID, issuerFingerprint, ok := issuerOf(pkt)
			if !ok {
				continue
			}

			switch pkt.SigType {
			case packet.SigTypeGenericCert,
				packet.SigTypePersonaCert,
				packet.SigTypeCasualCert,
				packet.SigTypePositiveCert:

				if isSelfSignature(issuerKeyID, issuerFingerprint, subject, subjectKeyID) {
					continue
				}
				candidates = append(candidates, Certification{
					IssuerKeyID:        issuerKeyID,
					IssuerFingerprint:  issuerFingerprint,
					SubjectFingerprint: subject,
					UserID:             currentUserID,
					CreatedAt:          pkt.CreationTime,
				})

			case packet.SigTypeCertificationRevocation:
				key := revocationKey{issuerKeyID: issuerKeyID, userID: currentUserID}
				if existing, have := revocations[key]; !have || pkt.CreationTime.After(existing) {
					revocations[key] = pkt.CreationTime
				}
			}
		}
	}

	if !subject.IsSet() {
		return nil, fmt.Errorf("no OpenPGP public key found in material")
	}

	return dedupe(applyRevocations(candidates, revocations)), nil
}

type revocationKey struct {
	issuerKeyID uint64
	userID      string
}

// materialReader returns a reader over the raw packet stream, decoding an
// ASCII armor wrapper if one is present.
func materialReader(material []byte) (io.Reader, error) {
	if !strings.HasPrefix(strings.TrimLeft(string(material), " \t\r\n"), armorHeader) {
		return bytes.NewReader(material), nil
	}

	block, err := armor.Decode(bytes.NewReader(material))
	if err != nil {
		return nil, fmt.Errorf("error decoding armor: %v", err)
	}
	return block.Body, nil
}

// issuerOf reads the signature's declared issuer, preferring the issuer
// fingerprint subpacket when present and falling back to the issuer key ID.
// ok is false when the signature declares no issuer at all.
func issuerOf(sig *packet.Signature) (keyID uint64, issuerFingerprint fpr.Fingerprint, ok bool) {
	if len(sig.IssuerFingerprint) == 20 {
		if parsed, err := fpr.FromSlice(sig.IssuerFingerprint); err == nil {
			issuerFingerprint = parsed
		}
	}

	switch {
	case sig.IssuerKeyId != nil:
		return *sig.IssuerKeyId, issuerFingerprint, true
	case issuerFingerprint.IsSet():
		return issuerFingerprint.KeyID(), issuerFingerprint, true
	}
	return 0, issuerFingerprint, false
}

// isSelfSignature reports whether the signature's issuer is the subject key
// itself. Self-signatures attest ownership of a user ID, not inter-key
// trust, so they never become certifications.
func isSelfSignature(issuerKeyID uint64, issuerFingerprint fpr.Fingerprint,
	subject fpr.Fingerprint, subjectKeyID uint64) bool {

	if issuerFingerprint.IsSet() {
		return issuerFingerprint == subject
	}
	return issuerKeyID == subjectKeyID
}

// applyRevocations drops each candidate for which a certification
// revocation by the same issuer on the same user ID exists with a strictly
// later creation time.
func applyRevocations(candidates []Certification,
	revocations map[revocationKey]time.Time) []Certification {

	var kept []Certification
	for _, candidate := range candidates {
		key := revocationKey{issuerKeyID: candidate.IssuerKeyID, userID: candidate.UserID}
		if revokedAt, have := revocations[key]; have && revokedAt.After(candidate.CreatedAt) {
			continue
		}
		kept = append(kept, candidate)
	}
	return kept
}

// dedupe collapses certifications sharing the same (issuer, subject,
// user ID) triple, keeping the first encountered.
func dedupe(certifications []Certification) []Certification {
	seen := map[string]bool{}

	var deduped []Certification
	for _, c := range certifications {
		key := fmt.Sprintf("%016X/%s", c.IssuerKeyID, c.UserID)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, c)
	}
	return deduped
}
