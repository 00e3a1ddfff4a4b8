package pgpkey

import (
	"fmt"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/fluidkeys/weboftrust/policy"
)

// CertifyUserID creates a certification signature over the given user ID of
// p, signed by the unlocked certifier key. Any previous certification of
// the same user ID by the same certifier is dropped: the new one replaces
// it.
func (p *PgpKey) CertifyUserID(userID string, certifier *PgpKey, now time.Time) error {
	if p.PrimaryKey.KeyId == certifier.PrimaryKey.KeyId {
		return fmt.Errorf("key and certifier key are the same")
	}
	if certifier.PrivateKey == nil {
		return fmt.Errorf("certifier must have PrivateKey")
	}

	identity, ok := p.Identities[userID]
	if !ok {
		return fmt.Errorf("key has no user id \"%s\"", userID)
	}

	config := packet.Config{
		DefaultHash: policy.SignatureHashFunction,
		Time:        func() time.Time { return now },
	}

	newSigs := []*packet.Signature{}
	for _, existingSig := range identity.Signatures {
		if existingSig.IssuerKeyId != nil && *existingSig.IssuerKeyId == certifier.PrimaryKey.KeyId {
			// drop this existing signature: the new one replaces it
			continue
		}
		newSigs = append(newSigs, existingSig)
	}
	identity.Signatures = newSigs

	return p.Entity.SignIdentity(userID, &certifier.Entity, &config)
}
