package pgpkey

import (
	"fmt"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// Generate creates a new ed25519 key with the given email as its only user
// ID. It exists to build certificate fixtures (for tests and examples):
// end-user key generation is the job of the surrounding OpenPGP tooling,
// not this engine.
func Generate(email string, now time.Time) (*PgpKey, error) {
	config := packet.Config{
		Algorithm: packet.PubKeyAlgoEdDSA,
		Time:      func() time.Time { return now },
	}

	name, comment := "", ""
	entity, err := openpgp.NewEntity(name, comment, email, &config)
	if err != nil {
		return nil, fmt.Errorf("error generating key: %v", err)
	}

	pgpKey := PgpKey{*entity}
	return &pgpKey, nil
}
