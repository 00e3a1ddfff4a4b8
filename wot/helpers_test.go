package wot

import (
	"testing"
	"time"

	fpr "github.com/fluidkeys/weboftrust/fingerprint"
	"github.com/fluidkeys/weboftrust/keystore"
	"github.com/fluidkeys/weboftrust/pgpkey"
	"github.com/fluidkeys/weboftrust/trustlevel"
)

var june15 = time.Date(2019, 6, 15, 12, 0, 0, 0, time.UTC)

// testFingerprint makes a distinct fingerprint from a single byte written
// across all 20 positions.
func testFingerprint(b byte) fpr.Fingerprint {
	var raw [20]byte
	for i := range raw {
		raw[i] = b
	}
	return fpr.FromBytes(raw)
}

func testKey(b byte, level trustlevel.Level) keystore.Key {
	return keystore.Key{
		Fingerprint: testFingerprint(b),
		TrustLevel:  level,
	}
}

// makeGraph builds a graph directly from synthetic keys and (from, to)
// pairs, bypassing certificate material.
func makeGraph(keys []keystore.Key, edges ...[2]fpr.Fingerprint) *Graph {
	graph := newGraph()
	for _, key := range keys {
		graph.addNode(TrustNode{Key: key, TrustLevel: key.TrustLevel})
	}
	for _, edge := range edges {
		graph.addEdge(TrustEdge{From: edge[0], To: edge[1], CreatedAt: june15})
	}
	return graph
}

// certifiedKey generates a real key for email, has each certifier sign its
// user ID, and returns it as a keystore.Key with armored material carrying
// those certifications.
func certifiedKey(t *testing.T, email string, level trustlevel.Level,
	certifiers ...*pgpkey.PgpKey) (keystore.Key, *pgpkey.PgpKey) {

	t.Helper()

	key, err := pgpkey.Generate(email, june15.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	userID := key.UserIDs()[0]

	for _, certifier := range certifiers {
		if err := key.CertifyUserID(userID, certifier, june15); err != nil {
			t.Fatalf("failed to certify user id: %v", err)
		}
	}

	armored, err := key.Armor()
	if err != nil {
		t.Fatalf("failed to armor key: %v", err)
	}

	return keystore.Key{
		Fingerprint: key.Fingerprint(),
		UserIDs:     key.UserIDs(),
		TrustLevel:  level,
		Material:    []byte(armored),
	}, key
}
