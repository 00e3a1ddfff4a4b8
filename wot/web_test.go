package wot

import (
	"testing"
	"time"

	"github.com/fluidkeys/weboftrust/assert"
	"github.com/fluidkeys/weboftrust/keystore"
	"github.com/fluidkeys/weboftrust/trustlevel"
)

func TestWeb(t *testing.T) {
	aliceKey, alice := certifiedKey(t, "alice@example.com", trustlevel.Ultimate)
	bobKey, bob := certifiedKey(t, "bob@example.com", trustlevel.Full, alice)
	carolKey, _ := certifiedKey(t, "carol@example.com", trustlevel.Marginal, bob)

	store := keystore.NewMemoryStore(aliceKey, bobKey, carolKey)
	web := NewWeb(store)

	t.Run("FindTrustPaths follows the chain from the anchor", func(t *testing.T) {
		paths := web.FindTrustPaths(carolKey.Fingerprint)
		assert.Equal(t, 1, len(paths))

		path := paths[0]
		assert.Equal(t, 3, path.Length())
		assert.Equal(t, aliceKey.Fingerprint, path.Nodes[0].Fingerprint())
		assert.Equal(t, bobKey.Fingerprint, path.Nodes[1].Fingerprint())
		assert.Equal(t, carolKey.Fingerprint, path.Nodes[2].Fingerprint())
		assert.Equal(t, trustlevel.Marginal, path.EffectiveTrust())
	})

	t.Run("FindShortestPath between two keys", func(t *testing.T) {
		path := web.FindShortestPath(bobKey.Fingerprint, carolKey.Fingerprint)
		if path == nil {
			t.Fatalf("expected a path")
		}
		assert.Equal(t, 2, path.Length())
	})

	t.Run("CalculateEffectiveTrust", func(t *testing.T) {
		assert.Equal(t, trustlevel.Ultimate, web.CalculateEffectiveTrust(aliceKey.Fingerprint))
		assert.Equal(t, trustlevel.Full, web.CalculateEffectiveTrust(bobKey.Fingerprint))
		// one marginal-weakest-link path to carol isn't enough
		assert.Equal(t, trustlevel.Unknown, web.CalculateEffectiveTrust(carolKey.Fingerprint))
	})

	t.Run("HasValidTrustPath", func(t *testing.T) {
		assert.Equal(t, true, web.HasValidTrustPath(carolKey.Fingerprint))
		assert.Equal(t, false, web.HasValidTrustPath(testFingerprint(0xEE)))
	})

	t.Run("ConnectedKeys returns signers then signees", func(t *testing.T) {
		connected := web.ConnectedKeys(bobKey.Fingerprint)
		assert.Equal(t, 2, len(connected))
		assert.Equal(t, aliceKey.Fingerprint, connected[0].Fingerprint)
		assert.Equal(t, carolKey.Fingerprint, connected[1].Fingerprint)
	})

	t.Run("CertifyingKeys returns full and ultimate keys only", func(t *testing.T) {
		certifiers := web.CertifyingKeys()
		assert.Equal(t, 2, len(certifiers))
		assert.Equal(t, aliceKey.Fingerprint, certifiers[0].Fingerprint)
		assert.Equal(t, bobKey.Fingerprint, certifiers[1].Fingerprint)
	})

	t.Run("queries see keystore mutations", func(t *testing.T) {
		mutable := keystore.NewMemoryStore(aliceKey, bobKey, carolKey)
		mutableWeb := NewWeb(mutable)

		assert.Equal(t, trustlevel.Unknown, mutableWeb.CalculateEffectiveTrust(carolKey.Fingerprint))

		// no caching: re-trusting carol is visible to the next query
		demoted := carolKey
		demoted.TrustLevel = trustlevel.Never
		mutable.Add(demoted)

		assert.Equal(t, trustlevel.Never, mutableWeb.CalculateEffectiveTrust(carolKey.Fingerprint))
	})
}

func TestTrustWarning(t *testing.T) {
	aliceKey, alice := certifiedKey(t, "alice@example.com", trustlevel.Ultimate)
	bobKey, _ := certifiedKey(t, "bob@example.com", trustlevel.Full, alice)

	t.Run("no warning for a fully trusted valid key", func(t *testing.T) {
		web := NewWeb(keystore.NewMemoryStore(aliceKey, bobKey))

		warning, got := web.TrustWarning(bobKey)
		if got {
			t.Fatalf("expected no warning, got '%s'", warning)
		}
	})

	t.Run("revoked key warns about revocation first", func(t *testing.T) {
		revoked := bobKey
		revoked.Revoked = true
		web := NewWeb(keystore.NewMemoryStore(aliceKey, revoked))

		warning, got := web.TrustWarning(revoked)
		if !got {
			t.Fatalf("expected a warning")
		}
		assert.Equal(t, "Key has been revoked", warning)
	})

	t.Run("unconnected key warns about missing trust path", func(t *testing.T) {
		strangerKey, _ := certifiedKey(t, "stranger@example.com", trustlevel.Unknown)
		web := NewWeb(keystore.NewMemoryStore(aliceKey, strangerKey))

		warning, got := web.TrustWarning(strangerKey)
		if !got {
			t.Fatalf("expected a warning")
		}
		assert.Equal(t, "No trust path from your keys to this key", warning)
	})
}

func TestIsValidForEncryption(t *testing.T) {
	aliceKey, _ := certifiedKey(t, "alice@example.com", trustlevel.Ultimate)
	web := NewWeb(keystore.NewMemoryStore(aliceKey))

	t.Run("expired key isn't valid", func(t *testing.T) {
		expired := aliceKey
		yesterday := time.Now().Add(-24 * time.Hour)
		expired.ExpiresAt = &yesterday

		assert.Equal(t, false, web.IsValidForEncryption(expired))
	})

	t.Run("unknown-trust key is still valid", func(t *testing.T) {
		stranger := aliceKey
		stranger.TrustLevel = trustlevel.Unknown

		assert.Equal(t, true, web.IsValidForEncryption(stranger))
	})
}
