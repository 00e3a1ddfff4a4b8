package wot

import (
	"testing"

	"github.com/fluidkeys/weboftrust/assert"
	"github.com/fluidkeys/weboftrust/certification"
	fpr "github.com/fluidkeys/weboftrust/fingerprint"
	"github.com/fluidkeys/weboftrust/keystore"
	"github.com/fluidkeys/weboftrust/trustlevel"
)

func TestBuildGraph(t *testing.T) {
	aliceKey, alice := certifiedKey(t, "alice@example.com", trustlevel.Ultimate)
	bobKey, bob := certifiedKey(t, "bob@example.com", trustlevel.Full, alice)
	carolKey, _ := certifiedKey(t, "carol@example.com", trustlevel.Marginal, bob)

	keys := []keystore.Key{aliceKey, bobKey, carolKey}

	t.Run("one node per key, one edge per resolved certification", func(t *testing.T) {
		graph, err := BuildGraph(keys)
		assert.ErrorIsNil(t, err)

		if got := len(graph.Nodes()); got != 3 {
			t.Fatalf("expected 3 nodes, got %d", got)
		}

		expectedEdges := [][2]fpr.Fingerprint{
			{aliceKey.Fingerprint, bobKey.Fingerprint},
			{bobKey.Fingerprint, carolKey.Fingerprint},
		}
		gotEdges := graph.Edges()
		if len(gotEdges) != len(expectedEdges) {
			t.Fatalf("expected %d edges, got %d: %v", len(expectedEdges), len(gotEdges), gotEdges)
		}
		for i, expected := range expectedEdges {
			if gotEdges[i].From != expected[0] || gotEdges[i].To != expected[1] {
				t.Fatalf("edge %d: expected %v→%v, got %v→%v",
					i, expected[0], expected[1], gotEdges[i].From, gotEdges[i].To)
			}
		}
	})

	t.Run("nodes carry the trust level at build time", func(t *testing.T) {
		graph, err := BuildGraph(keys)
		assert.ErrorIsNil(t, err)

		node, found := graph.Node(bobKey.Fingerprint)
		if !found {
			t.Fatalf("expected to find bob's node")
		}
		assert.Equal(t, trustlevel.Full, node.TrustLevel)
	})

	t.Run("building twice gives structurally identical graphs", func(t *testing.T) {
		first, err := BuildGraph(keys)
		assert.ErrorIsNil(t, err)
		second, err := BuildGraph(keys)
		assert.ErrorIsNil(t, err)

		assert.Equal(t, first.Nodes(), second.Nodes())
		assert.Equal(t, first.Edges(), second.Edges())
	})

	t.Run("certification from an absent issuer is dropped", func(t *testing.T) {
		// bob's material carries alice's certification, but alice isn't
		// in the snapshot
		graph, err := BuildGraph([]keystore.Key{bobKey})
		assert.ErrorIsNil(t, err)

		if got := len(graph.Nodes()); got != 1 {
			t.Fatalf("expected 1 node, got %d", got)
		}
		if got := len(graph.Edges()); got != 0 {
			t.Fatalf("expected 0 edges, got %d", got)
		}
	})

	t.Run("unparseable material contributes a node but zero edges", func(t *testing.T) {
		junkKey := testKey(0x99, trustlevel.Unknown)
		junkKey.Material = []byte("not a key at all")

		graph, err := BuildGraph([]keystore.Key{aliceKey, junkKey})
		assert.ErrorIsNil(t, err)

		if _, found := graph.Node(junkKey.Fingerprint); !found {
			t.Fatalf("expected the unparseable key to still be a node")
		}
		if got := len(graph.Edges()); got != 0 {
			t.Fatalf("expected 0 edges, got %d", got)
		}
	})

	t.Run("duplicate fingerprints collapse to one node", func(t *testing.T) {
		graph, err := BuildGraph([]keystore.Key{aliceKey, aliceKey})
		assert.ErrorIsNil(t, err)

		if got := len(graph.Nodes()); got != 1 {
			t.Fatalf("expected 1 node, got %d", got)
		}
	})

	t.Run("refuses to build over an oversized key set", func(t *testing.T) {
		oversized := make([]keystore.Key, 10001)
		_, err := BuildGraph(oversized)
		assert.ErrorIsNotNil(t, err)
	})
}

func TestAddEdge(t *testing.T) {
	a := testKey(0x0a, trustlevel.Ultimate)
	b := testKey(0x0b, trustlevel.Full)

	t.Run("duplicate (from, to) pairs collapse to one edge", func(t *testing.T) {
		graph := makeGraph(
			[]keystore.Key{a, b},
			[2]fpr.Fingerprint{a.Fingerprint, b.Fingerprint},
			[2]fpr.Fingerprint{a.Fingerprint, b.Fingerprint},
		)
		if got := len(graph.Edges()); got != 1 {
			t.Fatalf("expected 1 edge, got %d", got)
		}
	})

	t.Run("self edges are dropped", func(t *testing.T) {
		graph := makeGraph(
			[]keystore.Key{a},
			[2]fpr.Fingerprint{a.Fingerprint, a.Fingerprint},
		)
		if got := len(graph.Edges()); got != 0 {
			t.Fatalf("expected 0 edges, got %d", got)
		}
	})
}

func TestResolveIssuer(t *testing.T) {
	// two fingerprints sharing the low 64 bits, so their key IDs collide
	colliding1 := fpr.MustParse("AAAAAAAAAAAAAAAAAAAAAAAA309F635DAD1B5517")
	colliding2 := fpr.MustParse("BBBBBBBBBBBBBBBBBBBBBBBB309F635DAD1B5517")
	lone := fpr.MustParse("CCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC")

	makeNodes := func(fingerprints ...fpr.Fingerprint) *Graph {
		graph := newGraph()
		for _, fingerprint := range fingerprints {
			graph.addNode(TrustNode{
				Key: keystore.Key{Fingerprint: fingerprint},
			})
		}
		return graph
	}

	t.Run("issuer fingerprint resolves exactly", func(t *testing.T) {
		graph := makeNodes(colliding1, colliding2)
		issuer, found := graph.resolveIssuer(certification.Certification{
			IssuerFingerprint: colliding2,
			IssuerKeyID:       colliding2.KeyID(),
		})
		if !found {
			t.Fatalf("expected to resolve the issuer")
		}
		assert.Equal(t, colliding2, issuer)
	})

	t.Run("issuer fingerprint of an unknown key doesn't resolve", func(t *testing.T) {
		graph := makeNodes(lone)
		_, found := graph.resolveIssuer(certification.Certification{
			IssuerFingerprint: colliding1,
			IssuerKeyID:       colliding1.KeyID(),
		})
		if found {
			t.Fatalf("expected not to resolve an absent issuer")
		}
	})

	t.Run("unique key id match resolves", func(t *testing.T) {
		graph := makeNodes(colliding1, lone)
		issuer, found := graph.resolveIssuer(certification.Certification{
			IssuerKeyID: colliding1.KeyID(),
		})
		if !found {
			t.Fatalf("expected to resolve the issuer")
		}
		assert.Equal(t, colliding1, issuer)
	})

	t.Run("ambiguous key id match is treated as no match", func(t *testing.T) {
		graph := makeNodes(colliding1, colliding2)
		_, found := graph.resolveIssuer(certification.Certification{
			IssuerKeyID: colliding1.KeyID(),
		})
		if found {
			t.Fatalf("expected an ambiguous key id not to resolve")
		}
	})
}
