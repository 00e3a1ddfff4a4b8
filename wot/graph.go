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

// Package wot builds a directed trust graph over a snapshot of locally
// known keys and answers trust queries over it: nodes are keys, edges are
// the certification signatures one key made over another's user IDs.
package wot

import (
	"fmt"
	"log"
	"time"

	"github.com/fluidkeys/weboftrust/certification"
	fpr "github.com/fluidkeys/weboftrust/fingerprint"
	"github.com/fluidkeys/weboftrust/keystore"
	"github.com/fluidkeys/weboftrust/policy"
	"github.com/fluidkeys/weboftrust/trustlevel"
)

// TrustNode is a key in the trust graph, paired with the trust level it
// held when the graph was built. Node identity is the fingerprint alone.
type TrustNode struct {
	Key        keystore.Key
	TrustLevel trustlevel.Level
}

// Fingerprint returns the node's identity.
func (n TrustNode) Fingerprint() fpr.Fingerprint {
	return n.Key.Fingerprint
}

// TrustEdge is a directed issuer→subject certification. Edge identity is
// the (From, To) pair: multiple certifications between the same two keys
// collapse to a single edge.
type TrustEdge struct {
	From fpr.Fingerprint
	To   fpr.Fingerprint

	// UserID and CreatedAt describe the certification the edge was built
	// from (the first one encountered, when there were several).
	UserID    string
	CreatedAt time.Time
}

// Graph is the trust graph for one keystore snapshot. Nodes and edges are
// held in insertion order, which makes path searches deterministic.
type Graph struct {
	nodes     map[fpr.Fingerprint]TrustNode
	nodeOrder []fpr.Fingerprint

	edges     []TrustEdge
	edgesFrom map[fpr.Fingerprint][]TrustEdge
	edgesTo   map[fpr.Fingerprint][]TrustEdge
}

// BuildGraph builds a trust graph over the given snapshot of keys: one node
// per fingerprint, one edge per certification whose issuer resolves to
// another key in the same snapshot.
//
// The build is a pure read of the snapshot. Keys whose material can't be
// parsed contribute zero edges, certifications whose issuer isn't a known
// key are dropped, and an issuer key ID that matches more than one known
// key is treated as no match rather than guessed at.
func BuildGraph(keys []keystore.Key) (*Graph, error) {
	if len(keys) > policy.MaxKeystoreKeys {
		return nil, fmt.Errorf(
			"refusing to build trust graph over %d keys (maximum %d)",
			len(keys), policy.MaxKeystoreKeys)
	}

	graph := newGraph()

	for _, key := range keys {
		graph.addNode(TrustNode{Key: key, TrustLevel: key.TrustLevel})
	}

	for _, key := range keys {
		certifications, err := certification.Extract(key.Material)
		if err != nil {
			log.Printf("skipping certifications for %v: %v", key.Fingerprint, err)
			continue
		}

		for _, cert := range certifications {
			issuer, found := graph.resolveIssuer(cert)
			if !found {
				continue
			}
			if _, known := graph.nodes[cert.SubjectFingerprint]; !known {
				continue
			}
			graph.addEdge(TrustEdge{
				From:      issuer,
				To:        cert.SubjectFingerprint,
				UserID:    cert.UserID,
				CreatedAt: cert.CreatedAt,
			})
		}
	}

	return graph, nil
}

func newGraph() *Graph {
	return &Graph{
		nodes:     map[fpr.Fingerprint]TrustNode{},
		edgesFrom: map[fpr.Fingerprint][]TrustEdge{},
		edgesTo:   map[fpr.Fingerprint][]TrustEdge{},
	}
}

// Nodes returns the graph's nodes in insertion order.
func (g *Graph) Nodes() []TrustNode {
	var nodes []TrustNode
	for _, fingerprint := range g.nodeOrder {
		nodes = append(nodes, g.nodes[fingerprint])
	}
	return nodes
}

// Edges returns the graph's edges in insertion order.
func (g *Graph) Edges() []TrustEdge {
	edges := make([]TrustEdge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// Node returns the node with the given fingerprint.
func (g *Graph) Node(fingerprint fpr.Fingerprint) (TrustNode, bool) {
	node, found := g.nodes[fingerprint]
	return node, found
}

// OutgoingEdges returns the edges issued by the given key, in insertion
// order.
func (g *Graph) OutgoingEdges(fingerprint fpr.Fingerprint) []TrustEdge {
	return g.edgesFrom[fingerprint]
}

// IncomingEdges returns the edges certifying the given key, in insertion
// order.
func (g *Graph) IncomingEdges(fingerprint fpr.Fingerprint) []TrustEdge {
	return g.edgesTo[fingerprint]
}

func (g *Graph) addNode(node TrustNode) {
	fingerprint := node.Fingerprint()
	if _, exists := g.nodes[fingerprint]; exists {
		return
	}
	g.nodes[fingerprint] = node
	g.nodeOrder = append(g.nodeOrder, fingerprint)
}

func (g *Graph) addEdge(edge TrustEdge) {
	if edge.From == edge.To {
		// self-signatures attest ownership, not trust
		return
	}
	for _, existing := range g.edgesFrom[edge.From] {
		if existing.To == edge.To {
			// duplicate (from, to): first seen wins
			return
		}
	}
	g.edges = append(g.edges, edge)
	g.edgesFrom[edge.From] = append(g.edgesFrom[edge.From], edge)
	g.edgesTo[edge.To] = append(g.edgesTo[edge.To], edge)
}

// resolveIssuer finds the graph node the certification was issued by. A
// full issuer fingerprint resolves exactly; a bare key ID resolves only if
// exactly one known key matches, since key IDs can collide.
func (g *Graph) resolveIssuer(cert certification.Certification) (fpr.Fingerprint, bool) {
	if cert.IssuerFingerprint.IsSet() {
		_, found := g.nodes[cert.IssuerFingerprint]
		return cert.IssuerFingerprint, found
	}

	var matches []fpr.Fingerprint
	for _, fingerprint := range g.nodeOrder {
		if fingerprint.MatchesKeyID(cert.IssuerKeyID) {
			matches = append(matches, fingerprint)
		}
	}
	if len(matches) != 1 {
		return fpr.Fingerprint{}, false
	}
	return matches[0], true
}
