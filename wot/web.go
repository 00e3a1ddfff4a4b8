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

package wot

import (
	"log"
	"time"

	fpr "github.com/fluidkeys/weboftrust/fingerprint"
	"github.com/fluidkeys/weboftrust/keystore"
	"github.com/fluidkeys/weboftrust/status"
	"github.com/fluidkeys/weboftrust/trustlevel"
)

// Web answers trust queries against a keystore. Each query takes one
// snapshot of the store's keys and builds a fresh graph over it: nothing is
// cached, because the store can add, delete or re-trust keys at any time
// and correctness depends on snapshot consistency. Callers needing stable
// results across several queries should snapshot the store themselves.
type Web struct {
	store keystore.Store
}

// NewWeb returns a Web reading keys from the given store.
func NewWeb(store keystore.Store) *Web {
	return &Web{store: store}
}

// BuildTrustGraph builds the trust graph for the store's current keys, for
// example for visualization.
func (w *Web) BuildTrustGraph() (*Graph, error) {
	return BuildGraph(w.store.AllKeys())
}

// FindTrustPaths returns the shortest certification path from each anchor
// key to the target.
func (w *Web) FindTrustPaths(target fpr.Fingerprint) []TrustPath {
	graph, err := w.BuildTrustGraph()
	if err != nil {
		log.Printf("error building trust graph: %v", err)
		return nil
	}
	return graph.FindTrustPaths(target)
}

// FindShortestPath returns the shortest certification path between the two
// keys, or nil if none exists.
func (w *Web) FindShortestPath(source fpr.Fingerprint, target fpr.Fingerprint) *TrustPath {
	graph, err := w.BuildTrustGraph()
	if err != nil {
		log.Printf("error building trust graph: %v", err)
		return nil
	}
	return graph.FindShortestPath(source, target)
}

// HasValidTrustPath reports whether any anchor key has a certification path
// to the given key.
func (w *Web) HasValidTrustPath(target fpr.Fingerprint) bool {
	graph, err := w.BuildTrustGraph()
	if err != nil {
		log.Printf("error building trust graph: %v", err)
		return false
	}
	return graph.HasValidTrustPath(target)
}

// CalculateEffectiveTrust returns the effective trust classification of the
// given key. Trust computation is advisory: it always produces an answer,
// falling back to unknown rather than failing.
func (w *Web) CalculateEffectiveTrust(target fpr.Fingerprint) trustlevel.Level {
	graph, err := w.BuildTrustGraph()
	if err != nil {
		log.Printf("error building trust graph: %v", err)
		return trustlevel.Unknown
	}
	return graph.CalculateEffectiveTrust(target)
}

// ConnectedKeys returns the keys directly connected to the given key in the
// trust graph: its signers followed by its signees, without duplicates.
func (w *Web) ConnectedKeys(target fpr.Fingerprint) []keystore.Key {
	graph, err := w.BuildTrustGraph()
	if err != nil {
		log.Printf("error building trust graph: %v", err)
		return nil
	}

	seen := map[fpr.Fingerprint]bool{}
	var connected []keystore.Key

	for _, edge := range graph.IncomingEdges(target) {
		if node, found := graph.Node(edge.From); found && !seen[edge.From] {
			seen[edge.From] = true
			connected = append(connected, node.Key)
		}
	}
	for _, edge := range graph.OutgoingEdges(target) {
		if node, found := graph.Node(edge.To); found && !seen[edge.To] {
			seen[edge.To] = true
			connected = append(connected, node.Key)
		}
	}
	return connected
}

// CertifyingKeys returns the keys whose trust level allows them to vouch
// for other keys: those marked full or ultimate.
func (w *Web) CertifyingKeys() []keystore.Key {
	var certifiers []keystore.Key
	for _, key := range w.store.AllKeys() {
		if key.TrustLevel.CanCertify() {
			certifiers = append(certifiers, key)
		}
	}
	return certifiers
}

// TrustWarning returns the most severe warning for the given key, or false
// if there's nothing to warn about. No warning at all is the legitimate
// outcome for a fully trusted, valid key.
func (w *Web) TrustWarning(key keystore.Key) (string, bool) {
	effectiveTrust := w.CalculateEffectiveTrust(key.Fingerprint)

	warnings := status.GetKeyWarnings(key, effectiveTrust, time.Now())
	if len(warnings) == 0 {
		return "", false
	}
	return warnings[0].String(), true
}

// IsValidForEncryption returns whether the key is usable as an encryption
// target.
func (w *Web) IsValidForEncryption(key keystore.Key) bool {
	return status.IsValidForEncryption(key, time.Now())
}
