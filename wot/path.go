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
	fpr "github.com/fluidkeys/weboftrust/fingerprint"
	"github.com/fluidkeys/weboftrust/trustlevel"
)

// TrustPath is an ordered certification chain from an anchor key to a
// target key: Nodes from first to last, with Edges the parallel
// certifications connecting them (always one shorter than Nodes).
type TrustPath struct {
	Nodes []TrustNode
	Edges []TrustEdge
}

// Length is the number of nodes on the path. A trivial path (a key to
// itself) has length 1.
func (p TrustPath) Length() int {
	return len(p.Nodes)
}

// EffectiveTrust is the path's weakest link: the minimum trust level across
// every node from anchor to target inclusive. A certification chain is only
// as strong as its least trusted certifier.
func (p TrustPath) EffectiveTrust() trustlevel.Level {
	if len(p.Nodes) == 0 {
		return trustlevel.Unknown
	}

	effective := p.Nodes[0].TrustLevel
	for _, node := range p.Nodes[1:] {
		effective = trustlevel.Min(effective, node.TrustLevel)
	}
	return effective
}

// IsValid reports whether the path is rooted at a locally-anchored
// (ultimate) key. A path not rooted at an anchor carries no authority and
// is excluded from trust aggregation even if structurally present.
func (p TrustPath) IsValid() bool {
	return len(p.Nodes) > 0 && p.Nodes[0].TrustLevel == trustlevel.Ultimate
}

// FindShortestPath runs a breadth-first search from source and returns the
// shortest certification path to target, or nil if target is unreachable
// or either key is unknown.
//
// When source == target it returns the trivial one-node, zero-edge path
// unconditionally; whether that path carries authority is judged by
// TrustPath.IsValid, not here. Edges are examined in graph insertion order,
// so the path chosen between equal-length candidates is deterministic.
func (g *Graph) FindShortestPath(source fpr.Fingerprint, target fpr.Fingerprint) *TrustPath {
	sourceNode, found := g.Node(source)
	if !found {
		return nil
	}
	if _, found := g.Node(target); !found {
		return nil
	}

	if source == target {
		return &TrustPath{Nodes: []TrustNode{sourceNode}}
	}

	visited := map[fpr.Fingerprint]bool{source: true}
	queue := []TrustPath{
		{Nodes: []TrustNode{sourceNode}},
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		tail := current.Nodes[len(current.Nodes)-1]
		for _, edge := range g.OutgoingEdges(tail.Fingerprint()) {
			if visited[edge.To] {
				continue
			}
			visited[edge.To] = true

			nextNode, found := g.Node(edge.To)
			if !found {
				continue
			}
			extended := TrustPath{
				Nodes: appendNode(current.Nodes, nextNode),
				Edges: appendEdge(current.Edges, edge),
			}
			if edge.To == target {
				return &extended
			}
			queue = append(queue, extended)
		}
	}

	return nil
}

// FindTrustPaths returns, for every anchor key (trust level ultimate) in
// the graph, the shortest certification path from that anchor to target.
// This is at most one path per anchor, not an exhaustive enumeration of all
// simple paths. Paths are returned in the anchors' graph insertion order.
func (g *Graph) FindTrustPaths(target fpr.Fingerprint) []TrustPath {
	var paths []TrustPath
	for _, fingerprint := range g.nodeOrder {
		anchor := g.nodes[fingerprint]
		if anchor.TrustLevel != trustlevel.Ultimate {
			continue
		}
		if path := g.FindShortestPath(fingerprint, target); path != nil {
			paths = append(paths, *path)
		}
	}
	return paths
}

// appendNode copies on append so paths sharing a BFS prefix can't alias
// each other's backing arrays.
func appendNode(nodes []TrustNode, node TrustNode) []TrustNode {
	extended := make([]TrustNode, len(nodes), len(nodes)+1)
	copy(extended, nodes)
	return append(extended, node)
}

func appendEdge(edges []TrustEdge, edge TrustEdge) []TrustEdge {
	extended := make([]TrustEdge, len(edges), len(edges)+1)
	copy(extended, edges)
	return append(extended, edge)
}
