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

package fkwot

import (
	"fmt"
	"log"
	"strings"

	docopt "github.com/docopt/docopt-go"

	"github.com/fluidkeys/weboftrust/out"
	"github.com/fluidkeys/weboftrust/wot"
)

// graphSubcommand dumps the trust graph: every key as a node and every
// certification as an edge. With --dot it outputs graphviz dot, ready for
// `wot graph --dot | dot -Tpng -o web.png`.
func graphSubcommand(args docopt.Opts) exitCode {
	dot, err := args.Bool("--dot")
	if err != nil {
		log.Panic(err)
	}

	graph, err := web.BuildTrustGraph()
	if err != nil {
		printFailed(fmt.Sprintf("Failed to build the trust graph: %v", err))
		return 1
	}

	if dot {
		out.Print(formatGraphAsDot(graph))
	} else {
		out.Print(formatGraph(graph))
	}
	return 0
}

func formatGraph(graph *wot.Graph) string {
	output := "\n"

	nodes := graph.Nodes()
	output += fmt.Sprintf("%d keys:\n", len(nodes))
	for _, node := range nodes {
		output += fmt.Sprintf("  %s  %s (%s)\n",
			node.Key.Fingerprint.Hex(), node.Key.PrimaryUserID(), node.TrustLevel)
	}

	edges := graph.Edges()
	output += fmt.Sprintf("\n%d certifications:\n", len(edges))
	for _, edge := range edges {
		output += fmt.Sprintf("  %s → %s  over %s\n",
			edge.From.Hex(), edge.To.Hex(), edge.UserID)
	}

	return output + "\n"
}

func formatGraphAsDot(graph *wot.Graph) string {
	output := "digraph weboftrust {\n"
	output += "  rankdir=LR;\n"
	output += "  node [shape=box];\n"

	for _, node := range graph.Nodes() {
		output += fmt.Sprintf("  \"%s\" [label=\"%s\\n%s\"];\n",
			node.Key.Fingerprint.Hex(),
			escapeDotLabel(node.Key.PrimaryUserID()),
			node.TrustLevel)
	}

	for _, edge := range graph.Edges() {
		output += fmt.Sprintf("  \"%s\" -> \"%s\";\n", edge.From.Hex(), edge.To.Hex())
	}

	return output + "}\n"
}

func escapeDotLabel(label string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(label)
}
