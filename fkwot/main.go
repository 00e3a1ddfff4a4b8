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
	"os"
	"strings"

	docopt "github.com/docopt/docopt-go"

	"github.com/fluidkeys/weboftrust/colour"
	"github.com/fluidkeys/weboftrust/config"
	fpr "github.com/fluidkeys/weboftrust/fingerprint"
	"github.com/fluidkeys/weboftrust/gpgwrapper"
	"github.com/fluidkeys/weboftrust/keystore"
	"github.com/fluidkeys/weboftrust/out"
	"github.com/fluidkeys/weboftrust/wot"
)

const Version = "0.1.0"

var (
	gpg          gpgwrapper.GnuPG
	wotDirectory string
	Config       config.Config
	store        *keystore.RosterStore
	web          *wot.Web
)

type exitCode = int

// Main is the main entry point to the `wot` command.
func Main() exitCode {
	usage := fmt.Sprintf(`Fluidkeys WebOfTrust %s

Configuration file: %s
          Log file: %s

Usage:
	wot status [--cron-output]
	wot paths <fingerprint>
	wot graph [--dot]
	wot key list
	wot key from-gpg <fingerprint>
	wot key trust <fingerprint> <level>

Options:
	-h --help         Show this screen
	   --dot          Output the trust graph in graphviz dot format
	   --cron-output  Only print output when a key carries warnings`,
		Version,
		Config.GetFilename(),
		out.GetLogFilename(),
	)

	log.Print("$ " + strings.Join(os.Args, " "))
	args, _ := docopt.ParseDoc(usage)

	cronOutput, err := args.Bool("--cron-output")
	if err != nil {
		log.Panic(err)
	}
	if Config.CronOutput() {
		cronOutput = true
	}

	if cronOutput {
		out.SetOutputToBuffer()
	}
	var code exitCode

	switch getSubcommand(args, []string{"status", "paths", "graph", "key"}) {
	case "status":
		code = statusSubcommand(args)

	case "paths":
		code = pathsSubcommand(args)

	case "graph":
		code = graphSubcommand(args)

	case "key":
		code = keySubcommand(args)

	default:
		out.Print("unhandled subcommand")
		code = 1
	}

	if cronOutput && code != 0 {
		// cron treats no output to stdout as success. if a command outputs
		// anything it treats this as a failure and typically sends an email.
		// so, when running in cron mode, only print anything to terminal in
		// the event of an error, eg a key carrying warnings.
		out.PrintTheBuffer()
	}

	return code
}

func getSubcommand(args docopt.Opts, subcommands []string) string {
	for _, subcommand := range subcommands {
		value, err := args.Bool(subcommand)
		if err != nil {
			log.Panic(err)
		}
		if value {
			return subcommand
		}
	}
	log.Panicf("expected to find one of these subcommands: %v", subcommands)
	panic(nil)
}

func keySubcommand(args docopt.Opts) exitCode {
	switch getSubcommand(args, []string{
		"list", "from-gpg", "trust",
	}) {
	case "list":
		return keyList()

	case "from-gpg":
		fingerprint, code := parseFingerprintArg(args)
		if code != 0 {
			return code
		}
		return keyFromGpg(fingerprint)

	case "trust":
		fingerprint, code := parseFingerprintArg(args)
		if code != 0 {
			return code
		}
		level, err := args.String("<level>")
		if err != nil {
			log.Panic(err)
		}
		return keyTrust(fingerprint, level)
	}
	log.Panicf("keySubcommand got unexpected arguments: %v", args)
	panic(nil)
}

// parseFingerprintArg parses the <fingerprint> argument, printing a failure
// and returning a non-zero exit code if it isn't a valid fingerprint.
func parseFingerprintArg(args docopt.Opts) (fpr.Fingerprint, exitCode) {
	fingerprintString, err := args.String("<fingerprint>")
	if err != nil {
		log.Panic(err)
	}

	fingerprint, err := fpr.Parse(fingerprintString)
	if err != nil {
		printFailed(fmt.Sprintf("'%s' isn't a valid OpenPGP fingerprint", fingerprintString))
		return fpr.Fingerprint{}, 1
	}
	return fingerprint, 0
}

func printSuccess(message string) {
	out.Print(colour.Success("▸   " + message + "\n"))
}

func printFailed(message string) {
	out.Print(colour.Failure("▸   " + message + "\n"))
}
