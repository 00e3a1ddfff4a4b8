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
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/fluidkeys/weboftrust/config"
	"github.com/fluidkeys/weboftrust/gpgwrapper"
	"github.com/fluidkeys/weboftrust/keystore"
	"github.com/fluidkeys/weboftrust/out"
	"github.com/fluidkeys/weboftrust/wot"
)

func init() {
	initDirectory()
	initOutput()
	initConfig()
	initKeystore()
	initGpgWrapper()
	initWeb()
}

func initDirectory() {
	var err error
	wotDirectory, err = getWotDirectory()
	if err != nil {
		fmt.Printf("Failed to get weboftrust directory: %v\n", err)
		os.Exit(1)
	}
}

func initOutput() {
	if err := out.SetupLogFile(wotDirectory); err != nil {
		log.Panic(err)
	}
}

func initConfig() {
	configPointer, err := config.Load(wotDirectory)
	if err != nil {
		fmt.Printf("Failed to open config file: %v\n", err)
		os.Exit(2)
	} else {
		Config = *configPointer
	}
}

func initKeystore() {
	directory := Config.KeystoreDirectory()
	if directory == "" {
		directory = wotDirectory
	}

	storePointer, err := keystore.Load(directory)
	if err != nil {
		fmt.Printf("Failed to load keystore: %v\n", err)
		os.Exit(3)
	} else {
		store = storePointer
	}
}

func initGpgWrapper() {
	gpg = gpgwrapper.GnuPG{}
}

func initWeb() {
	web = wot.NewWeb(store)
}

func getWotDirectory() (string, error) {
	dirFromEnv := os.Getenv("FLUIDKEYS_WOT_DIR")

	if dirFromEnv != "" {
		return dirFromEnv, nil
	}
	return makeWotHomeDirectory()
}

func makeWotHomeDirectory() (string, error) {
	homeDirectory, err := homedir.Dir()

	if err != nil {
		return "", err
	}

	wotDir := filepath.Join(homeDirectory, ".config", "fluidkeys", "weboftrust")
	err = os.MkdirAll(wotDir, 0700)
	if err != nil {
		return "", err
	}

	return wotDir, nil
}
