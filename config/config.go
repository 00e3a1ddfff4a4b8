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

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"
)

// Load attempts to load `config.toml` from inside the given directory.
// If the file is not present, Load will try to create it and will return an
// error if it can't.
// If the file is present but doesn't parse correctly, it will return an error.
func Load(directory string) (*Config, error) {
	return load(directory, &fileFunctionsPassthrough{})
}

func load(directory string, helper fileFunctionsInterface) (*Config, error) {
	configFilename := path.Join(directory, "config.toml")

	if _, err := helper.OsStat(configFilename); os.IsNotExist(err) {
		// file does not exist, write out default config file
		err = helper.OsWriteFile(configFilename, []byte(defaultConfigFile), 0600)

		if err != nil {
			return nil, fmt.Errorf("%s didn't exist and failed to create it: %v", configFilename, err)
		}
	}

	f, err := helper.OsOpen(configFilename)

	if err != nil {
		return nil, fmt.Errorf("error reading %s: %v", configFilename, err)
	}
	config, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %v", configFilename, err)
	}
	config.filename = configFilename
	return config, nil
}

type Config struct {
	parsedConfig   tomlConfig
	parsedMetadata toml.MetaData

	filename string
}

func (c *Config) GetFilename() string {
	return c.filename
}

// KeystoreDirectory returns the directory holding keystore.toml, or an empty
// string meaning "use the default directory".
func (c *Config) KeystoreDirectory() string {
	return c.parsedConfig.KeystoreDirectory
}

// CronOutput returns whether output should be formatted for cron: no colour
// codes, and the output buffer is only printed when a key carries warnings.
func (c *Config) CronOutput() bool {
	if !c.parsedMetadata.IsDefined("cron_output") {
		return defaultCronOutput
	}
	return c.parsedConfig.CronOutput
}

// SetCronOutput saves whether output should be formatted for cron.
func (c *Config) SetCronOutput(value bool) error {
	c.parsedConfig.CronOutput = value
	return c.save()
}

func (c *Config) save() error {
	if c.filename == "" {
		return fmt.Errorf("can't save, empty config filename")
	}
	configContent := bytes.NewBuffer(nil)
	err := c.serialize(configContent)
	if err != nil {
		return err
	}
	return atomic.WriteFile(c.filename, configContent)
}

func parse(r io.Reader) (*Config, error) {
	var parsedConfig tomlConfig
	metadata, err := toml.NewDecoder(r).Decode(&parsedConfig)

	if err != nil {
		return nil, fmt.Errorf("error decoding toml: %v", err)
	}

	if len(metadata.Undecoded()) > 0 {
		// found config variables that we don't know how to match to
		// the tomlConfig structure
		return nil, fmt.Errorf("encountered unrecognised config keys: %v", metadata.Undecoded())
	}

	config := Config{
		parsedConfig:   parsedConfig,
		parsedMetadata: metadata,
	}
	return &config, nil
}

func (c *Config) serialize(w io.Writer) error {
	w.Write([]byte(defaultConfigFile))
	encoder := toml.NewEncoder(w)
	return encoder.Encode(c.parsedConfig)
}

type tomlConfig struct {
	KeystoreDirectory string `toml:"keystore_directory"`
	CronOutput        bool   `toml:"cron_output"`
}

const defaultCronOutput = false

const defaultConfigFile string = `# Fluidkeys configuration file for 'wot' command
#
# # keystore_directory overrides where 'wot' looks for keystore.toml.
# # Leave unset to use the default directory.
#
# keystore_directory = "/path/to/directory"
#
# # cron_output strips colour codes and only prints anything when a key
# # carries warnings, so cron only emails you when something needs doing.
#
# cron_output = false

`
