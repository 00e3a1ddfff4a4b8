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

package main

import (
	"os"

	"github.com/fluidkeys/weboftrust/fkwot"
)

func main() {
	os.Exit(fkwot.Main())
}
