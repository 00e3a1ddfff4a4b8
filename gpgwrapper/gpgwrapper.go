// gpgwrapper calls out to the system GnuPG binary

package gpgwrapper

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	fpr "github.com/fluidkeys/weboftrust/fingerprint"
)

const GpgPath = "gpg2"

const (
	publicHeader    = "-----BEGIN PGP PUBLIC KEY BLOCK-----"
	publicFooter    = "-----END PGP PUBLIC KEY BLOCK-----"
	nothingExported = "WARNING: nothing exported"
)

var ErrNoVersionStringFound = errors.New("version string not found in GPG output")

func ErrProblemExecutingGPG(gpgStdout string, arguments ...string) error {
	return fmt.Errorf("error executing GPG with %s: %s", arguments, gpgStdout)
}

var VersionRegexp = regexp.MustCompile(`gpg \(GnuPG.*\) (\d+\.\d+\.\d+)`)

type GnuPG struct {
	homeDir string
}

func (g *GnuPG) Version() (string, error) {
	// Returns the GnuPG version string, e.g. "1.2.3"

	outString, err := g.run("--version")

	if err != nil {
		err = fmt.Errorf("problem running GPG, %v", err)
		return "", err
	}

	version, err := parseVersionString(outString)

	if err != nil {
		err = fmt.Errorf("problem parsing version string, %v", err)
		return "", err
	}

	return version, nil
}

// Checks whether GPG is working
func (g *GnuPG) IsWorking() bool {
	_, err := g.Version()

	if err != nil {
		return false
	}

	return true
}

// ListPublicKeys lists the public keys in the GnuPG keyring, including
// revoked and expired ones: the trust engine wants to see those too, so it
// can warn about them rather than silently skip them.
func (g *GnuPG) ListPublicKeys() ([]KeyListing, error) {
	args := []string{
		"--with-colons",
		"--with-fingerprint",
		"--fixed-list-mode",
		"--list-keys",
	}
	outString, err := g.run(args...)
	if err != nil {
		return nil, fmt.Errorf("error running 'gpg %s': %v", strings.Join(args, " "), err)
	}

	return parseListPublicKeys(outString)
}

// ExportPublicKey returns 1 ascii armored public key for the given
// fingerprint. The export deliberately isn't `export-minimal`: that would
// strip other people's certification signatures, which are exactly what the
// trust engine feeds on.
func (g *GnuPG) ExportPublicKey(fingerprint fpr.Fingerprint) (string, error) {
	args := []string{
		"--armor",
		"--export",
		fingerprint.Hex(),
	}

	stdout, err := g.run(args...)
	if err != nil {
		return "", err
	}

	if strings.Contains(stdout, nothingExported) {
		return "", fmt.Errorf("GnuPG returned 'nothing exported' for fingerprint '%s'", fingerprint)
	}

	numHeaders := strings.Count(stdout, publicHeader)
	numFooters := strings.Count(stdout, publicFooter)

	if numHeaders != 1 || numFooters != 1 {
		return "", fmt.Errorf(
			"Expected exactly 1 ascii-armored public key, got %d headers and %d footers",
			numHeaders, numFooters)
	}

	return stdout, nil
}

func parseVersionString(gpgStdout string) (string, error) {
	match := VersionRegexp.FindStringSubmatch(gpgStdout)

	if match == nil {
		return "", ErrNoVersionStringFound
	}

	return match[1], nil
}

func (g *GnuPG) run(arguments ...string) (string, error) {
	fullArguments := g.prependGlobalArguments(arguments...)
	out, err := exec.Command(GpgPath, fullArguments...).CombinedOutput()

	if err != nil {
		error := ErrProblemExecutingGPG(string(out), fullArguments...)
		return "", error
	}
	outString := string(out)
	return outString, nil
}

func (g *GnuPG) prependGlobalArguments(arguments ...string) []string {
	var globalArguments = []string{
		"--keyid-format", "0xlong",
		"--batch",
		"--no-tty",
	}
	if g.homeDir != "" {
		homeDirArgs := []string{"--homedir", g.homeDir}
		globalArguments = append(globalArguments, homeDirArgs...)
	}
	return append(globalArguments, arguments...)
}
