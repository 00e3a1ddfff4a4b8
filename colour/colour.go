package colour

import (
	"regexp"

	"github.com/fluidkeys/weboftrust/trustlevel"
)

func Success(message string) string {
	return green(message)
}

func Info(message string) string {
	return bright + blue(message)
}

func Warning(message string) string {
	return yellow(message)
}

func Failure(message string) string {
	return red(message)
}

func Disabled(message string) string {
	return dim + message + reset
}

// TrustLevel colours the name of a trust level consistently across all
// command output: failures red, marginal yellow, full and ultimate green.
func TrustLevel(level trustlevel.Level) string {
	name := level.String()

	switch level {
	case trustlevel.Never:
		return Failure(name)
	case trustlevel.Marginal:
		return Warning(name)
	case trustlevel.Full, trustlevel.Ultimate:
		return Success(name)
	}
	return Disabled(name)
}

// TableHeader renders a table column heading.
func TableHeader(message string) string {
	return bright + message + reset
}

// Cmd renders an example command line for the user to run.
func Cmd(message string) string {
	return bright + message + reset
}

// StripAllColourCodes removes all ANSI colour codes from the given string,
// so table columns line up on their visible widths.
func StripAllColourCodes(message string) string {
	return colourCodeRegexp.ReplaceAllString(message, "")
}

var colourCodeRegexp = regexp.MustCompile(`\x1b\[\d+m`)

func green(message string) string   { return fgGreen + message + reset }
func yellow(message string) string  { return fgYellow + message + reset }
func red(message string) string     { return fgRed + message + reset }
func blue(message string) string    { return fgBlue + message + reset }
