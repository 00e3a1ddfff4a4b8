package out

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
)

var outputter outputterInterface = &terminalOutputter{}

var logFilename string

// Print sends the message to the current outputter: straight to the terminal
// normally, or into a buffer when running with --cron-output.
func Print(message string) {
	outputter.print(message)
}

// SetOutputToTerminal directs subsequent Print calls straight to stdout.
func SetOutputToTerminal() {
	outputter = &terminalOutputter{}
}

// SetOutputToBuffer holds back subsequent Print calls until PrintTheBuffer
// is called. Used when running from cron, where output should only appear
// if something actually went wrong.
func SetOutputToBuffer() {
	outputter = &bufferOutputter{}
}

// PrintTheBuffer prints anything accumulated by SetOutputToBuffer.
func PrintTheBuffer() {
	outputter.printTheBuffer()
}

// SetupLogFile points the stdlib logger at a log file inside the given
// directory, creating the directory if necessary.
func SetupLogFile(directory string) error {
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("failed to make directory '%s': %v", directory, err)
	}

	logFilename = filepath.Join(directory, "log")
	logFile, err := os.OpenFile(logFilename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open '%s': %v", logFilename, err)
	}
	log.SetOutput(logFile)
	return nil
}

// GetLogFilename returns the file the stdlib logger writes to, or empty if
// SetupLogFile hasn't been called.
func GetLogFilename() string {
	return logFilename
}

// SuppressLogging silences the stdlib logger. Used in tests.
func SuppressLogging() {
	log.SetOutput(ioutil.Discard)
}

type outputterInterface interface {
	print(message string)
	printTheBuffer()
}

type terminalOutputter struct{}

func (o *terminalOutputter) print(message string) {
	fmt.Print(message)
}

func (o *terminalOutputter) printTheBuffer() {}

type bufferOutputter struct {
	buffer string
}

func (o *bufferOutputter) print(message string) {
	o.buffer += message
}

func (o *bufferOutputter) printTheBuffer() {
	fmt.Print(o.buffer)
}
