// Package internal carries process-wide setup shared by the commands.
package internal

import (
	"log"
	"os"
)

// InitLogging routes the standard logger to stdout with timestamps
// precise enough to line up log entries with feed header timestamps.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
