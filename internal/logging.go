package internal

import (
	"io"
	"log"
	"os"
)

// InitLogging routes the standard logger to stderr, or discards it unless
// verbose is set. Results go to stdout, so log lines never mix with them.
func InitLogging(verbose bool) {
	var w io.Writer = os.Stderr
	if !verbose {
		w = io.Discard
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
