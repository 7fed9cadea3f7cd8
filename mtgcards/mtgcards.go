// Package mtgcards parses the two irregular mini-languages found in scraped
// card listings, the type line and the mana cost token string, and expands
// multi-faced listings into one record per face.
package mtgcards

import (
	"errors"
	"io"
	"log"
)

var ErrMalformedSplit = errors.New("malformed split card listing")

var logger = log.New(io.Discard, "", log.LstdFlags)

// SetGlobalLogger sets the destination of the debug output produced
// while parsing. Discarded by default.
func SetGlobalLogger(userLogger *log.Logger) {
	logger = userLogger
}
