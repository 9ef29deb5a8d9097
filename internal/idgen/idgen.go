// Package idgen generates identifiers for canvas elements, diagrams and messages.
package idgen

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	nanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the character set of the random suffix.
var Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Length is the number of random characters in the suffix.
var Length = 9

// Element returns "<prefix>_<unixmillis>_<random>". Unique within a session;
// no guarantee across sessions.
func Element(prefix string) string {
	suffix, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		// crypto/rand failure; fall back to the nanosecond clock.
		suffix = fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}

// Node returns a fresh node id.
func Node() string { return Element("node") }

// Edge returns a fresh edge id.
func Edge() string { return Element("edge") }

// TimeOrdered returns a UUIDv7, whose leading bits encode the creation time.
func TimeOrdered() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
