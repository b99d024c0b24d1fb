package helpers

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Sha256String calculates the SHA256 hash of a given string and returns its string representation.
func Sha256String(input string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(input)))
}

// ImportHash is the hash identifying an imported statement line. The parts
// are joined with "|" before hashing, so the order of the parts matters.
func ImportHash(parts ...string) string {
	return Sha256String(strings.Join(parts, "|"))
}
