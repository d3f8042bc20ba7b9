// Package teamcode generates the short join tokens printed on team pages.
// Codes are sampled from crypto/rand so they are not guessable from earlier
// codes; uniqueness per hackathon is enforced by the store's unique index,
// with the caller retrying on collision.
package teamcode

import (
	"crypto/rand"
	"fmt"
)

// Length is the fixed code length.
const Length = 6

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Bytes at or above this would wrap unevenly onto the 62-character
// alphabet, so they are rejected and redrawn.
const rejectAbove = byte(256 - 256%len(alphabet))

// Generate returns a new random code of Length characters, uniformly
// distributed over the alphabet.
func Generate() (string, error) {
	out := make([]byte, 0, Length)
	buf := make([]byte, Length)
	for len(out) < Length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("teamcode: %w", err)
		}
		for _, b := range buf {
			if b >= rejectAbove {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Length {
				break
			}
		}
	}
	return string(out), nil
}
