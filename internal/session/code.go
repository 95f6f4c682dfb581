// internal/session/code.go
package session

import "math/rand"

// CodeAlphabet is the character set session codes are drawn from.
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the fixed length of a session code.
const CodeLength = 6

// NewCode returns a random candidate session code. Uniqueness is not
// guaranteed here; the store's atomic create is the authority, and the
// coordinator regenerates on collision.
func NewCode() string {
	b := make([]byte, CodeLength)
	for i := range b {
		b[i] = CodeAlphabet[rand.Intn(len(CodeAlphabet))]
	}
	return string(b)
}
