package livequiz

import "math/rand"

const (
	// CodeAlphabet is the default join-code alphabet. Codes are compared
	// case-insensitively, so only uppercase letters are generated.
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// CodeLength is the default join-code length.
	CodeLength = 6
)

// GenerateCode draws a join code of the given length from the alphabet.
// Randomness is injected so tests can use a seeded source. math/rand is
// deliberate: join codes gate discovery of a short-lived session, not
// anything secret.
func GenerateCode(alphabet string, length int, rng *rand.Rand) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}
