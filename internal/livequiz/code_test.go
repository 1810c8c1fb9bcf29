package livequiz

import (
	"math/rand"
	"strings"
	"testing"
)

func TestGenerateCodeLengthAndAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		code := GenerateCode(CodeAlphabet, CodeLength, rng)
		if len(code) != CodeLength {
			t.Fatalf("code %q: got length %d, want %d", code, len(code), CodeLength)
		}
		for _, ch := range code {
			if !strings.ContainsRune(CodeAlphabet, ch) {
				t.Fatalf("code %q contains %q outside alphabet", code, ch)
			}
		}
	}
}

func TestGenerateCodeDeterministicWithSeed(t *testing.T) {
	a := GenerateCode(CodeAlphabet, CodeLength, rand.New(rand.NewSource(42)))
	b := GenerateCode(CodeAlphabet, CodeLength, rand.New(rand.NewSource(42)))
	if a != b {
		t.Fatalf("same seed produced %q and %q", a, b)
	}

	c := GenerateCode(CodeAlphabet, CodeLength, rand.New(rand.NewSource(43)))
	if a == c {
		t.Fatalf("different seeds both produced %q", a)
	}
}

func TestGenerateCodeCustomAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	code := GenerateCode("AB", 10, rng)
	if len(code) != 10 {
		t.Fatalf("got length %d, want 10", len(code))
	}
	for _, ch := range code {
		if ch != 'A' && ch != 'B' {
			t.Fatalf("code %q escaped its alphabet", code)
		}
	}
}
