package teamcode

import (
	"strings"
	"testing"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if len(code) != Length {
			t.Fatalf("code %q: got length %d, want %d", code, len(code), Length)
		}
		for _, r := range code {
			if !strings.ContainsRune(alphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
	}
}

// A naive byte-mod-62 mapping overweights the first 256%62 characters of
// the alphabet by a quarter. With 6000 expected draws per character, a
// ±10% band is far outside normal variation but well inside that skew.
func TestGenerate_Uniform(t *testing.T) {
	const codes = 62000
	counts := make(map[rune]int, len(alphabet))
	for i := 0; i < codes; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		for _, r := range code {
			counts[r]++
		}
	}

	expected := codes * Length / len(alphabet)
	for _, r := range alphabet {
		n := counts[r]
		if n < expected*9/10 || n > expected*11/10 {
			t.Errorf("character %q: got %d draws, expected about %d", r, n, expected)
		}
	}
}

func TestGenerate_NotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("expected varied codes, got a single value")
	}
}
