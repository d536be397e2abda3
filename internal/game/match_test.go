package game

import (
	"strings"
	"testing"
)

func TestGenerateMatchID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateMatchID()
		if !strings.HasPrefix(id, "match_") {
			t.Fatalf("id %q missing match_ prefix", id)
		}
		if len(id) == len("match_") {
			t.Fatalf("id %q has an empty token", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}

func TestGenerateTokenLength(t *testing.T) {
	if got := generateToken(8); len(got) != 16 {
		t.Errorf("token length = %d, want 16 hex chars for 8 bytes", len(got))
	}
}
