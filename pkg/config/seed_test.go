package config

import (
	"testing"

	"github.com/cespare/xxhash/v2"
)

func TestParseSeed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint64
		ok    bool
	}{
		{"decimal", "1234", 1234, true},
		{"padded_decimal", "  42 ", 42, true},
		{"phrase", "nebula", xxhash.Sum64String("nebula"), true},
		{"negative_is_phrase", "-3", xxhash.Sum64String("-3"), true},
		{"empty", "", 0, false},
		{"blank", "   ", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSeed(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseSeed(%q) = %d, %v; want %d, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseSeed_PhraseIsStable(t *testing.T) {
	a, _ := ParseSeed("outer belt")
	b, _ := ParseSeed("outer belt")
	c, _ := ParseSeed("inner belt")
	if a != b {
		t.Errorf("same phrase gave %d and %d", a, b)
	}
	if a == c {
		t.Errorf("different phrases collided on %d", a)
	}
}

func TestLoadConfigFromEnv_SeedPhrase(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSeed, "nebula")

	env, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() failed: %v", err)
	}
	if want := xxhash.Sum64String("nebula"); env.Seed != want {
		t.Errorf("Expected Seed %d, got %d", want, env.Seed)
	}
}
