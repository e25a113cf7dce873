package config

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ParseSeed turns a seed setting into a generator seed. Decimal numbers are
// used as-is; any other text is a seed phrase and is hashed, so "nebula"
// always produces the same field.
func ParseSeed(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, true
	}
	return xxhash.Sum64String(s), true
}

func getEnvAsSeedOrDefault(key string, defaultValue uint64) uint64 {
	if seed, ok := ParseSeed(getEnvOrDefault(key, "")); ok {
		return seed
	}
	return defaultValue
}
