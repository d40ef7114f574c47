// Package env reads server settings from the environment, falling back to
// the flag defaults when a variable is unset or blank.
package env

import (
	"os"
	"strings"
	"time"
)

func lookup(key string) (string, bool) {
	val, ok := os.LookupEnv(key)
	val = strings.TrimSpace(val)
	return val, ok && val != ""
}

// Str returns the trimmed value of key, or fallback
func Str(key, fallback string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return fallback
}

// Duration parses key with time.ParseDuration, returning fallback if unset,
// blank or invalid
func Duration(key string, fallback time.Duration) time.Duration {
	val, ok := lookup(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}
