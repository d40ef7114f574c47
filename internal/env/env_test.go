package env

import (
	"testing"
	"time"
)

func TestStr(t *testing.T) {
	t.Setenv("WER_TEST_ADDR", "")
	if got := Str("WER_TEST_ADDR", ":8080"); got != ":8080" {
		t.Fatalf("Expected fallback. Received %q", got)
	}
	t.Setenv("WER_TEST_ADDR", ":9000")
	if got := Str("WER_TEST_ADDR", ":8080"); got != ":9000" {
		t.Fatalf("Expected :9000. Received %q", got)
	}
	t.Setenv("WER_TEST_ADDR", "  :9001\n")
	if got := Str("WER_TEST_ADDR", ":8080"); got != ":9001" {
		t.Fatalf("Expected trimmed :9001. Received %q", got)
	}
	t.Setenv("WER_TEST_ADDR", "   ")
	if got := Str("WER_TEST_ADDR", ":8080"); got != ":8080" {
		t.Fatalf("Expected fallback for blank value. Received %q", got)
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("WER_TEST_TIMEOUT", "2s")
	if got := Duration("WER_TEST_TIMEOUT", time.Second); got != 2*time.Second {
		t.Fatalf("Expected 2s. Received %v", got)
	}
	t.Setenv("WER_TEST_TIMEOUT", " 3s ")
	if got := Duration("WER_TEST_TIMEOUT", time.Second); got != 3*time.Second {
		t.Fatalf("Expected 3s. Received %v", got)
	}
	t.Setenv("WER_TEST_TIMEOUT", "soon")
	if got := Duration("WER_TEST_TIMEOUT", time.Second); got != time.Second {
		t.Fatalf("Expected fallback on bad value. Received %v", got)
	}
}
