package runtime

import "testing"

func TestGetenv(t *testing.T) {
	t.Setenv("GETENV_TEST_KEY", "set-value")
	if got := Getenv("GETENV_TEST_KEY", "fallback"); got != "set-value" {
		t.Fatalf("expected set-value, got %q", got)
	}
	if got := Getenv("GETENV_TEST_MISSING_KEY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
