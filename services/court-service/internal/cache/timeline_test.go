package cache

import "testing"

func TestEntryKeyDistinguishesVersions(t *testing.T) {
	before := entryKey("court-1", 0, "2026-01-05")
	after := entryKey("court-1", 1, "2026-01-05")
	if before == after {
		t.Fatal("bumping the version must change the entry key")
	}
	if entryKey("court-1", 0, "2026-01-05") == entryKey("court-2", 0, "2026-01-05") {
		t.Fatal("different courts must not share entry keys")
	}
	if entryKey("court-1", 0, "2026-01-05") == entryKey("court-1", 0, "2026-01-06") {
		t.Fatal("different dates must not share entry keys")
	}
}

func TestNewDefaultsTTL(t *testing.T) {
	c := New(nil, 0)
	if c.ttl <= 0 {
		t.Fatalf("expected a positive default ttl, got %v", c.ttl)
	}
}
