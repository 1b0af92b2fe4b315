package consumer

import (
	"io"
	"log/slog"
	"testing"
)

func TestNewDefaultsGroupID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := New(logger, Config{Brokers: "kafka:9092", Topic: "t"}, nil)
	if c.cfg.GroupID != "court-service" {
		t.Fatalf("expected default group id, got %q", c.cfg.GroupID)
	}

	c = New(logger, Config{Brokers: "kafka:9092", Topic: "t", GroupID: "custom"}, nil)
	if c.cfg.GroupID != "custom" {
		t.Fatalf("expected custom group id, got %q", c.cfg.GroupID)
	}
}
