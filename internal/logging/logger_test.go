package logging

import (
	"path/filepath"
	"testing"
)

func TestLogAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	logger, err := NewEventLogger(path, "session-a")
	if err != nil {
		t.Fatalf("NewEventLogger: %v", err)
	}
	defer logger.Close()

	if err := logger.Log("combat", "slew a goblin", map[string]int{"damage": 7}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := logger.Log("trade", "bought 2x wood", nil); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := logger.Log("craft", "forged a wooden sword", nil); err != nil {
		t.Fatalf("Log: %v", err)
	}

	events, err := logger.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Recent(2) returned %d events, want 2", len(events))
	}
	if events[0].Kind != "craft" || events[1].Kind != "trade" {
		t.Errorf("events not newest first: got kinds %q, %q", events[0].Kind, events[1].Kind)
	}
	if events[0].SessionID != "session-a" {
		t.Errorf("SessionID = %q, want %q", events[0].SessionID, "session-a")
	}
	if events[1].Payload != "{}" {
		t.Errorf("nil payload stored as %q, want {}", events[1].Payload)
	}
}

func TestRecentScopedToSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	first, err := NewEventLogger(path, "session-a")
	if err != nil {
		t.Fatalf("NewEventLogger: %v", err)
	}
	defer first.Close()
	if err := first.Log("combat", "slew a goblin", nil); err != nil {
		t.Fatalf("Log: %v", err)
	}

	second, err := NewEventLogger(path, "session-b")
	if err != nil {
		t.Fatalf("NewEventLogger: %v", err)
	}
	defer second.Close()

	events, err := second.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("session-b sees %d events from session-a, want 0", len(events))
	}
}
