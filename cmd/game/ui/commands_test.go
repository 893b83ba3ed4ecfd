package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"textquest/internal/combat"
	"textquest/internal/crafting"
	"textquest/internal/debug"
	"textquest/internal/game"
	"textquest/internal/logging"
	"textquest/internal/narration"
	"textquest/internal/trading"
)

// scriptedDice plays back queued rolls; exhausted queues fall back to 0.5.
type scriptedDice struct {
	floats []float64
}

func (d *scriptedDice) Float64() float64 {
	if len(d.floats) == 0 {
		return 0.5
	}
	f := d.floats[0]
	d.floats = d.floats[1:]
	return f
}

func (d *scriptedDice) Intn(n int) int { return 0 }

func newTestSession(t *testing.T, roll *scriptedDice) *Session {
	t.Helper()
	dbg := debug.NewLogger(false, "")
	return &Session{
		State:     game.NewGameState("Tester"),
		Combat:    combat.NewResolver(roll),
		Crafting:  crafting.NewResolver(roll),
		Trading:   trading.NewResolver(roll, func() time.Time { return time.Unix(0, 0) }),
		Narrator:  narration.NewNarrator(nil, time.Second, dbg),
		Debug:     dbg,
		SessionID: "test-session",
	}
}

func run(t *testing.T, s *Session, input string) []string {
	t.Helper()
	return s.Execute(context.Background(), input)
}

// A fresh character can gather, buy and craft a wooden sword without any
// state being poked from outside the dispatcher.
func TestGatherBuyCraftWoodenSword(t *testing.T) {
	roll := &scriptedDice{floats: []float64{0.0}}
	s := newTestSession(t, roll)

	run(t, s, "take wood")
	run(t, s, "take wood")
	if got := s.State.Materials["wood"]; got != 2 {
		t.Fatalf("Materials[wood] = %d after gathering, want 2", got)
	}

	run(t, s, "take knife")
	if !s.hasTool("knife") {
		t.Fatalf("knife not on the tool belt: %v", s.State.Tools)
	}
	if s.State.CountItem("knife") != 0 {
		t.Errorf("knife ended up in the pack as well as the tool belt")
	}

	run(t, s, "go town")
	run(t, s, "shop general_store")
	run(t, s, "buy 1 wood")
	run(t, s, "buy 1 leather")
	if got := s.State.Materials["wood"]; got != 3 {
		t.Fatalf("Materials[wood] = %d after buying, want 3", got)
	}
	if got := s.State.Materials["leather"]; got != 1 {
		t.Fatalf("Materials[leather] = %d after buying, want 1", got)
	}

	lines := run(t, s, "craft wooden sword")
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Wooden Sword") {
		t.Fatalf("craft output missing the sword: %q", joined)
	}
	if got := s.State.CountItem("Wooden Sword"); got != 1 {
		t.Errorf("CountItem(Wooden Sword) = %d, want 1", got)
	}
	if s.State.Materials["wood"] != 0 || s.State.Materials["leather"] != 0 {
		t.Errorf("materials not consumed: %v", s.State.Materials)
	}
	if got := s.State.Skills["carpentry"]; got != 10 {
		t.Errorf("Skills[carpentry] = %d, want 10", got)
	}
}

// Crafting stations at a location count as tools, so a recipe needing an
// anvil works in town without carrying one.
func TestStationsCountAsTools(t *testing.T) {
	s := newTestSession(t, &scriptedDice{})
	run(t, s, "go town")

	tools := s.availableTools()
	for _, want := range []string{"forge", "anvil", "cauldron"} {
		found := false
		for _, tool := range tools {
			if tool == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("availableTools missing station %q in town: %v", want, tools)
		}
	}
}

// Quest items that no recipe consumes stay in the pack so quest progress
// still counts them.
func TestQuestItemsStayInInventory(t *testing.T) {
	s := newTestSession(t, &scriptedDice{})
	run(t, s, "take branch")
	if got := s.State.CountItem("branch"); got != 1 {
		t.Errorf("CountItem(branch) = %d, want 1", got)
	}
	if got := s.State.Materials["branch"]; got != 0 {
		t.Errorf("branch routed to the material pouch: %d", got)
	}
}

func TestJournalListsRecentEvents(t *testing.T) {
	s := newTestSession(t, &scriptedDice{})
	events, err := logging.NewEventLogger(filepath.Join(t.TempDir(), "events.db"), "test-session")
	if err != nil {
		t.Fatalf("NewEventLogger: %v", err)
	}
	defer events.Close()
	s.Events = events

	run(t, s, "take wood")
	run(t, s, "go town")

	lines := run(t, s, "journal")
	if len(lines) < 2 || lines[0] != "Recent happenings:" {
		t.Fatalf("journal output = %q", lines)
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Move") || !strings.Contains(joined, "Take") {
		t.Errorf("journal missing recorded events: %q", joined)
	}
}

func TestJournalEmptyWithoutEvents(t *testing.T) {
	s := newTestSession(t, &scriptedDice{})
	lines := run(t, s, "journal")
	if len(lines) != 1 || lines[0] != "Nothing has been written down yet." {
		t.Errorf("journal output = %q", lines)
	}
}
