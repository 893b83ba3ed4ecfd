package game

import (
	"strings"
	"testing"
)

func TestEmbeddedWorldParses(t *testing.T) {
	def := defaultWorld()

	if def.Start != "forest" {
		t.Errorf("start = %q, want forest", def.Start)
	}
	if len(def.Locations) != 7 {
		t.Errorf("got %d locations, want 7", len(def.Locations))
	}
	if len(def.Quests) != 3 {
		t.Errorf("got %d quests, want 3", len(def.Quests))
	}
}

func TestParseWorldRejectsMissingStart(t *testing.T) {
	_, err := ParseWorld([]byte("locations:\n  town:\n    name: Town\n"))
	if err == nil || !strings.Contains(err.Error(), "start") {
		t.Errorf("err = %v, want missing-start error", err)
	}
}

func TestParseWorldRejectsDanglingConnection(t *testing.T) {
	doc := `
start: town
locations:
  town:
    name: Town
    connections: [nowhere]
`
	_, err := ParseWorld([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), "undefined") {
		t.Errorf("err = %v, want dangling-connection error", err)
	}
}
