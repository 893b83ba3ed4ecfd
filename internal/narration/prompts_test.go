package narration

import (
	"context"
	"strings"
	"testing"
	"time"

	"textquest/internal/game"
)

func TestLocationPromptListsWhatIsThere(t *testing.T) {
	state := game.NewGameState("Rin")

	p := LocationPrompt(state)

	if p.Operation != "describe_location" {
		t.Errorf("Operation = %q, want describe_location", p.Operation)
	}
	loc := state.Location()
	if !strings.Contains(p.User, loc.Name) {
		t.Errorf("prompt does not mention location %q", loc.Name)
	}
	for _, conn := range loc.Connections {
		if !strings.Contains(p.User, conn) {
			t.Errorf("prompt does not mention exit %q", conn)
		}
	}
	for _, item := range loc.Items {
		if !strings.Contains(p.User, item.Name) {
			t.Errorf("prompt does not mention item %q", item.Name)
		}
	}
}

func TestDialoguePromptNamesTheCharacter(t *testing.T) {
	state := game.NewGameState("Rin")

	p := DialoguePrompt(state, "Forest Warden")

	if p.Operation != "npc_dialogue" {
		t.Errorf("Operation = %q, want npc_dialogue", p.Operation)
	}
	if !strings.Contains(p.User, "Forest Warden") {
		t.Error("prompt does not name the character")
	}
}

func TestFreeActionPromptQuotesTheCommand(t *testing.T) {
	state := game.NewGameState("Rin")

	p := FreeActionPrompt(state, "whistle at the trees")

	if !strings.Contains(p.User, "whistle at the trees") {
		t.Error("prompt does not carry the typed command")
	}
}

func TestNarrateFallsBackWithoutService(t *testing.T) {
	n := NewNarrator(nil, time.Second, nil)

	got := n.Narrate(context.Background(), RiddlePrompt(game.NewGameState("Rin")))
	if got != Fallback {
		t.Errorf("Narrate without a service = %q, want the fallback line", got)
	}
}
