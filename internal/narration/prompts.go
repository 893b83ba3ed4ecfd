package narration

import (
	"fmt"
	"strings"

	"textquest/internal/game"
)

// Prompt is one fully assembled narration request.
type Prompt struct {
	Operation string
	System    string
	User      string
	MaxTokens int
}

const narratorSystemPrompt = `You are the narrator of a text adventure game.
Respond with 2-4 sentences of vivid, concrete prose. Stay consistent with the
details you are given, never invent items or exits that are not listed, and
never address the player as an AI would.`

// LocationPrompt describes the player's current surroundings.
func LocationPrompt(state *game.GameState) Prompt {
	loc := state.Location()
	var sb strings.Builder
	fmt.Fprintf(&sb, "The player stands in %s: %s\n", loc.Name, loc.Description)
	if len(loc.Connections) > 0 {
		fmt.Fprintf(&sb, "Paths lead to: %s.\n", strings.Join(loc.Connections, ", "))
	}
	if len(loc.Items) > 0 {
		names := make([]string, 0, len(loc.Items))
		for _, item := range loc.Items {
			names = append(names, item.Name)
		}
		fmt.Fprintf(&sb, "Visible items: %s.\n", strings.Join(names, ", "))
	}
	if len(loc.NPCs) > 0 {
		fmt.Fprintf(&sb, "Present: %s.\n", strings.Join(loc.NPCs, ", "))
	}
	sb.WriteString("Describe what the player sees.")

	return Prompt{
		Operation: "describe_location",
		System:    narratorSystemPrompt,
		User:      sb.String(),
		MaxTokens: 200,
	}
}

// DialoguePrompt puts words in an NPC's mouth. The line should read like the
// character is offering a hint.
func DialoguePrompt(state *game.GameState, npcName string) Prompt {
	loc := state.Location()
	return Prompt{
		Operation: "npc_dialogue",
		System:    narratorSystemPrompt,
		User: fmt.Sprintf(
			"Write a short line of dialogue for a character named %s, met in %s (%s). "+
				"The character should sound like they are offering the player a hint.",
			npcName, loc.Name, loc.Description),
		MaxTokens: 150,
	}
}

// RiddlePrompt asks for a short riddle themed on the current location.
func RiddlePrompt(state *game.GameState) Prompt {
	loc := state.Location()
	return Prompt{
		Operation: "riddle",
		System:    narratorSystemPrompt,
		User: fmt.Sprintf(
			"Write a short riddle and its answer, themed on %s and its mysteries.",
			loc.Name),
		MaxTokens: 150,
	}
}

// FreeActionPrompt narrates a command no resolver recognized.
func FreeActionPrompt(state *game.GameState, command string) Prompt {
	loc := state.Location()
	return Prompt{
		Operation: "free_action",
		System:    narratorSystemPrompt,
		User: fmt.Sprintf(
			"The player is in %s: %s\nThe player typed: %q\n"+
				"Narrate the outcome of this action, with consequences where they fit.",
			loc.Name, loc.Description, command),
		MaxTokens: 200,
	}
}
