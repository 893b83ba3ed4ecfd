package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownLocation = errors.New("unknown location")
	ErrNoPath          = errors.New("no path to location")
	ErrUnknownQuest    = errors.New("unknown quest")
	ErrUnknownItem     = errors.New("item not here")
)

const (
	actionHistorySize       = 50
	conversationHistorySize = 20
)

// CombatStats is the mutable stat block carried by the player and cloned
// from monster templates for each encounter.
type CombatStats struct {
	Health         int     `json:"health"`
	MaxHealth      int     `json:"max_health"`
	Attack         int     `json:"attack"`
	Defense        int     `json:"defense"`
	Speed          int     `json:"speed"`
	CriticalChance float64 `json:"critical_chance"`
	DodgeChance    float64 `json:"dodge_chance"`
	Mana           int     `json:"mana"`
	MaxMana        int     `json:"max_mana"`
}

// GameState is the aggregate root for one player session. Every resolver
// mutates it in place; the save codec serializes it whole.
type GameState struct {
	PlayerName      string               `json:"player_name"`
	CurrentLocation string               `json:"current_location"`
	Inventory       []Item               `json:"inventory"`
	Health          int                  `json:"health"`
	MaxHealth       int                  `json:"max_health"`
	Level           int                  `json:"level"`
	Experience      int                  `json:"experience"`
	Gold            int                  `json:"gold"`
	Stats           CombatStats          `json:"combat_stats"`
	Quests          []*Quest             `json:"quests"`
	CompletedQuests map[string]bool      `json:"completed_quests"`
	Locations       map[string]*Location `json:"locations"`
	Materials       map[string]int       `json:"materials"`
	Tools           []string             `json:"tools"`
	Skills          map[string]int       `json:"skills"`
	Reputation      map[string]int       `json:"merchant_reputation"`
	PlayTime        int                  `json:"play_time"`
	GameOver        bool                 `json:"game_over"`
	Actions         *History             `json:"action_history"`
	Conversations   *History             `json:"conversation_history"`
}

// NewGameState builds a fresh session over deep copies of the default world,
// so no two sessions ever share location or quest storage.
func NewGameState(playerName string) *GameState {
	def := defaultWorld()

	s := &GameState{
		PlayerName:      playerName,
		CurrentLocation: def.Start,
		Inventory:       []Item{},
		Health:          100,
		MaxHealth:       100,
		Level:           1,
		Experience:      0,
		Gold:            50,
		Stats: CombatStats{
			Health:         100,
			MaxHealth:      100,
			Attack:         10,
			Defense:        5,
			Speed:          10,
			CriticalChance: 0.1,
			DodgeChance:    0.05,
			Mana:           50,
			MaxMana:        50,
		},
		Quests:          make([]*Quest, 0, len(def.Quests)),
		CompletedQuests: map[string]bool{},
		Locations:       make(map[string]*Location, len(def.Locations)),
		Materials:       map[string]int{},
		Tools:           []string{},
		Skills: map[string]int{
			"blacksmithing": 0,
			"alchemy":       0,
			"carpentry":     0,
			"enchanting":    0,
			"cooking":       0,
		},
		Reputation:    map[string]int{},
		Actions:       NewHistory(actionHistorySize),
		Conversations: NewHistory(conversationHistorySize),
	}

	for key, loc := range def.Locations {
		s.Locations[key] = loc.Clone()
	}
	for _, q := range def.Quests {
		s.Quests = append(s.Quests, q.Clone())
	}
	if start, ok := s.Locations[s.CurrentLocation]; ok {
		start.Visited = true
	}

	return s
}

// AddAction records a player action with a timestamp, evicting the oldest
// past the buffer bound.
func (s *GameState) AddAction(action string) {
	s.Actions.Add(fmt.Sprintf("%s: %s", time.Now().Format("15:04:05"), action))
}

// AddConversation records a narration or dialogue exchange.
func (s *GameState) AddConversation(message string) {
	s.Conversations.Add(fmt.Sprintf("%s: %s", time.Now().Format("15:04:05"), message))
}

// Location returns the player's current location.
func (s *GameState) Location() *Location {
	return s.Locations[s.CurrentLocation]
}

// MoveTo moves the player along a connection. The visited flag is set
// permanently on first arrival.
func (s *GameState) MoveTo(name string) error {
	dest, ok := s.Locations[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}
	connected := false
	for _, c := range s.Location().Connections {
		if c == name {
			connected = true
			break
		}
	}
	if !connected {
		return fmt.Errorf("%w: %q is not reachable from %q", ErrNoPath, name, s.CurrentLocation)
	}
	s.CurrentLocation = name
	dest.Visited = true
	return nil
}

// Connections lists where the player can move from here.
func (s *GameState) Connections() []string {
	return append([]string(nil), s.Location().Connections...)
}

// AddItem appends an item to the player inventory.
func (s *GameState) AddItem(item Item) {
	s.Inventory = append(s.Inventory, item)
}

// RemoveItem removes one inventory item by name.
func (s *GameState) RemoveItem(name string) bool {
	for i, item := range s.Inventory {
		if equalFold(item.Name, name) {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// FindItem returns a pointer into the inventory, or nil.
func (s *GameState) FindItem(name string) *Item {
	for i := range s.Inventory {
		if equalFold(s.Inventory[i].Name, name) {
			return &s.Inventory[i]
		}
	}
	return nil
}

// CountItem counts inventory entries with the given name.
func (s *GameState) CountItem(name string) int {
	count := 0
	for _, item := range s.Inventory {
		if equalFold(item.Name, name) {
			count++
		}
	}
	return count
}

// HasItem reports whether the inventory holds at least count of the item.
func (s *GameState) HasItem(name string, count int) bool {
	return s.CountItem(name) >= count
}

// TakeItem moves an item from the current location into the inventory.
// Ownership transfers; the item exists in exactly one container.
func (s *GameState) TakeItem(name string) (Item, error) {
	item, ok := s.Location().RemoveItem(name)
	if !ok {
		return Item{}, fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	s.AddItem(item)
	return item, nil
}

// StartQuest flips a quest to started. Starting twice is a no-op reported as
// false.
func (s *GameState) StartQuest(id string) (bool, error) {
	for _, q := range s.Quests {
		if q.ID == id {
			if q.Started {
				return false, nil
			}
			q.Started = true
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownQuest, id)
}

// QuestProgress reports per-requirement progress for a quest.
func (s *GameState) QuestProgress(id string) (map[string]RequirementProgress, error) {
	for _, q := range s.Quests {
		if q.ID == id {
			progress := make(map[string]RequirementProgress, len(q.Requirements))
			for item, required := range q.Requirements {
				progress[item] = RequirementProgress{
					Required: required,
					Current:  s.CountItem(item),
				}
			}
			return progress, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownQuest, id)
}

// CheckQuestCompletion completes the first started quest whose requirements
// are all met, granting its rewards. Rewards are granted exactly once; a
// second call after completion finds nothing to do.
func (s *GameState) CheckQuestCompletion() *Quest {
	for _, q := range s.Quests {
		if q.Completed || !q.Started {
			continue
		}
		met := true
		for item, count := range q.Requirements {
			if !s.HasItem(item, count) {
				met = false
				break
			}
		}
		if !met {
			continue
		}
		q.Completed = true
		s.CompletedQuests[q.ID] = true
		for _, reward := range q.Rewards {
			s.AddItem(reward.Clone())
		}
		return q
	}
	return nil
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
