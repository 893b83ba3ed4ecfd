// Package combat resolves turn-based encounters between the player and a
// monster. Monster definitions are immutable templates; every encounter
// fights a fresh copy, so damage never leaks between fights.
package combat

import (
	"errors"
	"fmt"

	"textquest/internal/dice"
	"textquest/internal/game"
)

type State string

const (
	StateIdle     State = "idle"
	StateInCombat State = "in_combat"
	StateVictory  State = "victory"
	StateDefeat   State = "defeat"
	StateEscaped  State = "escaped"
)

var (
	ErrUnknownMonster = errors.New("unknown monster")
	ErrUnknownAction  = errors.New("unknown combat action")
	ErrNotInCombat    = errors.New("not in combat")
	ErrOnCooldown     = errors.New("action on cooldown")
)

const (
	criticalChance  = 0.4
	dropChance      = 0.7
	escapeChance    = 0.6
	statusLogLines  = 5
	lowHealthFactor = 0.3
)

// Monster is a static template. Encounter state is always copied out of it,
// never aliased into it.
type Monster struct {
	Name             string
	Description      string
	Stats            game.CombatStats
	Level            int
	ExperienceReward int
	GoldReward       int
	ItemDrops        []string
	SpecialAbilities []string
	Weakness         string
	Resistance       string
}

// Action is one entry in the combat action table. Negative damage heals the
// player instead of hurting the enemy.
type Action struct {
	Name            string
	Description     string
	Damage          int
	Accuracy        float64
	Cooldown        int
	CurrentCooldown int
	SpecialEffect   string
}

// Resolver runs one encounter at a time. It binds the live player stats for
// the duration of the fight and owns a per-encounter copy of the action
// table.
type Resolver struct {
	state       State
	player      *game.CombatStats
	enemy       Monster
	enemyKey    string
	actions     map[string]*Action
	actionOrder []string
	turnCount   int
	log         []string

	monsters map[string]Monster
	roll     dice.Roller
}

func NewResolver(roll dice.Roller) *Resolver {
	return &Resolver{
		state:    StateIdle,
		monsters: defaultMonsters(),
		roll:     roll,
	}
}

// ActionInfo describes an off-cooldown action to the caller.
type ActionInfo struct {
	Key         string
	Name        string
	Description string
	Damage      int
	Accuracy    float64
}

// EncounterStart is the result of a successful StartCombat.
type EncounterStart struct {
	EnemyName        string
	EnemyDescription string
	EnemyLevel       int
	EnemyHealth      int
	Log              []string
	Available        []ActionInfo
}

// PlayerActionResult reports what the player's action did this turn.
type PlayerActionResult struct {
	Kind     string // "attack", "heal" or "miss"
	Damage   int
	Critical bool
	Message  string
}

// EnemyActionResult reports the enemy's turn.
type EnemyActionResult struct {
	Kind    string // "attack" or "dodge"
	Choice  string
	Damage  int
	Message string
}

// Rewards is granted on victory. Items holds at most one drop.
type Rewards struct {
	Gold       int
	Experience int
	Items      []string
}

// TurnResult is the outcome of one ExecuteAction call.
type TurnResult struct {
	Outcome      string // "continue", "victory" or "defeat"
	Player       PlayerActionResult
	Enemy        *EnemyActionResult
	Rewards      *Rewards
	Log          []string
	Available    []ActionInfo
	PlayerHealth int
	EnemyHealth  int
}

// EscapeResult is the outcome of an EscapeCombat call.
type EscapeResult struct {
	Outcome      string // "escaped", "escape_failed" or "defeat"
	Enemy        *EnemyActionResult
	Log          []string
	PlayerHealth int
}

// Status is a read-only snapshot of the encounter.
type Status struct {
	InCombat     bool
	State        State
	EnemyName    string
	PlayerHealth int
	EnemyHealth  int
	TurnCount    int
	Available    []ActionInfo
	Log          []string
}

// StartCombat binds the live player stats, clones the monster template and
// resets the action table, then enters StateInCombat.
func (r *Resolver) StartCombat(player *game.CombatStats, monsterKey string) (*EncounterStart, error) {
	template, ok := r.monsters[monsterKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMonster, monsterKey)
	}

	r.player = player
	// template is held by value; this copy gives the encounter its own
	// stats block, so repeated fights start from full health.
	r.enemy = template
	r.enemyKey = monsterKey
	r.state = StateInCombat
	r.turnCount = 0
	r.log = nil

	r.actions = make(map[string]*Action, len(actionOrder))
	r.actionOrder = actionOrder
	for key, template := range defaultActions() {
		a := template
		a.CurrentCooldown = 0
		r.actions[key] = &a
	}

	r.logf("Combat begins! You face the %s!", r.enemy.Name)

	return &EncounterStart{
		EnemyName:        r.enemy.Name,
		EnemyDescription: r.enemy.Description,
		EnemyLevel:       r.enemy.Level,
		EnemyHealth:      r.enemy.Stats.Health,
		Log:              r.logCopy(),
		Available:        r.availableActions(),
	}, nil
}

// ExecuteAction runs one full combat turn: player action, enemy response,
// cooldown tick. Victory and defeat short-circuit the rest of the turn.
func (r *Resolver) ExecuteAction(actionKey string) (*TurnResult, error) {
	if r.state != StateInCombat {
		return nil, fmt.Errorf("%w: state is %s", ErrNotInCombat, r.state)
	}
	action, ok := r.actions[actionKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, actionKey)
	}
	if action.CurrentCooldown > 0 {
		return nil, fmt.Errorf("%w: %s ready in %d turns", ErrOnCooldown, action.Name, action.CurrentCooldown)
	}

	r.turnCount++
	playerResult := r.executePlayerAction(action)

	if r.enemy.Stats.Health <= 0 {
		return r.endVictory(playerResult), nil
	}

	enemyResult := r.executeEnemyTurn()

	if r.player.Health <= 0 {
		return r.endDefeat(playerResult, &enemyResult), nil
	}

	r.tickCooldowns(actionKey)

	return &TurnResult{
		Outcome:      "continue",
		Player:       playerResult,
		Enemy:        &enemyResult,
		Log:          r.logCopy(),
		Available:    r.availableActions(),
		PlayerHealth: r.player.Health,
		EnemyHealth:  r.enemy.Stats.Health,
	}, nil
}

func (r *Resolver) executePlayerAction(action *Action) PlayerActionResult {
	// Using an action always starts its cooldown, hit or miss.
	action.CurrentCooldown = action.Cooldown

	if r.roll.Float64() > action.Accuracy {
		r.logf("%s misses!", action.Name)
		return PlayerActionResult{Kind: "miss", Message: fmt.Sprintf("%s misses!", action.Name)}
	}

	baseDamage := action.Damage
	critical := false
	if action.SpecialEffect == "high_critical" && r.roll.Float64() < criticalChance {
		baseDamage *= 2
		critical = true
		r.logf("CRITICAL HIT! %s!", action.Name)
	}

	if action.Damage < 0 {
		healAmount := -action.Damage
		r.player.Health = min(r.player.MaxHealth, r.player.Health+healAmount)
		r.logf("You recover %d HP!", healAmount)
		return PlayerActionResult{Kind: "heal", Damage: healAmount, Message: fmt.Sprintf("%s restores %d HP", action.Name, healAmount)}
	}

	// Defense never reduces a landed attack below 1, so fights always
	// make progress.
	finalDamage := max(1, baseDamage-r.enemy.Stats.Defense)
	r.enemy.Stats.Health -= finalDamage
	r.logf("%s hits the %s for %d damage!", action.Name, r.enemy.Name, finalDamage)

	return PlayerActionResult{
		Kind:     "attack",
		Damage:   finalDamage,
		Critical: critical,
		Message:  fmt.Sprintf("%s lands for %d damage", action.Name, finalDamage),
	}
}

func (r *Resolver) executeEnemyTurn() EnemyActionResult {
	choices := []string{"attack", "strong_attack"}
	if r.enemy.Stats.Health < int(float64(r.enemy.Stats.MaxHealth)*lowHealthFactor) {
		choices = append(choices, "defend")
	}
	choice := choices[r.roll.Intn(len(choices))]

	baseDamage := r.enemy.Stats.Attack
	if choice == "strong_attack" {
		baseDamage = int(float64(baseDamage) * 1.5)
	}
	finalDamage := max(1, baseDamage-r.player.Defense)

	if r.roll.Float64() < r.player.DodgeChance {
		r.logf("You dodge the %s's attack!", r.enemy.Name)
		return EnemyActionResult{Kind: "dodge", Choice: choice, Message: "attack dodged"}
	}

	r.player.Health -= finalDamage
	r.logf("The %s hits you for %d damage!", r.enemy.Name, finalDamage)

	return EnemyActionResult{
		Kind:    "attack",
		Choice:  choice,
		Damage:  finalDamage,
		Message: fmt.Sprintf("the %s attacks", r.enemy.Name),
	}
}

// tickCooldowns decrements every cooling-down action except the one used
// this turn, so an action with cooldown N sits out N subsequent turns.
func (r *Resolver) tickCooldowns(usedKey string) {
	for key, action := range r.actions {
		if key == usedKey {
			continue
		}
		if action.CurrentCooldown > 0 {
			action.CurrentCooldown--
		}
	}
}

func (r *Resolver) endVictory(playerResult PlayerActionResult) *TurnResult {
	r.state = StateVictory
	r.logf("You defeat the %s!", r.enemy.Name)
	r.logf("You gain %d gold and %d experience!", r.enemy.GoldReward, r.enemy.ExperienceReward)

	rewards := &Rewards{
		Gold:       r.enemy.GoldReward,
		Experience: r.enemy.ExperienceReward,
	}
	// One drop roll, shared by the log line and the returned rewards.
	if len(r.enemy.ItemDrops) > 0 && r.roll.Float64() < dropChance {
		dropped := r.enemy.ItemDrops[r.roll.Intn(len(r.enemy.ItemDrops))]
		rewards.Items = []string{dropped}
		r.logf("The %s drops %s!", r.enemy.Name, dropped)
	}

	return &TurnResult{
		Outcome:      "victory",
		Player:       playerResult,
		Rewards:      rewards,
		Log:          r.logCopy(),
		PlayerHealth: r.player.Health,
		EnemyHealth:  r.enemy.Stats.Health,
	}
}

func (r *Resolver) endDefeat(playerResult PlayerActionResult, enemyResult *EnemyActionResult) *TurnResult {
	r.state = StateDefeat
	r.logf("You are defeated by the %s!", r.enemy.Name)

	return &TurnResult{
		Outcome:      "defeat",
		Player:       playerResult,
		Enemy:        enemyResult,
		Log:          r.logCopy(),
		PlayerHealth: r.player.Health,
		EnemyHealth:  r.enemy.Stats.Health,
	}
}

// DefeatPenalty computes the gold and experience lost on defeat. The caller
// owns those totals and applies the deduction.
func DefeatPenalty(gold, experience int) (goldLost, experienceLost int) {
	return max(5, gold/10), max(5, experience/20)
}

// EscapeCombat attempts to flee. On failure the enemy gets one free turn,
// which can still end the fight in defeat.
func (r *Resolver) EscapeCombat() (*EscapeResult, error) {
	if r.state != StateInCombat {
		return nil, fmt.Errorf("%w: state is %s", ErrNotInCombat, r.state)
	}

	if r.roll.Float64() < escapeChance {
		r.state = StateEscaped
		r.logf("You escape from the %s!", r.enemy.Name)
		return &EscapeResult{
			Outcome:      "escaped",
			Log:          r.logCopy(),
			PlayerHealth: r.player.Health,
		}, nil
	}

	r.logf("You fail to escape!")
	enemyResult := r.executeEnemyTurn()

	if r.player.Health <= 0 {
		r.state = StateDefeat
		r.logf("You are defeated by the %s!", r.enemy.Name)
		return &EscapeResult{
			Outcome:      "defeat",
			Enemy:        &enemyResult,
			Log:          r.logCopy(),
			PlayerHealth: r.player.Health,
		}, nil
	}

	return &EscapeResult{
		Outcome:      "escape_failed",
		Enemy:        &enemyResult,
		Log:          r.logCopy(),
		PlayerHealth: r.player.Health,
	}, nil
}

// GetStatus returns a read-only snapshot with the last few log lines.
func (r *Resolver) GetStatus() Status {
	if r.state == StateIdle {
		return Status{InCombat: false, State: StateIdle}
	}

	logTail := r.logCopy()
	if len(logTail) > statusLogLines {
		logTail = logTail[len(logTail)-statusLogLines:]
	}

	return Status{
		InCombat:     r.state == StateInCombat,
		State:        r.state,
		EnemyName:    r.enemy.Name,
		PlayerHealth: r.player.Health,
		EnemyHealth:  r.enemy.Stats.Health,
		TurnCount:    r.turnCount,
		Available:    r.availableActions(),
		Log:          logTail,
	}
}

// State reports the resolver's current state.
func (r *Resolver) State() State { return r.state }

// Monsters lists the monster keys the resolver knows.
func (r *Resolver) Monsters() []string {
	keys := make([]string, 0, len(r.monsters))
	for key := range r.monsters {
		keys = append(keys, key)
	}
	return keys
}

// Monster returns a monster template by key.
func (r *Resolver) Monster(key string) (Monster, bool) {
	m, ok := r.monsters[key]
	return m, ok
}

func (r *Resolver) availableActions() []ActionInfo {
	available := make([]ActionInfo, 0, len(r.actionOrder))
	for _, key := range r.actionOrder {
		action := r.actions[key]
		if action.CurrentCooldown <= 0 {
			available = append(available, ActionInfo{
				Key:         key,
				Name:        action.Name,
				Description: action.Description,
				Damage:      action.Damage,
				Accuracy:    action.Accuracy,
			})
		}
	}
	return available
}

func (r *Resolver) logf(format string, args ...interface{}) {
	r.log = append(r.log, fmt.Sprintf(format, args...))
}

func (r *Resolver) logCopy() []string {
	out := make([]string, len(r.log))
	copy(out, r.log)
	return out
}
