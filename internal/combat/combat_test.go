package combat

import (
	"errors"
	"strings"
	"testing"

	"textquest/internal/game"
)

// scriptedDice replays queued rolls so combat outcomes are deterministic.
type scriptedDice struct {
	floats []float64
	ints   []int
}

func (d *scriptedDice) Float64() float64 {
	if len(d.floats) == 0 {
		return 0.5
	}
	v := d.floats[0]
	d.floats = d.floats[1:]
	return v
}

func (d *scriptedDice) Intn(n int) int {
	if len(d.ints) == 0 {
		return 0
	}
	v := d.ints[0]
	d.ints = d.ints[1:]
	return v % n
}

func testPlayerStats() *game.CombatStats {
	return &game.CombatStats{
		Health:         100,
		MaxHealth:      100,
		Attack:         10,
		Defense:        5,
		Speed:          10,
		CriticalChance: 0.1,
		DodgeChance:    0.05,
	}
}

func TestStartCombatUnknownMonster(t *testing.T) {
	r := NewResolver(&scriptedDice{})

	_, err := r.StartCombat(testPlayerStats(), "basilisk")
	if !errors.Is(err, ErrUnknownMonster) {
		t.Fatalf("expected ErrUnknownMonster, got %v", err)
	}
	if r.State() != StateIdle {
		t.Errorf("state should stay idle, got %s", r.State())
	}
}

func TestExecuteActionRequiresCombat(t *testing.T) {
	r := NewResolver(&scriptedDice{})

	_, err := r.ExecuteAction("attack")
	if !errors.Is(err, ErrNotInCombat) {
		t.Fatalf("expected ErrNotInCombat, got %v", err)
	}
}

func TestStrongAttackAgainstGoblin(t *testing.T) {
	// Accuracy roll hits, enemy picks a basic attack, player does not dodge.
	d := &scriptedDice{floats: []float64{0.0, 0.9}, ints: []int{0}}
	r := NewResolver(d)

	player := testPlayerStats()
	if _, err := r.StartCombat(player, "goblin"); err != nil {
		t.Fatalf("StartCombat: %v", err)
	}

	result, err := r.ExecuteAction("strong_attack")
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}

	if result.Player.Damage != 17 {
		t.Errorf("expected 17 damage (20 - 3 defense), got %d", result.Player.Damage)
	}
	if result.EnemyHealth != 13 {
		t.Errorf("expected goblin at 13 HP, got %d", result.EnemyHealth)
	}
	if cd := r.actions["strong_attack"].CurrentCooldown; cd != 2 {
		t.Errorf("expected strong_attack cooldown 2 after the call, got %d", cd)
	}
	for _, a := range result.Available {
		if a.Key == "strong_attack" {
			t.Error("strong_attack should not be available while cooling down")
		}
	}
}

func TestMissDealsNoDamageButStartsCooldown(t *testing.T) {
	// Accuracy roll misses; enemy attacks and the player does not dodge.
	d := &scriptedDice{floats: []float64{0.99, 0.9}, ints: []int{0}}
	r := NewResolver(d)

	player := testPlayerStats()
	if _, err := r.StartCombat(player, "goblin"); err != nil {
		t.Fatalf("StartCombat: %v", err)
	}

	result, err := r.ExecuteAction("strong_attack")
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}

	if result.Player.Kind != "miss" {
		t.Errorf("expected miss, got %q", result.Player.Kind)
	}
	if result.EnemyHealth != 30 {
		t.Errorf("miss must not damage the enemy, health is %d", result.EnemyHealth)
	}
	if cd := r.actions["strong_attack"].CurrentCooldown; cd != 2 {
		t.Errorf("cooldown should start on a miss, got %d", cd)
	}
}

func TestDamageFloorAgainstHighDefense(t *testing.T) {
	d := &scriptedDice{floats: []float64{0.0, 0.9}, ints: []int{0}}
	r := NewResolver(d)

	player := testPlayerStats()
	if _, err := r.StartCombat(player, "dragon"); err != nil {
		t.Fatalf("StartCombat: %v", err)
	}

	// attack damage 10 against dragon defense 15 still lands for 1.
	result, err := r.ExecuteAction("attack")
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}
	if result.Player.Damage != 1 {
		t.Errorf("expected floor damage 1, got %d", result.Player.Damage)
	}
}

func TestHealCapsAtMaxHealth(t *testing.T) {
	// Heal always lands; the enemy's free swing is dodged so the cap is
	// observable in the result.
	d := &scriptedDice{floats: []float64{0.0, 0.0}, ints: []int{0}}
	r := NewResolver(d)

	player := testPlayerStats()
	player.Health = 95
	player.DodgeChance = 1.0
	if _, err := r.StartCombat(player, "goblin"); err != nil {
		t.Fatalf("StartCombat: %v", err)
	}

	result, err := r.ExecuteAction("heal")
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}

	if result.Player.Kind != "heal" {
		t.Errorf("expected heal, got %q", result.Player.Kind)
	}
	if result.PlayerHealth != 100 {
		t.Errorf("heal should cap at max health 100, got %d", result.PlayerHealth)
	}
	if result.EnemyHealth != 30 {
		t.Errorf("heal must not damage the enemy, health is %d", result.EnemyHealth)
	}
}

func TestVictoryUsesSingleDropRoll(t *testing.T) {
	// Hit roll, then one drop roll; the drop index picks "dagger".
	d := &scriptedDice{floats: []float64{0.0, 0.0}, ints: []int{0}}
	r := NewResolver(d)

	player := testPlayerStats()
	if _, err := r.StartCombat(player, "goblin"); err != nil {
		t.Fatalf("StartCombat: %v", err)
	}
	r.enemy.Stats.Health = 5

	result, err := r.ExecuteAction("attack")
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}

	if result.Outcome != "victory" {
		t.Fatalf("expected victory, got %q", result.Outcome)
	}
	if r.State() != StateVictory {
		t.Errorf("state should be victory, got %s", r.State())
	}
	if result.Rewards == nil {
		t.Fatal("victory should carry rewards")
	}
	if result.Rewards.Gold != 10 || result.Rewards.Experience != 15 {
		t.Errorf("expected 10 gold / 15 xp, got %d / %d", result.Rewards.Gold, result.Rewards.Experience)
	}
	if len(result.Rewards.Items) != 1 || result.Rewards.Items[0] != "dagger" {
		t.Fatalf("expected single drop \"dagger\", got %v", result.Rewards.Items)
	}
	logged := false
	for _, line := range result.Log {
		if strings.Contains(line, "drops dagger") {
			logged = true
		}
	}
	if !logged {
		t.Error("the logged drop must match the granted drop")
	}
}

func TestVictoryDropRollCanFail(t *testing.T) {
	d := &scriptedDice{floats: []float64{0.0, 0.9}, ints: []int{0}}
	r := NewResolver(d)

	player := testPlayerStats()
	if _, err := r.StartCombat(player, "goblin"); err != nil {
		t.Fatalf("StartCombat: %v", err)
	}
	r.enemy.Stats.Health = 5

	result, err := r.ExecuteAction("attack")
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}
	if len(result.Rewards.Items) != 0 {
		t.Errorf("drop roll failed but items granted: %v", result.Rewards.Items)
	}
}

func TestDefeatEndsTheTurn(t *testing.T) {
	d := &scriptedDice{floats: []float64{0.0, 0.9}, ints: []int{0}}
	r := NewResolver(d)

	player := testPlayerStats()
	player.Health = 1
	player.Defense = 0
	if _, err := r.StartCombat(player, "goblin"); err != nil {
		t.Fatalf("StartCombat: %v", err)
	}

	result, err := r.ExecuteAction("attack")
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}

	if result.Outcome != "defeat" {
		t.Fatalf("expected defeat, got %q", result.Outcome)
	}
	if r.State() != StateDefeat {
		t.Errorf("state should be defeat, got %s", r.State())
	}
	if result.PlayerHealth > 0 {
		t.Errorf("player health should be <= 0, got %d", result.PlayerHealth)
	}
}

func TestDefeatPenalty(t *testing.T) {
	gold, xp := DefeatPenalty(100, 200)
	if gold != 10 || xp != 10 {
		t.Errorf("expected 10/10, got %d/%d", gold, xp)
	}
	gold, xp = DefeatPenalty(10, 10)
	if gold != 5 || xp != 5 {
		t.Errorf("penalty floor is 5, got %d/%d", gold, xp)
	}
}

func TestEscapeSuccess(t *testing.T) {
	d := &scriptedDice{floats: []float64{0.0}}
	r := NewResolver(d)

	if _, err := r.StartCombat(testPlayerStats(), "goblin"); err != nil {
		t.Fatalf("StartCombat: %v", err)
	}

	result, err := r.EscapeCombat()
	if err != nil {
		t.Fatalf("EscapeCombat: %v", err)
	}
	if result.Outcome != "escaped" {
		t.Errorf("expected escaped, got %q", result.Outcome)
	}
	if r.State() != StateEscaped {
		t.Errorf("state should be escaped, got %s", r.State())
	}
}

func TestEscapeFailureGivesEnemyFreeTurn(t *testing.T) {
	d := &scriptedDice{floats: []float64{0.9, 0.9}, ints: []int{0}}
	r := NewResolver(d)

	player := testPlayerStats()
	if _, err := r.StartCombat(player, "goblin"); err != nil {
		t.Fatalf("StartCombat: %v", err)
	}

	result, err := r.EscapeCombat()
	if err != nil {
		t.Fatalf("EscapeCombat: %v", err)
	}
	if result.Outcome != "escape_failed" {
		t.Fatalf("expected escape_failed, got %q", result.Outcome)
	}
	if result.Enemy == nil || result.Enemy.Damage != 3 {
		t.Errorf("expected a free enemy attack for 3 (8 - 5 defense), got %+v", result.Enemy)
	}
	if r.State() != StateInCombat {
		t.Errorf("failed escape should stay in combat, got %s", r.State())
	}
}

func TestCooldownBlocksAndTicksDown(t *testing.T) {
	turn := func() []float64 { return []float64{0.0, 0.9} }
	d := &scriptedDice{}
	r := NewResolver(d)

	player := testPlayerStats()
	if _, err := r.StartCombat(player, "dragon"); err != nil {
		t.Fatalf("StartCombat: %v", err)
	}

	d.floats = turn()
	d.ints = []int{0}
	if _, err := r.ExecuteAction("strong_attack"); err != nil {
		t.Fatalf("turn 1: %v", err)
	}

	if _, err := r.ExecuteAction("strong_attack"); !errors.Is(err, ErrOnCooldown) {
		t.Fatalf("expected ErrOnCooldown, got %v", err)
	}

	d.floats = turn()
	d.ints = []int{0}
	if _, err := r.ExecuteAction("attack"); err != nil {
		t.Fatalf("turn 2: %v", err)
	}
	if cd := r.actions["strong_attack"].CurrentCooldown; cd != 1 {
		t.Errorf("expected cooldown 1 after one full turn, got %d", cd)
	}

	d.floats = turn()
	d.ints = []int{0}
	if _, err := r.ExecuteAction("attack"); err != nil {
		t.Fatalf("turn 3: %v", err)
	}
	if cd := r.actions["strong_attack"].CurrentCooldown; cd != 0 {
		t.Errorf("expected cooldown expired, got %d", cd)
	}
}

func TestRepeatedFightsStartFromTemplate(t *testing.T) {
	d := &scriptedDice{floats: []float64{0.0, 0.9, 0.0}, ints: []int{0}}
	r := NewResolver(d)

	player := testPlayerStats()
	if _, err := r.StartCombat(player, "goblin"); err != nil {
		t.Fatalf("StartCombat: %v", err)
	}
	if _, err := r.ExecuteAction("attack"); err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}
	if _, err := r.EscapeCombat(); err != nil {
		t.Fatalf("EscapeCombat: %v", err)
	}

	start, err := r.StartCombat(player, "goblin")
	if err != nil {
		t.Fatalf("second StartCombat: %v", err)
	}
	if start.EnemyHealth != 30 {
		t.Errorf("second encounter should start at full health, got %d", start.EnemyHealth)
	}
}

func TestGetStatusIdle(t *testing.T) {
	r := NewResolver(&scriptedDice{})
	status := r.GetStatus()
	if status.InCombat {
		t.Error("idle resolver should report not in combat")
	}
}
