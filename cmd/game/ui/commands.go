package ui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"textquest/internal/combat"
	"textquest/internal/crafting"
	"textquest/internal/debug"
	"textquest/internal/game"
	"textquest/internal/logging"
	"textquest/internal/narration"
	"textquest/internal/save"
	"textquest/internal/trading"
)

// Session bundles the game state and the resolvers the dispatcher drives.
// Execute runs inside a tea.Cmd goroutine, so narration calls may block.
type Session struct {
	State     *game.GameState
	Combat    *combat.Resolver
	Crafting  *crafting.Resolver
	Trading   *trading.Resolver
	Saves     *save.Codec
	Narrator  *narration.Narrator
	Events    *logging.EventLogger
	Debug     *debug.Logger
	SessionID string

	// shop is the merchant selected with the shop command; buy, sell and
	// haggle apply to it.
	shop string
}

type commandResultMsg struct {
	lines []string
}

func animationTimer() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

func runCommand(s *Session, input string) tea.Cmd {
	return func() tea.Msg {
		ctx := narration.WithSessionID(context.Background(), s.SessionID)
		return commandResultMsg{lines: s.Execute(ctx, input)}
	}
}

// Execute dispatches one line of player input and returns the lines to show.
func (s *Session) Execute(ctx context.Context, input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	s.State.AddAction(input)

	if s.Combat.State() == combat.StateInCombat {
		return s.combatTurn(input)
	}

	verb, rest := splitVerb(input)
	switch verb {
	case "help":
		return helpLines()
	case "look":
		return s.look(ctx)
	case "go", "move":
		return s.move(ctx, rest)
	case "take", "get":
		return s.take(rest)
	case "use":
		return s.useItem(rest)
	case "inventory", "inv":
		return s.inventory()
	case "talk":
		return s.talk(ctx, strings.TrimPrefix(rest, "to "))
	case "riddle":
		return s.riddle(ctx)
	case "quests":
		return s.questLog()
	case "start":
		return s.startQuest(strings.TrimPrefix(rest, "quest "))
	case "attack", "fight":
		return s.startCombat(rest)
	case "status":
		return s.status()
	case "recipes":
		return s.recipes()
	case "craft":
		return s.craft(rest)
	case "materials":
		return s.materialList()
	case "shops":
		return s.shopDirectory()
	case "shop", "browse":
		return s.browseShop(rest)
	case "buy":
		return s.buy(rest)
	case "sell":
		return s.sell(rest)
	case "haggle":
		return s.haggle(rest)
	case "save":
		return s.saveGame(rest)
	case "load":
		return s.loadGame(rest)
	case "saves":
		return s.listSaves()
	case "journal", "events":
		return s.journal()
	case "delete":
		return s.deleteSave(strings.TrimPrefix(rest, "save "))
	default:
		return s.freeAction(ctx, input)
	}
}

func splitVerb(input string) (string, string) {
	parts := strings.SplitN(strings.ToLower(input), " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

func helpLines() []string {
	return []string{
		"Commands:",
		"  look                     describe your surroundings",
		"  go <place>               travel to a connected location",
		"  take <item>              pick up an item",
		"  use <item>               use an item from your inventory",
		"  inventory                list what you carry",
		"  talk to <npc>            speak with someone here",
		"  riddle                   ask for a riddle",
		"  quests / start quest <id>",
		"  attack <monster>         start a fight (then: attack, strong attack,",
		"                           defend, fireball, heal, critical strike, flee)",
		"  recipes / craft <recipe> / materials",
		"  shops / shop <merchant> / buy <item> / sell <item> / haggle <item>",
		"  save [name] / load <name> / saves / delete save <name>",
		"  journal                  review recent happenings",
		"  status, help, quit",
		"Anything else is treated as a freeform action.",
	}
}

func (s *Session) look(ctx context.Context) []string {
	loc := s.State.Location()
	lines := []string{fmt.Sprintf("== %s ==", loc.Name), loc.Description}
	if len(loc.Items) > 0 {
		names := make([]string, 0, len(loc.Items))
		for _, it := range loc.Items {
			names = append(names, it.Name)
		}
		lines = append(lines, "You see: "+strings.Join(names, ", "))
	}
	if len(loc.NPCs) > 0 {
		lines = append(lines, "People here: "+joinKeys(loc.NPCs))
	}
	if len(loc.Monsters) > 0 {
		lines = append(lines, "Lurking nearby: "+joinKeys(loc.Monsters))
	}
	if len(loc.Merchants) > 0 {
		lines = append(lines, "Shops: "+joinKeys(loc.Merchants))
	}
	lines = append(lines, "Exits: "+joinKeys(loc.Connections))

	text := s.Narrator.Narrate(ctx, narration.LocationPrompt(s.State))
	s.State.AddConversation(text)
	lines = append(lines, "", text)
	s.logEvent("look", loc.Name, nil)
	return lines
}

func (s *Session) move(ctx context.Context, dest string) []string {
	if dest == "" {
		return []string{"Go where? Exits: " + joinKeys(s.State.Connections())}
	}
	key := keyFor(dest)
	if err := s.State.MoveTo(key); err != nil {
		if errors.Is(err, game.ErrNoPath) {
			return []string{fmt.Sprintf("You can't get to %s from here. Exits: %s", dest, joinKeys(s.State.Connections()))}
		}
		return []string{fmt.Sprintf("You don't know of any place called %q.", dest)}
	}
	s.logEvent("move", key, nil)
	return s.look(ctx)
}

func (s *Session) take(name string) []string {
	if name == "" {
		return []string{"Take what?"}
	}
	item, err := s.State.TakeItem(name)
	if err != nil {
		return []string{fmt.Sprintf("There is no %s here.", name)}
	}
	s.State.RemoveItem(item.Name)
	note := s.stow(item)
	s.logEvent("take", item.Name, nil)
	lines := []string{fmt.Sprintf("You take the %s.", item.Name)}
	if note != "" {
		lines = append(lines, note)
	}
	return append(lines, s.questCompletions()...)
}

func (s *Session) useItem(name string) []string {
	if name == "" {
		return []string{"Use what?"}
	}
	item := s.State.FindItem(name)
	if item == nil {
		return []string{fmt.Sprintf("You don't have a %s.", name)}
	}
	if !item.Usable {
		return []string{fmt.Sprintf("The %s can't be used like that.", item.Name)}
	}

	var lines []string
	if heal := item.Stats["heal"]; heal > 0 {
		before := s.State.Stats.Health
		s.State.Stats.Health = min(s.State.Stats.MaxHealth, s.State.Stats.Health+heal)
		s.State.Health = s.State.Stats.Health
		lines = append(lines, fmt.Sprintf("You recover %d health.", s.State.Stats.Health-before))
	}
	if mana := item.Stats["mana_restore"]; mana > 0 {
		before := s.State.Stats.Mana
		s.State.Stats.Mana = min(s.State.Stats.MaxMana, s.State.Stats.Mana+mana)
		lines = append(lines, fmt.Sprintf("You recover %d mana.", s.State.Stats.Mana-before))
	}
	if len(lines) == 0 {
		lines = append(lines, fmt.Sprintf("Nothing happens when you use the %s.", item.Name))
	}
	if item.Consumable {
		s.State.RemoveItem(item.Name)
		lines = append(lines, fmt.Sprintf("The %s is used up.", strings.ToLower(item.Name)))
	}
	s.logEvent("use_item", name, nil)
	return lines
}

func (s *Session) inventory() []string {
	if len(s.State.Inventory) == 0 {
		return []string{fmt.Sprintf("Your pack is empty. Gold: %d", s.State.Gold)}
	}
	counts := map[string]int{}
	order := []string{}
	for _, item := range s.State.Inventory {
		if counts[item.Name] == 0 {
			order = append(order, item.Name)
		}
		counts[item.Name]++
	}
	lines := []string{"You are carrying:"}
	for _, name := range order {
		if counts[name] > 1 {
			lines = append(lines, fmt.Sprintf("  %s x%d", name, counts[name]))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return append(lines, fmt.Sprintf("Gold: %d", s.State.Gold))
}

func (s *Session) talk(ctx context.Context, npc string) []string {
	if npc == "" {
		return []string{"Talk to whom?"}
	}
	loc := s.State.Location()
	found := ""
	for _, key := range loc.NPCs {
		if strings.EqualFold(key, keyFor(npc)) {
			found = key
			break
		}
	}
	if found == "" {
		return []string{fmt.Sprintf("There is nobody called %s here.", npc)}
	}
	text := s.Narrator.Narrate(ctx, narration.DialoguePrompt(s.State, displayName(found)))
	s.State.AddConversation(fmt.Sprintf("%s: %s", displayName(found), text))
	s.logEvent("talk", found, nil)
	return []string{fmt.Sprintf("%s:", displayName(found)), text}
}

func (s *Session) riddle(ctx context.Context) []string {
	text := s.Narrator.Narrate(ctx, narration.RiddlePrompt(s.State))
	s.State.AddConversation(text)
	return []string{text}
}

func (s *Session) questLog() []string {
	lines := []string{"Quests:"}
	for _, q := range s.State.Quests {
		state := "not started"
		switch {
		case q.Completed:
			state = "completed"
		case q.Started:
			state = "in progress"
		}
		lines = append(lines, fmt.Sprintf("  [%s] %s (%s)", q.ID, q.Title, state))
		if q.Started && !q.Completed {
			progress, err := s.State.QuestProgress(q.ID)
			if err != nil {
				continue
			}
			keys := make([]string, 0, len(progress))
			for item := range progress {
				keys = append(keys, item)
			}
			sort.Strings(keys)
			for _, item := range keys {
				p := progress[item]
				lines = append(lines, fmt.Sprintf("      %s: %d/%d", item, p.Current, p.Required))
			}
		}
	}
	return lines
}

func (s *Session) startQuest(id string) []string {
	if id == "" {
		return []string{"Start which quest? Try: quests"}
	}
	started, err := s.State.StartQuest(keyFor(id))
	if err != nil {
		return []string{fmt.Sprintf("There is no quest called %q.", id)}
	}
	if !started {
		return []string{"That quest is already underway."}
	}
	s.logEvent("quest_started", keyFor(id), nil)
	lines := []string{"Quest started."}
	return append(lines, s.questCompletions()...)
}

// questCompletions drains completable quests and reports their rewards.
func (s *Session) questCompletions() []string {
	var lines []string
	for {
		q := s.State.CheckQuestCompletion()
		if q == nil {
			return lines
		}
		lines = append(lines, fmt.Sprintf("Quest complete: %s!", q.Title))
		for _, reward := range q.Rewards {
			lines = append(lines, fmt.Sprintf("  Reward: %s", reward.Name))
		}
		s.logEvent("quest_completed", q.ID, nil)
	}
}

func (s *Session) startCombat(monster string) []string {
	if monster == "" {
		return []string{"Attack what?"}
	}
	key := keyFor(monster)
	loc := s.State.Location()
	present := false
	for _, m := range loc.Monsters {
		if m == key {
			present = true
			break
		}
	}
	if !present {
		return []string{fmt.Sprintf("There is no %s here to fight.", monster)}
	}
	start, err := s.Combat.StartCombat(&s.State.Stats, key)
	if err != nil {
		return []string{fmt.Sprintf("You can't fight a %s.", monster)}
	}
	s.logEvent("combat_started", key, nil)
	lines := append([]string{}, start.Log...)
	lines = append(lines, fmt.Sprintf("%s (level %d, %d HP). %s", start.EnemyName, start.EnemyLevel, start.EnemyHealth, start.EnemyDescription))
	return append(lines, actionPrompt(start.Available))
}

func (s *Session) combatTurn(input string) []string {
	key := keyFor(input)
	if key == "flee" || key == "escape" || key == "run" {
		return s.flee()
	}

	result, err := s.Combat.ExecuteAction(key)
	if err != nil {
		switch {
		case errors.Is(err, combat.ErrUnknownAction):
			return []string{fmt.Sprintf("%q is not a combat action. %s", input, actionPrompt(nil))}
		case errors.Is(err, combat.ErrOnCooldown):
			return []string{"That action is still on cooldown."}
		default:
			return []string{"You are not in a fight."}
		}
	}

	lines := []string{result.Player.Message}
	if result.Enemy != nil {
		lines = append(lines, result.Enemy.Message)
	}
	s.State.Health = s.State.Stats.Health

	switch result.Outcome {
	case "victory":
		lines = append(lines, s.applyVictory(result.Rewards)...)
	case "defeat":
		lines = append(lines, s.applyDefeat()...)
	default:
		lines = append(lines, fmt.Sprintf("You: %d HP. Enemy: %d HP.", result.PlayerHealth, result.EnemyHealth))
		lines = append(lines, actionPrompt(result.Available))
	}
	return lines
}

func (s *Session) flee() []string {
	result, err := s.Combat.EscapeCombat()
	if err != nil {
		return []string{"You are not in a fight."}
	}
	s.State.Health = s.State.Stats.Health
	switch result.Outcome {
	case "escaped":
		s.logEvent("combat_escaped", "", nil)
		return []string{"You slip away from the fight."}
	case "defeat":
		lines := []string{"You fail to escape."}
		if result.Enemy != nil {
			lines = append(lines, result.Enemy.Message)
		}
		return append(lines, s.applyDefeat()...)
	default:
		lines := []string{"You fail to escape!"}
		if result.Enemy != nil {
			lines = append(lines, result.Enemy.Message)
		}
		lines = append(lines, fmt.Sprintf("You: %d HP.", result.PlayerHealth))
		return lines
	}
}

func (s *Session) applyVictory(rewards *combat.Rewards) []string {
	lines := []string{"Victory!"}
	if rewards == nil {
		return lines
	}
	s.State.Gold += rewards.Gold
	s.State.Experience += rewards.Experience
	lines = append(lines, fmt.Sprintf("You gain %d gold and %d experience.", rewards.Gold, rewards.Experience))
	for _, drop := range rewards.Items {
		item := lootItem(drop)
		if note := s.stow(item); note != "" {
			lines = append(lines, note)
		} else {
			lines = append(lines, fmt.Sprintf("You pick up: %s", item.Name))
		}
	}
	s.logEvent("combat_victory", "", rewards)
	return append(lines, s.questCompletions()...)
}

// applyDefeat takes the gold and experience penalty and stands the player
// back up at full health in the same location.
func (s *Session) applyDefeat() []string {
	goldLost, expLost := combat.DefeatPenalty(s.State.Gold, s.State.Experience)
	s.State.Gold = max(0, s.State.Gold-goldLost)
	s.State.Experience = max(0, s.State.Experience-expLost)
	s.State.Stats.Health = s.State.Stats.MaxHealth
	s.State.Health = s.State.Stats.Health
	s.logEvent("combat_defeat", "", map[string]int{"gold_lost": goldLost, "experience_lost": expLost})
	return []string{
		"You are defeated.",
		fmt.Sprintf("You lose %d gold and %d experience, and wake up later, patched up.", goldLost, expLost),
	}
}

func (s *Session) status() []string {
	lines := []string{
		fmt.Sprintf("%s: level %d (%d XP)", s.State.PlayerName, s.State.Level, s.State.Experience),
		fmt.Sprintf("Health %d/%d, Mana %d/%d, Gold %d", s.State.Stats.Health, s.State.Stats.MaxHealth, s.State.Stats.Mana, s.State.Stats.MaxMana, s.State.Gold),
		fmt.Sprintf("Location: %s", s.State.Location().Name),
	}
	skills := make([]string, 0, len(s.State.Skills))
	for name := range s.State.Skills {
		skills = append(skills, name)
	}
	sort.Strings(skills)
	for _, name := range skills {
		if s.State.Skills[name] > 0 {
			lines = append(lines, fmt.Sprintf("  %s: %d", name, s.State.Skills[name]))
		}
	}
	if st := s.Combat.GetStatus(); st.InCombat {
		lines = append(lines, fmt.Sprintf("In combat with %s (%d HP), turn %d.", st.EnemyName, st.EnemyHealth, st.TurnCount))
	}
	return lines
}

func (s *Session) recipes() []string {
	statuses := s.Crafting.AvailableRecipes(s.State.Materials, s.availableTools(), s.State.Skills)
	if len(statuses) == 0 {
		return []string{"You don't know any recipes you could attempt here."}
	}
	lines := []string{"Recipes:"}
	for _, rs := range statuses {
		if rs.Craftable {
			lines = append(lines, fmt.Sprintf("  [%s] %s: ready to craft", rs.Key, rs.Recipe.Name))
		} else {
			lines = append(lines, fmt.Sprintf("  [%s] %s, missing: %s", rs.Key, rs.Recipe.Name, strings.Join(rs.MissingMaterials, ", ")))
		}
	}
	return lines
}

func (s *Session) craft(recipe string) []string {
	if recipe == "" {
		return []string{"Craft what? Try: recipes"}
	}
	result, err := s.Crafting.Craft(keyFor(recipe), s.State.Materials, s.availableTools(), s.State.Skills)
	if err != nil {
		switch {
		case errors.Is(err, crafting.ErrUnknownRecipe):
			return []string{fmt.Sprintf("You don't know how to make a %s.", recipe)}
		case errors.Is(err, crafting.ErrSkillTooLow):
			return []string{"Your skill isn't high enough for that yet."}
		case errors.Is(err, crafting.ErrMissingTool):
			return []string{"You lack the tools for that."}
		default:
			return []string{"You don't have the materials for that."}
		}
	}
	if !result.Success {
		losses := make([]string, 0, len(result.MaterialsLost))
		for mat, count := range result.MaterialsLost {
			losses = append(losses, fmt.Sprintf("%s x%d", mat, count))
		}
		sort.Strings(losses)
		s.logEvent("craft_failed", keyFor(recipe), result.MaterialsLost)
		return []string{"The attempt fails. Materials lost: " + strings.Join(losses, ", ")}
	}
	note := s.stow(*result.Item)
	s.logEvent("craft_succeeded", keyFor(recipe), nil)
	lines := []string{
		fmt.Sprintf("After %d seconds of work, you craft: %s", result.CraftTime, result.Item.Name),
		fmt.Sprintf("Your %s improves by %d.", result.SkillImproved, result.ExperienceGained),
	}
	if note != "" {
		lines = append(lines, note)
	}
	return append(lines, s.questCompletions()...)
}

func (s *Session) materialList() []string {
	if len(s.State.Materials) == 0 {
		return []string{"You have no crafting materials."}
	}
	keys := make([]string, 0, len(s.State.Materials))
	for key := range s.State.Materials {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	lines := []string{"Materials:"}
	for _, key := range keys {
		name := displayName(key)
		if mat, ok := s.Crafting.Material(key); ok {
			name = mat.Name
		}
		lines = append(lines, fmt.Sprintf("  %s x%d", name, s.State.Materials[key]))
	}
	return lines
}

func (s *Session) shopDirectory() []string {
	lines := []string{"Merchants:"}
	here := s.State.CurrentLocation
	for _, m := range s.Trading.Merchants() {
		marker := ""
		if m.Location == here {
			marker = " (here)"
		}
		lines = append(lines, fmt.Sprintf("  [%s] %s: %s%s", m.Key, m.Name, m.Location, marker))
	}
	return append(lines, "Browse one with: shop <merchant>")
}

func (s *Session) browseShop(name string) []string {
	if name == "" {
		return []string{"Which shop? Try: shops"}
	}
	key := keyFor(name)
	inv, err := s.Trading.Inventory(key)
	if err != nil {
		return []string{fmt.Sprintf("There is no merchant called %q.", name)}
	}
	merchant, _ := s.Trading.Merchant(key)
	if merchant.Location != s.State.CurrentLocation {
		return []string{fmt.Sprintf("%s trades in %s, not here.", inv.MerchantName, displayName(merchant.Location))}
	}
	s.shop = key
	lines := []string{fmt.Sprintf("%s (reputation %d):", inv.MerchantName, inv.Reputation)}
	for _, entry := range inv.Stock {
		note := ""
		if !entry.Tradeable {
			note = " (not for sale)"
		}
		lines = append(lines, fmt.Sprintf("  %s: %d gold (x%d)%s", entry.Name, entry.Price, entry.Quantity, note))
	}
	return append(lines, "Now: buy <item>, sell <item>, haggle <item>")
}

func (s *Session) buy(args string) []string {
	if s.shop == "" {
		return []string{"Browse a shop first: shop <merchant>"}
	}
	quantity, itemName := splitQuantity(args)
	if itemName == "" {
		return []string{"Buy what?"}
	}
	key := keyFor(itemName)
	result, err := s.Trading.Buy(s.shop, key, quantity, s.State.Gold, 0)
	if err != nil {
		switch {
		case errors.Is(err, trading.ErrInsufficientGold):
			return []string{"You can't afford that."}
		case errors.Is(err, trading.ErrInsufficientStock):
			return []string{"The merchant doesn't have that many."}
		case errors.Is(err, trading.ErrNotTradeable):
			return []string{"That isn't for sale."}
		default:
			return []string{fmt.Sprintf("The merchant doesn't stock %s.", itemName)}
		}
	}
	s.State.Gold = result.RemainingGold
	merchant, _ := s.Trading.Merchant(s.shop)
	var note string
	for i := 0; i < result.Quantity; i++ {
		note = s.stow(boughtItem(merchant, key))
	}
	s.logEvent("buy", key, result)
	lines := []string{fmt.Sprintf("You buy %d x %s for %d gold (%d each). Gold left: %d.",
		result.Quantity, result.Item, result.TotalCost, result.PricePerItem, result.RemainingGold)}
	if note != "" {
		lines = append(lines, note)
	}
	return append(lines, s.questCompletions()...)
}

func (s *Session) sell(args string) []string {
	if s.shop == "" {
		return []string{"Browse a shop first: shop <merchant>"}
	}
	quantity, itemName := splitQuantity(args)
	if itemName == "" {
		return []string{"Sell what?"}
	}
	owned := s.State.CountItem(itemName)
	result, err := s.Trading.Sell(s.shop, keyFor(itemName), quantity, owned, 0)
	if err != nil {
		switch {
		case errors.Is(err, trading.ErrInsufficientQuantity):
			return []string{fmt.Sprintf("You only have %d of those.", owned)}
		case errors.Is(err, trading.ErrMerchantCannotAfford):
			return []string{"The merchant can't afford that."}
		default:
			return []string{"The merchant won't take that."}
		}
	}
	for i := 0; i < result.Quantity; i++ {
		s.State.RemoveItem(itemName)
	}
	s.State.Gold += result.TotalEarnings
	s.logEvent("sell", keyFor(itemName), result)
	return []string{fmt.Sprintf("You sell %d x %s for %d gold (%d each). Gold: %d.",
		result.Quantity, result.Item, result.TotalEarnings, result.PricePerItem, s.State.Gold)}
}

func (s *Session) haggle(itemName string) []string {
	if s.shop == "" {
		return []string{"Browse a shop first: shop <merchant>"}
	}
	if itemName == "" {
		return []string{"Haggle over what?"}
	}
	price, err := s.Trading.Price(s.shop, keyFor(itemName))
	if err != nil {
		return []string{fmt.Sprintf("The merchant doesn't stock %s.", itemName)}
	}
	result, err := s.Trading.Haggle(s.shop, price, 0)
	if err != nil {
		return []string{"There is nobody to haggle with."}
	}
	s.logEvent("haggle", keyFor(itemName), result)
	if result.Success {
		return []string{fmt.Sprintf("The merchant relents: %d gold instead of %d.", result.NewPrice, result.OriginalPrice)}
	}
	return []string{"The merchant won't budge on the price."}
}

func (s *Session) saveGame(name string) []string {
	meta, err := s.Saves.Save(s.State, keyFor(name))
	if err != nil {
		s.Debug.Printf("save failed: %v", err)
		return []string{"Saving failed."}
	}
	s.logEvent("save", meta.SaveName, nil)
	return []string{fmt.Sprintf("Game saved as %q.", meta.SaveName)}
}

func (s *Session) loadGame(name string) []string {
	if name == "" {
		return []string{"Load which save? Try: saves"}
	}
	state, meta, err := s.Saves.Load(keyFor(name))
	if err != nil {
		switch {
		case errors.Is(err, save.ErrNotFound):
			return []string{fmt.Sprintf("No save called %q.", name)}
		case errors.Is(err, save.ErrVersionMismatch):
			return []string{"That save was made by an incompatible version."}
		default:
			return []string{"That save file is corrupt."}
		}
	}
	*s.State = *state
	s.shop = ""
	s.logEvent("load", meta.SaveName, nil)
	return []string{fmt.Sprintf("Loaded %q: %s, %s.", meta.SaveName, meta.PlayerName, displayName(meta.Location))}
}

func (s *Session) listSaves() []string {
	infos, err := s.Saves.List()
	if err != nil {
		s.Debug.Printf("listing saves failed: %v", err)
		return []string{"Could not read the save directory."}
	}
	if len(infos) == 0 {
		return []string{"No saves yet."}
	}
	lines := []string{"Saves:"}
	for _, info := range infos {
		if info.Err != nil {
			lines = append(lines, fmt.Sprintf("  %s: unreadable", info.SaveName))
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s: %s at %s, saved %s",
			info.SaveName, info.Metadata.PlayerName, displayName(info.Metadata.Location), info.Metadata.SaveDate))
	}
	return lines
}

func (s *Session) deleteSave(name string) []string {
	if name == "" {
		return []string{"Delete which save?"}
	}
	if err := s.Saves.Delete(keyFor(name)); err != nil {
		return []string{fmt.Sprintf("No save called %q.", name)}
	}
	return []string{fmt.Sprintf("Deleted save %q.", name)}
}

func (s *Session) freeAction(ctx context.Context, input string) []string {
	text := s.Narrator.Narrate(ctx, narration.FreeActionPrompt(s.State, input))
	s.State.AddConversation(text)
	return []string{text}
}

func (s *Session) logEvent(kind, subject string, payload interface{}) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Log(kind, subject, payload); err != nil {
		s.Debug.Printf("event log failed: %v", err)
	}
}

// stow routes an acquired item to the right container: recipe ingredients
// into the material pouch, recipe tools onto the tool belt, everything else
// into the pack. Returns a note for the player when the item was routed.
func (s *Session) stow(item game.Item) string {
	key := keyFor(item.Name)
	switch {
	case s.Crafting.IsIngredient(key):
		s.State.Materials[key]++
		return fmt.Sprintf("The %s goes into your material pouch.", strings.ToLower(item.Name))
	case s.Crafting.IsTool(key) && !s.hasTool(key):
		s.State.Tools = append(s.State.Tools, key)
		return fmt.Sprintf("The %s joins your tool belt.", strings.ToLower(item.Name))
	default:
		s.State.AddItem(item)
		return ""
	}
}

func (s *Session) hasTool(name string) bool {
	for _, tool := range s.State.Tools {
		if strings.EqualFold(tool, name) {
			return true
		}
	}
	return false
}

// availableTools is the tool belt plus the crafting stations standing at the
// player's location.
func (s *Session) availableTools() []string {
	tools := append([]string(nil), s.State.Tools...)
	return append(tools, s.State.Location().Stations...)
}

func (s *Session) journal() []string {
	if s.Events == nil {
		return []string{"Nothing has been written down yet."}
	}
	events, err := s.Events.Recent(10)
	if err != nil {
		s.Debug.Printf("reading journal: %v", err)
		return []string{"The journal is unreadable."}
	}
	if len(events) == 0 {
		return []string{"Nothing has been written down yet."}
	}
	lines := []string{"Recent happenings:"}
	for _, e := range events {
		entry := displayName(e.Kind)
		if e.Message != "" {
			entry += ": " + e.Message
		}
		lines = append(lines, "  "+entry)
	}
	return lines
}

func actionPrompt(available []combat.ActionInfo) string {
	if len(available) == 0 {
		return "Actions: attack, strong attack, defend, fireball, heal, critical strike, flee"
	}
	names := make([]string, 0, len(available)+1)
	for _, a := range available {
		names = append(names, strings.ReplaceAll(a.Key, "_", " "))
	}
	names = append(names, "flee")
	return "Actions: " + strings.Join(names, ", ")
}

// lootItem builds an inventory item for a monster drop key.
func lootItem(key string) game.Item {
	return game.Item{
		Name:        displayName(key),
		Description: "Taken from a fallen enemy.",
		Value:       5,
		Type:        game.ItemTypeMisc,
		Rarity:      game.RarityCommon,
	}
}

// boughtItem builds an inventory item for a purchased trade good.
func boughtItem(merchant *trading.Merchant, key string) game.Item {
	entry := merchant.Inventory[key]
	itemType := game.ItemTypeMisc
	switch merchant.Type {
	case trading.TypeWeaponsmith:
		itemType = game.ItemTypeWeapon
	case trading.TypeArmorer:
		itemType = game.ItemTypeArmor
	case trading.TypeAlchemist:
		itemType = game.ItemTypeConsumable
	}
	return game.Item{
		Name:           entry.Name,
		Description:    entry.Description,
		Value:          entry.BasePrice,
		Type:           itemType,
		Rarity:         entry.Rarity,
		SpecialEffects: append([]string(nil), entry.SpecialEffects...),
	}
}

func splitQuantity(args string) (int, string) {
	parts := strings.SplitN(args, " ", 2)
	if len(parts) == 2 {
		if n, err := strconv.Atoi(parts[0]); err == nil && n > 0 {
			return n, strings.TrimSpace(parts[1])
		}
	}
	return 1, strings.TrimSpace(args)
}

func keyFor(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func displayName(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func joinKeys(keys []string) string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, displayName(k))
	}
	return strings.Join(names, ", ")
}
