package combat

import "textquest/internal/game"

// actionOrder fixes the presentation order of the action table.
var actionOrder = []string{"attack", "strong_attack", "defend", "fireball", "heal", "critical_strike"}

func defaultActions() map[string]Action {
	return map[string]Action{
		"attack": {
			Name:        "Attack",
			Description: "A basic weapon strike",
			Damage:      10,
			Accuracy:    0.85,
		},
		"strong_attack": {
			Name:        "Strong Attack",
			Description: "A heavy blow with poor accuracy",
			Damage:      20,
			Accuracy:    0.65,
			Cooldown:    2,
		},
		"defend": {
			Name:          "Defend",
			Description:   "Brace to reduce incoming damage",
			Damage:        0,
			Accuracy:      1.0,
			SpecialEffect: "defense_boost",
		},
		"fireball": {
			Name:        "Fireball",
			Description: "Hurl a ball of fire",
			Damage:      25,
			Accuracy:    0.75,
			Cooldown:    3,
		},
		"heal": {
			Name:        "Heal",
			Description: "Mend your own wounds",
			Damage:      -20,
			Accuracy:    1.0,
			Cooldown:    4,
		},
		"critical_strike": {
			Name:          "Critical Strike",
			Description:   "A strike with a high critical chance",
			Damage:        15,
			Accuracy:      0.70,
			Cooldown:      3,
			SpecialEffect: "high_critical",
		},
	}
}

func defaultMonsters() map[string]Monster {
	return map[string]Monster{
		"goblin": {
			Name:             "Goblin",
			Description:      "A small, cunning goblin with a sharpened blade",
			Stats:            game.CombatStats{Health: 30, MaxHealth: 30, Attack: 8, Defense: 3, Speed: 12, CriticalChance: 0.1, DodgeChance: 0.05},
			Level:            1,
			ExperienceReward: 15,
			GoldReward:       10,
			ItemDrops:        []string{"dagger", "leather_armor"},
			SpecialAbilities: []string{"stealth_attack"},
			Weakness:         "fire",
		},
		"orc": {
			Name:             "Orc",
			Description:      "A hulking orc swinging a war axe",
			Stats:            game.CombatStats{Health: 60, MaxHealth: 60, Attack: 15, Defense: 8, Speed: 6, CriticalChance: 0.1, DodgeChance: 0.05},
			Level:            3,
			ExperienceReward: 35,
			GoldReward:       25,
			ItemDrops:        []string{"battle_axe", "chain_mail"},
			SpecialAbilities: []string{"berserker_rage"},
			Weakness:         "lightning",
		},
		"skeleton": {
			Name:             "Skeleton Warrior",
			Description:      "A soldier of bone risen from its grave",
			Stats:            game.CombatStats{Health: 40, MaxHealth: 40, Attack: 12, Defense: 5, Speed: 8, CriticalChance: 0.1, DodgeChance: 0.05},
			Level:            2,
			ExperienceReward: 25,
			GoldReward:       15,
			ItemDrops:        []string{"bone_sword", "skeleton_key"},
			SpecialAbilities: []string{"bone_shield"},
			Weakness:         "holy",
		},
		"troll": {
			Name:             "Troll",
			Description:      "A massive troll that knits its wounds shut as you watch",
			Stats:            game.CombatStats{Health: 80, MaxHealth: 80, Attack: 18, Defense: 12, Speed: 4, CriticalChance: 0.1, DodgeChance: 0.05},
			Level:            5,
			ExperienceReward: 50,
			GoldReward:       40,
			ItemDrops:        []string{"troll_club", "regeneration_potion"},
			SpecialAbilities: []string{"regeneration"},
			Weakness:         "fire",
		},
		"dragon": {
			Name:             "Dragon",
			Description:      "A terrifying red dragon wreathed in fire",
			Stats:            game.CombatStats{Health: 200, MaxHealth: 200, Attack: 25, Defense: 15, Speed: 10, CriticalChance: 0.2, DodgeChance: 0.05},
			Level:            10,
			ExperienceReward: 200,
			GoldReward:       150,
			ItemDrops:        []string{"dragon_scale", "fire_sword"},
			SpecialAbilities: []string{"fire_breath", "wing_buffet"},
			Weakness:         "ice",
			Resistance:       "fire",
		},
	}
}
