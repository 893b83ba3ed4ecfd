package crafting

import "textquest/internal/game"

// recipeOrder fixes the listing order for recipe browsing.
var recipeOrder = []string{
	"wooden_sword",
	"iron_sword",
	"steel_sword",
	"leather_armor",
	"iron_armor",
	"health_potion",
	"mana_potion",
	"hammer",
	"anvil",
	"dragon_sword",
	"void_potion",
}

func defaultMaterials() map[string]Material {
	return map[string]Material{
		"wood":     {Name: "Wood", Description: "Basic lumber for crafting", Rarity: game.RarityCommon, BaseValue: 2, Weight: 1.0},
		"stone":    {Name: "Stone", Description: "Rough stone for crafting", Rarity: game.RarityCommon, BaseValue: 1, Weight: 1.0},
		"iron_ore": {Name: "Iron Ore", Description: "Raw ore for smelting", Rarity: game.RarityCommon, BaseValue: 5, Weight: 1.0},
		"leather":  {Name: "Leather", Description: "Animal hide for armor", Rarity: game.RarityCommon, BaseValue: 8, Weight: 1.0},
		"cloth":    {Name: "Cloth", Description: "Woven fabric for clothing", Rarity: game.RarityCommon, BaseValue: 3, Weight: 1.0},

		"iron_ingot":    {Name: "Iron Ingot", Description: "Refined iron", Rarity: game.RarityUncommon, BaseValue: 15, Weight: 1.0},
		"steel_ingot":   {Name: "Steel Ingot", Description: "Hardened steel", Rarity: game.RarityUncommon, BaseValue: 25, Weight: 1.0},
		"magic_crystal": {Name: "Magic Crystal", Description: "A crystal humming with enchantment", Rarity: game.RarityRare, BaseValue: 50, Weight: 1.0},
		"herbs":         {Name: "Herbs", Description: "Medicinal plants for alchemy", Rarity: game.RarityCommon, BaseValue: 4, Weight: 1.0},

		"dragon_scale":    {Name: "Dragon Scale", Description: "A scale of tremendous strength", Rarity: game.RarityLegendary, BaseValue: 200, Weight: 1.0},
		"mithril_ore":     {Name: "Mithril Ore", Description: "Exceedingly rare mithril ore", Rarity: game.RarityEpic, BaseValue: 100, Weight: 1.0},
		"phoenix_feather": {Name: "Phoenix Feather", Description: "A feather that never burns out", Rarity: game.RarityLegendary, BaseValue: 300, Weight: 1.0},
		"void_essence":    {Name: "Void Essence", Description: "Essence drawn from another dimension", Rarity: game.RarityLegendary, BaseValue: 500, Weight: 1.0},
	}
}

func defaultRecipes() map[string]*Recipe {
	return map[string]*Recipe{
		"wooden_sword": {
			Name:               "Wooden Sword",
			Description:        "A simple wooden sword",
			Materials:          map[string]int{"wood": 3, "leather": 1},
			Difficulty:         DifficultyEasy,
			CraftTime:          30,
			ExperienceGain:     10,
			SuccessRate:        0.9,
			ToolsRequired:      []string{"knife"},
			SkillRequired:      "carpentry",
			SkillLevelRequired: 0,
		},
		"iron_sword": {
			Name:               "Iron Sword",
			Description:        "A sharp iron sword",
			Materials:          map[string]int{"iron_ingot": 2, "wood": 1, "leather": 1},
			Difficulty:         DifficultyMedium,
			CraftTime:          120,
			ExperienceGain:     25,
			SuccessRate:        0.8,
			ToolsRequired:      []string{"hammer", "anvil"},
			SkillRequired:      "blacksmithing",
			SkillLevelRequired: 1,
		},
		"steel_sword": {
			Name:               "Steel Sword",
			Description:        "A mighty steel sword",
			Materials:          map[string]int{"steel_ingot": 3, "iron_ingot": 1, "leather": 2},
			Difficulty:         DifficultyHard,
			CraftTime:          300,
			ExperienceGain:     50,
			SuccessRate:        0.7,
			ToolsRequired:      []string{"hammer", "anvil", "forge"},
			SkillRequired:      "blacksmithing",
			SkillLevelRequired: 3,
		},
		"leather_armor": {
			Name:               "Leather Armor",
			Description:        "Light armor of cured hide",
			Materials:          map[string]int{"leather": 4, "cloth": 2},
			Difficulty:         DifficultyEasy,
			CraftTime:          60,
			ExperienceGain:     15,
			SuccessRate:        0.85,
			ToolsRequired:      []string{"needle"},
			SkillRequired:      "carpentry",
			SkillLevelRequired: 0,
		},
		"iron_armor": {
			Name:               "Iron Armor",
			Description:        "Sturdy iron armor",
			Materials:          map[string]int{"iron_ingot": 4, "leather": 2},
			Difficulty:         DifficultyMedium,
			CraftTime:          180,
			ExperienceGain:     35,
			SuccessRate:        0.75,
			ToolsRequired:      []string{"hammer", "anvil"},
			SkillRequired:      "blacksmithing",
			SkillLevelRequired: 2,
		},
		"health_potion": {
			Name:               "Health Potion",
			Description:        "A draught that closes wounds",
			Materials:          map[string]int{"herbs": 2, "water": 1},
			Difficulty:         DifficultyEasy,
			CraftTime:          45,
			ExperienceGain:     12,
			SuccessRate:        0.9,
			ToolsRequired:      []string{"cauldron"},
			SkillRequired:      "alchemy",
			SkillLevelRequired: 0,
		},
		"mana_potion": {
			Name:               "Mana Potion",
			Description:        "A draught that restores mana",
			Materials:          map[string]int{"herbs": 3, "magic_crystal": 1, "water": 1},
			Difficulty:         DifficultyMedium,
			CraftTime:          90,
			ExperienceGain:     20,
			SuccessRate:        0.8,
			ToolsRequired:      []string{"cauldron"},
			SkillRequired:      "alchemy",
			SkillLevelRequired: 1,
		},
		"hammer": {
			Name:               "Hammer",
			Description:        "A smithing hammer",
			Materials:          map[string]int{"iron_ingot": 1, "wood": 1},
			Difficulty:         DifficultyEasy,
			CraftTime:          60,
			ExperienceGain:     10,
			SuccessRate:        0.9,
			ToolsRequired:      []string{"anvil"},
			SkillRequired:      "blacksmithing",
			SkillLevelRequired: 0,
		},
		"anvil": {
			Name:               "Anvil",
			Description:        "A smithing anvil",
			Materials:          map[string]int{"iron_ingot": 5, "stone": 3},
			Difficulty:         DifficultyMedium,
			CraftTime:          240,
			ExperienceGain:     30,
			SuccessRate:        0.8,
			SkillRequired:      "blacksmithing",
			SkillLevelRequired: 1,
		},
		"dragon_sword": {
			Name:               "Dragon Sword",
			Description:        "A legendary blade carrying a dragon's power",
			Materials:          map[string]int{"dragon_scale": 2, "steel_ingot": 3, "phoenix_feather": 1},
			Difficulty:         DifficultyExpert,
			CraftTime:          600,
			ExperienceGain:     100,
			SuccessRate:        0.5,
			ToolsRequired:      []string{"hammer", "anvil", "forge", "enchanting_table"},
			SkillRequired:      "blacksmithing",
			SkillLevelRequired: 5,
		},
		"void_potion": {
			Name:               "Void Potion",
			Description:        "A draught that opens a portal to another dimension",
			Materials:          map[string]int{"void_essence": 1, "magic_crystal": 3, "phoenix_feather": 1},
			Difficulty:         DifficultyExpert,
			CraftTime:          480,
			ExperienceGain:     80,
			SuccessRate:        0.4,
			ToolsRequired:      []string{"cauldron", "enchanting_table"},
			SkillRequired:      "alchemy",
			SkillLevelRequired: 5,
		},
	}
}

func defaultOutputs() map[string]game.Item {
	return map[string]game.Item{
		"wooden_sword": {
			Name:          "Wooden Sword",
			Description:   "A simple wooden sword",
			Type:          game.ItemTypeWeapon,
			Stats:         map[string]int{"attack": 8, "durability": 50},
			Durability:    100,
			MaxDurability: 100,
			Value:         15,
			Rarity:        game.RarityCommon,
		},
		"iron_sword": {
			Name:          "Iron Sword",
			Description:   "A sharp iron sword",
			Type:          game.ItemTypeWeapon,
			Stats:         map[string]int{"attack": 15, "durability": 100},
			Durability:    100,
			MaxDurability: 100,
			Value:         35,
			Rarity:        game.RarityUncommon,
		},
		"steel_sword": {
			Name:          "Steel Sword",
			Description:   "A mighty steel sword",
			Type:          game.ItemTypeWeapon,
			Stats:         map[string]int{"attack": 25, "durability": 150},
			Durability:    100,
			MaxDurability: 100,
			Value:         75,
			Rarity:        game.RarityRare,
		},
		"leather_armor": {
			Name:          "Leather Armor",
			Description:   "Light armor of cured hide",
			Type:          game.ItemTypeArmor,
			Stats:         map[string]int{"defense": 5, "speed": 2},
			Durability:    100,
			MaxDurability: 100,
			Value:         20,
			Rarity:        game.RarityCommon,
		},
		"iron_armor": {
			Name:          "Iron Armor",
			Description:   "Sturdy iron armor",
			Type:          game.ItemTypeArmor,
			Stats:         map[string]int{"defense": 12, "speed": -1},
			Durability:    100,
			MaxDurability: 100,
			Value:         50,
			Rarity:        game.RarityUncommon,
		},
		"health_potion": {
			Name:           "Health Potion",
			Description:    "A draught that closes wounds",
			Type:           game.ItemTypeConsumable,
			Stats:          map[string]int{"heal": 30},
			Durability:     100,
			MaxDurability:  100,
			Value:          10,
			Rarity:         game.RarityCommon,
			SpecialEffects: []string{"instant_heal"},
			Usable:         true,
			Consumable:     true,
		},
		"mana_potion": {
			Name:           "Mana Potion",
			Description:    "A draught that restores mana",
			Type:           game.ItemTypeConsumable,
			Stats:          map[string]int{"mana_restore": 25},
			Durability:     100,
			MaxDurability:  100,
			Value:          15,
			Rarity:         game.RarityUncommon,
			SpecialEffects: []string{"instant_mana"},
			Usable:         true,
			Consumable:     true,
		},
		"hammer": {
			Name:          "Hammer",
			Description:   "A smithing hammer",
			Type:          game.ItemTypeTool,
			Stats:         map[string]int{"crafting": 1},
			Durability:    100,
			MaxDurability: 100,
			Value:         20,
			Rarity:        game.RarityCommon,
		},
		"anvil": {
			Name:          "Anvil",
			Description:   "A smithing anvil",
			Type:          game.ItemTypeTool,
			Stats:         map[string]int{"crafting": 2},
			Durability:    100,
			MaxDurability: 100,
			Value:         90,
			Rarity:        game.RarityUncommon,
		},
		"dragon_sword": {
			Name:           "Dragon Sword",
			Description:    "A legendary blade carrying a dragon's power",
			Type:           game.ItemTypeWeapon,
			Stats:          map[string]int{"attack": 50, "durability": 300, "fire_damage": 10},
			Durability:     100,
			MaxDurability:  100,
			Value:          500,
			Rarity:         game.RarityLegendary,
			SpecialEffects: []string{"fire_aura", "dragon_fear"},
		},
		"void_potion": {
			Name:           "Void Potion",
			Description:    "A draught that opens a portal to another dimension",
			Type:           game.ItemTypeConsumable,
			Stats:          map[string]int{"teleport": 1},
			Durability:     100,
			MaxDurability:  100,
			Value:          200,
			Rarity:         game.RarityLegendary,
			SpecialEffects: []string{"dimensional_travel", "void_protection"},
			Usable:         true,
			Consumable:     true,
		},
	}
}
