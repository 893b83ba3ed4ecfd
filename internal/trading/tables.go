package trading

import "textquest/internal/game"

func defaultMerchants() map[string]*Merchant {
	return map[string]*Merchant{
		"general_store": {
			Name:             "General Store",
			Description:      "A trader stocking everyday goods",
			Type:             TypeGeneral,
			Location:         "town",
			Gold:             500,
			Reputation:       60,
			NegotiationSkill: 3,
			RestockInterval:  24,
			Inventory: map[string]*TradeItem{
				"health_potion": {Name: "Health Potion", Description: "A healing draught", BasePrice: 15, Rarity: game.RarityCommon, Quantity: 10, MaxQuantity: 999, Tradeable: true},
				"bread":         {Name: "Bread", Description: "Fresh bread", BasePrice: 5, Rarity: game.RarityCommon, Quantity: 20, MaxQuantity: 999, Tradeable: true},
				"water":         {Name: "Water", Description: "Clean water", BasePrice: 2, Rarity: game.RarityCommon, Quantity: 50, MaxQuantity: 999, Tradeable: true},
				"torch":         {Name: "Torch", Description: "A torch for dark places", BasePrice: 8, Rarity: game.RarityCommon, Quantity: 15, MaxQuantity: 999, Tradeable: true},
				"rope":          {Name: "Rope", Description: "Sturdy rope", BasePrice: 12, Rarity: game.RarityCommon, Quantity: 8, MaxQuantity: 999, Tradeable: true},
				"wood":          {Name: "Wood", Description: "A split log of workable lumber", BasePrice: 3, Rarity: game.RarityCommon, Quantity: 40, MaxQuantity: 999, Tradeable: true},
				"leather":       {Name: "Leather", Description: "Cured animal hide", BasePrice: 6, Rarity: game.RarityCommon, Quantity: 25, MaxQuantity: 999, Tradeable: true},
				"cloth":         {Name: "Cloth", Description: "Woven fabric", BasePrice: 4, Rarity: game.RarityCommon, Quantity: 20, MaxQuantity: 999, Tradeable: true},
				"herbs":         {Name: "Herbs", Description: "A bundle of medicinal herbs", BasePrice: 4, Rarity: game.RarityCommon, Quantity: 30, MaxQuantity: 999, Tradeable: true},
			},
		},
		"weaponsmith": {
			Name:             "Weaponsmith",
			Description:      "A master maker and seller of weapons",
			Type:             TypeWeaponsmith,
			Location:         "town",
			Gold:             800,
			Reputation:       70,
			NegotiationSkill: 6,
			RestockInterval:  24,
			SpecialDiscounts: map[string]float64{"iron_sword": 0.9, "steel_sword": 0.85},
			Inventory: map[string]*TradeItem{
				"iron_sword":  {Name: "Iron Sword", Description: "A sharp iron sword", BasePrice: 80, Rarity: game.RarityUncommon, Quantity: 3, MaxQuantity: 999, Tradeable: true},
				"steel_sword": {Name: "Steel Sword", Description: "A mighty steel sword", BasePrice: 150, Rarity: game.RarityRare, Quantity: 2, MaxQuantity: 999, Tradeable: true},
				"dagger":      {Name: "Dagger", Description: "A small sharp blade", BasePrice: 25, Rarity: game.RarityCommon, Quantity: 8, MaxQuantity: 999, Tradeable: true},
				"bow":         {Name: "Bow", Description: "A hunting bow", BasePrice: 60, Rarity: game.RarityUncommon, Quantity: 5, MaxQuantity: 999, Tradeable: true},
				"arrows":      {Name: "Arrows", Description: "A bundle of arrows", BasePrice: 2, Rarity: game.RarityCommon, Quantity: 100, MaxQuantity: 999, Tradeable: true},
				"knife":       {Name: "Knife", Description: "A sturdy whittling knife", BasePrice: 10, Rarity: game.RarityCommon, Quantity: 10, MaxQuantity: 999, Tradeable: true},
				"iron_ingot":  {Name: "Iron Ingot", Description: "A bar of refined iron", BasePrice: 18, Rarity: game.RarityUncommon, Quantity: 12, MaxQuantity: 999, Tradeable: true},
			},
		},
		"armorer": {
			Name:             "Armorer",
			Description:      "A specialist in armor and protection",
			Type:             TypeArmorer,
			Location:         "town",
			Gold:             600,
			Reputation:       65,
			NegotiationSkill: 5,
			RestockInterval:  24,
			Inventory: map[string]*TradeItem{
				"leather_armor": {Name: "Leather Armor", Description: "Light armor of cured hide", BasePrice: 45, Rarity: game.RarityCommon, Quantity: 5, MaxQuantity: 999, Tradeable: true},
				"iron_armor":    {Name: "Iron Armor", Description: "Sturdy iron armor", BasePrice: 120, Rarity: game.RarityUncommon, Quantity: 3, MaxQuantity: 999, Tradeable: true},
				"shield":        {Name: "Shield", Description: "A shield for blocking", BasePrice: 35, Rarity: game.RarityCommon, Quantity: 7, MaxQuantity: 999, Tradeable: true},
				"helmet":        {Name: "Helmet", Description: "A protective helmet", BasePrice: 25, Rarity: game.RarityCommon, Quantity: 10, MaxQuantity: 999, Tradeable: true},
				"boots":         {Name: "Boots", Description: "Comfortable boots", BasePrice: 20, Rarity: game.RarityCommon, Quantity: 12, MaxQuantity: 999, Tradeable: true},
				"needle":        {Name: "Needle", Description: "A heavy leatherworking needle", BasePrice: 5, Rarity: game.RarityCommon, Quantity: 10, MaxQuantity: 999, Tradeable: true},
			},
		},
		"alchemist": {
			Name:             "Alchemist",
			Description:      "A brewer of potions and remedies",
			Type:             TypeAlchemist,
			Location:         "town",
			Gold:             400,
			Reputation:       75,
			NegotiationSkill: 7,
			RestockInterval:  24,
			SpecialMarkups:   map[string]float64{"invisibility_potion": 1.3, "strength_potion": 1.2},
			Inventory: map[string]*TradeItem{
				"health_potion":       {Name: "Health Potion", Description: "A healing draught", BasePrice: 20, Rarity: game.RarityCommon, Quantity: 15, MaxQuantity: 999, Tradeable: true},
				"mana_potion":         {Name: "Mana Potion", Description: "A mana-restoring draught", BasePrice: 25, Rarity: game.RarityUncommon, Quantity: 12, MaxQuantity: 999, Tradeable: true},
				"strength_potion":     {Name: "Strength Potion", Description: "A strength-boosting draught", BasePrice: 35, Rarity: game.RarityRare, Quantity: 8, MaxQuantity: 999, Tradeable: true},
				"invisibility_potion": {Name: "Invisibility Potion", Description: "A vanishing draught", BasePrice: 80, Rarity: game.RarityEpic, Quantity: 3, MaxQuantity: 999, Tradeable: true},
				"antidote":            {Name: "Antidote", Description: "A cure for poison", BasePrice: 30, Rarity: game.RarityUncommon, Quantity: 10, MaxQuantity: 999, Tradeable: true},
				"cauldron":            {Name: "Cauldron", Description: "A cast-iron brewing cauldron", BasePrice: 30, Rarity: game.RarityCommon, Quantity: 4, MaxQuantity: 999, Tradeable: true},
			},
		},
		"magic_shop": {
			Name:             "Magic Shop",
			Description:      "A shop of enchanted wares",
			Type:             TypeMagicShop,
			Location:         "castle",
			Gold:             1000,
			Reputation:       80,
			NegotiationSkill: 8,
			RestockInterval:  24,
			SpecialMarkups:   map[string]float64{"enchantment_orb": 1.5, "teleport_scroll": 1.4},
			Inventory: map[string]*TradeItem{
				"magic_scroll":    {Name: "Magic Scroll", Description: "A scroll of spells", BasePrice: 100, Rarity: game.RarityRare, Quantity: 5, MaxQuantity: 999, Tradeable: true},
				"magic_wand":      {Name: "Magic Wand", Description: "A wand of focused magic", BasePrice: 200, Rarity: game.RarityEpic, Quantity: 2, MaxQuantity: 999, Tradeable: true},
				"mana_crystal":    {Name: "Mana Crystal", Description: "A mana-restoring crystal", BasePrice: 50, Rarity: game.RarityUncommon, Quantity: 8, MaxQuantity: 999, Tradeable: true},
				"teleport_scroll": {Name: "Teleport Scroll", Description: "A scroll of teleportation", BasePrice: 150, Rarity: game.RarityEpic, Quantity: 3, MaxQuantity: 999, Tradeable: true},
				"enchantment_orb": {Name: "Enchantment Orb", Description: "An orb for enchanting", BasePrice: 300, Rarity: game.RarityLegendary, Quantity: 1, MaxQuantity: 999, Tradeable: true},
				"magic_crystal":   {Name: "Magic Crystal", Description: "A crystal humming with power", BasePrice: 60, Rarity: game.RarityRare, Quantity: 5, MaxQuantity: 999, Tradeable: true},
			},
		},
		"black_market": {
			Name:             "Black Market Dealer",
			Description:      "A dealer in illegal and rare goods",
			Type:             TypeBlackMarket,
			Location:         "cave",
			Gold:             2000,
			Reputation:       30,
			NegotiationSkill: 9,
			RestockInterval:  24,
			SpecialMarkups:   map[string]float64{"invisibility_cloak": 2.0, "poison_dagger": 1.8},
			Inventory: map[string]*TradeItem{
				"poison_dagger":      {Name: "Poison Dagger", Description: "A venom-coated blade", BasePrice: 120, Rarity: game.RarityRare, Quantity: 2, MaxQuantity: 999, Tradeable: true},
				"lockpick":           {Name: "Lockpick", Description: "A tool for opening locks", BasePrice: 80, Rarity: game.RarityUncommon, Quantity: 5, MaxQuantity: 999, Tradeable: true},
				"smoke_bomb":         {Name: "Smoke Bomb", Description: "A bomb for quick escapes", BasePrice: 60, Rarity: game.RarityUncommon, Quantity: 8, MaxQuantity: 999, Tradeable: true},
				"invisibility_cloak": {Name: "Invisibility Cloak", Description: "A cloak of vanishing", BasePrice: 500, Rarity: game.RarityLegendary, Quantity: 1, MaxQuantity: 999, Tradeable: true},
				"thief_tools":        {Name: "Thief Tools", Description: "A burglar's toolkit", BasePrice: 150, Rarity: game.RarityRare, Quantity: 3, MaxQuantity: 999, Tradeable: true},
				"steel_ingot":        {Name: "Steel Ingot", Description: "A bar of hardened steel", BasePrice: 28, Rarity: game.RarityUncommon, Quantity: 8, MaxQuantity: 999, Tradeable: true},
				"phoenix_feather":    {Name: "Phoenix Feather", Description: "A feather that still smolders", BasePrice: 320, Rarity: game.RarityLegendary, Quantity: 1, MaxQuantity: 999, Tradeable: true},
				"void_essence":       {Name: "Void Essence", Description: "A vial of bottled nothing", BasePrice: 520, Rarity: game.RarityLegendary, Quantity: 1, MaxQuantity: 999, Tradeable: true},
			},
		},
	}
}
