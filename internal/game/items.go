package game

// ItemType tags what an item is for. The resolvers only branch on a few of
// these; the rest are flavor for the UI and the narrator.
type ItemType string

const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeMaterial   ItemType = "material"
	ItemTypeTool       ItemType = "tool"
	ItemTypeCurrency   ItemType = "currency"
	ItemTypeTreasure   ItemType = "treasure"
	ItemTypeMisc       ItemType = "misc"
)

// Rarity tiers shared by items, materials and trade goods.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Item is owned by exactly one container at a time: a location's item list,
// the player inventory, or a quest's reward list. Moving an item means
// removing it from the source and appending to the destination.
type Item struct {
	Name           string         `json:"name" yaml:"name"`
	Description    string         `json:"description" yaml:"description"`
	Weight         float64        `json:"weight" yaml:"weight"`
	Value          int            `json:"value" yaml:"value"`
	Usable         bool           `json:"usable" yaml:"usable"`
	Consumable     bool           `json:"consumable" yaml:"consumable"`
	Type           ItemType       `json:"item_type" yaml:"item_type"`
	Stats          map[string]int `json:"stats,omitempty" yaml:"stats"`
	Durability     int            `json:"durability" yaml:"durability"`
	MaxDurability  int            `json:"max_durability" yaml:"max_durability"`
	Rarity         Rarity         `json:"rarity" yaml:"rarity"`
	SpecialEffects []string       `json:"special_effects,omitempty" yaml:"special_effects"`
}

// Clone returns an independent copy, so template items can be handed out
// without sharing storage.
func (i Item) Clone() Item {
	out := i
	if i.Stats != nil {
		out.Stats = make(map[string]int, len(i.Stats))
		for k, v := range i.Stats {
			out.Stats[k] = v
		}
	}
	if i.SpecialEffects != nil {
		out.SpecialEffects = append([]string(nil), i.SpecialEffects...)
	}
	return out
}
