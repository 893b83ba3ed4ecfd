// Package trading resolves merchant transactions: pricing, negotiation,
// buying, selling, haggling and timed restocks. Merchant stock and gold
// live here; the player's gold and items stay with the caller, which
// applies the returned totals.
package trading

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"textquest/internal/dice"
	"textquest/internal/game"
)

type MerchantType string

const (
	TypeGeneral     MerchantType = "general"
	TypeWeaponsmith MerchantType = "weaponsmith"
	TypeArmorer     MerchantType = "armorer"
	TypeAlchemist   MerchantType = "alchemist"
	TypeMagicShop   MerchantType = "magic_shop"
	TypeBlackMarket MerchantType = "black_market"
)

var (
	ErrUnknownMerchant      = errors.New("unknown merchant")
	ErrUnknownItem          = errors.New("item not available")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrNotTradeable         = errors.New("item not tradeable")
	ErrInsufficientGold     = errors.New("insufficient gold")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrMerchantCannotAfford = errors.New("merchant cannot afford")
)

const (
	sellPriceMultiplier = 0.6
	defaultSellPrice    = 10.0
	historySize         = 100
	restockBatch        = 5
	maxHaggleDiscount   = 0.20
	baseReputation      = 50
)

var rarityMultipliers = map[game.Rarity]float64{
	game.RarityCommon:    1.0,
	game.RarityUncommon:  1.2,
	game.RarityRare:      1.5,
	game.RarityEpic:      2.0,
	game.RarityLegendary: 3.0,
}

// TradeItem is one line of merchant stock.
type TradeItem struct {
	Name           string
	Description    string
	BasePrice      int
	Rarity         game.Rarity
	Quantity       int
	MaxQuantity    int
	Tradeable      bool
	SpecialEffects []string
}

// Merchant holds a shop's live state. Discounts and markups are keyed by
// inventory key.
type Merchant struct {
	Name             string
	Description      string
	Type             MerchantType
	Location         string
	Inventory        map[string]*TradeItem
	Gold             int
	Reputation       int // 0-100
	NegotiationSkill int // 0-10
	RestockTime      time.Time
	RestockInterval  int // hours
	SpecialDiscounts map[string]float64
	SpecialMarkups   map[string]float64
}

// Transaction is one entry of the bounded trade history.
type Transaction struct {
	Type      string // "buy" or "sell"
	Merchant  string
	Item      string
	Quantity  int
	Amount    int
	Timestamp time.Time
}

// StockEntry describes one purchasable line to the caller, priced for the
// current market.
type StockEntry struct {
	Key         string
	Name        string
	Description string
	Price       int
	Quantity    int
	Rarity      game.Rarity
	Tradeable   bool
}

// MerchantInventory is the browsable view of a shop.
type MerchantInventory struct {
	MerchantName string
	Type         MerchantType
	Location     string
	Reputation   int
	Stock        []StockEntry
}

// MerchantSummary is one row of the merchant directory.
type MerchantSummary struct {
	Key              string
	Name             string
	Description      string
	Type             MerchantType
	Location         string
	Reputation       int
	PlayerReputation int
	Gold             int
}

type BuyResult struct {
	Item          string
	Quantity      int
	PricePerItem  int
	TotalCost     int
	RemainingGold int
}

type SellResult struct {
	Item          string
	Quantity      int
	PricePerItem  int
	TotalEarnings int
}

type HaggleResult struct {
	Success          bool
	OriginalPrice    int
	NewPrice         int
	Discount         float64
	ReputationChange int
}

// Resolver owns the merchants, the player's per-merchant standing, the
// supply factors and the bounded trade history. The clock is injected so
// restock timing is testable.
type Resolver struct {
	merchants    map[string]*Merchant
	playerRep    map[string]int
	history      []Transaction
	supplyDemand map[string]float64
	roll         dice.Roller
	now          func() time.Time
}

func NewResolver(roll dice.Roller, now func() time.Time) *Resolver {
	r := &Resolver{
		merchants:    defaultMerchants(),
		playerRep:    make(map[string]int),
		supplyDemand: make(map[string]float64),
		roll:         roll,
		now:          now,
	}
	start := now()
	for _, merchant := range r.merchants {
		merchant.RestockTime = start
	}
	return r
}

// Price computes the shelf price of one stocked item.
func (r *Resolver) Price(merchantKey, itemKey string) (int, error) {
	merchant, ok := r.merchants[merchantKey]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMerchant, merchantKey)
	}
	item, ok := merchant.Inventory[itemKey]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownItem, itemKey)
	}
	return r.price(merchant, itemKey, item), nil
}

func (r *Resolver) price(merchant *Merchant, itemKey string, item *TradeItem) int {
	price := float64(item.BasePrice) * rarityMultipliers[item.Rarity]

	if discount, ok := merchant.SpecialDiscounts[itemKey]; ok {
		price *= discount
	}
	if markup, ok := merchant.SpecialMarkups[itemKey]; ok {
		price *= markup
	}

	// Merchant reputation swings the price by up to ±10%.
	reputationBonus := float64(merchant.Reputation-baseReputation) / 100
	price *= 1 + reputationBonus*0.2

	if factor, ok := r.supplyDemand[itemKey]; ok {
		price *= 1 + factor*0.3
	}

	return max(1, int(math.Round(price)))
}

func negotiate(basePrice float64, merchantSkill, playerSkill int) int {
	factor := float64(playerSkill-merchantSkill) * 0.05
	return max(1, int(math.Round(basePrice*(1-factor))))
}

// Inventory returns the current stock of a merchant, restocking first if
// the restock time has passed.
func (r *Resolver) Inventory(merchantKey string) (*MerchantInventory, error) {
	merchant, ok := r.merchants[merchantKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMerchant, merchantKey)
	}

	if r.now().After(merchant.RestockTime) {
		r.restock(merchant)
	}

	stock := make([]StockEntry, 0, len(merchant.Inventory))
	for _, key := range sortedStockKeys(merchant.Inventory) {
		item := merchant.Inventory[key]
		if item.Quantity <= 0 {
			continue
		}
		stock = append(stock, StockEntry{
			Key:         key,
			Name:        item.Name,
			Description: item.Description,
			Price:       r.price(merchant, key, item),
			Quantity:    item.Quantity,
			Rarity:      item.Rarity,
			Tradeable:   item.Tradeable,
		})
	}

	return &MerchantInventory{
		MerchantName: merchant.Name,
		Type:         merchant.Type,
		Location:     merchant.Location,
		Reputation:   merchant.Reputation,
		Stock:        stock,
	}, nil
}

func (r *Resolver) restock(merchant *Merchant) {
	for _, item := range merchant.Inventory {
		item.Quantity += min(restockBatch, item.MaxQuantity-item.Quantity)
	}
	merchant.RestockTime = r.now().Add(time.Duration(merchant.RestockInterval) * time.Hour)
}

// Buy purchases quantity of an item. The caller deducts TotalCost from the
// player's gold and adds the goods.
func (r *Resolver) Buy(merchantKey, itemKey string, quantity, playerGold, playerNegotiation int) (*BuyResult, error) {
	merchant, ok := r.merchants[merchantKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMerchant, merchantKey)
	}
	item, ok := merchant.Inventory[itemKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, itemKey)
	}
	if item.Quantity < quantity {
		return nil, fmt.Errorf("%w: %d available", ErrInsufficientStock, item.Quantity)
	}
	if !item.Tradeable {
		return nil, fmt.Errorf("%w: %q", ErrNotTradeable, itemKey)
	}

	pricePerItem := negotiate(float64(r.price(merchant, itemKey, item)), merchant.NegotiationSkill, playerNegotiation)
	totalCost := pricePerItem * quantity

	if playerGold < totalCost {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientGold, totalCost, playerGold)
	}

	merchant.Gold += totalCost
	item.Quantity -= quantity
	r.updateReputation(merchantKey, 1)
	r.recordTransaction("buy", merchantKey, itemKey, quantity, totalCost)

	return &BuyResult{
		Item:          itemKey,
		Quantity:      quantity,
		PricePerItem:  pricePerItem,
		TotalCost:     totalCost,
		RemainingGold: playerGold - totalCost,
	}, nil
}

// Sell sells quantity of an item the player owns ownedQuantity of. The
// caller removes the goods and banks TotalEarnings.
func (r *Resolver) Sell(merchantKey, itemKey string, quantity, ownedQuantity, playerNegotiation int) (*SellResult, error) {
	merchant, ok := r.merchants[merchantKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMerchant, merchantKey)
	}
	if ownedQuantity < quantity {
		return nil, fmt.Errorf("%w: have %d of %q", ErrInsufficientQuantity, ownedQuantity, itemKey)
	}

	// Merchants pay 60% of their own shelf price, or a flat default for
	// goods they have never carried.
	baseSellPrice := defaultSellPrice
	if item, ok := merchant.Inventory[itemKey]; ok {
		baseSellPrice = float64(r.price(merchant, itemKey, item)) * sellPriceMultiplier
	}

	pricePerItem := negotiate(baseSellPrice, merchant.NegotiationSkill, playerNegotiation)
	totalEarnings := pricePerItem * quantity

	if merchant.Gold < totalEarnings {
		return nil, fmt.Errorf("%w: needs %d gold", ErrMerchantCannotAfford, totalEarnings)
	}

	merchant.Gold -= totalEarnings
	if item, ok := merchant.Inventory[itemKey]; ok {
		item.Quantity += quantity
	} else {
		merchant.Inventory[itemKey] = &TradeItem{
			Name:        itemKey,
			Description: fmt.Sprintf("Used %s", itemKey),
			BasePrice:   int(math.Round(baseSellPrice)),
			Rarity:      game.RarityCommon,
			Quantity:    quantity,
			MaxQuantity: 999,
			Tradeable:   true,
		}
	}

	r.updateReputation(merchantKey, 2)
	r.recordTransaction("sell", merchantKey, itemKey, quantity, totalEarnings)

	return &SellResult{
		Item:          itemKey,
		Quantity:      quantity,
		PricePerItem:  pricePerItem,
		TotalEarnings: totalEarnings,
	}, nil
}

// Haggle tries to talk a quoted price down. Failure costs standing.
func (r *Resolver) Haggle(merchantKey string, currentPrice, playerNegotiation int) (*HaggleResult, error) {
	merchant, ok := r.merchants[merchantKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMerchant, merchantKey)
	}

	chance := 0.5 + 0.1*float64(playerNegotiation-merchant.NegotiationSkill)
	chance = math.Max(0, math.Min(1, chance))

	if r.roll.Float64() > chance {
		r.updateReputation(merchantKey, -1)
		return &HaggleResult{
			Success:          false,
			OriginalPrice:    currentPrice,
			NewPrice:         currentPrice,
			ReputationChange: -1,
		}, nil
	}

	discount := math.Min(maxHaggleDiscount, 0.02*float64(playerNegotiation))
	newPrice := int(math.Round(float64(currentPrice) * (1 - discount)))
	r.updateReputation(merchantKey, 1)

	return &HaggleResult{
		Success:          true,
		OriginalPrice:    currentPrice,
		NewPrice:         newPrice,
		Discount:         discount,
		ReputationChange: 1,
	}, nil
}

// updateReputation adjusts the player's standing with a merchant and lets
// the merchant's own reputation drift toward it.
func (r *Resolver) updateReputation(merchantKey string, change int) {
	if _, ok := r.playerRep[merchantKey]; !ok {
		r.playerRep[merchantKey] = baseReputation
	}
	r.playerRep[merchantKey] = max(0, min(100, r.playerRep[merchantKey]+change))

	merchant := r.merchants[merchantKey]
	switch {
	case r.playerRep[merchantKey] > 70:
		merchant.Reputation = min(100, merchant.Reputation+1)
	case r.playerRep[merchantKey] < 30:
		merchant.Reputation = max(0, merchant.Reputation-1)
	}
}

func (r *Resolver) recordTransaction(kind, merchantKey, itemKey string, quantity, amount int) {
	r.history = append(r.history, Transaction{
		Type:      kind,
		Merchant:  merchantKey,
		Item:      itemKey,
		Quantity:  quantity,
		Amount:    amount,
		Timestamp: r.now(),
	})
	if len(r.history) > historySize {
		r.history = r.history[len(r.history)-historySize:]
	}
}

// History returns up to limit most recent transactions, oldest first.
func (r *Resolver) History(limit int) []Transaction {
	if limit <= 0 || limit > len(r.history) {
		limit = len(r.history)
	}
	out := make([]Transaction, limit)
	copy(out, r.history[len(r.history)-limit:])
	return out
}

// PlayerReputation reports the player's standing with every merchant they
// have traded with.
func (r *Resolver) PlayerReputation() map[string]int {
	out := make(map[string]int, len(r.playerRep))
	for key, rep := range r.playerRep {
		out[key] = rep
	}
	return out
}

// Merchants lists every merchant in key order.
func (r *Resolver) Merchants() []MerchantSummary {
	keys := make([]string, 0, len(r.merchants))
	for key := range r.merchants {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]MerchantSummary, 0, len(keys))
	for _, key := range keys {
		merchant := r.merchants[key]
		playerRep, ok := r.playerRep[key]
		if !ok {
			playerRep = baseReputation
		}
		out = append(out, MerchantSummary{
			Key:              key,
			Name:             merchant.Name,
			Description:      merchant.Description,
			Type:             merchant.Type,
			Location:         merchant.Location,
			Reputation:       merchant.Reputation,
			PlayerReputation: playerRep,
			Gold:             merchant.Gold,
		})
	}
	return out
}

// Merchant returns a merchant by key.
func (r *Resolver) Merchant(key string) (*Merchant, bool) {
	m, ok := r.merchants[key]
	return m, ok
}

// SetSupplyDemand sets an item's supply factor, clamped to [-1, 1].
func (r *Resolver) SetSupplyDemand(itemKey string, factor float64) {
	r.supplyDemand[itemKey] = math.Max(-1, math.Min(1, factor))
}

func sortedStockKeys(m map[string]*TradeItem) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
