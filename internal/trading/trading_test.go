package trading

import (
	"errors"
	"testing"
	"time"

	"textquest/internal/game"
)

type scriptedDice struct {
	floats []float64
}

func (d *scriptedDice) Float64() float64 {
	if len(d.floats) == 0 {
		return 0.5
	}
	v := d.floats[0]
	d.floats = d.floats[1:]
	return v
}

func (d *scriptedDice) Intn(n int) int { return 0 }

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestResolver(d *scriptedDice) (*Resolver, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewResolver(d, clock.Now), clock
}

func TestPriceAppliesReputation(t *testing.T) {
	r, _ := newTestResolver(&scriptedDice{})

	// Reputation 60 nudges the 15-gold potion by +2%, which rounds away.
	price, err := r.Price("general_store", "health_potion")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if price != 15 {
		t.Errorf("expected 15, got %d", price)
	}

	merchant, _ := r.Merchant("general_store")
	merchant.Reputation = 90
	merchant.Inventory["trinket"] = &TradeItem{
		Name: "Trinket", BasePrice: 10, Rarity: game.RarityCommon,
		Quantity: 1, MaxQuantity: 999, Tradeable: true,
	}

	price, err = r.Price("general_store", "trinket")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if price != 11 {
		t.Errorf("reputation 90 should round a base 10 up to 11, got %d", price)
	}
}

func TestPriceAppliesRarityDiscountAndMarkup(t *testing.T) {
	r, _ := newTestResolver(&scriptedDice{})

	// 80 base, uncommon 1.2x, special discount 0.9, reputation 70 (+4%).
	price, err := r.Price("weaponsmith", "iron_sword")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if price != 90 {
		t.Errorf("expected 90, got %d", price)
	}

	// 500 base, legendary 3x, markup 2x, reputation 30 (-4%).
	price, err = r.Price("black_market", "invisibility_cloak")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if price != 2880 {
		t.Errorf("expected 2880, got %d", price)
	}
}

func TestPriceAppliesSupplyDemand(t *testing.T) {
	r, _ := newTestResolver(&scriptedDice{})

	r.SetSupplyDemand("health_potion", 1.0)
	price, err := r.Price("general_store", "health_potion")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	// 15 * 1.02 * 1.3 = 19.89, rounds to 20.
	if price != 20 {
		t.Errorf("expected 20 under scarce supply, got %d", price)
	}

	r.SetSupplyDemand("health_potion", -5.0)
	price, _ = r.Price("general_store", "health_potion")
	// The factor clamps to -1: 15 * 1.02 * 0.7 = 10.71, rounds to 11.
	if price != 11 {
		t.Errorf("expected 11 under clamped glut, got %d", price)
	}
}

func TestNegotiationIsSymmetric(t *testing.T) {
	if got := negotiate(100, 5, 9); got != 80 {
		t.Errorf("skilled player should pay 80, got %d", got)
	}
	if got := negotiate(100, 9, 5); got != 120 {
		t.Errorf("outmatched player should pay 120, got %d", got)
	}
	if got := negotiate(2, 0, 10); got != 1 {
		t.Errorf("negotiated price floors at 1, got %d", got)
	}
}

func TestBuy(t *testing.T) {
	r, _ := newTestResolver(&scriptedDice{})

	result, err := r.Buy("general_store", "health_potion", 2, 100, 3)
	if err != nil {
		t.Fatalf("Buy: %v", err)
	}

	if result.PricePerItem != 15 || result.TotalCost != 30 {
		t.Errorf("unexpected pricing: %+v", result)
	}
	if result.RemainingGold != 70 {
		t.Errorf("expected 70 gold remaining, got %d", result.RemainingGold)
	}

	merchant, _ := r.Merchant("general_store")
	if merchant.Gold != 530 {
		t.Errorf("merchant gold should rise to 530, got %d", merchant.Gold)
	}
	if merchant.Inventory["health_potion"].Quantity != 8 {
		t.Errorf("stock should fall to 8, got %d", merchant.Inventory["health_potion"].Quantity)
	}
	if rep := r.PlayerReputation()["general_store"]; rep != 51 {
		t.Errorf("buying earns +1 reputation, got %d", rep)
	}
	if history := r.History(0); len(history) != 1 || history[0].Type != "buy" {
		t.Errorf("transaction should be recorded: %+v", history)
	}
}

func TestBuyFailures(t *testing.T) {
	r, _ := newTestResolver(&scriptedDice{})

	if _, err := r.Buy("nobody", "bread", 1, 100, 0); !errors.Is(err, ErrUnknownMerchant) {
		t.Errorf("expected ErrUnknownMerchant, got %v", err)
	}
	if _, err := r.Buy("general_store", "dragon_egg", 1, 100, 0); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("expected ErrUnknownItem, got %v", err)
	}
	if _, err := r.Buy("general_store", "rope", 99, 1000, 0); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	if _, err := r.Buy("general_store", "health_potion", 2, 10, 3); !errors.Is(err, ErrInsufficientGold) {
		t.Errorf("expected ErrInsufficientGold, got %v", err)
	}

	merchant, _ := r.Merchant("general_store")
	merchant.Inventory["rope"].Tradeable = false
	if _, err := r.Buy("general_store", "rope", 1, 100, 0); !errors.Is(err, ErrNotTradeable) {
		t.Errorf("expected ErrNotTradeable, got %v", err)
	}

	if len(r.History(0)) != 0 {
		t.Error("failed purchases must not be recorded")
	}
}

func TestSellStockedItem(t *testing.T) {
	r, _ := newTestResolver(&scriptedDice{})

	// Shelf price 15, merchants pay 60%: 9 per potion.
	result, err := r.Sell("general_store", "health_potion", 2, 5, 3)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if result.PricePerItem != 9 || result.TotalEarnings != 18 {
		t.Errorf("unexpected sell pricing: %+v", result)
	}

	merchant, _ := r.Merchant("general_store")
	if merchant.Gold != 482 {
		t.Errorf("merchant gold should fall to 482, got %d", merchant.Gold)
	}
	if merchant.Inventory["health_potion"].Quantity != 12 {
		t.Errorf("stock should rise to 12, got %d", merchant.Inventory["health_potion"].Quantity)
	}
	if rep := r.PlayerReputation()["general_store"]; rep != 52 {
		t.Errorf("selling earns +2 reputation, got %d", rep)
	}
}

func TestSellUnstockedItemCreatesEntry(t *testing.T) {
	r, _ := newTestResolver(&scriptedDice{})

	result, err := r.Sell("general_store", "strange_rock", 3, 3, 3)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if result.PricePerItem != 10 {
		t.Errorf("unstocked goods sell at the flat default, got %d", result.PricePerItem)
	}

	merchant, _ := r.Merchant("general_store")
	entry, ok := merchant.Inventory["strange_rock"]
	if !ok {
		t.Fatal("selling should create a stock entry")
	}
	if entry.Quantity != 3 {
		t.Errorf("new entry should hold the sold quantity, got %d", entry.Quantity)
	}
}

func TestSellFailures(t *testing.T) {
	r, _ := newTestResolver(&scriptedDice{})

	if _, err := r.Sell("general_store", "bread", 5, 2, 0); !errors.Is(err, ErrInsufficientQuantity) {
		t.Errorf("expected ErrInsufficientQuantity, got %v", err)
	}

	merchant, _ := r.Merchant("general_store")
	merchant.Gold = 5
	if _, err := r.Sell("general_store", "health_potion", 2, 5, 3); !errors.Is(err, ErrMerchantCannotAfford) {
		t.Errorf("expected ErrMerchantCannotAfford, got %v", err)
	}
	if merchant.Inventory["health_potion"].Quantity != 10 {
		t.Error("a failed sale must not change stock")
	}
}

func TestHaggle(t *testing.T) {
	r, _ := newTestResolver(&scriptedDice{floats: []float64{0.0, 0.99}})

	result, err := r.Haggle("general_store", 100, 5)
	if err != nil {
		t.Fatalf("Haggle: %v", err)
	}
	if !result.Success {
		t.Fatal("expected haggle to succeed")
	}
	if result.NewPrice != 90 {
		t.Errorf("skill 5 grants 10%% off, expected 90, got %d", result.NewPrice)
	}
	if rep := r.PlayerReputation()["general_store"]; rep != 51 {
		t.Errorf("success earns +1 reputation, got %d", rep)
	}

	result, err = r.Haggle("general_store", 100, 5)
	if err != nil {
		t.Fatalf("Haggle: %v", err)
	}
	if result.Success {
		t.Fatal("expected haggle to fail")
	}
	if result.NewPrice != 100 {
		t.Errorf("a failed haggle leaves the price alone, got %d", result.NewPrice)
	}
	if rep := r.PlayerReputation()["general_store"]; rep != 50 {
		t.Errorf("failure costs -1 reputation, got %d", rep)
	}
}

func TestHaggleChanceAndDiscountAreCapped(t *testing.T) {
	// Skill 20 against skill 3 would be a 220% chance without the clamp;
	// a 0.99 roll must still succeed, and the discount caps at 20%.
	r, _ := newTestResolver(&scriptedDice{floats: []float64{0.99}})

	result, err := r.Haggle("general_store", 100, 20)
	if err != nil {
		t.Fatalf("Haggle: %v", err)
	}
	if !result.Success {
		t.Fatal("clamped chance should guarantee success")
	}
	if result.NewPrice != 80 {
		t.Errorf("discount caps at 20%%, expected 80, got %d", result.NewPrice)
	}
}

func TestRestockOnInventoryAccess(t *testing.T) {
	r, clock := newTestResolver(&scriptedDice{})

	merchant, _ := r.Merchant("weaponsmith")
	merchant.Inventory["iron_sword"].Quantity = 0

	clock.now = clock.now.Add(25 * time.Hour)
	inv, err := r.Inventory("weaponsmith")
	if err != nil {
		t.Fatalf("Inventory: %v", err)
	}

	found := false
	for _, entry := range inv.Stock {
		if entry.Key == "iron_sword" {
			found = true
			if entry.Quantity != 5 {
				t.Errorf("restock adds 5, got %d", entry.Quantity)
			}
		}
	}
	if !found {
		t.Fatal("restocked item should be listed again")
	}

	// The next access inside the new interval must not restock again.
	if _, err := r.Inventory("weaponsmith"); err != nil {
		t.Fatalf("Inventory: %v", err)
	}
	if merchant.Inventory["iron_sword"].Quantity != 5 {
		t.Errorf("stock should stay at 5, got %d", merchant.Inventory["iron_sword"].Quantity)
	}
}

func TestMerchantReputationDriftsWithStanding(t *testing.T) {
	d := &scriptedDice{}
	r, _ := newTestResolver(d)

	for i := 0; i < 25; i++ {
		d.floats = append(d.floats, 0.0)
	}
	for i := 0; i < 25; i++ {
		if _, err := r.Haggle("general_store", 100, 5); err != nil {
			t.Fatalf("Haggle: %v", err)
		}
	}

	if rep := r.PlayerReputation()["general_store"]; rep != 75 {
		t.Fatalf("expected player reputation 75, got %d", rep)
	}
	merchant, _ := r.Merchant("general_store")
	// Drift kicks in once standing passes 70, so five of the calls raise it.
	if merchant.Reputation != 65 {
		t.Errorf("expected merchant reputation 65, got %d", merchant.Reputation)
	}
}

func TestHistoryIsBounded(t *testing.T) {
	r, _ := newTestResolver(&scriptedDice{})

	for i := 0; i < 110; i++ {
		if _, err := r.Sell("black_market", "pebble", 1, 1, 0); err != nil {
			t.Fatalf("sale %d: %v", i, err)
		}
	}

	history := r.History(0)
	if len(history) != 100 {
		t.Fatalf("history should cap at 100, got %d", len(history))
	}
	if got := r.History(5); len(got) != 5 {
		t.Errorf("History(5) should return 5 entries, got %d", len(got))
	}
}
