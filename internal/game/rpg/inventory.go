package rpg

// Inventory geometry. Stacks cap at 9 to keep the HUD single-digit.
const (
	InvSize  = 8
	MaxStack = 9
)

// Item identifies a consumable.
type Item uint8

const (
	ItemNone Item = iota
	ItemRepairKitS
	ItemRepairKitL
	ItemSPCharge
	ItemATKBoost
	ItemDEFBoost
	ItemFullRestore
	ItemCount
)

var itemNames = [ItemCount]string{
	"",
	"REPAIR S",
	"REPAIR L",
	"SP CHARGE",
	"ATK BOOST",
	"DEF BOOST",
	"FULL REST",
}

// itemEffects holds each item's primary magnitude: HP restored for repair
// kits, SP for the charge, the stat bonus for boosts. Full Restore is a
// special case handled by the battle layer.
var itemEffects = [ItemCount]int{0, 30, 80, 1, 5, 5, 0}

// Name returns the HUD label for an item.
func (it Item) Name() string {
	if it >= ItemCount {
		return ""
	}
	return itemNames[it]
}

// Effect returns the item's primary numeric effect.
func (it Item) Effect() int {
	if it >= ItemCount {
		return 0
	}
	return itemEffects[it]
}

// Slot is one inventory stack.
type Slot struct {
	Item Item
	Qty  int
}

// Inventory is the 8-slot consumable bag. Occupied slots stay contiguous
// from index 0, so hitting ItemNone while scanning means the rest are
// empty too.
type Inventory struct {
	slots      [InvSize]Slot
	missStreak int // battles since the last drop, for the pity roll
}

// NewInventory returns the new-game loadout: two small repair kits.
func NewInventory() *Inventory {
	inv := &Inventory{}
	inv.Reset()
	return inv
}

// Reset clears the bag and restores the starter items.
func (inv *Inventory) Reset() {
	*inv = Inventory{}
	inv.Add(ItemRepairKitS, 2)
}

// AddResult reports what happened to an added item.
type AddResult uint8

const (
	AddFailed AddResult = iota
	AddStored
	AddConverted // bag full, item sold for credits on the spot
)

// Add stores qty units, stacking onto an existing slot first. A full bag
// converts the item to nothing here; the caller credits the fallback
// payout when it sees AddConverted.
func (inv *Inventory) Add(item Item, qty int) AddResult {
	if item == ItemNone || item >= ItemCount {
		return AddFailed
	}
	for i := range inv.slots {
		if inv.slots[i].Item == ItemNone {
			break
		}
		if inv.slots[i].Item == item {
			inv.slots[i].Qty += qty
			if inv.slots[i].Qty > MaxStack {
				inv.slots[i].Qty = MaxStack
			}
			return AddStored
		}
	}
	for i := range inv.slots {
		if inv.slots[i].Item == ItemNone {
			inv.slots[i] = Slot{Item: item, Qty: qty}
			return AddStored
		}
	}
	return AddConverted
}

// FullBagCredits is the payout when a drop cannot fit in the bag.
const FullBagCredits = 10

// Remove takes qty units of an item, compacting the bag when a stack
// empties. Reports whether the item was present.
func (inv *Inventory) Remove(item Item, qty int) bool {
	for i := range inv.slots {
		if inv.slots[i].Item != item {
			continue
		}
		if inv.slots[i].Qty <= qty {
			copy(inv.slots[i:], inv.slots[i+1:])
			inv.slots[InvSize-1] = Slot{}
		} else {
			inv.slots[i].Qty -= qty
		}
		return true
	}
	return false
}

// Count returns the held quantity of an item.
func (inv *Inventory) Count(item Item) int {
	for i := range inv.slots {
		if inv.slots[i].Item == ItemNone {
			return 0
		}
		if inv.slots[i].Item == item {
			return inv.slots[i].Qty
		}
	}
	return 0
}

// Slots exposes the bag for the battle item menu and the save codec.
func (inv *Inventory) Slots() []Slot {
	return inv.slots[:]
}

// SetSlot restores one stack from save data.
func (inv *Inventory) SetSlot(i int, s Slot) {
	if i >= 0 && i < InvSize {
		inv.slots[i] = s
	}
}

// RollDrop rolls the loot table after a battle win. The roll mixes the
// frame counter with the enemy archetype; harder enemies drop better
// items. Three dropless battles in a row force a pity drop.
//
// enemyType follows the flight archetype order: 0 scout, 1 fighter,
// 2 heavy, 3 elite.
func (inv *Inventory) RollDrop(enemyType, frame int) Item {
	roll := (frame*31 + enemyType*17) & 0xFF

	result := ItemNone
	switch enemyType {
	case 0:
		if roll < 77 {
			result = ItemRepairKitS
		}
	case 1:
		switch {
		case roll < 64:
			result = ItemRepairKitS
		case roll < 128:
			result = ItemSPCharge
		}
	case 2:
		switch {
		case roll < 50:
			result = ItemRepairKitL
		case roll < 100:
			result = ItemATKBoost
		case roll < 180:
			result = ItemSPCharge
		}
	case 3:
		switch {
		case roll < 80:
			result = ItemRepairKitL
		case roll < 130:
			result = ItemFullRestore
		case roll < 200:
			result = ItemDEFBoost
		}
	}

	if result == ItemNone {
		inv.missStreak++
		if inv.missStreak >= 3 {
			inv.missStreak = 0
			if enemyType >= 2 {
				return ItemRepairKitL
			}
			return ItemRepairKitS
		}
		return ItemNone
	}
	inv.missStreak = 0
	return result
}

// ResetPityTimer clears the miss streak, called on save load.
func (inv *Inventory) ResetPityTimer() {
	inv.missStreak = 0
}
