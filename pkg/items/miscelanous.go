package items

const (
	CoinGold    = "coin_gold"
	ArrowWooden = "arrow_wooden"
)

func init() {
	// Crafting materials, ammunition, currency.
	Register(Definition{
		ID:            CoinGold,
		Name:          "Gold Coin",
		Type:          ItemTypeMisc,
		Description:   "Standard currency.",
		MaxStack:      1000,
		EquipmentSlot: -1,
	})
	Register(Definition{
		ID:            ArrowWooden,
		Name:          "Wooden Arrow",
		Type:          ItemTypeMisc,
		Description:   "Fletched with crow feathers.",
		MaxStack:      20,
		EquipmentSlot: -1,
	})
}
