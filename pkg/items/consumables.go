package items

const PotionHealthSmall = "potion_health_small"

func init() {
	Register(Definition{
		ID:            PotionHealthSmall,
		Name:          "Small Health Potion",
		Type:          ItemTypeConsumable,
		Description:   "Restores a small amount of health.",
		MaxStack:      10,
		HealAmount:    25,
		EquipmentSlot: -1,
	})
	Register(Definition{
		ID:            "scroll_recall",
		Name:          "Scroll of Recall",
		Type:          ItemTypeConsumable,
		Description:   "Crumbles to dust when read.",
		MaxStack:      1,
		EquipmentSlot: -1,
	})
}
