package items

// Equipment slot used by every weapon.
const SlotWeapon = 5

func init() {
	// Melee Weapons
	Register(Definition{
		ID:            "sword_starter",
		Name:          "Rusty Sword",
		Type:          ItemTypeWeapon,
		Description:   "A basic sword using close combat slash attacks.",
		MaxStack:      1,
		Damage:        20,
		EquipmentSlot: SlotWeapon,
	})

	// Ranged Weapons
	Register(Definition{
		ID:            "bow_starter",
		Name:          "Old Bow",
		Type:          ItemTypeWeapon,
		Description:   "A worn bow for ranged attacks.",
		MaxStack:      1,
		Damage:        10,
		EquipmentSlot: SlotWeapon,
	})
}
