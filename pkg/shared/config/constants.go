package config

const (
	// Screen Dimensions
	ScreenWidth  = 800
	ScreenHeight = 600

	// World
	ArenaWidth  = 1280
	ArenaHeight = 960

	// Physics
	PlayerSize   = 32
	DefaultSpeed = 6.0

	// Pixels the pointer must travel with the button held before a press
	// on a slot turns into a drag.
	DragThreshold = 5

	// Keybindings
	ActionUp        = "Up"
	ActionDown      = "Down"
	ActionLeft      = "Left"
	ActionRight     = "Right"
	ActionPickup    = "Pickup"
	ActionInventory = "Inventory"
	ActionMenu      = "Menu"

	// Network
	ServerPortTCP = ":8080"
	ServerPortWS  = ":8081"
)
