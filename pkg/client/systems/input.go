package systems

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"emberhold/pkg/inventory"
	"emberhold/pkg/network"
	"emberhold/pkg/shared/components"
	"emberhold/pkg/shared/config"
	protocol "emberhold/pkg/shared/network"
)

type InputSystem struct {
	Client   *network.NetworkClient
	UISystem *UISystem
	Keys     map[string]ebiten.Key
}

func NewInputSystem(client *network.NetworkClient, uiSystem *UISystem, keys map[string]ebiten.Key) *InputSystem {
	return &InputSystem{
		Client:   client,
		UISystem: uiSystem,
		Keys:     keys,
	}
}

// QuickSlotKey is the keybinding name for quick access slot i.
func QuickSlotKey(i int) string {
	return fmt.Sprintf("Quick%d", (i+1)%10)
}

func (s *InputSystem) Update() {
	input := components.InputComponent{
		Up:    ebiten.IsKeyPressed(s.Keys[config.ActionUp]),
		Down:  ebiten.IsKeyPressed(s.Keys[config.ActionDown]),
		Left:  ebiten.IsKeyPressed(s.Keys[config.ActionLeft]),
		Right: ebiten.IsKeyPressed(s.Keys[config.ActionRight]),
	}

	camX, camY := cameraOffset(s.Client)
	mx, my := ebiten.CursorPosition()
	input.MouseX = float64(mx) + camX
	input.MouseY = float64(my) + camY

	slots := s.Client.GetInventory().QuickSlots
	for i := 0; i < slots && i < 10; i++ {
		if inpututil.IsKeyJustPressed(s.Keys[QuickSlotKey(i)]) {
			s.sendAction(protocol.ActionUse, inventory.QuickSlot(i))
		}
	}
	if inpututil.IsKeyJustPressed(s.Keys[config.ActionPickup]) {
		s.sendAction(protocol.ActionPickup, inventory.SlotRef{})
	}

	s.Client.SendInput(input)
}

func (s *InputSystem) sendAction(action string, slot inventory.SlotRef) {
	if err := s.Client.SendInventoryAction(action, slot, 0); err != nil {
		s.UISystem.AddNotice("Not connected.")
	}
}

func (s *InputSystem) HandleGlobalKeys() {
	if inpututil.IsKeyJustPressed(s.Keys[config.ActionInventory]) {
		s.UISystem.ToggleInventory()
	}
	if inpututil.IsKeyJustPressed(s.Keys[config.ActionMenu]) {
		s.UISystem.ToggleMenu()
	}
}
