package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"emberhold/pkg/network"
	"emberhold/pkg/shared/config"
	"emberhold/pkg/ui"
)

const groundItemSize = 20

var (
	WorldColor = color.RGBA{R: 20, G: 60, B: 20, A: 255}
	edgeColor  = color.RGBA{R: 10, G: 30, B: 10, A: 255}
)

type RenderSystem struct {
	Client   *network.NetworkClient
	UISystem *UISystem

	// ArenaWidth and ArenaHeight bound the playable area.
	ArenaWidth, ArenaHeight float64
}

func NewRenderSystem(client *network.NetworkClient, uiSystem *UISystem, arenaWidth, arenaHeight float64) *RenderSystem {
	return &RenderSystem{
		Client:      client,
		UISystem:    uiSystem,
		ArenaWidth:  arenaWidth,
		ArenaHeight: arenaHeight,
	}
}

// cameraOffset centres the view on the local player.
func cameraOffset(client *network.NetworkClient) (float64, float64) {
	state := client.GetState()
	for _, entity := range state.Entities {
		if entity.ID == client.PlayerEntityID && entity.Transform != nil {
			return entity.Transform.X - config.ScreenWidth/2 + config.PlayerSize/2,
				entity.Transform.Y - config.ScreenHeight/2 + config.PlayerSize/2
		}
	}
	return 0, 0
}

func (s *RenderSystem) Draw(screen *ebiten.Image) {
	camX, camY := cameraOffset(s.Client)

	// Everything outside the arena is darker.
	screen.Fill(edgeColor)
	vector.DrawFilledRect(screen, float32(-camX), float32(-camY), float32(s.ArenaWidth), float32(s.ArenaHeight), WorldColor, false)

	for _, item := range s.Client.GetGround().Items {
		x := item.X - camX - groundItemSize/2
		y := item.Y - camY - groundItemSize/2
		if x < -groundItemSize || y < -groundItemSize || x > config.ScreenWidth || y > config.ScreenHeight {
			continue
		}
		ui.DrawItem(screen, item.ItemID, item.Quantity, x-5, y-5, groundItemSize+10)
	}

	state := s.Client.GetState()
	for _, entity := range state.Entities {
		if entity.Transform == nil || entity.Sprite == nil {
			continue
		}
		x := float32(entity.Transform.X - camX)
		y := float32(entity.Transform.Y - camY)
		vector.DrawFilledRect(screen, x, y, float32(entity.Sprite.Width), float32(entity.Sprite.Height), entity.Sprite.Color, true)

		if entity.Stats != nil && entity.Stats.CurrentHealth < entity.Stats.MaxHealth {
			barWidth := float32(entity.Sprite.Width)
			pct := max(float32(entity.Stats.CurrentHealth/entity.Stats.MaxHealth), 0)
			vector.DrawFilledRect(screen, x, y-10, barWidth, 5, color.RGBA{50, 50, 50, 255}, true)
			vector.DrawFilledRect(screen, x, y-10, barWidth*pct, 5, color.RGBA{0, 255, 0, 255}, true)
		}
	}

	s.UISystem.Draw(screen)
}
