package client

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"emberhold/pkg/client/systems"
	"emberhold/pkg/network"
	"emberhold/pkg/shared/config"
	protocol "emberhold/pkg/shared/network"
)

const (
	ScreenWidth  = config.ScreenWidth
	ScreenHeight = config.ScreenHeight
)

type loginResult struct {
	username string
	resp     protocol.LoginResponsePacket
	err      error
}

type Game struct {
	Client *network.NetworkClient

	// Systems
	UISystem     *systems.UISystem
	InputSystem  *systems.InputSystem
	RenderSystem *systems.RenderSystem

	// State
	LoggedIn bool
	Username string

	Keys map[string]ebiten.Key

	cfg        config.ClientConfig
	log        logrus.FieldLogger
	logins     chan loginResult
	connecting atomic.Bool
}

// DefaultKeys returns the keybindings used until the server sends the
// player's saved ones.
func DefaultKeys(quickSlots int) map[string]ebiten.Key {
	keys := map[string]ebiten.Key{
		config.ActionUp:        ebiten.KeyW,
		config.ActionDown:      ebiten.KeyS,
		config.ActionLeft:      ebiten.KeyA,
		config.ActionRight:     ebiten.KeyD,
		config.ActionPickup:    ebiten.KeyG,
		config.ActionInventory: ebiten.KeyI,
		config.ActionMenu:      ebiten.KeyEscape,
	}
	digits := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9, ebiten.Key0}
	for i := 0; i < quickSlots && i < len(digits); i++ {
		keys[systems.QuickSlotKey(i)] = digits[i]
	}
	return keys
}

func NewGame(cfg *config.Config, log logrus.FieldLogger) *Game {
	protocol.RegisterGobTypes()
	g := &Game{
		Client: network.NewNetworkClient(log),
		Keys:   DefaultKeys(10),
		cfg:    cfg.Client,
		log:    log,
		logins: make(chan loginResult, 1),
	}

	g.UISystem = systems.NewUISystem(g.Client, g.Keys)
	g.UISystem.Init()
	g.UISystem.RegisterLoginCallback(g.login)
	g.UISystem.RegisterDisconnectCallback(func() {
		g.LoggedIn = false
		g.Client.Close()
		g.UISystem.ResetUI()
	})

	g.InputSystem = systems.NewInputSystem(g.Client, g.UISystem, g.Keys)
	g.RenderSystem = systems.NewRenderSystem(g.Client, g.UISystem, config.ArenaWidth, config.ArenaHeight)

	if cfg.Client.Username != "" {
		g.UISystem.LoginInputs[0].Text = cfg.Client.Username
		g.UISystem.LoginInputs[1].Text = cfg.Client.Password
		go g.login(cfg.Client.Username, cfg.Client.Password)
	}
	return g
}

// login runs off the game loop; the result is applied in Update.
func (g *Game) login(user, pass string) {
	if !g.connecting.CompareAndSwap(false, true) {
		return
	}
	resp, err := g.Client.Connect(g.cfg.ServerAddr, user, pass)
	g.connecting.Store(false)
	g.logins <- loginResult{username: user, resp: resp, err: err}
}

func (g *Game) applyLogin(res loginResult) {
	if res.err != nil {
		g.log.WithError(res.err).Warn("Login failed.")
		g.UISystem.LoginFailed(res.err)
		return
	}
	g.LoggedIn = true
	g.Username = res.username
	g.UISystem.HideLogin()
	g.UISystem.ApplyOpenMenus(res.resp.OpenMenus)
	for action, key := range res.resp.Keybindings {
		if key != 0 {
			g.Keys[action] = ebiten.Key(key)
		}
	}
}

func (g *Game) Update() error {
	select {
	case res := <-g.logins:
		g.applyLogin(res)
	default:
	}

	g.UISystem.Update()
	if !g.LoggedIn {
		return nil
	}

	g.InputSystem.HandleGlobalKeys()
	if g.UISystem.IsInputCaptured() {
		return nil
	}
	g.InputSystem.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.LoggedIn {
		screen.Fill(systems.WorldColor)
		g.UISystem.Draw(screen)
		return
	}
	g.RenderSystem.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
