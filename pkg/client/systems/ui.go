package systems

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"emberhold/pkg/client/dragdrop"
	"emberhold/pkg/inventory"
	"emberhold/pkg/network"
	"emberhold/pkg/shared/config"
	protocol "emberhold/pkg/shared/network"
	"emberhold/pkg/ui"
)

const (
	slotSize      = 40.0
	noticeTimeout = 4 * time.Second
	maxNotices    = 5
)

type notice struct {
	text    string
	expires time.Time
}

type UISystem struct {
	Client  *network.NetworkClient
	Manager *ui.Manager
	Keys    map[string]ebiten.Key
	Drag    *dragdrop.Controller

	// Windows
	LoginWindow *ui.Window
	GameMenu    *ui.Window
	Inventory   *ui.Window
	QuickBar    *ui.Window

	// Widgets
	GridWidget  *ui.SlotGrid
	QuickWidget *ui.SlotGrid
	GoldLabel   *ui.Label
	LoginInputs []*ui.TextInput
	LoginStatus *ui.Label

	OnLoginRequest func(user, pass string)

	notices []notice
	synced  protocol.InventorySyncPacket
}

func NewUISystem(client *network.NetworkClient, keys map[string]ebiten.Key) *UISystem {
	return &UISystem{
		Client:  client,
		Manager: ui.NewManager(),
		Keys:    keys,
		Drag:    dragdrop.New(client, config.DragThreshold),
	}
}

// Init builds the windows. The grid and quick bar are sized again from
// the first inventory sync.
func (s *UISystem) Init() {
	s.buildInventory(6, 4, 6)
	s.initLogin()

	s.GameMenu = ui.NewWindow(300, 200, 200, 120, "Menu")
	s.GameMenu.AddChild(ui.NewButton(10, 10, 180, 30, "Resume", func() {
		s.GameMenu.Visible = false
	}))
	s.Manager.AddElement(s.GameMenu)
}

func (s *UISystem) buildInventory(width, height, quick int) {
	if s.Inventory != nil {
		s.removeElement(s.Inventory)
		s.removeElement(s.QuickBar)
	}
	visible := s.Inventory != nil && s.Inventory.Visible

	s.GridWidget = ui.NewSlotGrid(0, 0, inventory.Grid, width, height, slotSize)
	s.GoldLabel = ui.NewLabel(5, float64(height)*slotSize+4, "Gold: 0")
	w := float64(width) * slotSize
	h := float64(height)*slotSize + 20 + 22
	s.Inventory = ui.NewWindow(config.ScreenWidth-w-10, config.ScreenHeight-h-70, w, h, "Inventory")
	s.Inventory.Draggable = true
	s.Inventory.AddChild(s.GridWidget)
	s.Inventory.AddChild(s.GoldLabel)
	s.Inventory.Visible = visible

	s.QuickWidget = ui.NewSlotGrid(0, 0, inventory.QuickAccess, quick, 1, slotSize)
	s.QuickWidget.ShowHotkeys = true
	qw := float64(quick) * slotSize
	s.QuickBar = ui.NewWindow((config.ScreenWidth-qw)/2, config.ScreenHeight-slotSize-30, qw, slotSize+20, "Quick")
	s.QuickBar.AddChild(s.QuickWidget)
	s.QuickBar.Visible = true

	// Keep the game menu and login on top.
	s.Manager.Elements = append([]ui.Element{s.QuickBar, s.Inventory}, s.Manager.Elements...)
}

func (s *UISystem) removeElement(e ui.Element) {
	kept := s.Manager.Elements[:0]
	for _, el := range s.Manager.Elements {
		if el != e {
			kept = append(kept, el)
		}
	}
	s.Manager.Elements = kept
}

func (s *UISystem) initLogin() {
	loginW, loginH := 300.0, 220.0
	win := ui.NewWindow((config.ScreenWidth-loginW)/2, (config.ScreenHeight-loginH)/2, loginW, loginH, "Login")
	win.Visible = true

	win.AddChild(ui.NewLabel(20, 10, "Username:"))
	user := ui.NewTextInput(20, 30, 260, 30, "Username")
	win.AddChild(user)
	win.AddChild(ui.NewLabel(20, 70, "Password:"))
	pass := ui.NewTextInput(20, 90, 260, 30, "Password")
	pass.IsPassword = true
	win.AddChild(pass)
	s.LoginInputs = []*ui.TextInput{user, pass}

	win.AddChild(ui.NewButton(20, 135, 260, 35, "Login", s.submitLogin))
	s.LoginStatus = ui.NewLabel(20, 178, "New names create an account.")
	win.AddChild(s.LoginStatus)

	s.LoginWindow = win
	s.Manager.AddElement(win)
}

func (s *UISystem) submitLogin() {
	if s.OnLoginRequest != nil {
		go s.OnLoginRequest(s.LoginInputs[0].Text, s.LoginInputs[1].Text)
	}
}

func (s *UISystem) RegisterLoginCallback(cb func(user, pass string)) {
	s.OnLoginRequest = cb
}

func (s *UISystem) RegisterDisconnectCallback(onDisconnect func()) {
	s.GameMenu.AddChild(ui.NewButton(10, 50, 180, 30, "Disconnect", func() {
		if onDisconnect != nil {
			onDisconnect()
		}
	}))
}

// LoginFailed shows err under the login form.
func (s *UISystem) LoginFailed(err error) {
	s.LoginStatus.Text = err.Error()
}

func (s *UISystem) HideLogin() {
	s.LoginWindow.Visible = false
}

func (s *UISystem) ResetUI() {
	s.Drag.Abort()
	s.Inventory.Visible = false
	s.GameMenu.Visible = false
	s.LoginWindow.Visible = true
	s.synced = protocol.InventorySyncPacket{}
	s.notices = nil
}

func (s *UISystem) Update() {
	s.Manager.Update()

	if s.LoginWindow.Visible {
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			first := !s.LoginInputs[0].Focused
			s.LoginInputs[0].Focused = first
			s.LoginInputs[1].Focused = !first
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) {
			s.submitLogin()
		}
		return
	}

	s.syncInventory()
	s.collectNotices()
	s.updateDrag()
}

func (s *UISystem) syncInventory() {
	inv := s.Client.GetInventory()
	if inv.Width == 0 {
		return
	}
	if inv.Width != s.synced.Width || inv.Height != s.synced.Height || inv.QuickSlots != s.synced.QuickSlots {
		s.Drag.Abort()
		s.buildInventory(inv.Width, inv.Height, inv.QuickSlots)
	}
	s.synced = inv

	s.GridWidget.Sync(inv.Grid)
	s.QuickWidget.Sync(inv.Quick)
	s.GoldLabel.Text = "Gold: " + humanize.Comma(int64(inv.Gold))

	s.GridWidget.HiddenIndex = -1
	s.QuickWidget.HiddenIndex = -1
	if inv.Dragging {
		// The server holds the item, its source slot shows empty.
		if inv.DragSource.Container == inventory.Grid {
			s.GridWidget.HiddenIndex = inv.DragSource.Index
		} else {
			s.QuickWidget.HiddenIndex = inv.DragSource.Index
		}
	}
}

func (s *UISystem) collectNotices() {
	now := time.Now()
	for _, msg := range s.Client.TakeNotices() {
		s.AddNotice(msg)
	}
	kept := s.notices[:0]
	for _, n := range s.notices {
		if now.Before(n.expires) {
			kept = append(kept, n)
		}
	}
	s.notices = kept
}

func (s *UISystem) AddNotice(msg string) {
	s.notices = append(s.notices, notice{text: msg, expires: time.Now().Add(noticeTimeout)})
	if len(s.notices) > maxNotices {
		s.notices = s.notices[len(s.notices)-maxNotices:]
	}
}

// hitAt classifies what lies under the pointer for the drag controller.
func (s *UISystem) hitAt(x, y int) dragdrop.Hit {
	for _, g := range []*ui.SlotGrid{s.QuickWidget, s.GridWidget} {
		if g == s.GridWidget && !s.Inventory.Visible {
			continue
		}
		if ref, ok := g.SlotAt(x, y); ok {
			return dragdrop.Hit{Kind: dragdrop.HitSlot, Slot: ref, Occupied: g.Occupied(ref)}
		}
	}
	if s.Manager.IsOverUI(x, y) {
		return dragdrop.Hit{Kind: dragdrop.HitUI}
	}
	return dragdrop.Hit{Kind: dragdrop.HitWorld}
}

func (s *UISystem) updateDrag() {
	mx, my := ebiten.CursorPosition()
	if s.GameMenu.Visible {
		s.Drag.Abort()
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.Drag.Press(mx, my, s.hitAt(mx, my))
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.Drag.Move(mx, my)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if action := s.Drag.Release(s.hitAt(mx, my)); action == protocol.ActionDiscard {
			s.AddNotice("Dropped item.")
		}
	}
}

func (s *UISystem) Draw(screen *ebiten.Image) {
	s.Manager.Draw(screen)

	// Drag ghost, drawn from the server's view of the held item.
	if _, dragging := s.Drag.Dragging(); dragging && s.synced.Dragging {
		mx, my := ebiten.CursorPosition()
		ui.DrawItem(screen, s.synced.DragItem.ItemID, s.synced.DragItem.Quantity, float64(mx)-slotSize/2, float64(my)-slotSize/2, slotSize)
	}

	y := config.ScreenHeight - 15*len(s.notices) - 80
	for _, n := range s.notices {
		ebitenutil.DebugPrintAt(screen, n.text, 5, y)
		y += 15
	}
	if !s.LoginWindow.Visible {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %0.0f", ebiten.ActualFPS()), 5, 5)
	}
}

func (s *UISystem) ToggleInventory() {
	s.Inventory.Visible = !s.Inventory.Visible
	if !s.Inventory.Visible {
		if src, dragging := s.Drag.Dragging(); dragging && src.Container == inventory.Grid {
			s.Drag.Abort()
		}
	}
	s.SyncUIState()
}

func (s *UISystem) ToggleMenu() {
	s.GameMenu.Visible = !s.GameMenu.Visible
}

func (s *UISystem) IsInputCaptured() bool {
	return s.GameMenu.Visible || s.LoginWindow.Visible
}

func (s *UISystem) IsMouseOverUI() bool {
	return s.Manager.IsMouseOverUI()
}

func (s *UISystem) ApplyOpenMenus(openMenus map[string]bool) {
	s.Inventory.Visible = openMenus["Inventory"]
}

func (s *UISystem) SyncUIState() {
	openMenus := map[string]bool{}
	if s.Inventory.Visible {
		openMenus["Inventory"] = true
	}
	_ = s.Client.SendUIState(openMenus)
}
