package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"emberhold/pkg/inventory"
	"emberhold/pkg/items"
	protocol "emberhold/pkg/shared/network"
)

type Label struct {
	BaseElement
	Text string
}

func NewLabel(x, y float64, text string) *Label {
	return &Label{
		BaseElement: BaseElement{X: x, Y: y, Visible: true, Color: color.White},
		Text:        text,
	}
}

func (l *Label) Update() (bool, error) {
	return false, nil
}

func (l *Label) Draw(screen *ebiten.Image) {
	if !l.Visible {
		return
	}
	ebitenutil.DebugPrintAt(screen, l.Text, int(l.X), int(l.Y))
}

func (l *Label) HandleInput(x, y int) bool {
	return false
}

const titleHeight = 20

type WindowChild struct {
	Element Element
	RelX    float64
	RelY    float64
}

// Window is a titled panel. Children are positioned relative to the area
// below the title bar and follow the window when it is dragged.
type Window struct {
	BaseElement
	Title                    string
	Children                 []WindowChild
	Draggable                bool
	IsDragging               bool
	DragOffsetX, DragOffsetY float64
}

func NewWindow(x, y, w, h float64, title string) *Window {
	return &Window{
		BaseElement: BaseElement{X: x, Y: y, Width: w, Height: h, Visible: false, Color: color.RGBA{50, 50, 50, 240}},
		Title:       title,
		Children:    make([]WindowChild, 0),
	}
}

func (w *Window) AddChild(e Element) {
	rx, ry := e.GetPosition()
	w.Children = append(w.Children, WindowChild{Element: e, RelX: rx, RelY: ry})
	e.SetPosition(w.X+rx, w.Y+titleHeight+ry)
}

func (w *Window) Update() (bool, error) {
	if !w.Visible {
		return false, nil
	}

	consumed := false
	mx, my := ebiten.CursorPosition()

	if w.Draggable && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if w.onTitle(mx, my) {
			w.IsDragging = true
			w.DragOffsetX = float64(mx) - w.X
			w.DragOffsetY = float64(my) - w.Y
			consumed = true
		}
	}
	if w.IsDragging {
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			w.X = float64(mx) - w.DragOffsetX
			w.Y = float64(my) - w.DragOffsetY
			consumed = true
		} else {
			w.IsDragging = false
		}
	}

	for i := len(w.Children) - 1; i >= 0; i-- {
		child := &w.Children[i]
		child.Element.SetPosition(w.X+child.RelX, w.Y+titleHeight+child.RelY)
		childConsumed, err := child.Element.Update()
		if err != nil {
			return consumed, err
		}
		consumed = consumed || childConsumed
	}
	return consumed, nil
}

func (w *Window) onTitle(x, y int) bool {
	return float64(x) >= w.X && float64(x) <= w.X+w.Width && float64(y) >= w.Y && float64(y) <= w.Y+titleHeight
}

func (w *Window) Draw(screen *ebiten.Image) {
	if !w.Visible {
		return
	}

	ebitenutil.DrawRect(screen, w.X, w.Y, w.Width, w.Height, w.Color)
	for _, child := range w.Children {
		child.Element.Draw(screen)
	}

	ebitenutil.DrawRect(screen, w.X, w.Y, w.Width, titleHeight, color.RGBA{80, 80, 80, 255})
	ebitenutil.DebugPrintAt(screen, w.Title, int(w.X+5), int(w.Y+2))
	drawBorder(screen, w.X, w.Y, w.Width, w.Height, color.White)
}

func (w *Window) HandleInput(x, y int) bool {
	return w.Visible && w.Contains(x, y)
}

// SlotView is what a slot grid shows for one slot.
type SlotView struct {
	ItemID   string
	Quantity int
}

// SlotGrid draws one inventory container as a grid of square slots.
type SlotGrid struct {
	BaseElement
	Container inventory.ContainerKind
	Slots     []SlotView
	Cols      int
	SlotSize  float64

	// HiddenIndex is not drawn, e.g. while its item is being dragged.
	HiddenIndex int
	ShowHotkeys bool
}

func NewSlotGrid(x, y float64, container inventory.ContainerKind, cols, rows int, slotSize float64) *SlotGrid {
	return &SlotGrid{
		BaseElement: BaseElement{X: x, Y: y, Width: float64(cols) * slotSize, Height: float64(rows) * slotSize, Visible: true},
		Container:   container,
		Slots:       make([]SlotView, cols*rows),
		Cols:        cols,
		SlotSize:    slotSize,
		HiddenIndex: -1,
	}
}

// Sync replaces the grid contents with the occupied slots from a server
// inventory sync.
func (g *SlotGrid) Sync(occupied []protocol.ItemSlot) {
	clear(g.Slots)
	for _, s := range occupied {
		if s.Index >= 0 && s.Index < len(g.Slots) {
			g.Slots[s.Index] = SlotView{ItemID: s.ItemID, Quantity: s.Quantity}
		}
	}
}

// SlotAt returns the slot under (x, y).
func (g *SlotGrid) SlotAt(x, y int) (inventory.SlotRef, bool) {
	if !g.Visible || !g.Contains(x, y) {
		return inventory.SlotRef{}, false
	}
	col := int((float64(x) - g.X) / g.SlotSize)
	row := int((float64(y) - g.Y) / g.SlotSize)
	if col >= g.Cols {
		col = g.Cols - 1
	}
	index := row*g.Cols + col
	if index < 0 || index >= len(g.Slots) {
		return inventory.SlotRef{}, false
	}
	return inventory.SlotRef{Container: g.Container, Index: index}, true
}

// Occupied reports whether ref shows an item.
func (g *SlotGrid) Occupied(ref inventory.SlotRef) bool {
	return ref.Container == g.Container && ref.Index >= 0 && ref.Index < len(g.Slots) && g.Slots[ref.Index].ItemID != ""
}

func (g *SlotGrid) Update() (bool, error) {
	return false, nil
}

func (g *SlotGrid) Draw(screen *ebiten.Image) {
	if !g.Visible {
		return
	}

	for i, slot := range g.Slots {
		sx := g.X + float64(i%g.Cols)*g.SlotSize
		sy := g.Y + float64(i/g.Cols)*g.SlotSize

		ebitenutil.DrawRect(screen, sx+1, sy+1, g.SlotSize-2, g.SlotSize-2, color.RGBA{60, 60, 60, 255})
		if slot.ItemID != "" && i != g.HiddenIndex {
			DrawItem(screen, slot.ItemID, slot.Quantity, sx, sy, g.SlotSize)
		}
		if g.ShowHotkeys {
			ebitenutil.DebugPrintAt(screen, fmt.Sprint((i+1)%10), int(sx+g.SlotSize-10), int(sy+1))
		}
		ebitenutil.DrawLine(screen, sx, sy, sx+g.SlotSize, sy, color.Gray{100})
		ebitenutil.DrawLine(screen, sx, sy, sx, sy+g.SlotSize, color.Gray{100})
	}
}

func (g *SlotGrid) HandleInput(x, y int) bool {
	return g.Visible && g.Contains(x, y)
}

// ItemColor picks the swatch used for an item in place of an icon.
func ItemColor(itemID string) color.RGBA {
	def, ok := items.Get(itemID)
	if !ok {
		return color.RGBA{200, 100, 100, 255}
	}
	switch def.Type {
	case items.ItemTypeWeapon:
		return color.RGBA{170, 170, 190, 255}
	case items.ItemTypeConsumable:
		return color.RGBA{200, 40, 60, 255}
	}
	if itemID == items.CoinGold {
		return color.RGBA{230, 190, 40, 255}
	}
	return color.RGBA{140, 110, 70, 255}
}

// DrawItem draws an item swatch with its initial and stack size into a
// size x size cell at (x, y).
func DrawItem(screen *ebiten.Image, itemID string, qty int, x, y, size float64) {
	ebitenutil.DrawRect(screen, x+5, y+5, size-10, size-10, ItemColor(itemID))
	ebitenutil.DebugPrintAt(screen, strings.ToUpper(itemID[:1]), int(x+8), int(y+6))
	if qty > 1 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprint(qty), int(x+4), int(y+size-17))
	}
}

type TextInput struct {
	BaseElement
	Text        string
	Placeholder string
	Focused     bool
	Counter     int
	IsPassword  bool
}

func NewTextInput(x, y, w, h float64, placeholder string) *TextInput {
	return &TextInput{
		BaseElement: BaseElement{X: x, Y: y, Width: w, Height: h, Visible: true},
		Placeholder: placeholder,
	}
}

func (t *TextInput) Update() (bool, error) {
	if !t.Visible {
		return false, nil
	}

	t.Counter++
	if t.Focused {
		t.Text = string(ebiten.AppendInputChars([]rune(t.Text)))
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(t.Text) > 0 {
			r := []rune(t.Text)
			t.Text = string(r[:len(r)-1])
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		t.Focused = t.Contains(ebiten.CursorPosition())
		return t.Focused, nil
	}
	return false, nil
}

func (t *TextInput) Draw(screen *ebiten.Image) {
	if !t.Visible {
		return
	}

	c := color.RGBA{30, 30, 30, 255}
	if t.Focused {
		c = color.RGBA{50, 50, 50, 255}
	}
	ebitenutil.DrawRect(screen, t.X, t.Y, t.Width, t.Height, c)
	drawBorder(screen, t.X, t.Y, t.Width, t.Height, color.White)

	display := t.Text
	if t.IsPassword {
		display = strings.Repeat("*", len([]rune(t.Text)))
	}
	if display == "" && !t.Focused {
		display = t.Placeholder
	}
	if t.Focused && (t.Counter/30)%2 == 0 {
		display += "|"
	}
	ebitenutil.DebugPrintAt(screen, display, int(t.X+5), int(t.Y+10))
}

func (t *TextInput) HandleInput(x, y int) bool {
	return t.Visible && t.Contains(x, y)
}
