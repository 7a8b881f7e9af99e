package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Element is the base interface for all UI widgets
type Element interface {
	Update() (bool, error)
	Draw(screen *ebiten.Image)
	HandleInput(x, y int) bool // Returns true if the point is on the element
	SetPosition(x, y float64)
	GetPosition() (float64, float64)
	GetSize() (float64, float64)
	IsVisible() bool
	SetVisible(visible bool)
}

// BaseElement holds common properties
type BaseElement struct {
	X, Y          float64
	Width, Height float64
	Visible       bool
	Color         color.Color
}

func (b *BaseElement) SetPosition(x, y float64) {
	b.X = x
	b.Y = y
}

func (b *BaseElement) GetPosition() (float64, float64) {
	return b.X, b.Y
}

func (b *BaseElement) GetSize() (float64, float64) {
	return b.Width, b.Height
}

func (b *BaseElement) IsVisible() bool {
	return b.Visible
}

func (b *BaseElement) SetVisible(visible bool) {
	b.Visible = visible
}

// Contains reports whether (x, y) lies inside the element's bounds.
func (b *BaseElement) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= b.X && fx <= b.X+b.Width && fy >= b.Y && fy <= b.Y+b.Height
}

type ButtonStyle int

const (
	ButtonStylePrimary ButtonStyle = iota
	ButtonStyleSecondary
)

type Button struct {
	BaseElement
	Text      string
	OnClick   func()
	IsHovered bool
	Style     ButtonStyle
}

func NewButton(x, y, w, h float64, text string, onClick func()) *Button {
	return &Button{
		BaseElement: BaseElement{X: x, Y: y, Width: w, Height: h, Visible: true},
		Text:        text,
		OnClick:     onClick,
		Style:       ButtonStylePrimary,
	}
}

func NewSecondaryButton(x, y, w, h float64, text string, onClick func()) *Button {
	b := NewButton(x, y, w, h, text, onClick)
	b.Style = ButtonStyleSecondary
	return b
}

func (b *Button) Update() (bool, error) {
	if !b.Visible {
		return false, nil
	}

	mx, my := ebiten.CursorPosition()
	b.IsHovered = b.Contains(mx, my)

	if b.IsHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && b.OnClick != nil {
		b.OnClick()
		return true, nil
	}
	return false, nil
}

func (b *Button) Draw(screen *ebiten.Image) {
	if !b.Visible {
		return
	}

	bg := color.RGBA{60, 60, 180, 255}
	border := color.RGBA{200, 200, 255, 255}
	if b.Style == ButtonStyleSecondary {
		bg = color.RGBA{40, 40, 40, 255}
		border = color.RGBA{100, 100, 100, 255}
	}
	if b.IsHovered {
		bg.R += 40
		bg.G += 40
		bg.B += 20
	}

	ebitenutil.DrawRect(screen, b.X, b.Y, b.Width, b.Height, bg)
	drawBorder(screen, b.X, b.Y, b.Width, b.Height, border)

	textWidth := len(b.Text) * 7
	textX := max(int(b.X)+(int(b.Width)-textWidth)/2, int(b.X)+5)
	ebitenutil.DebugPrintAt(screen, b.Text, textX, int(b.Y+b.Height/2-8))
}

func (b *Button) HandleInput(x, y int) bool {
	return b.Visible && b.Contains(x, y)
}

func drawBorder(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	ebitenutil.DrawLine(screen, x, y, x+w, y, c)
	ebitenutil.DrawLine(screen, x, y, x, y+h, c)
	ebitenutil.DrawLine(screen, x+w, y, x+w, y+h, c)
	ebitenutil.DrawLine(screen, x, y+h, x+w, y+h, c)
}

// Manager handles the UI stack
type Manager struct {
	Elements []Element
}

func NewManager() *Manager {
	return &Manager{
		Elements: make([]Element, 0),
	}
}

func (m *Manager) AddElement(e Element) {
	m.Elements = append(m.Elements, e)
}

func (m *Manager) Update() error {
	// Top-most elements (added last) get input first.
	for i := len(m.Elements) - 1; i >= 0; i-- {
		consumed, err := m.Elements[i].Update()
		if err != nil {
			return err
		}
		if consumed {
			break
		}
	}
	return nil
}

func (m *Manager) Draw(screen *ebiten.Image) {
	for _, e := range m.Elements {
		e.Draw(screen)
	}
}

// IsOverUI reports whether (x, y) is on any visible element.
func (m *Manager) IsOverUI(x, y int) bool {
	for _, e := range m.Elements {
		if e.IsVisible() && e.HandleInput(x, y) {
			return true
		}
	}
	return false
}

func (m *Manager) IsMouseOverUI() bool {
	return m.IsOverUI(ebiten.CursorPosition())
}
