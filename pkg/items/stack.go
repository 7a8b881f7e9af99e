package items

import (
	"fmt"

	"emberhold/pkg/inventory"
)

var _ inventory.Item = (*Stack)(nil)

// Stack is a quantity of one item definition. It is what the inventory
// stores.
type Stack struct {
	def Definition
	qty int
}

// New creates a stack of qty units of id. The quantity is clamped to the
// definition's max stack.
func New(id string, qty int) (*Stack, error) {
	def, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	if qty < 1 {
		return nil, fmt.Errorf("item %s: quantity %d", id, qty)
	}
	if qty > def.MaxStack {
		qty = def.MaxStack
	}
	return &Stack{def: def, qty: qty}, nil
}

// MustNew is New for ids known at compile time.
func MustNew(id string, qty int) *Stack {
	s, err := New(id, qty)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Stack) Definition() Definition { return s.def }
func (s *Stack) Kind() string           { return s.def.ID }
func (s *Stack) Quantity() int          { return s.qty }
func (s *Stack) MaxStackSize() int      { return s.def.MaxStack }
func (s *Stack) IsStackable() bool      { return s.def.MaxStack > 1 }
func (s *Stack) IsUsable() bool         { return s.def.Usable() }

func (s *Stack) SetQuantity(q int) {
	if q < 0 {
		q = 0
	}
	s.qty = q
}

func (s *Stack) Clone() inventory.Item {
	c := *s
	return &c
}

func (s *Stack) String() string {
	return fmt.Sprintf("%s x%d", s.def.ID, s.qty)
}
