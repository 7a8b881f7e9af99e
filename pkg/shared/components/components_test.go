package components

import "testing"

func TestHeal(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		amount  float64
		applied float64
		after   float64
	}{
		{"partial", 50, 25, 25, 75},
		{"capped", 90, 25, 10, 100},
		{"full health", 100, 25, 0, 100},
		{"negative amount", 50, -5, 0, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := StatsComponent{MaxHealth: 100, CurrentHealth: tt.current}
			if got := s.Heal(tt.amount); got != tt.applied {
				t.Fatalf("applied %v, want %v", got, tt.applied)
			}
			if s.CurrentHealth != tt.after {
				t.Fatalf("health %v, want %v", s.CurrentHealth, tt.after)
			}
		})
	}
}
