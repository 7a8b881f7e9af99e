package inventory

import "testing"

func TestMerge(t *testing.T) {
	tests := []struct {
		name            string
		source, target  Item
		wantTransferred int
		wantRemainder   int
		wantTarget      int
	}{
		{"fits entirely", arrows(5), arrows(10), 5, 0, 15},
		{"fills to max", arrows(20), arrows(5), 15, 5, 20},
		{"target already full", arrows(4), arrows(20), 0, 4, 20},
		{"different kinds", arrows(4), potions(2), 0, 4, 2},
		{"non-stackable target", sword(), sword(), 0, 1, 1},
		{"target over max is not pushed further", arrows(3), &testItem{kind: "arrow", qty: 25, max: 20}, 0, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, rem := Merge(tt.source, tt.target)
			if n != tt.wantTransferred || rem != tt.wantRemainder {
				t.Fatalf("Merge = (%d, %d), want (%d, %d)", n, rem, tt.wantTransferred, tt.wantRemainder)
			}
			if tt.target.Quantity() != tt.wantTarget {
				t.Fatalf("target quantity %d, want %d", tt.target.Quantity(), tt.wantTarget)
			}
			if tt.source.Quantity() != tt.wantRemainder {
				t.Fatalf("source quantity %d, want %d", tt.source.Quantity(), tt.wantRemainder)
			}
		})
	}
}

func TestMergeNeverOverflows(t *testing.T) {
	for src := 0; src <= 25; src++ {
		for dst := 0; dst <= 20; dst++ {
			s, d := arrows(src), arrows(dst)
			n, rem := Merge(s, d)
			want := src
			if c := 20 - dst; c < want {
				want = c
			}
			if n != want {
				t.Fatalf("src=%d dst=%d: transferred %d, want %d", src, dst, n, want)
			}
			if d.Quantity() > d.MaxStackSize() {
				t.Fatalf("src=%d dst=%d: target overflowed to %d", src, dst, d.Quantity())
			}
			if rem < 0 || s.Quantity() < 0 {
				t.Fatalf("src=%d dst=%d: negative remainder", src, dst)
			}
			if n+rem != src {
				t.Fatalf("src=%d dst=%d: quantity not conserved", src, dst)
			}
		}
	}
}

func TestMergeNilSource(t *testing.T) {
	if n, rem := Merge(nil, arrows(1)); n != 0 || rem != 0 {
		t.Fatalf("Merge(nil) = (%d, %d)", n, rem)
	}
}
