package bitutil

import "testing"

func TestBitMatrixGetSet(t *testing.T) {
	bm := NewBitMatrix(70, 10)
	bm.Set(3, 5)
	bm.Set(66, 9)
	if !bm.Get(3, 5) || !bm.Get(66, 9) {
		t.Error("bits should be set")
	}
	if bm.Get(5, 3) || bm.Get(65, 9) {
		t.Error("bits should not be set")
	}
}

func TestBitMatrixFlipUnset(t *testing.T) {
	bm := NewBitMatrix(4, 4)
	bm.Flip(1, 2)
	if !bm.Get(1, 2) {
		t.Error("bit should be set after flip")
	}
	bm.Unset(1, 2)
	if bm.Get(1, 2) {
		t.Error("bit should be unset")
	}
}

func TestBitMatrixSetRegion(t *testing.T) {
	bm := NewBitMatrix(8, 8)
	bm.SetRegion(2, 2, 4, 4)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			expected := x >= 2 && x < 6 && y >= 2 && y < 6
			if bm.Get(x, y) != expected {
				t.Errorf("(%d,%d) = %v, want %v", x, y, bm.Get(x, y), expected)
			}
		}
	}
}

func TestParseStringMatrix(t *testing.T) {
	bm := ParseStringMatrix("X..\n.X.\n", "X", ".")
	if bm.Width() != 3 || bm.Height() != 2 {
		t.Fatalf("size %dx%d, want 3x2", bm.Width(), bm.Height())
	}
	if got := bm.StringWithChars("X", "."); got != "X..\n.X.\n" {
		t.Errorf("round trip = %q", got)
	}
}

func TestBitMatrixCloneEquals(t *testing.T) {
	bm := NewBitMatrix(8, 8)
	bm.Set(1, 1)
	clone := bm.Clone()
	if !bm.Equals(clone) {
		t.Error("clone should equal original")
	}
	clone.Set(2, 2)
	if bm.Get(2, 2) {
		t.Error("modifying clone should not affect original")
	}
	if bm.Equals(clone) {
		t.Error("different matrices should not be equal")
	}
}
