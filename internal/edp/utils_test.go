package edp

import (
	"math"
	"testing"
)

func TestIsFinite(t *testing.T) {
	if !isFinite(1) || isFinite(math.Inf(1)) || isFinite(math.NaN()) {
		t.Fatal("isFinite failed")
	}
}

func TestClamp(t *testing.T) {
	if clamp(-2, -1, 1) != -1 || clamp(2, -1, 1) != 1 || clamp(0.5, -1, 1) != 0.5 {
		t.Fatal("clamp failed")
	}
}

func TestWrapIndex(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{0, 4, 0}, {4, 4, 0}, {5, 4, 1}, {-1, 4, 3}, {-4, 4, 0},
	}
	for _, c := range cases {
		if got := wrapIndex(c.i, c.n); got != c.want {
			t.Fatalf("wrapIndex(%d,%d) = %d, want %d", c.i, c.n, got, c.want)
		}
	}
}

func TestSign(t *testing.T) {
	if sign(3) != 1 || sign(-0.1) != -1 || sign(0) != 0 {
		t.Fatal("sign failed")
	}
}
