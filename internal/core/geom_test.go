package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(10.5, 20, 30, 40.25)

	if r.Right() != 40.5 {
		t.Errorf("Right() = %v, expected 40.5", r.Right())
	}
	if r.Bottom() != 60.25 {
		t.Errorf("Bottom() = %v, expected 60.25", r.Bottom())
	}
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		name  string
		r     Rect
		empty bool
	}{
		{"normal", NewRect(0, 0, 5, 5), false},
		{"zero width", NewRect(0, 0, 0, 5), true},
		{"zero height", NewRect(0, 0, 5, 0), true},
		{"negative width", NewRect(0, 0, -3, 5), true},
		{"negative height", NewRect(0, 0, 3, -5), true},
		{"fractional", NewRect(0, 0, 0.5, 0.5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Empty(); got != tt.empty {
				t.Errorf("Empty() = %v, expected %v", got, tt.empty)
			}
		})
	}
}

func TestVec2Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want float64
	}{
		{"zero", Vec2{}, 0},
		{"axis", Vec2{X: 1}, 1},
		{"diagonal", Vec2{X: 1, Y: 1}, 1},
		{"long", Vec2{X: -3, Y: 4}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Normalize().Len()
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Normalize().Len() = %v, expected %v", got, tt.want)
			}
		})
	}

	n := Vec2{X: 1, Y: 1}.Normalize()
	if math.Abs(n.X-math.Sqrt2/2) > 1e-12 || n.X != n.Y {
		t.Errorf("Normalize(1,1) = %+v, expected both components sqrt(2)/2", n)
	}
}

func TestVec2Arithmetic(t *testing.T) {
	v := Vec2{X: 1, Y: 2}.Add(Vec2{X: 3, Y: -1}).Scale(2)
	if v.X != 8 || v.Y != 2 {
		t.Errorf("(1,2)+(3,-1))*2 = %+v, expected (8,2)", v)
	}
}

func TestFloor(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.99, 0},
		{1, 1},
		{-0.5, -1},
		{-1, -1},
		{319.999, 319},
	}

	for _, tt := range tests {
		if got := floor(tt.in); got != tt.want {
			t.Errorf("floor(%v) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}
