package fattree

import (
	"math"
	"slices"
	"testing"
)

func TestLevelPositions(t *testing.T) {
	tests := []struct {
		name            string
		level, depth, k int
		want            []float64
	}{
		{"single switch", 0, 1, 4, []float64{0}},
		{"root of depth 2", 0, 2, 2, []float64{-6, 6}},
		{"leaves of depth 2", 1, 2, 2, []float64{-6.5, 6.5}},
		{"middle of depth 3", 1, 3, 2, []float64{-19, -7, 7, 19}},
		{"level out of range", 3, 3, 2, nil},
		{"negative level", -1, 3, 2, nil},
		{"zero k", 0, 3, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LevelPositions(tt.level, tt.depth, tt.k)
			if !slices.Equal(got, tt.want) {
				t.Errorf("LevelPositions(%d, %d, %d) = %v, want %v", tt.level, tt.depth, tt.k, got, tt.want)
			}
		})
	}
}

func TestLevelPositionsDeterministic(t *testing.T) {
	a := LevelPositions(1, 4, 3)
	b := LevelPositions(1, 4, 3)
	if !slices.Equal(a, b) {
		t.Error("LevelPositions should return identical results for identical input")
	}
	if len(a) != 27 {
		t.Errorf("len = %d, want 27", len(a))
	}
}

func TestLevelPositionsOrdered(t *testing.T) {
	for level := range 3 {
		xs := LevelPositions(level, 3, 4)
		if !slices.IsSorted(xs) {
			t.Errorf("level %d not ordered: %v", level, xs)
		}
	}
}

func TestLevelPositionsSymmetric(t *testing.T) {
	for level := range 3 {
		xs := LevelPositions(level, 3, 4)
		for i, x := range xs {
			mirror := xs[len(xs)-1-i]
			if math.Abs(x+mirror) > 1e-9 {
				t.Errorf("level %d: x[%d] = %v, mirror = %v", level, i, x, mirror)
			}
		}
	}
}

func TestRowY(t *testing.T) {
	if got := RowY(0, Upper); got != 0 {
		t.Errorf("RowY(0, Upper) = %v, want 0", got)
	}
	if got := RowY(2, Lower); got != 140 {
		t.Errorf("RowY(2, Lower) = %v, want 140", got)
	}
	if got := RowY(2, Upper); got != -140 {
		t.Errorf("RowY(2, Upper) = %v, want -140", got)
	}
}

func TestCanvasSize(t *testing.T) {
	w, h := CanvasSize(Params{Depth: 3, Width: 8})
	if w != 16*PodSpacing+CanvasMargin {
		t.Errorf("width = %v, want %v", w, 16*PodSpacing+CanvasMargin)
	}
	if h != 6*LevelHeight {
		t.Errorf("height = %v, want %v", h, 6*LevelHeight)
	}
}

func TestHostOffset(t *testing.T) {
	tests := []struct {
		h, k int
		want float64
	}{
		{0, 1, 0},
		{0, 3, -4},
		{1, 3, 0},
		{2, 3, 4},
		{0, 4, -4.5},
		{3, 4, 4.5},
	}
	for _, tt := range tests {
		if got := hostOffset(tt.h, tt.k); got != tt.want {
			t.Errorf("hostOffset(%d, %d) = %v, want %v", tt.h, tt.k, got, tt.want)
		}
	}
}
