package snake

import (
	"math/rand"
	"testing"
)

func TestWrap(t *testing.T) {
	cases := []struct {
		in, want Cell
	}{
		{Cell{400, 200}, Cell{0, 200}},
		{Cell{-20, 200}, Cell{380, 200}},
		{Cell{100, -20}, Cell{100, 380}},
		{Cell{100, 400}, Cell{100, 0}},
		{Cell{120, 140}, Cell{120, 140}},
	}
	for _, tc := range cases {
		if got := Wrap(tc.in, 400, 400, 20); got != tc.want {
			t.Errorf("Wrap(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestToCell_FloorsNegatives(t *testing.T) {
	if got := ToCell(-1, 5, 20); got != (Cell{-20, 0}) {
		t.Fatalf("ToCell(-1,5) = %s", got)
	}
	if got := ToCell(39, 40, 20); got != (Cell{20, 40}) {
		t.Fatalf("ToCell(39,40) = %s", got)
	}
}

func TestClampToBounds(t *testing.T) {
	if got := ClampToBounds(Cell{500, -40}, 400, 300, 20); got != (Cell{380, 0}) {
		t.Fatalf("clamp = %s, want (380,0)", got)
	}
}

func TestCanvasSize_NormalizeAndArea(t *testing.T) {
	got := CanvasSize{Width: 410, Height: 395, CellSize: 20}.Normalize()
	if got != (CanvasSize{Width: 400, Height: 380, CellSize: 20}) {
		t.Fatalf("Normalize = %+v", got)
	}
	if got.Area() != 20*19 {
		t.Fatalf("Area = %d, want %d", got.Area(), 20*19)
	}
	if z := (CanvasSize{Width: 100, Height: 100}).Normalize(); z.Width != 0 || z.Area() != 0 {
		t.Fatalf("zero cell size normalised to %+v", z)
	}
}

func TestFitCanvas(t *testing.T) {
	cases := []struct {
		w, h   int
		wantCS int
	}{
		{800, 600, 30},
		{100, 100, 20},
		{2000, 2000, 32},
		{500, 900, 25},
	}
	for _, tc := range cases {
		got := FitCanvas(tc.w, tc.h, 20, 20, 32)
		if got.CellSize != tc.wantCS || got.Width != 20*tc.wantCS || got.Height != 20*tc.wantCS {
			t.Errorf("FitCanvas(%d,%d) = %+v, want cell %d", tc.w, tc.h, got, tc.wantCS)
		}
	}
}

func TestDirectionOpposites(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		if !d.IsOpposite(d.Opposite()) || d.Opposite().Opposite() != d {
			t.Errorf("%s opposite broken", d)
		}
		v := d.Vector(20)
		o := d.Opposite().Vector(20)
		if v.Add(o) != (Cell{}) {
			t.Errorf("%s vectors do not cancel: %s + %s", d, v, o)
		}
		if ParseDirection(d.String()) != d {
			t.Errorf("ParseDirection(%q) != %s", d.String(), d)
		}
	}
	if None.IsOpposite(None) {
		t.Error("None has no opposite")
	}
	if ParseDirection("none") != None || ParseDirection("sideways") != None {
		t.Error("non-headings should parse to None")
	}
}

func TestFoodPlacer_NeverOnSnake(t *testing.T) {
	fp := NewFoodPlacer(rand.New(rand.NewSource(5))) // #nosec G404 -- test
	size := Square(5, 20)
	occupied := NewCellSet()
	for x := 0; x < 5; x++ {
		for y := 0; y < 4; y++ {
			occupied[Cell{x * 20, y * 20}] = struct{}{}
		}
	}
	for i := 0; i < 200; i++ {
		c, ok := fp.Place(occupied, size)
		if !ok {
			t.Fatal("board has free cells but placement failed")
		}
		if occupied.Has(c) || c.Y != 80 || c.X%20 != 0 {
			t.Fatalf("placed food at %s", c)
		}
	}
}

func TestFoodPlacer_LastFreeCell(t *testing.T) {
	fp := NewFoodPlacer(rand.New(rand.NewSource(1))) // #nosec G404 -- test
	size := Square(3, 10)
	occupied := NewCellSet()
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			if x != 2 || y != 1 {
				occupied[Cell{x * 10, y * 10}] = struct{}{}
			}
		}
	}
	fp.maxAttempts = 0
	c, ok := fp.Place(occupied, size)
	if !ok || c != (Cell{20, 10}) {
		t.Fatalf("Place = %s,%v, want (20,10)", c, ok)
	}
}

func TestFoodPlacer_FullBoard(t *testing.T) {
	fp := NewFoodPlacer(rand.New(rand.NewSource(1))) // #nosec G404 -- test
	size := Square(2, 20)
	occupied := NewCellSet(Cell{0, 0}, Cell{20, 0}, Cell{0, 20}, Cell{20, 20})
	if _, ok := fp.Place(occupied, size); ok {
		t.Fatal("full board should report no placement")
	}
}
