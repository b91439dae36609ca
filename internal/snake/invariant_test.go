package snake

import (
	"fmt"
	"testing"
)

// --- Invariant helpers ---

// checkAligned verifies that every segment and the food sit on a whole cell
// inside the board.
func checkAligned(t *testing.T, st State) error {
	t.Helper()
	cs := st.Canvas.CellSize
	if st.Len() < 1 {
		return fmt.Errorf("T=%d: snake has no segments", st.Tick)
	}
	cells := st.Segments
	if st.Food != nil {
		cells = append(cells[:len(cells):len(cells)], *st.Food)
	}
	for _, c := range cells {
		if c.X%cs != 0 || c.Y%cs != 0 {
			return fmt.Errorf("T=%d: %s is off the %dpx grid", st.Tick, c, cs)
		}
		if !InBounds(c, st.Canvas.Width, st.Canvas.Height) {
			return fmt.Errorf("T=%d: %s is outside %dx%d", st.Tick, c, st.Canvas.Width, st.Canvas.Height)
		}
	}
	return nil
}

// checkStep compares the snapshots either side of one engine tick.
func checkStep(t *testing.T, prev, cur State, growthUnit int) error {
	t.Helper()
	eaten := cur.Eats - prev.Eats
	if eaten < 0 || eaten > 1 {
		return fmt.Errorf("T=%d: eats went %d → %d in one tick", cur.Tick, prev.Eats, cur.Eats)
	}
	grew := cur.Len() - prev.Len()
	switch {
	case growthUnit == 1 && grew != eaten:
		return fmt.Errorf("T=%d: length changed by %d with %d eats", cur.Tick, grew, eaten)
	case grew < 0 || grew > 1:
		return fmt.Errorf("T=%d: length changed by %d", cur.Tick, grew)
	}
	if cur.Score < prev.Score {
		return fmt.Errorf("T=%d: score fell %d → %d", cur.Tick, prev.Score, cur.Score)
	}
	if cur.Score != cur.Eats*growthUnit {
		return fmt.Errorf("T=%d: score %d != eats %d × %d", cur.Tick, cur.Score, cur.Eats, growthUnit)
	}
	if prev.Len() > 1 && cur.Direction == prev.Direction.Opposite() {
		return fmt.Errorf("T=%d: reversed %s → %s at length %d", cur.Tick, prev.Direction, cur.Direction, prev.Len())
	}
	if cur.Food != nil && NewCellSet(cur.Segments...).Has(*cur.Food) {
		return fmt.Errorf("T=%d: food %s placed on the snake", cur.Tick, *cur.Food)
	}
	return nil
}

// runInvariantGame plays one autopilot game and checks every tick.
func runInvariantGame(t *testing.T, seed int64, grid int, b BoundaryMode, growthUnit, maxTicks int) {
	t.Helper()
	s := NewSim(
		WithGrid(grid, 20),
		WithSimSeed(seed),
		WithAutopilot(),
		WithEngine(WithBoundary(b), WithGrowth(growthUnit)),
	)
	prev := s.State()
	if err := checkAligned(t, prev); err != nil {
		t.Fatalf("seed %d start: %v", seed, err)
	}
	for i := 0; i < maxTicks && !s.Engine.IsOver(); i++ {
		s.Step()
		cur := s.State()
		if cur.Tick == prev.Tick {
			continue
		}
		if err := checkAligned(t, cur); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if err := checkStep(t, prev, cur, growthUnit); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		prev = cur
	}
}

func TestInvariants_AutopilotSweep(t *testing.T) {
	cases := []struct {
		name     string
		grid     int
		boundary BoundaryMode
		growth   int
	}{
		{"collide_20", 20, BoundaryCollide, 1},
		{"wrap_20", 20, BoundaryWrap, 1},
		{"collide_8", 8, BoundaryCollide, 1},
		{"wrap_8", 8, BoundaryWrap, 1},
		{"collide_growth3", 12, BoundaryCollide, 3},
		{"wrap_growth3", 12, BoundaryWrap, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 40; seed++ {
				runInvariantGame(t, seed, tc.grid, tc.boundary, tc.growth, 2000)
			}
		})
	}
}
