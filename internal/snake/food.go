package snake

import "math/rand"

// MaxFoodAttempts bounds the random phase of food placement before the
// placer falls back to scanning every cell.
const MaxFoodAttempts = 100

// FoodPlacer chooses free cells for food and pickups.
type FoodPlacer struct {
	rng         *rand.Rand
	maxAttempts int
}

// NewFoodPlacer returns a placer drawing from rng.
func NewFoodPlacer(rng *rand.Rand) *FoodPlacer {
	return &FoodPlacer{rng: rng, maxAttempts: MaxFoodAttempts}
}

// Place returns a uniformly random cell not in occupied. It tries random
// candidates first and scans the whole board only when those all collide.
// ok is false when every cell is occupied.
func (fp *FoodPlacer) Place(occupied CellSet, size CanvasSize) (Cell, bool) {
	cols, rows := size.Cols(), size.Rows()
	area := size.Area()
	if area <= 0 {
		return Cell{}, false
	}
	if len(occupied) < area {
		for i := 0; i < fp.maxAttempts; i++ {
			c := Cell{
				X: fp.rng.Intn(cols) * size.CellSize,
				Y: fp.rng.Intn(rows) * size.CellSize,
			}
			if !occupied.Has(c) {
				return c, true
			}
		}
	}

	free := make([]Cell, 0, area-min(len(occupied), area))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := Cell{X: x * size.CellSize, Y: y * size.CellSize}
			if !occupied.Has(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return Cell{}, false
	}
	return free[fp.rng.Intn(len(free))], true
}
