package snake

// Autopilot drives the snake without a player, for headless runs and soak
// tests. The strategy is "move towards the food but avoid bumping into
// things", with a flood fill so it does not turn into a pocket smaller than
// its own body when a roomier move exists.
type Autopilot struct{}

type pilotMove struct {
	dir  Direction
	area int
	dist int
}

// Next picks the heading for the coming tick.
func (Autopilot) Next(st State) Direction {
	if len(st.Segments) == 0 || st.IsOver {
		return None
	}
	head := st.Head()

	var moves []pilotMove
	for _, d := range []Direction{Up, Down, Left, Right} {
		if len(st.Segments) > 1 && d.IsOpposite(st.Direction) {
			continue
		}
		next, ok := pilotStep(st, head, d)
		if !ok {
			continue
		}
		eating := st.Food != nil && next == *st.Food
		blocked := bodyCells(st.Segments, eating)
		if blocked.Has(next) {
			continue
		}
		blocked[next] = struct{}{}
		moves = append(moves, pilotMove{
			dir:  d,
			area: floodArea(st, next, blocked),
			dist: foodDistance(st, next),
		})
	}
	if len(moves) == 0 {
		return st.Direction
	}

	need := len(st.Segments)
	best := moves[0]
	for _, m := range moves[1:] {
		bestRoomy, roomy := best.area >= need, m.area >= need
		switch {
		case roomy && !bestRoomy:
			best = m
		case roomy == bestRoomy && roomy && m.dist < best.dist:
			best = m
		case roomy == bestRoomy && !roomy && m.area > best.area:
			best = m
		}
	}
	return best.dir
}

// pilotStep applies the board's boundary policy to a one-cell move.
func pilotStep(st State, from Cell, d Direction) (Cell, bool) {
	c := st.Canvas
	next := from.Add(d.Vector(c.CellSize))
	if InBounds(next, c.Width, c.Height) {
		return next, true
	}
	if st.Boundary == BoundaryWrap {
		return Wrap(next, c.Width, c.Height, c.CellSize), true
	}
	return next, false
}

// bodyCells returns the cells that block the head next tick. The tail is
// free unless the snake grows.
func bodyCells(segments []Cell, growing bool) CellSet {
	body := segments
	if !growing && len(body) > 0 {
		body = body[:len(body)-1]
	}
	return NewCellSet(body...)
}

// floodArea counts the cells reachable from start without crossing blocked.
func floodArea(st State, start Cell, blocked CellSet) int {
	seen := CellSet{start: {}}
	queue := []Cell{start}
	limit := len(st.Segments) * 2
	for len(queue) > 0 && len(seen) < limit+1 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range []Direction{Up, Down, Left, Right} {
			n, ok := pilotStep(st, c, d)
			if !ok || blocked.Has(n) || seen.Has(n) {
				continue
			}
			seen[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return len(seen)
}

func foodDistance(st State, c Cell) int {
	if st.Food == nil {
		return 0
	}
	cs := st.Canvas.CellSize
	dx := abs(st.Food.X-c.X) / cs
	dy := abs(st.Food.Y-c.Y) / cs
	if st.Boundary == BoundaryWrap {
		dx = min(dx, st.Canvas.Cols()-dx)
		dy = min(dy, st.Canvas.Rows()-dy)
	}
	return dx + dy
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
