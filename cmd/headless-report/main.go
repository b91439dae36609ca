package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Snakely/internal/snake"
)

type runStats struct {
	runIndex int
	seed     int64

	ticks     int
	score     int
	length    int
	won       bool
	endReason string // wall, self, win, or timeout

	firstEatTick   int
	firstTurnTick  int
	turns          int
	spawns         int
	powerUpSpawns  int
	powerUpActives map[string]int
}

type reportConfig struct {
	runs     int
	ticks    int
	seedBase int64
	seedStep int64
	grid     int
	boundary snake.BoundaryMode
	powerUps bool
}

func main() {
	var cfg reportConfig
	var boundary string

	flag.IntVar(&cfg.runs, "runs", 5, "number of autopilot runs")
	flag.IntVar(&cfg.ticks, "ticks", 3000, "maximum ticks per run")
	flag.Int64Var(&cfg.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&cfg.seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&cfg.grid, "grid", 20, "board edge length in cells")
	flag.StringVar(&boundary, "boundary", "collide", "boundary mode: collide or wrap")
	flag.BoolVar(&cfg.powerUps, "powerups", false, "enable power-ups")
	flag.Parse()

	if cfg.runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if cfg.ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}
	if cfg.grid < 2 {
		fmt.Println("error: -grid must be >= 2")
		os.Exit(2)
	}
	b, err := snake.ParseBoundary(boundary)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}
	cfg.boundary = b

	fmt.Printf("=== Headless Autopilot Report ===\n")
	fmt.Printf("grid=%d boundary=%s powerups=%v runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		cfg.grid, cfg.boundary, cfg.powerUps, cfg.runs, cfg.ticks, cfg.seedBase, cfg.seedStep)

	all := make([]runStats, 0, cfg.runs)
	for i := 0; i < cfg.runs; i++ {
		seed := cfg.seedBase + int64(i)*cfg.seedStep
		stats := runAutopilot(i+1, seed, cfg)
		all = append(all, stats)
		printRun(stats)
	}
	printAggregate(all)
}

func runAutopilot(runIndex int, seed int64, cfg reportConfig) runStats {
	sim := snake.NewSim(
		snake.WithGrid(cfg.grid, 20),
		snake.WithSimSeed(seed),
		snake.WithAutopilot(),
		snake.WithEngine(
			snake.WithBoundary(cfg.boundary),
			snake.WithPowerUps(cfg.powerUps),
		),
	)
	sim.RunUntilOver(cfg.ticks)
	st := sim.State()
	log := sim.Log

	actives := map[string]int{}
	for _, e := range log.Filter(snake.CategoryPowerUp, "activate") {
		actives[e.Value]++
	}

	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		ticks:          st.Tick,
		score:          st.Score,
		length:         st.Len(),
		won:            st.Won,
		endReason:      endReason(log, st),
		firstEatTick:   log.FirstTick(snake.CategoryFood, "eat"),
		firstTurnTick:  log.FirstTick(snake.CategoryInput, "turn"),
		turns:          log.Count(snake.CategoryInput, "turn"),
		spawns:         log.Count(snake.CategoryFood, "spawn"),
		powerUpSpawns:  log.Count(snake.CategoryPowerUp, "spawn"),
		powerUpActives: actives,
	}
}

// endReason reads the cause out of the game_over entry.
func endReason(log *snake.EventLog, st snake.State) string {
	if !st.IsOver {
		return "timeout"
	}
	e, ok := log.LastOf(snake.CategoryState, "game_over")
	if !ok {
		return "unknown"
	}
	reason, _, _ := strings.Cut(e.Value, " ")
	return reason
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome: end=%s ticks=%d score=%d length=%d won=%v\n",
		rs.endReason, rs.ticks, rs.score, rs.length, rs.won)
	fmt.Printf("phase_markers: first_eat=%d first_turn=%d\n", rs.firstEatTick, rs.firstTurnTick)
	fmt.Printf("event_totals: turns=%d food_spawns=%d powerup_spawns=%d\n", rs.turns, rs.spawns, rs.powerUpSpawns)
	fmt.Printf("powerups_taken: %s\n", joinCounts(rs.powerUpActives))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalScore := 0
	totalTicks := 0
	totalTurns := 0
	best := 0
	wins := 0
	reasons := map[string]int{}
	actives := map[string]int{}
	eatTicks := make([]int, 0, len(all))

	for _, rs := range all {
		totalScore += rs.score
		totalTicks += rs.ticks
		totalTurns += rs.turns
		best = max(best, rs.score)
		if rs.won {
			wins++
		}
		reasons[rs.endReason]++
		for k, v := range rs.powerUpActives {
			actives[k] += v
		}
		if rs.firstEatTick >= 0 {
			eatTicks = append(eatTicks, rs.firstEatTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d wins=%d best_score=%d\n", len(all), wins, best)
	fmt.Printf("avg_per_run: score=%.1f ticks=%.1f turns=%.1f\n",
		avg(totalScore, len(all)), avg(totalTicks, len(all)), avg(totalTurns, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_eat=%s\n", avgTickString(eatTicks))
	fmt.Printf("end_reasons: %s\n", joinCounts(reasons))
	fmt.Printf("powerups_taken: %s\n", joinCounts(actives))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ",")
}
