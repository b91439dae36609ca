package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/Garsondee/Snakely/internal/audio"
	"github.com/Garsondee/Snakely/internal/snake"
	"github.com/Garsondee/Snakely/internal/store"
	"github.com/Garsondee/Snakely/internal/term"
)

func main() {
	var (
		boundary   string
		grid       int
		powerUps   bool
		mute       bool
		volume     float64
		scoresPath string
		seed       int64
	)
	flag.StringVar(&boundary, "boundary", "collide", "boundary mode: collide or wrap")
	flag.IntVar(&grid, "grid", term.DefaultGrid, "board edge length in cells")
	flag.BoolVar(&powerUps, "powerups", false, "enable power-ups")
	flag.BoolVar(&mute, "mute", false, "start with sound muted")
	flag.Float64Var(&volume, "volume", audio.DefaultVolume, "sound level from 0 to 1")
	flag.StringVar(&scoresPath, "scores", "", "high score file (default: user config dir)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 picks one from the clock)")
	flag.Parse()

	mode, err := snake.ParseBoundary(boundary)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		log.Printf("audio unavailable: %v", err)
	}
	defer sound.Cleanup()
	sound.SetMuted(mute)
	sound.SetVolume(volume)

	scores, _ := store.Open(scoresPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = term.Run(ctx, term.Config{
		Grid:     grid,
		Boundary: mode,
		PowerUps: powerUps,
		Seed:     seed,
		Sound:    sound,
		Scores:   scores,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
