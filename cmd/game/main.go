package main

import (
	"flag"
	"log"

	"github.com/Garsondee/Snakely/internal/audio"
	"github.com/Garsondee/Snakely/internal/game"
	"github.com/Garsondee/Snakely/internal/snake"
	"github.com/Garsondee/Snakely/internal/store"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var (
		boundary   string
		wrap       bool
		touch      bool
		powerUps   bool
		mute       bool
		volume     float64
		scoresPath string
		seed       int64
	)
	flag.StringVar(&boundary, "boundary", "collide", "boundary mode: collide or wrap")
	flag.BoolVar(&wrap, "wrap", false, "shorthand for -boundary=wrap")
	flag.BoolVar(&touch, "touch", false, "use the slower touch tick rate from the start")
	flag.BoolVar(&powerUps, "powerups", false, "enable power-ups")
	flag.BoolVar(&mute, "mute", false, "start with sound muted")
	flag.Float64Var(&volume, "volume", audio.DefaultVolume, "sound level from 0 to 1")
	flag.StringVar(&scoresPath, "scores", "", "high score file (default: user config dir)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 picks one from the clock)")
	flag.Parse()

	if wrap {
		boundary = "wrap"
	}
	mode, err := snake.ParseBoundary(boundary)
	if err != nil {
		log.Fatal(err)
	}

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		log.Printf("audio unavailable: %v", err)
	}
	defer sound.Cleanup()
	sound.SetMuted(mute)
	sound.SetVolume(volume)

	scores, path := store.Open(scoresPath)
	if path != "" {
		log.Printf("high scores: %s", path)
	}

	g, err := game.New(game.Config{
		Boundary: mode,
		PowerUps: powerUps,
		Touch:    touch,
		Seed:     seed,
		Sound:    sound,
		Scores:   scores,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Snakely")
	ebiten.SetWindowSize(game.DefaultWidth, game.DefaultHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
