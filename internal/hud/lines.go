// Package hud holds the presentation pieces shared by the window and
// terminal hosts: palette, toasts and the text lines of the HUD and the game
// over card. It must not import a graphics backend.
package hud

import (
	"fmt"
	"math"

	"github.com/Garsondee/Snakely/internal/snake"
)

// Lines returns the left and right HUD strings.
func Lines(st snake.State) (left, right string) {
	left = fmt.Sprintf("SCORE %02d   BEST %02d", st.Score, st.HighScore)
	for _, a := range st.Active {
		secs := int(math.Ceil(a.Remaining(st.Clock).Seconds()))
		right += fmt.Sprintf("%s %ds  ", a.Kind, secs)
	}
	return left, right
}

// OverlayLines returns the title and detail lines of the game over card.
func OverlayLines(st snake.State) (title string, lines []string) {
	title = "GAME OVER"
	if st.Won {
		title = "BOARD CLEARED"
	}
	lines = []string{
		fmt.Sprintf("Score %02d", st.Score),
		fmt.Sprintf("Best %02d", st.HighScore),
	}
	if st.NewBest() {
		lines = append(lines, "NEW BEST!")
	}
	lines = append(lines, "Press Space to play again")
	return title, lines
}

// PickupGlyph is the letter drawn on a pickup.
func PickupGlyph(k snake.PowerUpKind) string {
	s := k.String()
	if s == "" {
		return "?"
	}
	return s[:1]
}
