package render

import (
	"testing"

	"github.com/Garsondee/Snakely/internal/snake"
)

func TestBoardOrigin(t *testing.T) {
	c := snake.Square(20, 20)
	if x, y := BoardOrigin(400, 400+HUDHeight, c); x != 0 || y != HUDHeight {
		t.Fatalf("exact fit origin = %d,%d", x, y)
	}
	if x, y := BoardOrigin(600, 600, c); x != 100 || y != HUDHeight+(600-HUDHeight-400)/2 {
		t.Fatalf("centred origin = %d,%d", x, y)
	}
}
