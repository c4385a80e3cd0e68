package wingfighter

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/swat-arcade/internal/core"
	"github.com/vovakirdan/swat-arcade/internal/sim"
)

const (
	shipSprite      = "/^\\"
	enemySprite     = "\\V/"
	explosionSprite = "*#*"
)

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		y := dst.Height() / 2
		dst.DrawTextCentered(y-1, "Window too small", core.ColorNegative)
		dst.DrawTextCentered(y, fmt.Sprintf("Need at least %dx%d", minWidth, minHeight), core.ColorHUD)
		return
	}

	for _, s := range g.stars {
		dst.SetColored(int(s.pos.X), int(s.pos.Y), '.', core.ColorDim)
	}
	for _, b := range g.bullets {
		dst.SetColored(int(b.X), int(b.Y), '|', core.ColorAccent)
	}
	for _, e := range g.enemies {
		dst.DrawTextColored(int(e.Pos.X)-1, int(e.Pos.Y), enemySprite, core.ColorNegative)
	}
	for _, x := range g.explosions {
		dst.DrawTextColored(int(x.Pos.X)-1, int(x.Pos.Y), explosionSprite, core.ColorSplat)
	}
	if g.round.Status() != sim.StatusEnded {
		dst.DrawTextColored(g.shipX-1, g.shipY(), shipSprite, core.ColorPlayer)
	}

	g.renderHUD(dst)
	dst.DrawTextColored(0, g.screenH-1, " Arrows or mouse to steer | P pause | B menu | Q quit", core.ColorDim)
	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Wing Fighter  Score: %d  Lives: %s  Time: %.0fs",
		g.score, strings.Repeat("♥", g.lives), g.round.Elapsed().Seconds())
	if g.DoubleShot() {
		hud += "  DOUBLE SHOT"
	}
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)
	dst.DrawHLine(0, 1, g.screenW, '─', core.ColorDim)
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.round.Status() {
	case sim.StatusIdle:
		dst.DrawMessageBox("Wing Fighter",
			"Difficulty: "+g.Difficulties()[g.difficulty],
			"Shoot down the enemies before they get past you",
			"",
			"ENTER or click to start")
	case sim.StatusCountdown:
		if g.round.Paused() {
			dst.DrawMessageBox("PAUSED", "P to resume")
			return
		}
		dst.DrawMessageBox("Get ready!", fmt.Sprintf("%d", g.round.Countdown()))
	case sim.StatusPlaying:
		if g.round.Paused() {
			dst.DrawMessageBox("PAUSED", "P to resume")
		}
	case sim.StatusEnded:
		dst.DrawMessageBox("GAME OVER",
			fmt.Sprintf("Score: %d", g.score),
			fmt.Sprintf("Kills: %d  Survived: %.1fs", g.kills, g.round.Elapsed().Seconds()),
			"",
			"R to play again | B for menu")
	}
}
