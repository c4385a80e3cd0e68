package swat

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/swat-arcade/internal/core"
	"github.com/vovakirdan/swat-arcade/internal/sim"
)

// Sprites by variant, indexed by width-1.
var sprites = map[sim.Variant][3]string{
	sim.VariantNormal:   {"*", "<>", "<*>"},
	sim.VariantBonus:    {"$", "$$", "<$>"},
	sim.VariantNegative: {"x", "xx", "<x>"},
}

var variantColors = map[sim.Variant]core.Color{
	sim.VariantNormal:   core.ColorFly,
	sim.VariantBonus:    core.ColorBonus,
	sim.VariantNegative: core.ColorNegative,
}

func spriteWidth(e sim.Entity) int {
	return core.Clamp(int(math.Round(e.Size)), 1, 3)
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderSplats(dst)
	g.renderEntities(dst)
	if g.round.Playing() {
		g.renderCrosshair(dst)
	}
	g.renderFooter(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorNegative)
	dst.DrawTextCentered(y, fmt.Sprintf("Need at least %dx%d", minWidth, minHeight), core.ColorHUD)
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d", g.Title(), g.swarm.Score())
	if g.round.Survival() {
		hud += fmt.Sprintf("  Time: %.1fs  Flies: %d/%d",
			g.round.Elapsed().Seconds(), g.swarm.Len(), g.swarm.Config().Ceiling)
	} else {
		hud += fmt.Sprintf("  Time: %ds", int(g.round.TimeLeft()/time.Second))
	}
	if count, mult := g.swarm.Combo(); count > 1 {
		hud += fmt.Sprintf("  Combo x%.1f (%d)", mult, count)
	}
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)
	dst.DrawHLine(0, 1, g.screenW, '─', core.ColorDim)

	if msg := g.swarm.Message(); msg != "" {
		dst.DrawTextCentered(2, msg, core.ColorAccent)
	}
}

func (g *Game) renderSplats(dst *core.Screen) {
	splats := g.swarm.Splats()
	for _, sp := range splats {
		x, y := int(sp.Pos.X), int(sp.Pos.Y)
		dst.SetColored(x, y, '#', core.ColorSplat)
	}

	// Points of the latest hit float above its splat while it is visible.
	if len(splats) == 0 || !g.last.Hit {
		return
	}
	sp := splats[len(splats)-1]
	if sp.CreatedAt != g.lastAt {
		return
	}
	label := fmt.Sprintf("%+d", g.last.Points)
	color := variantColors[g.last.Entity.Variant]
	dst.DrawTextColored(int(sp.Pos.X)-len(label)/2, int(sp.Pos.Y)-1, label, color)
}

func (g *Game) renderEntities(dst *core.Screen) {
	for _, e := range g.swarm.Entities() {
		w := spriteWidth(e)
		r := core.RectAround(e.Pos.X, e.Pos.Y, w, 1)
		dst.DrawTextColored(r.X, r.Y, sprites[e.Variant][w-1], variantColors[e.Variant])
	}
}

func (g *Game) renderCrosshair(dst *core.Screen) {
	if dst.Get(g.crossX, g.crossY) == ' ' {
		dst.SetColored(g.crossX, g.crossY, '+', core.ColorAccent)
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	hint := " Click or SPACE to swat | Arrows move | P pause | B menu | Q quit"
	dst.DrawTextColored(0, g.screenH-1, hint, core.ColorDim)
}

func (g *Game) renderOverlay(dst *core.Screen) {
	name := g.Difficulties()[g.difficulty]

	switch g.round.Status() {
	case sim.StatusIdle:
		dst.DrawMessageBox(g.Title(),
			"Difficulty: "+name,
			g.goal(),
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
		title := "TIME'S UP!"
		lines := []string{fmt.Sprintf("Score: %d", g.swarm.Score())}
		if g.round.Survival() {
			title = "SWARMED!"
			lines = append(lines, fmt.Sprintf("Survived: %.1fs", g.round.Elapsed().Seconds()))
		}
		lines = append(lines,
			fmt.Sprintf("Hits: %d", g.swarm.Hits()),
			"",
			"R to play again | B for menu")
		dst.DrawMessageBox(title, lines...)
	}
}

// goal describes what the selected difficulty asks of the player.
func (g *Game) goal() string {
	d := g.cfg.Difficulty(g.difficulty)
	switch {
	case d.Ceiling > 0:
		return fmt.Sprintf("Survive until %d flies swarm the screen", d.Ceiling)
	case d.TimeLimit > 0:
		return fmt.Sprintf("%d seconds, %d flies", int(d.TimeLimit/time.Second), d.Flies)
	default:
		return "Swat as many flies as you can"
	}
}
