package nz

import (
	"fmt"
	"time"

	"github.com/vovakirdan/swat-arcade/internal/core"
	"github.com/vovakirdan/swat-arcade/internal/sim"
)

// layout describes where the grid sits on screen.
type layout struct {
	originX, originY int
	cellW, cellH     int
}

// layout fits the current grid into the field's safe area, shrinking cells
// on small screens.
func (g *Game) layout() layout {
	safe := g.field.Safe()
	availW := int(safe.MaxX-safe.MinX) + 1
	availH := int(safe.MaxY-safe.MinY) + 1
	n := max(1, g.grid)

	l := layout{cellW: 4, cellH: 2}
	if n*l.cellW > availW {
		l.cellW = 2
	}
	if n*l.cellH > availH {
		l.cellH = 1
	}
	l.originX = int(safe.MinX) + (availW-n*l.cellW)/2
	l.originY = int(safe.MinY) + (availH-n*l.cellH)/2
	return l
}

// CellAt maps a screen cell to a grid index.
func (g *Game) CellAt(x, y int) (int, bool) {
	if g.grid == 0 {
		return 0, false
	}
	l := g.layout()
	if x < l.originX || y < l.originY {
		return 0, false
	}
	col := (x - l.originX) / l.cellW
	row := (y - l.originY) / l.cellH
	if col >= g.grid || row >= g.grid {
		return 0, false
	}
	return row*g.grid + col, true
}

// cellPos returns the screen position of the glyph of cell i.
func (g *Game) cellPos(i int) (int, int) {
	l := g.layout()
	row, col := i/g.grid, i%g.grid
	return l.originX + col*l.cellW + l.cellW/2, l.originY + row*l.cellH
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		y := dst.Height() / 2
		dst.DrawTextCentered(y-1, "Window too small", core.ColorNegative)
		dst.DrawTextCentered(y, fmt.Sprintf("Need at least %dx%d", minWidth, minHeight), core.ColorHUD)
		return
	}

	lvl := g.cfg.Level(g.level)
	hud := fmt.Sprintf(" N vs Z  %s  Score: %d  Time: %ds  Found: %d",
		lvl.Name, g.score, int(g.round.TimeLeft()/time.Second), g.found)
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)
	dst.DrawHLine(0, 1, g.screenW, '─', core.ColorDim)
	if g.message != "" {
		dst.DrawTextCentered(2, g.message, g.messageColor)
	}

	if g.round.Playing() {
		g.renderGrid(dst)
	}

	dst.DrawTextColored(0, g.screenH-1,
		" Click the Z or move with arrows + SPACE | P pause | B menu | Q quit", core.ColorDim)

	g.renderOverlay(dst)
}

func (g *Game) renderGrid(dst *core.Screen) {
	for i, r := range g.cells {
		x, y := g.cellPos(i)
		// Both letters share a color so only their shapes tell them apart.
		dst.SetColored(x, y, r, core.ColorFly)
	}

	x, y := g.cellPos(g.cursor)
	if g.layout().cellW >= 4 {
		dst.SetColored(x-1, y, '[', core.ColorAccent)
		dst.SetColored(x+1, y, ']', core.ColorAccent)
	} else {
		dst.SetColored(x, y, g.cells[g.cursor], core.ColorAccent)
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	lvl := g.cfg.Level(g.level)

	switch g.round.Status() {
	case sim.StatusIdle:
		dst.DrawMessageBox("N vs Z",
			"Find the Z hiding among the Ns",
			fmt.Sprintf("< %s >  %dx%d, %ds", lvl.Name, lvl.Grid, lvl.Grid, int(lvl.TimeLimit/time.Second)),
			fmt.Sprintf("Levels unlocked: %d/%d", g.unlocked, len(g.Difficulties())),
			"",
			"Left/Right level | ENTER to start")
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
		dst.DrawMessageBox("TIME'S UP!",
			fmt.Sprintf("Score: %d", g.score),
			fmt.Sprintf("Found: %d  Misses: %d", g.found, g.misses),
			"",
			"R to play again | B for menu")
	}
}
