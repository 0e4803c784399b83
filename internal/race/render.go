package race

import (
	"fmt"

	"github.com/vovakirdan/racetrack/internal/core"
)

// panelWidth is the side panel width in characters.
const panelWidth = 20

// Board glyphs.
const (
	glyphGrid    = '·'
	glyphStart   = '░'
	glyphFinish  = '▒'
	glyphWall    = '#'
	glyphTrail   = '∙'
	glyphVisited = '•'
	glyphHint    = '+'
	glyphCrashed = 'X'
)

// layout maps grid cells to screen columns.
type layout struct {
	cellW  int // Screen columns per grid cell
	offX   int
	offY   int
	panelX int
}

// layoutFor picks a cell width that fits the board and panel on dst.
func layoutFor(dst *core.Screen, gridW, gridH int) (layout, bool) {
	if gridH > dst.Height() {
		return layout{}, false
	}
	cellW := 2
	if gridW*cellW+panelWidth > dst.Width() {
		cellW = 1
	}
	if gridW*cellW+panelWidth > dst.Width() {
		return layout{}, false
	}
	return layout{
		cellW:  cellW,
		offY:   (dst.Height() - gridH) / 2,
		panelX: gridW*cellW + 1,
	}, true
}

// put draws r at grid cell p. wide fills the second column as well.
func (l layout) put(dst *core.Screen, p core.Point, r rune, c core.Color, wide bool) {
	x := l.offX + p.X*l.cellW
	y := l.offY + p.Y
	dst.SetColor(x, y, r, c)
	if wide && l.cellW > 1 {
		dst.SetColor(x+1, y, r, c)
	}
}

// Render draws the board and side panel.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderOverlay(dst, "Cannot start race", g.err.Error())
		return
	}
	if g.sess == nil {
		return
	}

	w, h := g.sess.Bounds()
	l, ok := layoutFor(dst, w, h)
	if !ok {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", w+panelWidth, h))
		return
	}

	g.renderBoard(dst, l, w, h)
	g.renderPanel(dst, l)

	switch {
	case g.over && g.winner >= 0:
		paint := core.PaintFor(g.colorOf(g.winner))
		g.renderOverlay(dst, fmt.Sprintf("PLAYER %d WINS!", g.winner+1),
			fmt.Sprintf("%s car, %d moves. R to race again", paint.Name, g.racers[g.winner].moves))
	case g.over:
		g.renderOverlay(dst, "Race over", "Nobody finished. R to race again")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderBoard(dst *core.Screen, l layout, w, h int) {
	for y := range h {
		for x := range w {
			l.put(dst, core.Pt(x, y), glyphGrid, core.ColorGray, false)
		}
	}

	g.renderZone(dst, l, g.track.Start, glyphStart, core.ColorGreen)
	g.renderZone(dst, l, g.track.Finish, glyphFinish, core.ColorYellow)

	if g.showWalls {
		for wall := range g.sess.Walls() {
			for _, p := range core.Line(wall.A, wall.B) {
				if inGrid(p, w, h) {
					l.put(dst, p, glyphWall, core.ColorRed, true)
				}
			}
		}
	}

	cars := g.sess.Cars()

	if g.cfg.Display.Trails {
		for id, r := range g.racers {
			color := core.PaintFor(cars[id].Color).Color
			for i := 1; i < len(r.trail); i++ {
				for _, p := range core.Line(r.trail[i-1], r.trail[i]) {
					if inGrid(p, w, h) {
						l.put(dst, p, glyphTrail, color, false)
					}
				}
			}
			for _, p := range r.trail {
				if inGrid(p, w, h) {
					l.put(dst, p, glyphVisited, color, false)
				}
			}
		}
	}

	if g.cfg.Display.VelocityHint && !g.over && g.current < len(cars) {
		car := cars[g.current]
		if !car.Crashed() {
			color := core.PaintFor(car.Color).Color
			next := car.Position.Add(car.Velocity)
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					p := next.Add(core.Vec{X: dx, Y: dy})
					if !inGrid(p, w, h) {
						continue
					}
					r := glyphTrail
					if dx == 0 && dy == 0 {
						r = glyphHint
					}
					l.put(dst, p, r, color, false)
				}
			}
		}
	}

	for _, car := range cars {
		if !inGrid(car.Position, w, h) {
			continue
		}
		if car.Crashed() {
			l.put(dst, car.Position, glyphCrashed, core.ColorGray, false)
			continue
		}
		l.put(dst, car.Position, rune('1'+car.ID), core.PaintFor(car.Color).Color, false)
	}
}

func (g *Game) renderZone(dst *core.Screen, l layout, zone *core.Rect, r rune, c core.Color) {
	if zone == nil {
		return
	}
	for y := zone.Y; y < zone.Bottom(); y++ {
		for x := zone.X; x < zone.Right(); x++ {
			l.put(dst, core.Pt(x, y), r, c, true)
		}
	}
}

func (g *Game) renderPanel(dst *core.Screen, l layout) {
	x := l.panelX
	y := l.offY

	dst.DrawTextColor(x, y, g.track.Name, core.ColorBrightYellow)
	y++
	dst.DrawHLine(x, y, panelWidth-1, '─')
	y++
	dst.DrawText(x, y, fmt.Sprintf("Turn %d", g.turns+1))
	y += 2

	for id, car := range g.sess.Cars() {
		r := g.racers[id]
		paint := core.PaintFor(car.Color)

		marker := "  "
		if id == g.current && !g.over {
			marker = "> "
		}
		dst.DrawTextColor(x, y, fmt.Sprintf("%sP%d %s", marker, id+1, paint.Name), paint.Color)
		y++

		var status string
		switch {
		case r.eliminated:
			status = "out"
		case r.waiting:
			secs := float64(r.respawnAt-min(r.respawnAt, g.tick)) / float64(g.tickRate())
			status = fmt.Sprintf("crashed %.1fs", secs)
		default:
			status = fmt.Sprintf("v(%d,%d)", car.Velocity.X, car.Velocity.Y)
		}
		dst.DrawText(x+4, y, status)
		y++
	}

	y++
	if g.turns > 0 {
		dst.DrawText(x, y, "Last: "+g.last.Kind.String())
	}

	help := []string{"arrows/1-9 steer", "5/space coast", "h walls  p pause", "r restart  q quit"}
	hy := dst.Height() - len(help)
	for i, line := range help {
		if hy+i > y {
			dst.DrawTextColor(x, hy+i, line, core.ColorGray)
		}
	}
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

func (g *Game) colorOf(id int) int {
	view, err := g.sess.Car(id)
	if err != nil {
		return 0
	}
	return view.Color
}

func inGrid(p core.Point, w, h int) bool {
	return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
}
