// Package track describes race track maps: walls, start and finish zones.
// It parses map files and feeds them into an engine session; the engine
// itself never sees the file format.
package track

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vovakirdan/racetrack/internal/core"
	"github.com/vovakirdan/racetrack/internal/engine"
)

// Default grid size in cells when a map does not set one.
const (
	DefaultWidth  = 32
	DefaultHeight = 24
)

// startSpacing is the gap in cells between cars on the start line.
const startSpacing = 2.0

// Track is a parsed map.
type Track struct {
	ID      string
	Name    string
	Width   int
	Height  int
	Walls   []core.Segment
	Start   *core.Rect // nil when the map has no START zone
	Finish  *core.Rect // nil when the map has no FINISH zone
	Image   string     // Background image path, informational
	Source  string     // File the map was read from, empty for built-ins
	Skipped int        // Malformed lines ignored while parsing
}

// Size returns the grid size, falling back to the defaults.
func (t Track) Size() (width, height int) {
	width, height = t.Width, t.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

// WallAdder receives wall segments. *engine.Session implements it.
type WallAdder interface {
	AddWall(x1, y1, x2, y2 int)
}

// Load feeds the track's walls into dst in file order.
func (t Track) Load(dst WallAdder) {
	for _, w := range t.Walls {
		dst.AddWall(w.A.X, w.A.Y, w.B.X, w.B.Y)
	}
}

// NewSession creates an engine session sized for the track with all walls
// loaded and no cars.
func (t Track) NewSession() (*engine.Session, error) {
	w, h := t.Size()
	sess, err := engine.NewSession(w, h)
	if err != nil {
		return nil, fmt.Errorf("track: %s: %w", t.ID, err)
	}
	t.Load(sess)
	return sess, nil
}

// Finished reports whether p lies inside the finish zone.
// A track without a finish zone can never be won.
func (t Track) Finished(p core.Point) bool {
	return t.Finish != nil && t.Finish.ContainsPoint(p)
}

// StartPositions returns count start cells for the track.
func (t Track) StartPositions(count int) []core.Point {
	return StartPositions(t.Start, count)
}

// StartPositions lines count cars up through the centre of the start zone,
// startSpacing cells apart along its longer axis (horizontal on a tie).
// Without a zone the cars line up around (2, 2) as if on a 4x4 zone.
// Fractional cells truncate toward zero.
func StartPositions(start *core.Rect, count int) []core.Point {
	if count <= 0 {
		return nil
	}

	cx, cy := 2.0, 2.0
	w, h := 4.0, 4.0
	if start != nil {
		w, h = float64(start.W), float64(start.H)
		cx = float64(start.X) + w/2
		cy = float64(start.Y) + h/2
	}
	horizontal := w >= h

	points := make([]core.Point, count)
	for i := range points {
		offset := (float64(i) - float64(count-1)/2) * startSpacing
		if horizontal {
			points[i] = core.Pt(int(cx+offset), int(cy))
		} else {
			points[i] = core.Pt(int(cx), int(cy+offset))
		}
	}
	return points
}

// nameFromID turns "track2" or "long_loop" into "Track 2" or "Long Loop".
func nameFromID(id string) string {
	var b strings.Builder
	prev := rune(0)
	for i, r := range id {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
			prev = ' '
			continue
		case unicode.IsDigit(r) && prev != 0 && !unicode.IsDigit(prev) && prev != ' ':
			b.WriteRune(' ')
		}
		if i == 0 || prev == ' ' {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
