// Package core provides fundamental types and utilities for the racetrack.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Point is an integer grid-cell coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the point displaced by v.
func (p Point) Add(v Vec) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from o to p.
func (p Point) Sub(o Point) Vec {
	return Vec{X: p.X - o.X, Y: p.Y - o.Y}
}

// Vec is an integer displacement in grid cells (velocity, acceleration).
type Vec struct {
	X, Y int
}

// Add returns the component-wise sum.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Segment is a closed line segment between two grid points.
type Segment struct {
	A, B Point
}

// Seg creates a segment from its endpoint coordinates.
func Seg(x1, y1, x2, y2 int) Segment {
	return Segment{A: Point{x1, y1}, B: Point{x2, y2}}
}

// Intersects reports whether two closed segments share at least one point.
func (s Segment) Intersects(o Segment) bool {
	return SegmentsIntersect(s.A, s.B, o.A, o.B)
}

// Contains reports whether p lies on the closed segment.
func (s Segment) Contains(p Point) bool {
	return orientation(s.A, s.B, p) == 0 && inBox(p, s.A, s.B)
}

// SegmentsIntersect reports whether closed segments a1-a2 and b1-b2 intersect.
// Touching endpoints and collinear overlap count as intersections; a
// zero-length segment behaves as a single point. Arithmetic is exact.
func SegmentsIntersect(a1, a2, b1, b2 Point) bool {
	o1 := orientation(a1, a2, b1)
	o2 := orientation(a1, a2, b2)
	o3 := orientation(b1, b2, a1)
	o4 := orientation(b1, b2, a2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear special cases: an endpoint lying on the other segment
	if o1 == 0 && inBox(b1, a1, a2) {
		return true
	}
	if o2 == 0 && inBox(b2, a1, a2) {
		return true
	}
	if o3 == 0 && inBox(a1, b1, b2) {
		return true
	}
	if o4 == 0 && inBox(a2, b1, b2) {
		return true
	}
	return false
}

// orientation returns the turn direction of p->q->r:
// 0 collinear, 1 clockwise, -1 counter-clockwise.
// Cross products are taken in int64 so grid-sized inputs cannot overflow.
func orientation(p, q, r Point) int {
	val := int64(q.Y-p.Y)*int64(r.X-q.X) - int64(q.X-p.X)*int64(r.Y-q.Y)
	switch {
	case val > 0:
		return 1
	case val < 0:
		return -1
	default:
		return 0
	}
}

// inBox reports whether p lies inside the bounding box of a and b.
func inBox(p, a, b Point) bool {
	return p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X) &&
		p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y)
}

// Line returns the grid cells covered by the segment a-b, from a to b,
// using Bresenham's algorithm. Used for drawing walls and trails.
func Line(a, b Point) []Point {
	dx := Abs(b.X - a.X)
	dy := -Abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	cells := make([]Point, 0, max(dx, -dy)+1)
	x, y := a.X, a.Y
	e := dx + dy
	for {
		cells = append(cells, Point{x, y})
		if x == b.X && y == b.Y {
			return cells
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// Rect represents an axis-aligned zone in grid cells (start and finish areas).
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsPoint is Contains for a Point.
func (r Rect) ContainsPoint(p Point) bool {
	return r.Contains(p.X, p.Y)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
