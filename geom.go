package inkwell

import "math"

// Point is a location on the integer pixel grid. The origin is the top-left
// corner of the screen, with Y increasing downward.
type Point struct {
	X, Y int
}

// Pt returns the point (x, y).
func Pt(x, y int) Point {
	return Point{x, y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Rectangle is an axis-aligned region of the screen. Min is inclusive and Max
// is exclusive, so a rectangle of width 10 starting at x=0 ends at x=10 and is
// adjacent to (not overlapping) a rectangle starting at x=10.
type Rectangle struct {
	Min, Max Point
}

// Rect returns the rectangle with corners (x0, y0) and (x1, y1).
// The corners don't need to be in any particular order.
func Rect(x0, y0, x1, y1 int) Rectangle {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rectangle{Point{x0, y0}, Point{x1, y1}}
}

// RectFromSize returns the rectangle anchored at the origin with the given
// dimensions.
func RectFromSize(width, height int) Rectangle {
	return Rect(0, 0, width, height)
}

// Width returns the horizontal extent of r.
func (r Rectangle) Width() int {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent of r.
func (r Rectangle) Height() int {
	return r.Max.Y - r.Min.Y
}

// Empty reports whether r contains no pixels.
func (r Rectangle) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Center returns the middle point of r, rounded toward Min.
func (r Rectangle) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Includes reports whether the pixel at pt lies inside r.
func (r Rectangle) Includes(pt Point) bool {
	return r.Min.X <= pt.X && pt.X < r.Max.X &&
		r.Min.Y <= pt.Y && pt.Y < r.Max.Y
}

// Overlaps reports whether r and s share at least one pixel.
func (r Rectangle) Overlaps(s Rectangle) bool {
	return r.Min.X < s.Max.X && s.Min.X < r.Max.X &&
		r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

// Intersection returns the pixels shared by r and s. The boolean is false when
// they don't overlap.
func (r Rectangle) Intersection(s Rectangle) (Rectangle, bool) {
	if !r.Overlaps(s) {
		return Rectangle{}, false
	}
	return Rectangle{
		Min: Point{max(r.Min.X, s.Min.X), max(r.Min.Y, s.Min.Y)},
		Max: Point{min(r.Max.X, s.Max.X), min(r.Max.Y, s.Max.Y)},
	}, true
}

// Touches reports whether r and s are edge-adjacent: one starts exactly where
// the other ends along one axis and their extents along the other axis share
// a segment of positive length. Overlapping rectangles don't touch.
func (r Rectangle) Touches(s Rectangle) bool {
	if r.Min.X == s.Max.X || r.Max.X == s.Min.X {
		if r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y {
			return true
		}
	}
	if r.Min.Y == s.Max.Y || r.Max.Y == s.Min.Y {
		if r.Min.X < s.Max.X && s.Min.X < r.Max.X {
			return true
		}
	}
	return false
}

// Contains reports whether s lies entirely inside r.
func (r Rectangle) Contains(s Rectangle) bool {
	return r.Min.X <= s.Min.X && s.Max.X <= r.Max.X &&
		r.Min.Y <= s.Min.Y && s.Max.Y <= r.Max.Y
}

// Absorb grows r to the smallest rectangle containing both r and s.
func (r *Rectangle) Absorb(s Rectangle) {
	r.Min.X = min(r.Min.X, s.Min.X)
	r.Min.Y = min(r.Min.Y, s.Min.Y)
	r.Max.X = max(r.Max.X, s.Max.X)
	r.Max.Y = max(r.Max.Y, s.Max.Y)
}

// Union returns the smallest rectangle containing both r and s.
func (r Rectangle) Union(s Rectangle) Rectangle {
	r.Absorb(s)
	return r
}

// Translate returns r moved by p.
func (r Rectangle) Translate(p Point) Rectangle {
	return Rectangle{r.Min.Add(p), r.Max.Add(p)}
}

// Inset returns r shrunk by n pixels on every side. The result collapses to
// its center line when r is too small.
func (r Rectangle) Inset(n int) Rectangle {
	if r.Width() < 2*n {
		r.Min.X = (r.Min.X + r.Max.X) / 2
		r.Max.X = r.Min.X
	} else {
		r.Min.X += n
		r.Max.X -= n
	}
	if r.Height() < 2*n {
		r.Min.Y = (r.Min.Y + r.Max.Y) / 2
		r.Max.Y = r.Min.Y
	} else {
		r.Min.Y += n
		r.Max.Y -= n
	}
	return r
}

// Dir is a swipe direction.
type Dir uint8

const (
	DirNorth Dir = iota
	DirEast
	DirSouth
	DirWest
)

func (d Dir) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirEast:
		return "east"
	case DirSouth:
		return "south"
	case DirWest:
		return "west"
	default:
		return "unknown"
	}
}

// Gray levels used by the widgets. The panel is 8-bit grayscale.
const (
	Black     uint8 = 0x00
	Gray08    uint8 = 0x80
	Gray12    uint8 = 0xc0
	Separator uint8 = 0xaa
	White     uint8 = 0xff
)
