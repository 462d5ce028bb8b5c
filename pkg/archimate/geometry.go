package archimate

import (
	"strconv"

	"github.com/matzehuels/archispec/pkg/xmltree"
)

// Rect is a diagram node's bounding box.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether o lies within r, allowing one unit of tolerance
// on every edge for rounding in exported coordinates.
func (r Rect) Contains(o Rect) bool {
	return o.X+1 > r.X &&
		o.Y+1 > r.Y &&
		o.X+o.W < r.X+r.W+1 &&
		o.Y+o.H < r.Y+r.H+1
}

// boundsOf reads x/y/w/h from n (3.x) or from its bounds child (2.x).
func boundsOf(n *xmltree.Node) (Rect, bool) {
	src := n
	if !n.HasAttr("x") {
		src = n.Child("bounds")
	}
	if src == nil {
		return Rect{}, false
	}
	var r Rect
	for _, f := range []struct {
		name string
		dst  *float64
	}{{"x", &r.X}, {"y", &r.Y}, {"w", &r.W}, {"h", &r.H}} {
		v, err := strconv.ParseFloat(src.Attr(f.name), 64)
		if err != nil {
			return Rect{}, false
		}
		*f.dst = v
	}
	return r, true
}
