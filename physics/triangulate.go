package physics

import (
	"errors"
	"math"

	"github.com/milk9111/gustfall/ecs/component"
	"gonum.org/v1/gonum/spatial/r2"
)

var ErrDegeneratePolygon = errors.New("physics: degenerate polygon")

const triangulateEpsilon = 1e-9

// SignedArea is positive for counter-clockwise winding.
func SignedArea(points []r2.Vec) float64 {
	area := 0.0
	for i := range points {
		j := (i + 1) % len(points)
		area += r2.Cross(points[i], points[j])
	}
	return area / 2
}

// Triangulate splits a simple polygon into triangles by ear clipping. Each
// triangle indexes points in counter-clockwise order.
func Triangulate(points []r2.Vec) ([][3]int, error) {
	n := len(points)
	if n < 3 {
		return nil, ErrDegeneratePolygon
	}
	if math.Abs(SignedArea(points)) < triangulateEpsilon {
		return nil, ErrDegeneratePolygon
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if SignedArea(points) < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	tris := make([][3]int, 0, n-2)
	for guard := 0; len(idx) > 3; guard++ {
		if guard > n*n {
			return nil, ErrDegeneratePolygon
		}
		clipped := false
		for i := range idx {
			prev := idx[(i+len(idx)-1)%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			if !isEar(points, idx, prev, cur, next) {
				continue
			}
			tris = append(tris, [3]int{prev, cur, next})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, ErrDegeneratePolygon
		}
	}
	a, b, c := points[idx[0]], points[idx[1]], points[idx[2]]
	if r2.Cross(r2.Sub(b, a), r2.Sub(c, b)) > triangulateEpsilon {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	if len(tris) == 0 {
		return nil, ErrDegeneratePolygon
	}
	return tris, nil
}

func isEar(points []r2.Vec, idx []int, prev, cur, next int) bool {
	a, b, c := points[prev], points[cur], points[next]
	if r2.Cross(r2.Sub(b, a), r2.Sub(c, b)) <= triangulateEpsilon {
		return false
	}
	for _, k := range idx {
		if k == prev || k == cur || k == next {
			continue
		}
		if pointInTriangle(points[k], a, b, c) {
			return false
		}
	}
	return true
}

func pointInTriangle(p, a, b, c r2.Vec) bool {
	d1 := r2.Cross(r2.Sub(b, a), r2.Sub(p, a))
	d2 := r2.Cross(r2.Sub(c, b), r2.Sub(p, b))
	d3 := r2.Cross(r2.Sub(a, c), r2.Sub(p, c))
	return d1 >= 0 && d2 >= 0 && d3 >= 0
}

// Bounds returns the tight box around points.
func Bounds(points []r2.Vec) component.LocalBounds {
	if len(points) == 0 {
		return component.LocalBounds{}
	}
	b := component.LocalBounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}
