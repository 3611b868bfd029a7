// Package detector simulates a parallel-beam detector over simple binary
// shapes by stepping along each ray and counting samples inside the shape.
// Coordinates are canvas pixels with the shape centered at the origin and
// y growing downwards.
package detector

import (
	"fmt"
)

// Shape is a binary object in the detector's field of view.
type Shape interface {
	// Name is the short label used to select the shape
	Name() string

	// Contains reports whether (x, y) is inside the shape
	Contains(x, y float64) bool
}

type shapeFunc struct {
	name     string
	contains func(x, y float64) bool
}

func (s shapeFunc) Name() string               { return s.name }
func (s shapeFunc) Contains(x, y float64) bool { return s.contains(x, y) }

// Shapes lists the available shapes in display order
var Shapes = []Shape{
	shapeFunc{"E", letterE},
	shapeFunc{"A", letterA},
	shapeFunc{"1", numberOne},
	shapeFunc{"O", ring},
	shapeFunc{"Square", square},
	shapeFunc{"Tri", triangle},
	shapeFunc{"Plus", plus},
}

// ShapeByName looks up one of Shapes
func ShapeByName(name string) (Shape, error) {
	for _, s := range Shapes {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown detector shape %q", name)
}

func inRect(x, y, left, top, right, bottom float64) bool {
	return x >= left && x <= right && y >= top && y <= bottom
}

// pointInTriangle uses barycentric coordinates
func pointInTriangle(px, py, ax, ay, bx, by, cx, cy float64) bool {
	v0x, v0y := cx-ax, cy-ay
	v1x, v1y := bx-ax, by-ay
	v2x, v2y := px-ax, py-ay

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	inv := 1 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * inv
	v := (dot00*dot12 - dot01*dot02) * inv
	return u >= 0 && v >= 0 && u+v <= 1
}

func letterE(x, y float64) bool {
	const w, h, gap = 120.0, 240.0, 40.0
	left, right := -w/2, w/2
	top, bottom := -h/2, h/2

	return inRect(x, y, left, top, right, top+gap) ||
		inRect(x, y, left, -gap/2, right, gap/2) ||
		inRect(x, y, left, bottom-gap, right, bottom) ||
		inRect(x, y, left, top, left+gap, bottom)
}

func letterA(x, y float64) bool {
	const w, h, stroke, crossH = 160.0, 240.0, 24.0, 30.0
	left, right := -w/2, w/2
	top, bottom := -h/2, h/2

	outer := pointInTriangle(x, y, left, bottom, 0, top, right, bottom)

	inset := stroke * 1.4
	inner := pointInTriangle(x, y, left+inset, bottom, 0, top+inset, right-inset, bottom)

	cross := inRect(x, y, left+w*0.25, -crossH/2, right-w*0.25, crossH/2)
	return (outer && !inner) || cross
}

func numberOne(x, y float64) bool {
	const w, h = 140.0, 240.0
	barW := w * 0.38
	baseH := w * 0.22
	capH := w * 0.18
	capW := w * 0.65
	left, right := -w/2, w/2
	top, bottom := -h/2, h/2

	return inRect(x, y, -barW/2, top+capH, barW/2, bottom) ||
		inRect(x, y, left, bottom-baseH, right, bottom) ||
		inRect(x, y, -capW/2, top, capW/2, top+capH)
}

func ring(x, y float64) bool {
	const outer, width = 110.0, 28.0
	d2 := x*x + y*y
	inner := outer - width
	return d2 <= outer*outer && d2 >= inner*inner
}

func square(x, y float64) bool {
	const half = 90.0
	return inRect(x, y, -half, -half, half, half)
}

func triangle(x, y float64) bool {
	const w, h = 200.0, 200.0
	return pointInTriangle(x, y, -w/2, h/2, 0, -h/2, w/2, h/2)
}

func plus(x, y float64) bool {
	const arm, thickness = 160.0, 50.0
	h := arm / 2
	t := thickness / 2
	return inRect(x, y, -t, -h, t, h) || inRect(x, y, -h, -t, h, t)
}
