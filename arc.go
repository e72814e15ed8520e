package donut

import (
	"math"

	"github.com/gogpu/gg"
)

// arcTo appends a circular arc from angle a1 to a2 to the current path.
// Unlike gg.Context.DrawArc it honors the direction: a2 < a1 sweeps
// counterclockwise on screen. With move set the arc starts a new subpath,
// otherwise a line joins the current point to the arc start.
func arcTo(dc *gg.Context, cx, cy, r, a1, a2 float64, move bool) {
	x, y := cx+r*math.Cos(a1), cy+r*math.Sin(a1)
	if move {
		dc.MoveTo(x, y)
	} else {
		dc.LineTo(x, y)
	}

	sweep := a2 - a1
	if sweep == 0 {
		return
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	for i := range n {
		from := a1 + float64(i)*step
		arcPiece(dc, cx, cy, r, from, from+step)
	}
}

// arcPiece appends one cubic approximating the arc from a1 to a2, where
// |a2-a1| <= π/2. The current point must be the arc start.
func arcPiece(dc *gg.Context, cx, cy, r, a1, a2 float64) {
	d := a2 - a1
	t := math.Tan(d / 2)
	alpha := math.Sin(d) * (math.Sqrt(4+3*t*t) - 1) / 3

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2

	dc.CubicTo(
		x1-alpha*r*sin1, y1+alpha*r*cos1,
		x2+alpha*r*sin2, y2-alpha*r*cos2,
		x2, y2,
	)
}

// ringSegmentPath builds the body of a segment: the outer arc forward and
// the inner arc back.
func ringSegmentPath(dc *gg.Context, g Geometry, start, end float64) {
	arcTo(dc, g.CenterX, g.CenterY, g.Outer, start, end, true)
	arcTo(dc, g.CenterX, g.CenterY, g.Inner, end, start, false)
	dc.ClosePath()
}

// annulusPath builds the ring between the inner and outer radius as two
// circles of opposite winding.
func annulusPath(dc *gg.Context, g Geometry) {
	arcTo(dc, g.CenterX, g.CenterY, g.Outer, 0, fullTurn, true)
	dc.ClosePath()
	arcTo(dc, g.CenterX, g.CenterY, g.Inner, fullTurn, 0, true)
	dc.ClosePath()
}

// halfDiskPath builds the half disk bounded by the diameter through angle
// from, on the side reached by sweeping π in the sign of dir.
func halfDiskPath(dc *gg.Context, cx, cy, r, from, dir float64) {
	arcTo(dc, cx, cy, r, from, from+math.Copysign(math.Pi, dir), true)
	dc.ClosePath()
}
