package donut

import "math"

// padding is the margin between the outer ring and the surface edge.
const padding = 20

// Geometry holds the radii and center of a chart, derived from a Config.
type Geometry struct {
	CenterX, CenterY float64
	Inner, Outer     float64
	// Cap is the radius of the rounded caps.
	Cap float64
}

// NewGeometry derives the chart geometry from cfg.
func NewGeometry(cfg Config) Geometry {
	inner := cfg.Size/2 - cfg.RingWidth - padding
	return Geometry{
		CenterX: cfg.Size / 2,
		CenterY: cfg.Size / 2,
		Inner:   inner,
		Outer:   inner + cfg.RingWidth,
		Cap:     cfg.CapSize,
	}
}

// capDistance is the distance of cap centers from the chart center.
func (g Geometry) capDistance() float64 { return g.Inner + g.Cap }

// MinSegmentAngle is the smallest angle a segment may occupy so that its
// caps fit: one and a half cap diameters along the cap circle.
func (g Geometry) MinSegmentAngle() float64 {
	return g.safeAngle(1.5 * 2 * g.Cap)
}

// MinStartAngle is the smallest span of segment 0 during the reveal.
func (g Geometry) MinStartAngle() float64 {
	return g.safeAngle(2 * g.Cap)
}

// CapTolerance is the angular half-width of a cap, used to widen segments
// for hit-testing.
func (g Geometry) CapTolerance() float64 {
	return g.safeAngle(g.Cap)
}

func (g Geometry) safeAngle(arc float64) float64 {
	d := g.capDistance()
	if !(d > 0) {
		return 0
	}
	return arc / d
}

// RoundPosition is the center of a cap at a boundary angle.
type RoundPosition struct {
	X, Y  float64
	Angle float64
}

// CapPosition returns the cap center for a boundary angle.
func (g Geometry) CapPosition(angle float64) RoundPosition {
	return g.Polar(angle, g.capDistance())
}

// Polar returns the point at distance r from the center along angle.
func (g Geometry) Polar(angle, r float64) RoundPosition {
	return RoundPosition{
		X:     g.CenterX + math.Cos(angle)*r,
		Y:     g.CenterY + math.Sin(angle)*r,
		Angle: angle,
	}
}
