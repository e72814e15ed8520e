package donut

import "math"

// SegmentAt returns the index of the segment under the point (x, y), using
// the fully revealed partition of adjusted. Each segment is widened by the
// cap tolerance on both sides and the radial band by the cap radius, so a
// click on a rounded cap selects its segment. Where the widened first and
// last segments overlap at 12 o'clock, the last segment wins. The chart
// center has no angle and never hits, even when the caps reach it.
func SegmentAt(x, y float64, g Geometry, adjusted []AdjustedSector) (int, bool) {
	if len(adjusted) == 0 {
		return -1, false
	}
	dx, dy := x-g.CenterX, y-g.CenterY
	r := math.Hypot(dx, dy)
	if math.IsNaN(r) || r == 0 || r < g.Inner-g.Cap || r > g.Outer+g.Cap {
		return -1, false
	}

	angle := math.Atan2(dy, dx)
	if angle < startAngle {
		angle += fullTurn
	}

	tol := g.CapTolerance()
	last := len(adjusted) - 1
	lastStart := startAngle
	for _, a := range adjusted[:last] {
		lastStart += a.Angle
	}
	lastEnd := lastStart + adjusted[last].Angle
	inLast := func(a float64) bool {
		return a >= lastStart-tol && a < lastEnd+tol
	}

	start := startAngle
	for i, a := range adjusted {
		end := start + a.Angle
		if angle >= start-tol && angle < end+tol {
			if i == 0 && (inLast(angle) || inLast(angle+fullTurn)) {
				return last, true
			}
			return i, true
		}
		start = end
	}
	return -1, false
}
