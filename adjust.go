package donut

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
)

// startAngle is 12 o'clock; angles grow clockwise on a y-down surface.
const startAngle = -math.Pi / 2

const fullTurn = 2 * math.Pi

// Sector is one labeled input slice of the chart.
type Sector struct {
	Label string  `toml:"label" yaml:"label" json:"label"`
	Value float64 `toml:"value" yaml:"value" json:"value"`
	// Color is "#RRGGBB" or "#RGB".
	Color   string `toml:"color" yaml:"color" json:"color"`
	IconURL string `toml:"icon_url,omitempty" yaml:"icon_url,omitempty" json:"iconUrl,omitempty"`
}

// AdjustedSector is a sector with its normalized angular share.
type AdjustedSector struct {
	Label string
	// Name is the first user-perceived character of Label.
	Name    string
	Color   gg.RGBA
	Value   float64
	Percent float64
	// Angle is the span in radians. All angles of a chart sum to 2π.
	Angle   float64
	IconURL string
}

// Segment is an adjusted sector positioned for one frame.
type Segment struct {
	AdjustedSector
	StartAngle, EndAngle float64
}

// Adjust converts sectors into angular shares that tile the full circle.
// Every share is first raised to minAngle, then all shares are scaled so
// they sum to exactly 2π.
func Adjust(sectors []Sector, minAngle float64) ([]AdjustedSector, error) {
	if len(sectors) == 0 {
		return nil, ErrNoSectors
	}

	var total float64
	for i, s := range sectors {
		if !(s.Value > 0) || math.IsInf(s.Value, 0) {
			return nil, fmt.Errorf("%w: sector %d (%q): %v", ErrInvalidValue, i, s.Label, s.Value)
		}
		total += s.Value
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: total %v", ErrZeroTotal, total)
	}
	if !(minAngle > 0) {
		minAngle = 0
	}

	out := make([]AdjustedSector, len(sectors))
	var sum float64
	for i, s := range sectors {
		c, err := ParseColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("sector %d (%q): %w", i, s.Label, err)
		}
		percent := s.Value / total * 100
		angle := max(percent/100*fullTurn, minAngle)
		out[i] = AdjustedSector{
			Label:   s.Label,
			Name:    firstGrapheme(s.Label),
			Color:   c,
			Value:   s.Value,
			Percent: percent,
			Angle:   angle,
			IconURL: s.IconURL,
		}
		sum += angle
	}

	scale := fullTurn / sum
	for i := range out {
		out[i].Angle *= scale
	}
	return out, nil
}

// Segments positions adjusted sectors for a reveal progress in [0, 1].
// Every span is scaled by progress except the first, which never shrinks
// below minStart so its start cap stays visible.
func Segments(adjusted []AdjustedSector, progress, minStart float64) []Segment {
	return appendSegments(nil, adjusted, progress, minStart)
}

func appendSegments(dst []Segment, adjusted []AdjustedSector, progress, minStart float64) []Segment {
	progress = min(max(progress, 0), 1)
	angle := startAngle
	for i, a := range adjusted {
		span := a.Angle * progress
		if i == 0 {
			span = max(minStart, span)
		}
		dst = append(dst, Segment{
			AdjustedSector: a,
			StartAngle:     angle,
			EndAngle:       angle + span,
		})
		angle += span
	}
	return dst
}
