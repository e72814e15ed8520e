package donut

import (
	"strconv"
)

// Anchor is an overlay position handed to the host: where to draw an icon
// or a label and how far its entrance has progressed.
type Anchor struct {
	Index   int
	X, Y    float64
	Angle   float64
	Text    string
	IconURL string

	Visible bool
	Opacity float64
	Scale   float64
	OffsetY float64
}

// IconAnchors returns one anchor per segment at the center of its end cap,
// using the fully revealed partition. Text is the fallback glyph.
func IconAnchors(g Geometry, adjusted []AdjustedSector, st IconState) []Anchor {
	out := make([]Anchor, 0, len(adjusted))
	angle := startAngle
	for i, a := range adjusted {
		angle += a.Angle
		pos := g.CapPosition(angle)
		out = append(out, newAnchor(i, pos, a.Name, a.IconURL, st))
	}
	return out
}

// LabelAnchors returns one anchor per segment at its mid-angle, distance
// from the chart center. It returns nil when labels are off.
func LabelAnchors(g Geometry, cfg Config, adjusted []AdjustedSector, st IconState) []Anchor {
	if !cfg.ShowLabels {
		return nil
	}
	var total float64
	for _, a := range adjusted {
		total += a.Value
	}

	out := make([]Anchor, 0, len(adjusted))
	angle := startAngle
	for i, a := range adjusted {
		mid := angle + a.Angle/2
		angle += a.Angle
		pos := g.Polar(mid, cfg.LabelDistance)
		out = append(out, newAnchor(i, pos, LabelText(cfg, a, i, total), "", st))
	}
	return out
}

func newAnchor(i int, pos RoundPosition, text, icon string, st IconState) Anchor {
	return Anchor{
		Index:   i,
		X:       pos.X,
		Y:       pos.Y,
		Angle:   pos.Angle,
		Text:    text,
		IconURL: icon,
		Visible: st.Visible,
		Opacity: st.Opacity,
		Scale:   st.Scale,
		OffsetY: st.OffsetY,
	}
}

// LabelText returns the label of sector i: its share of total with one
// decimal, its raw value, or the custom label when one is set.
func LabelText(cfg Config, a AdjustedSector, i int, total float64) string {
	switch cfg.LabelType {
	case LabelPercentage:
		if total <= 0 {
			return "0.0%"
		}
		return strconv.FormatFloat(a.Value/total*100, 'f', 1, 64) + "%"
	case LabelValue:
		return strconv.FormatFloat(a.Value, 'f', -1, 64)
	case LabelCustom:
		if i < len(cfg.CustomLabels) && cfg.CustomLabels[i] != "" {
			return cfg.CustomLabels[i]
		}
	}
	return a.Label
}
