// Package donut renders animated donut charts onto gg pixmaps.
//
// A chart turns a list of labeled values into ring segments with rounded
// caps. Small values are widened to a minimum angle so their caps fit, and
// all segments are rescaled to tile the full circle. Drawing is layered:
// start caps, ring bodies, cap shadows, the body shadow, cap shadows again,
// then end caps with their icons.
//
// # Quick Start
//
//	sectors := []donut.Sector{
//	    {Label: "Rent", Value: 50, Color: "#FE788B"},
//	    {Label: "Food", Value: 30, Color: "#76E1A1"},
//	    {Label: "Other", Value: 20, Color: "#4FC5DF"},
//	}
//	chart, err := donut.NewChart(sectors, donut.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	chart.Settle()
//	f, err := os.Create("chart.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	if err := png.Encode(f, chart.Image()); err != nil {
//	    log.Fatal(err)
//	}
//
// [Chart.Pixmap] exposes the raster itself, in gg's premultiplied layout.
// [Chart.Image] returns a straight-alpha copy ready for image encoders.
//
// # Animation
//
// A chart reveals its segments, then fades in the shadows configured as
// after-animation, then goes idle. Each channel has its own duration and
// easing. Hosts with their own frame clock call [Chart.Frame]; others pass
// a [Scheduler] such as [Loop] with [WithScheduler]. [Chart.Reset] starts
// the cycle over and discards callbacks scheduled before it.
//
// # Picking
//
// [Chart.Click] and [Chart.Hover] map a point to the segment drawn there,
// including its rounded caps. Where the first and last segments meet at
// 12 o'clock, the last one wins.
//
// # Overlays
//
// [Chart.IconAnchors] and [Chart.LabelAnchors] return positions and
// entrance state for hosts that draw icons and labels themselves.
package donut
