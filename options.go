package donut

import (
	"time"

	"github.com/gogpu/gg"
)

// chartOptions holds optional collaborators for a Chart.
type chartOptions struct {
	scheduler Scheduler
	clock     func() time.Time
	loader    IconLoader
	onSelect  func(s Sector, index int)
	onDraw    func(pm *gg.Pixmap)
}

// ChartOption configures a Chart.
type ChartOption func(*chartOptions)

func defaultChartOptions() chartOptions {
	return chartOptions{
		clock:  time.Now,
		loader: &DefaultIconLoader{},
	}
}

// WithScheduler drives the chart from a host frame loop. Without one the
// host advances the chart by calling Frame itself, and icons are loaded
// with LoadIcons.
//
// Example:
//
//	loop := donut.NewLoop(60)
//	chart, err := donut.NewChart(sectors, cfg, donut.WithScheduler(loop))
//	go loop.Run(ctx)
func WithScheduler(s Scheduler) ChartOption {
	return func(o *chartOptions) {
		o.scheduler = s
	}
}

// WithClock sets the time source used by Reset and by frames started
// outside a scheduler callback.
func WithClock(now func() time.Time) ChartOption {
	return func(o *chartOptions) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithIconLoader replaces the default icon loader.
func WithIconLoader(l IconLoader) ChartOption {
	return func(o *chartOptions) {
		o.loader = l
	}
}

// WithOnSelect sets the callback fired when a click hits a segment.
func WithOnSelect(fn func(s Sector, index int)) ChartOption {
	return func(o *chartOptions) {
		o.onSelect = fn
	}
}

// WithDrawCallback sets a function called after every draw with the
// chart's pixmap, for hosts that present frames.
func WithDrawCallback(fn func(pm *gg.Pixmap)) ChartOption {
	return func(o *chartOptions) {
		o.onDraw = fn
	}
}
