package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/gogpu/donut"
)

func previewCommand() *cobra.Command {
	var (
		chartPath string
		fps       int
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview a chart in the terminal",
		Long: "Preview draws the chart with half-block characters and runs its animation. " +
			"Click a segment to select it, press r to replay the animation and q or Esc to quit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadChartFile(chartPath)
			if err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()
			screen.EnableMouse()

			p, err := newPreview(screen, f, fps)
			if err != nil {
				return err
			}
			defer p.chart.Close()
			p.run()
			return nil
		},
	}
	cmd.Flags().StringVarP(&chartPath, "config", "c", "", "chart file (.toml, .yaml, .yml or .json); the demo chart when empty")
	cmd.Flags().IntVar(&fps, "fps", 60, "frame rate of the preview")
	return cmd
}

// preview shows a chart on a terminal screen. Each cell holds two
// vertically stacked pixels drawn with an upper half block.
type preview struct {
	screen   tcell.Screen
	chart    *donut.Chart
	loop     *donut.Loop
	interval time.Duration

	dirty    bool
	pressed  bool
	cursor   donut.Cursor
	selected string
}

func newPreview(screen tcell.Screen, f chartFile, fps int) (*preview, error) {
	if fps <= 0 {
		fps = 60
	}
	p := &preview{
		screen:   screen,
		loop:     donut.NewLoop(fps),
		interval: time.Second / time.Duration(fps),
	}
	chart, err := donut.NewChart(f.Sectors, f.Config,
		donut.WithScheduler(p.loop),
		donut.WithDrawCallback(func(*gg.Pixmap) { p.dirty = true }),
		donut.WithOnSelect(func(s donut.Sector, i int) {
			p.selected = fmt.Sprintf("#%d %s: %v", i, s.Label, s.Value)
		}),
	)
	if err != nil {
		return nil, err
	}
	p.chart = chart
	return p, nil
}

// run is the preview's frame loop: terminal events and frame ticks are
// handled on this goroutine, which is also the chart's drawing goroutine.
func (p *preview) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	p.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !p.handle(ev) {
				return
			}
		case now := <-ticker.C:
			p.loop.RunFrame(now)
			if p.dirty {
				p.draw()
			}
		}
	}
}

// handle processes one terminal event. It returns false to quit.
func (p *preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			p.selected = ""
			p.chart.Reset()
		}
	case *tcell.EventMouse:
		x, y := p.toChart(ev.Position())
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !p.pressed {
			if _, ok := p.chart.Click(x, y); !ok {
				p.selected = ""
			}
		}
		p.pressed = down
		p.cursor = p.chart.Hover(x, y)
		p.dirty = true
	case *tcell.EventResize:
		p.screen.Sync()
		p.dirty = true
	}
	if p.dirty {
		p.draw()
	}
	return true
}

// scale returns the number of chart pixels per half cell, fitting the
// chart into the screen above the status line.
func (p *preview) scale() float64 {
	pm := p.chart.Pixmap()
	w, h := p.screen.Size()
	fit := math.Min(float64(w), float64(2*(h-1)))
	if fit <= 0 || pm == nil {
		return 1
	}
	return float64(pm.Width()) / fit
}

// toChart maps a terminal cell to the chart pixel at its center.
func (p *preview) toChart(col, row int) (float64, float64) {
	s := p.scale()
	return (float64(col) + 0.5) * s, (float64(2*row) + 1) * s
}

func (p *preview) draw() {
	p.dirty = false
	p.screen.Clear()
	pm := p.chart.Pixmap()
	if pm == nil {
		p.screen.Show()
		return
	}

	w, h := p.screen.Size()
	s := p.scale()
	cols := min(w, int(float64(pm.Width())/s))
	rows := min(h-1, int(float64(pm.Height())/s/2))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := int((float64(col) + 0.5) * s)
			top := pixelColor(pm, x, int((float64(2*row)+0.5)*s))
			bottom := pixelColor(pm, x, int((float64(2*row)+1.5)*s))
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			p.screen.SetContent(col, row, '▀', nil, style)
		}
	}

	status := fmt.Sprintf(" %s | cursor: %s | r: replay  q: quit", p.chart.Phase(), p.cursor)
	if p.selected != "" {
		status += " | selected " + p.selected
	}
	p.drawText(0, h-1, status)
	p.screen.Show()
}

func (p *preview) drawText(x, y int, text string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for _, r := range text {
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// pixelColor returns the pixel over a black terminal background, which
// is its premultiplied color.
func pixelColor(pm *gg.Pixmap, x, y int) tcell.Color {
	if x < 0 || y < 0 || x >= pm.Width() || y >= pm.Height() {
		return tcell.ColorBlack
	}
	i := (y*pm.Width() + x) * 4
	d := pm.Data()
	return tcell.NewRGBColor(int32(d[i]), int32(d[i+1]), int32(d[i+2]))
}
