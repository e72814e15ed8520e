package donut

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/donut/internal/blend"
)

// Cursor is the pointer hint returned by Hover.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

// String returns the CSS cursor name.
func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

// Chart is an animated donut chart drawn on its own surface.
//
// A Chart is not safe for concurrent use. All methods, frame callbacks and
// posted icon deliveries run on the host's drawing goroutine.
type Chart struct {
	cfg      Config
	sectors  []Sector
	adjusted []AdjustedSector
	renderer *Renderer
	surface  *Surface
	anim     *animator
	opts     chartOptions

	// generation invalidates frame callbacks and icon deliveries that
	// were scheduled before the last Reset, SetSectors or Close.
	generation   uint64
	framePending bool
	closed       bool

	progress Progress
	segments []Segment

	// icons holds the decoded icons by sector index, before scaling.
	icons       map[int]image.Image
	cancelLoads context.CancelFunc
}

// NewChart validates the data and configuration, draws the first frame of
// the reveal and, when a scheduler is set, starts the animation and the
// icon loads.
func NewChart(sectors []Sector, cfg Config, opts ...ChartOption) (*Chart, error) {
	o := defaultChartOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}
	adjusted, err := Adjust(sectors, r.geom.MinSegmentAngle())
	if err != nil {
		return nil, err
	}

	c := &Chart{
		cfg:      cfg,
		sectors:  slices.Clone(sectors),
		adjusted: adjusted,
		renderer: r,
		surface:  newChartSurface(cfg),
		anim:     newAnimator(cfg),
		opts:     o,
		icons:    make(map[int]image.Image),
	}
	Logger().Info("donut: chart created", "sectors", len(sectors), "size", cfg.Size)
	c.restart()
	return c, nil
}

func newChartSurface(cfg Config) *Surface {
	n := int(math.Ceil(cfg.Size))
	return NewSurface(n, n)
}

// restart begins a new cycle: stale callbacks are invalidated, the reveal
// starts over and icons are loaded again.
func (c *Chart) restart() {
	c.invalidateCallbacks()
	now := c.opts.clock()
	c.anim.start(now)
	c.progress = c.anim.advance(now)
	c.draw()
	c.scheduleFrame()
	c.loadIconsAsync()
}

func (c *Chart) invalidateCallbacks() {
	c.generation++
	c.framePending = false
	if c.cancelLoads != nil {
		c.cancelLoads()
		c.cancelLoads = nil
	}
}

// Reset restarts the reveal animation from the beginning. Frame callbacks
// and icon loads started before the reset are discarded.
func (c *Chart) Reset() {
	if c.closed {
		return
	}
	Logger().Info("donut: chart reset", "generation", c.generation+1)
	c.restart()
}

// Frame advances the animation to now and redraws. It reports whether the
// animation needs more frames. Hosts without a Scheduler call it from
// their own frame clock.
func (c *Chart) Frame(now time.Time) bool {
	if c.closed {
		return false
	}
	c.progress = c.anim.advance(now)
	c.draw()
	return c.anim.active()
}

func (c *Chart) scheduleFrame() {
	s := c.opts.scheduler
	if s == nil || c.framePending || c.closed || !c.anim.active() {
		return
	}
	c.framePending = true
	gen := c.generation
	s.RequestFrame(func(now time.Time) {
		if c.closed || gen != c.generation {
			Logger().Debug("donut: stale frame dropped", "generation", gen)
			return
		}
		c.framePending = false
		if c.Frame(now) {
			c.scheduleFrame()
		}
	})
}

// Settle jumps to the end of the animation and redraws.
func (c *Chart) Settle() {
	if c.closed {
		return
	}
	c.anim.settle()
	c.progress = c.anim.progress()
	c.draw()
}

// Invalidate redraws the current frame.
func (c *Chart) Invalidate() {
	if c.closed {
		return
	}
	c.draw()
}

func (c *Chart) draw() {
	c.segments = appendSegments(c.segments[:0], c.adjusted, c.progress.Reveal, c.renderer.geom.MinStartAngle())
	c.renderer.Draw(c.surface, c.segments, c.progress)
	if c.opts.onDraw != nil && c.surface.valid() {
		c.opts.onDraw(c.surface.pixmap)
	}
}

// Update applies a new configuration and redraws. A running animation
// continues with the new durations and easings; an idle chart is drawn
// with the settled values of the new shadow modes. Use Reset to replay
// the reveal.
func (c *Chart) Update(cfg Config) error {
	if c.closed {
		return ErrClosed
	}
	r, err := NewRenderer(cfg)
	if err != nil {
		return err
	}
	adjusted, err := Adjust(c.sectors, r.geom.MinSegmentAngle())
	if err != nil {
		return err
	}

	if cfg.Size != c.cfg.Size {
		c.surface = newChartSurface(cfg)
	}
	c.cfg = cfg
	c.renderer = r
	c.adjusted = adjusted
	for i, img := range c.icons {
		r.SetIcon(i, img)
	}

	idle := c.anim.phase == PhaseIdle
	c.anim.configure(cfg)
	if idle {
		c.anim.settle()
	}
	c.progress = c.anim.progress()
	c.draw()
	c.scheduleFrame()
	return nil
}

// SetSectors replaces the chart data and redraws at the current progress.
// Icons are loaded again for the new data.
func (c *Chart) SetSectors(sectors []Sector) error {
	if c.closed {
		return ErrClosed
	}
	adjusted, err := Adjust(sectors, c.renderer.geom.MinSegmentAngle())
	if err != nil {
		return err
	}
	c.sectors = slices.Clone(sectors)
	c.adjusted = adjusted

	for i := range c.icons {
		c.renderer.SetIcon(i, nil)
	}
	clear(c.icons)

	c.invalidateCallbacks()
	c.draw()
	c.scheduleFrame()
	c.loadIconsAsync()
	return nil
}

// Close stops the animation and pending icon loads. Later calls draw
// nothing.
func (c *Chart) Close() error {
	if c.closed {
		return nil
	}
	c.invalidateCallbacks()
	c.closed = true
	return nil
}

// Click hit-tests the point and fires the select callback on a hit.
func (c *Chart) Click(x, y float64) (int, bool) {
	i, ok := c.SegmentAt(x, y)
	if ok && c.opts.onSelect != nil {
		c.opts.onSelect(c.sectors[i], i)
	}
	return i, ok
}

// Hover returns the cursor to show at the point.
func (c *Chart) Hover(x, y float64) Cursor {
	if c.cfg.CursorMode != CursorModePointer {
		return CursorDefault
	}
	if _, ok := c.SegmentAt(x, y); ok {
		return CursorPointer
	}
	return CursorDefault
}

// SegmentAt returns the index of the segment under the point.
func (c *Chart) SegmentAt(x, y float64) (int, bool) {
	if c.closed {
		return -1, false
	}
	return SegmentAt(x, y, c.renderer.geom, c.adjusted)
}

// loadIconsAsync starts one load per distinct icon URL. Results are posted
// back to the scheduler and applied only if the chart was not reset in
// the meantime.
func (c *Chart) loadIconsAsync() {
	s, l := c.opts.scheduler, c.opts.loader
	if s == nil || l == nil {
		return
	}
	urls := c.iconURLs()
	if len(urls) == 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelLoads = cancel
	gen := c.generation
	for url, indexes := range urls {
		go func() {
			img, err := l.LoadIcon(ctx, url)
			s.Post(func() {
				if c.closed || gen != c.generation {
					Logger().Debug("donut: stale icon load dropped", "url", url)
					return
				}
				if c.applyIcon(url, indexes, img, err) == nil && !c.anim.active() {
					c.draw()
				}
			})
		}()
	}
}

// LoadIcons loads every icon and waits for the results. Icons that fail
// keep their fallback glyph; the failures are returned joined.
func (c *Chart) LoadIcons(ctx context.Context) error {
	if c.closed {
		return ErrClosed
	}
	l := c.opts.loader
	if l == nil {
		return nil
	}

	type result struct {
		url     string
		indexes []int
		img     image.Image
		err     error
	}
	urls := c.iconURLs()
	results := make(chan result, len(urls))
	var wg sync.WaitGroup
	for url, indexes := range urls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := l.LoadIcon(ctx, url)
			results <- result{url, indexes, img, err}
		}()
	}
	wg.Wait()
	close(results)

	var errs []error
	for r := range results {
		if err := c.applyIcon(r.url, r.indexes, r.img, r.err); err != nil {
			errs = append(errs, err)
		}
	}
	c.draw()
	return errors.Join(errs...)
}

// applyIcon installs a loaded icon for the sectors using it. A failed load
// is logged and returned; those sectors keep the fallback glyph.
func (c *Chart) applyIcon(url string, indexes []int, img image.Image, err error) error {
	if err == nil && img == nil {
		err = errors.New("loader returned no image")
	}
	if err != nil {
		Logger().Warn("donut: icon load failed, using fallback glyph", "url", url, "err", err)
		return fmt.Errorf("icon %s: %w", url, err)
	}
	for _, i := range indexes {
		c.icons[i] = img
		c.renderer.SetIcon(i, img)
	}
	return nil
}

func (c *Chart) iconURLs() map[string][]int {
	urls := make(map[string][]int)
	for i, s := range c.sectors {
		if s.IconURL != "" {
			urls[s.IconURL] = append(urls[s.IconURL], i)
		}
	}
	return urls
}

// Config returns the current configuration.
func (c *Chart) Config() Config { return c.cfg }

// Sectors returns a copy of the chart data.
func (c *Chart) Sectors() []Sector { return slices.Clone(c.sectors) }

// Adjusted returns a copy of the normalized sectors.
func (c *Chart) Adjusted() []AdjustedSector { return slices.Clone(c.adjusted) }

// Geometry returns the chart geometry.
func (c *Chart) Geometry() Geometry { return c.renderer.geom }

// Segments returns the segments of the last drawn frame.
func (c *Chart) Segments() []Segment { return slices.Clone(c.segments) }

// Phase returns the animation phase.
func (c *Chart) Phase() Phase { return c.anim.phase }

// Progress returns the values the last frame was drawn with.
func (c *Chart) Progress() Progress { return c.progress }

// Active reports whether the animation still needs frames.
func (c *Chart) Active() bool { return !c.closed && c.anim.active() }

// IconAnchors returns the overlay positions of icons at the end caps.
func (c *Chart) IconAnchors() []Anchor {
	return IconAnchors(c.renderer.geom, c.adjusted, c.progress.Icon)
}

// LabelAnchors returns the overlay positions of segment labels.
func (c *Chart) LabelAnchors() []Anchor {
	return LabelAnchors(c.renderer.geom, c.cfg, c.adjusted, c.progress.Icon)
}

// Pixmap returns the chart's raster, in premultiplied RGBA. It is
// overwritten by every draw.
func (c *Chart) Pixmap() *gg.Pixmap { return c.surface.Pixmap() }

// Image returns a copy of the current raster with straight alpha.
func (c *Chart) Image() *image.NRGBA {
	return blend.ToNRGBA(c.surface.Pixmap())
}
