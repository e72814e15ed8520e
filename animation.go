package donut

import (
	"time"
)

// Phase is the state of a chart's animation cycle.
type Phase int

const (
	// PhaseRevealing sweeps the segments open.
	PhaseRevealing Phase = iota
	// PhaseShadowSettling fades in shadows configured as after-animation.
	PhaseShadowSettling
	// PhaseIdle draws only on explicit changes.
	PhaseIdle
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRevealing:
		return "revealing"
	case PhaseShadowSettling:
		return "shadow-settling"
	case PhaseIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Progress is the set of animation values a frame is drawn with.
// Shadow values are already resolved against their modes.
type Progress struct {
	Reveal     float64
	MainShadow float64
	CapShadow  float64
	Icon       IconState
}

// IconState describes the entrance of icons and labels.
type IconState struct {
	Visible bool
	// Opacity is in [0, 1]. Scale and OffsetY may overshoot while a
	// bouncing entrance runs.
	Opacity float64
	Scale   float64
	OffsetY float64
	// Progress is the eased entrance progress, 1 when settled.
	Progress float64
}

// timeline is one eased channel. Its value is clamped to [0, 1] and never
// decreases; it completes when the raw time fraction reaches 1.
type timeline struct {
	start    time.Time
	duration time.Duration
	ease     EasingFunc
	value    float64
	done     bool
}

func newTimeline(start time.Time, d time.Duration, ease EasingFunc) timeline {
	return timeline{start: start, duration: d, ease: ease}
}

func (t *timeline) end() time.Time { return t.start.Add(t.duration) }

// fraction returns the raw time fraction at now, clamped to [0, 1].
func (t *timeline) fraction(now time.Time) float64 {
	if t.duration <= 0 {
		return 1
	}
	f := float64(now.Sub(t.start)) / float64(t.duration)
	return min(max(f, 0), 1)
}

func (t *timeline) advance(now time.Time) float64 {
	if t.done {
		return t.value
	}
	f := t.fraction(now)
	v := min(max(t.ease(f), 0), 1)
	if f >= 1 {
		v = 1
		t.done = true
	}
	t.value = max(t.value, v)
	return t.value
}

func (t *timeline) finish() {
	t.value = 1
	t.done = true
}

// animator drives the reveal, the two shadow channels and the icon
// entrance of one chart.
type animator struct {
	cfg Config

	phase      Phase
	reveal     timeline
	mainShadow timeline
	capShadow  timeline

	iconsVisible bool
	icon         timeline
	iconEase     EasingFunc
}

func newAnimator(cfg Config) *animator {
	a := &animator{}
	a.configure(cfg)
	return a
}

// configure applies cfg to future timelines. Running timelines keep their
// start time and pick up the new durations and easings.
func (a *animator) configure(cfg Config) {
	a.cfg = cfg
	a.reveal.duration = millis(cfg.MainRevealDuration)
	a.reveal.ease = Easing(cfg.RevealEasing)
	a.mainShadow.duration = millis(cfg.MainShadowDuration)
	a.mainShadow.ease = Easing(cfg.MainShadowEasing)
	a.capShadow.duration = millis(cfg.CapShadowDuration)
	a.capShadow.ease = Easing(cfg.CapShadowEasing)
	a.icon.duration = millis(cfg.IconAnimationDuration)
	a.iconEase = iconEasing(cfg.IconAnimationType)
	a.icon.ease = a.iconEase
}

// start begins a new cycle at now.
func (a *animator) start(now time.Time) {
	a.phase = PhaseRevealing
	a.reveal = newTimeline(now, a.reveal.duration, a.reveal.ease)
	a.mainShadow = timeline{duration: a.mainShadow.duration, ease: a.mainShadow.ease}
	a.capShadow = timeline{duration: a.capShadow.duration, ease: a.capShadow.ease}
	a.iconsVisible = false
	a.icon = timeline{duration: a.icon.duration, ease: a.iconEase}
	Logger().Debug("animation: phase changed", "phase", a.phase)
}

// settle jumps to the end of the cycle.
func (a *animator) settle() {
	a.reveal.finish()
	a.mainShadow.finish()
	a.capShadow.finish()
	a.iconsVisible = true
	a.icon.finish()
	a.phase = PhaseIdle
}

// enterSettling runs when the reveal completes at t. Times derive from the
// reveal end rather than the frame time so slow frames do not stretch the
// cycle.
func (a *animator) enterSettling(t time.Time) {
	a.iconsVisible = true
	a.icon = newTimeline(t.Add(millis(a.cfg.IconAnimationDelay)), a.icon.duration, a.iconEase)

	if a.cfg.MainShadowMode != ShadowAfterAnimation && a.cfg.CapShadowMode != ShadowAfterAnimation {
		a.phase = PhaseIdle
		Logger().Debug("animation: phase changed", "phase", a.phase)
		return
	}
	a.phase = PhaseShadowSettling
	a.mainShadow = newTimeline(t, a.mainShadow.duration, a.mainShadow.ease)
	a.capShadow = newTimeline(t, a.capShadow.duration, a.capShadow.ease)
	if a.cfg.MainShadowMode != ShadowAfterAnimation {
		a.mainShadow.finish()
	}
	if a.cfg.CapShadowMode != ShadowAfterAnimation {
		a.capShadow.finish()
	}
	Logger().Debug("animation: phase changed", "phase", a.phase)
}

// advance moves every channel to now and returns the frame values.
func (a *animator) advance(now time.Time) Progress {
	if a.phase == PhaseRevealing {
		a.reveal.advance(now)
		if a.reveal.done {
			a.enterSettling(a.reveal.end())
		}
	}
	if a.phase == PhaseShadowSettling {
		a.mainShadow.advance(now)
		a.capShadow.advance(now)
		if a.mainShadow.done && a.capShadow.done {
			a.phase = PhaseIdle
			Logger().Debug("animation: phase changed", "phase", a.phase)
		}
	}
	if a.iconsVisible && !a.icon.done {
		a.advanceIcon(now)
	}
	return a.progress()
}

// advanceIcon runs the entrance. Its eased value is kept unclamped so a
// bouncing scale can overshoot; it completes on the raw time fraction.
func (a *animator) advanceIcon(now time.Time) {
	if now.Before(a.icon.start) {
		return
	}
	f := a.icon.fraction(now)
	a.icon.value = a.iconEase(f)
	if f >= 1 {
		a.icon.finish()
	}
}

// active reports whether more frames are needed.
func (a *animator) active() bool {
	return a.phase != PhaseIdle || (a.iconsVisible && !a.icon.done)
}

// progress resolves the channels against the shadow modes.
func (a *animator) progress() Progress {
	reveal := a.reveal.value
	p := Progress{Reveal: reveal}

	switch a.cfg.MainShadowMode {
	case ShadowAlways:
		p.MainShadow = reveal
	case ShadowAfterAnimation:
		if a.reveal.done {
			p.MainShadow = a.mainShadow.value
		}
	}

	switch a.cfg.CapShadowMode {
	case ShadowAlways:
		p.CapShadow = reveal
	case ShadowAfterAnimation:
		if a.reveal.done {
			p.CapShadow = a.capShadow.value
		}
	}

	p.Icon = iconState(a.cfg.IconAnimationType, a.iconsVisible, a.icon.value)
	return p
}

// iconEasing returns the CSS timing of an entrance: ease-out, or the
// overshooting curve for bounce.
func iconEasing(kind IconAnimation) EasingFunc {
	if kind == IconBounce {
		return CubicBezier(0.68, -0.55, 0.265, 1.55)
	}
	return CubicBezier(0, 0, 0.58, 1)
}

// iconState maps the eased entrance value e to the visual properties.
func iconState(kind IconAnimation, visible bool, e float64) IconState {
	if !visible {
		e = 0
	}
	s := IconState{
		Visible:  visible,
		Opacity:  min(max(e, 0), 1),
		Scale:    1,
		Progress: e,
	}
	switch kind {
	case IconScale:
		s.Scale = 0.5 + 0.5*e
	case IconSlide:
		s.Scale = 0.8 + 0.2*e
		s.OffsetY = 20 * (1 - e)
	case IconBounce:
		s.Scale = 0.3 + 0.7*e
	}
	return s
}
