package donut

import (
	"math"
	"testing"
	"time"
)

func newTestAnimator(modify func(*Config)) *animator {
	cfg := DefaultConfig()
	cfg.MainRevealDuration = 1000
	if modify != nil {
		modify(&cfg)
	}
	a := newAnimator(cfg)
	a.start(epoch)
	return a
}

func at(ms float64) time.Time { return epoch.Add(millis(ms)) }

func TestRevealMonotonic(t *testing.T) {
	for _, easing := range []string{"easeOutElastic", "easeOutBack", "easeInOutBounce", "linear"} {
		t.Run(easing, func(t *testing.T) {
			a := newTestAnimator(func(c *Config) { c.RevealEasing = easing })
			prev := 0.0
			for ms := 0.0; ms <= 1200; ms += 10 {
				p := a.advance(at(ms))
				if p.Reveal < prev {
					t.Fatalf("reveal decreased at %vms: %v < %v", ms, p.Reveal, prev)
				}
				if p.Reveal < 0 || p.Reveal > 1 {
					t.Fatalf("reveal out of range at %vms: %v", ms, p.Reveal)
				}
				prev = p.Reveal
			}
			if prev != 1 {
				t.Errorf("final reveal = %v, want 1", prev)
			}
		})
	}
}

func TestRevealCompletesOnTime(t *testing.T) {
	a := newTestAnimator(func(c *Config) { c.RevealEasing = "easeOutBack" })

	// easeOutBack passes 1 before the duration ends.
	p := a.advance(at(700))
	if p.Reveal != 1 {
		t.Errorf("reveal at 700ms = %v, want clamped to 1", p.Reveal)
	}
	if a.phase != PhaseRevealing {
		t.Errorf("phase at 700ms = %v, want revealing", a.phase)
	}
	if p.Icon.Visible {
		t.Error("icons visible before the reveal completed")
	}

	a.advance(at(1000))
	if a.phase == PhaseRevealing {
		t.Error("still revealing at the end of the duration")
	}
}

func TestPhasesWithAlwaysShadows(t *testing.T) {
	a := newTestAnimator(nil)

	p := a.advance(at(500))
	if p.MainShadow != p.Reveal || p.CapShadow != p.Reveal {
		t.Errorf("shadows %v/%v do not follow reveal %v", p.MainShadow, p.CapShadow, p.Reveal)
	}

	a.advance(at(1000))
	if a.phase != PhaseIdle {
		t.Errorf("phase = %v, want idle", a.phase)
	}
	if !a.active() {
		t.Error("animator inactive while the icon entrance runs")
	}

	p = a.advance(at(1300))
	if a.active() {
		t.Error("animator active after the icon entrance")
	}
	if p.Icon.Opacity != 1 || math.Abs(p.Icon.Scale-1) > 1e-12 {
		t.Errorf("settled icon = %+v", p.Icon)
	}
}

func TestMainShadowAfterAnimation(t *testing.T) {
	a := newTestAnimator(func(c *Config) {
		c.MainShadowMode = ShadowAfterAnimation
		c.MainShadowDuration = 1000
	})

	if p := a.advance(at(600)); p.MainShadow != 0 {
		t.Errorf("main shadow during reveal = %v, want 0", p.MainShadow)
	}
	if p := a.advance(at(1000)); p.MainShadow != 0 || a.phase != PhaseShadowSettling {
		t.Errorf("at reveal end: shadow %v phase %v, want 0 shadow-settling", p.MainShadow, a.phase)
	}
	p := a.advance(at(1500))
	if !(p.MainShadow > 0 && p.MainShadow < 1) {
		t.Errorf("main shadow halfway = %v, want in (0, 1)", p.MainShadow)
	}
	if p.CapShadow != 1 {
		t.Errorf("cap shadow = %v, want 1 after the reveal", p.CapShadow)
	}
	if p := a.advance(at(2000)); p.MainShadow != 1 || a.phase != PhaseIdle {
		t.Errorf("at settle end: shadow %v phase %v, want 1 idle", p.MainShadow, a.phase)
	}
}

func TestCapShadowAfterAnimation(t *testing.T) {
	a := newTestAnimator(func(c *Config) {
		c.CapShadowMode = ShadowAfterAnimation
		c.CapShadowDuration = 500
	})

	if p := a.advance(at(900)); p.CapShadow != 0 {
		t.Errorf("cap shadow during reveal = %v, want 0", p.CapShadow)
	}
	if p := a.advance(at(1500)); p.CapShadow != 1 || a.phase != PhaseIdle {
		t.Errorf("cap shadow = %v phase %v, want 1 idle", p.CapShadow, a.phase)
	}
}

func TestSlowFrameSettlesFromRevealEnd(t *testing.T) {
	a := newTestAnimator(func(c *Config) {
		c.MainShadowMode = ShadowAfterAnimation
		c.CapShadowMode = ShadowAfterAnimation
	})

	p := a.advance(at(10000))
	if a.phase != PhaseIdle || a.active() {
		t.Errorf("phase = %v active = %v, want idle and inactive", a.phase, a.active())
	}
	if p.Reveal != 1 || p.MainShadow != 1 || p.CapShadow != 1 {
		t.Errorf("progress = %+v, want all channels at 1", p)
	}
}

func TestShadowDisabled(t *testing.T) {
	a := newTestAnimator(func(c *Config) {
		c.MainShadowMode = ShadowDisabled
		c.CapShadowMode = ShadowDisabled
	})
	for _, ms := range []float64{0, 500, 1000, 3000} {
		p := a.advance(at(ms))
		if p.MainShadow != 0 || p.CapShadow != 0 {
			t.Errorf("at %vms shadows = %v/%v, want 0", ms, p.MainShadow, p.CapShadow)
		}
	}
}

func TestIconDelay(t *testing.T) {
	a := newTestAnimator(func(c *Config) {
		c.IconAnimationDelay = 200
		c.IconAnimationType = IconFade
	})

	p := a.advance(at(1100))
	if !p.Icon.Visible || p.Icon.Opacity != 0 {
		t.Errorf("icon during delay = %+v, want visible at opacity 0", p.Icon)
	}
	p = a.advance(at(1350))
	if !(p.Icon.Opacity > 0 && p.Icon.Opacity < 1) {
		t.Errorf("icon opacity mid-entrance = %v", p.Icon.Opacity)
	}
	p = a.advance(at(1500))
	if p.Icon.Opacity != 1 || a.active() {
		t.Errorf("icon after entrance = %+v active = %v", p.Icon, a.active())
	}
}

func TestIconBounceOvershoots(t *testing.T) {
	a := newTestAnimator(func(c *Config) { c.IconAnimationType = IconBounce })
	a.advance(at(1000))

	var peak float64
	for ms := 1000.0; ms <= 1300; ms += 5 {
		p := a.advance(at(ms))
		peak = math.Max(peak, p.Icon.Scale)
		if p.Icon.Opacity > 1 || p.Icon.Opacity < 0 {
			t.Fatalf("opacity out of range: %v", p.Icon.Opacity)
		}
	}
	if peak <= 1 {
		t.Errorf("bounce peak scale = %v, want above 1", peak)
	}
	if got := a.progress().Icon.Scale; math.Abs(got-1) > 1e-12 {
		t.Errorf("settled scale = %v, want 1", got)
	}
}

func TestIconState(t *testing.T) {
	tests := []struct {
		kind    IconAnimation
		scale   float64
		offsetY float64
	}{
		{IconFade, 1, 0},
		{IconScale, 0.5, 0},
		{IconSlide, 0.8, 20},
		{IconBounce, 0.3, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			start := iconState(tt.kind, true, 0)
			if start.Opacity != 0 || start.Scale != tt.scale || start.OffsetY != tt.offsetY {
				t.Errorf("start = %+v, want scale %v offset %v", start, tt.scale, tt.offsetY)
			}
			end := iconState(tt.kind, true, 1)
			if end.Opacity != 1 || math.Abs(end.Scale-1) > 1e-12 || end.OffsetY != 0 {
				t.Errorf("end = %+v, want opacity 1 scale 1 offset 0", end)
			}
			hidden := iconState(tt.kind, false, 1)
			if hidden.Visible || hidden.Opacity != 0 {
				t.Errorf("hidden = %+v", hidden)
			}
		})
	}
}

func TestSettle(t *testing.T) {
	a := newTestAnimator(func(c *Config) { c.MainShadowMode = ShadowAfterAnimation })
	a.advance(at(100))
	a.settle()

	p := a.progress()
	if p.Reveal != 1 || p.MainShadow != 1 || p.CapShadow != 1 || !p.Icon.Visible || p.Icon.Opacity != 1 {
		t.Errorf("settled progress = %+v", p)
	}
	if a.phase != PhaseIdle || a.active() {
		t.Errorf("phase = %v active = %v after settle", a.phase, a.active())
	}
}

func TestZeroDurations(t *testing.T) {
	a := newTestAnimator(func(c *Config) {
		c.MainRevealDuration = 0
		c.MainShadowDuration = 0
		c.CapShadowDuration = 0
		c.IconAnimationDuration = 0
		c.MainShadowMode = ShadowAfterAnimation
	})
	p := a.advance(epoch)
	if p.Reveal != 1 || p.MainShadow != 1 || a.active() {
		t.Errorf("progress = %+v active = %v, want settled in one frame", p, a.active())
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseRevealing:      "revealing",
		PhaseShadowSettling: "shadow-settling",
		PhaseIdle:           "idle",
		Phase(42):           "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}
