package donut

import (
	"fmt"
	"math"
	"time"
)

// ShadowMode selects how a shadow channel animates.
type ShadowMode string

const (
	// ShadowAlways ties the shadow to the reveal progress.
	ShadowAlways ShadowMode = "always"
	// ShadowAfterAnimation holds the shadow at 0 until the reveal completes,
	// then fades it in on its own timeline.
	ShadowAfterAnimation ShadowMode = "after-animation"
	// ShadowDisabled never draws the shadow.
	ShadowDisabled ShadowMode = "disabled"
)

func (m ShadowMode) valid() bool {
	return m == ShadowAlways || m == ShadowAfterAnimation || m == ShadowDisabled
}

// CursorMode selects whether Hover reports a pointer cursor over segments.
type CursorMode string

const (
	CursorModePointer CursorMode = "pointer"
	CursorModeNone    CursorMode = "none"
)

// IconAnimation is the shape of the icon and label entrance.
type IconAnimation string

const (
	IconFade   IconAnimation = "fade"
	IconScale  IconAnimation = "scale"
	IconSlide  IconAnimation = "slide"
	IconBounce IconAnimation = "bounce"
)

func (a IconAnimation) valid() bool {
	return a == IconFade || a == IconScale || a == IconSlide || a == IconBounce
}

// LabelType selects the text of segment labels.
type LabelType string

const (
	LabelPercentage LabelType = "percentage"
	LabelValue      LabelType = "value"
	LabelCustom     LabelType = "custom"
)

func (t LabelType) valid() bool {
	return t == LabelPercentage || t == LabelValue || t == LabelCustom
}

// Config holds the visual and animation parameters of a chart.
//
// Lengths are in pixels and durations in milliseconds. Start from
// DefaultConfig and override fields; the zero Config is not valid.
type Config struct {
	// Size is the width and height of the square surface.
	Size float64 `toml:"size" yaml:"size" json:"size"`
	// RingWidth is the distance between the inner and outer radius.
	RingWidth float64 `toml:"ring_width" yaml:"ring_width" json:"ringWidth"`
	// CapSize is the radius of the rounded caps.
	CapSize float64 `toml:"cap_size" yaml:"cap_size" json:"capSize"`

	ShadowBlur   float64 `toml:"shadow_blur" yaml:"shadow_blur" json:"shadowBlur"`
	ShadowOffset float64 `toml:"shadow_offset" yaml:"shadow_offset" json:"shadowOffset"`

	CapShadowBlur  float64 `toml:"cap_shadow_blur" yaml:"cap_shadow_blur" json:"capShadowBlur"`
	CapShadowColor string  `toml:"cap_shadow_color" yaml:"cap_shadow_color" json:"capShadowColor"`
	// CapShadowOpacity is a percentage; values outside [0, 100] are clamped.
	CapShadowOpacity  float64    `toml:"cap_shadow_opacity" yaml:"cap_shadow_opacity" json:"capShadowOpacity"`
	CapShadowOffset   float64    `toml:"cap_shadow_offset" yaml:"cap_shadow_offset" json:"capShadowOffset"`
	CapShadowMode     ShadowMode `toml:"cap_shadow_mode" yaml:"cap_shadow_mode" json:"capShadowMode"`
	CapShadowDuration float64    `toml:"cap_shadow_duration" yaml:"cap_shadow_duration" json:"capShadowDuration"`

	MainShadowMode     ShadowMode `toml:"main_shadow_mode" yaml:"main_shadow_mode" json:"mainShadowMode"`
	MainShadowDuration float64    `toml:"main_shadow_duration" yaml:"main_shadow_duration" json:"mainShadowDuration"`
	MainRevealDuration float64    `toml:"main_reveal_duration" yaml:"main_reveal_duration" json:"mainRevealDuration"`

	// Easing names are looked up in the easing table. Empty means linear.
	RevealEasing     string `toml:"reveal_easing" yaml:"reveal_easing" json:"revealEasing"`
	MainShadowEasing string `toml:"main_shadow_easing" yaml:"main_shadow_easing" json:"mainShadowEasing"`
	CapShadowEasing  string `toml:"cap_shadow_easing" yaml:"cap_shadow_easing" json:"capShadowEasing"`

	CursorMode CursorMode `toml:"cursor_mode" yaml:"cursor_mode" json:"cursorMode"`

	IconAnimationType     IconAnimation `toml:"icon_animation_type" yaml:"icon_animation_type" json:"iconAnimationType"`
	IconAnimationDelay    float64       `toml:"icon_animation_delay" yaml:"icon_animation_delay" json:"iconAnimationDelay"`
	IconAnimationDuration float64       `toml:"icon_animation_duration" yaml:"icon_animation_duration" json:"iconAnimationDuration"`
	IconSize              float64       `toml:"icon_size" yaml:"icon_size" json:"iconSize"`

	ShowLabels    bool      `toml:"show_labels" yaml:"show_labels" json:"showLabels"`
	LabelType     LabelType `toml:"label_type" yaml:"label_type" json:"labelType"`
	LabelDistance float64   `toml:"label_distance" yaml:"label_distance" json:"labelDistance"`
	CustomLabels  []string  `toml:"custom_labels" yaml:"custom_labels" json:"customLabels"`

	// DrawGlyphs draws icons and fallback glyphs on the raster. Hosts that
	// render IconAnchors as overlays turn it off.
	DrawGlyphs bool `toml:"draw_glyphs" yaml:"draw_glyphs" json:"drawGlyphs"`
}

// DefaultConfig returns the configuration of the stock chart.
func DefaultConfig() Config {
	return Config{
		Size:      400,
		RingWidth: 40,
		CapSize:   20,

		ShadowBlur:   8,
		ShadowOffset: 8,

		CapShadowBlur:     4,
		CapShadowColor:    "#000000",
		CapShadowOpacity:  20,
		CapShadowOffset:   2,
		CapShadowMode:     ShadowAlways,
		CapShadowDuration: 500,

		MainShadowMode:     ShadowAlways,
		MainShadowDuration: 1200,
		MainRevealDuration: 1200,

		RevealEasing:     "easeOutCubic",
		MainShadowEasing: "easeOutCubic",
		CapShadowEasing:  "easeOutCubic",

		CursorMode: CursorModePointer,

		IconAnimationType:     IconScale,
		IconAnimationDelay:    0,
		IconAnimationDuration: 300,
		IconSize:              20,

		ShowLabels:    true,
		LabelType:     LabelPercentage,
		LabelDistance: 210,

		DrawGlyphs: true,
	}
}

// Validate reports the first problem with c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"ring_width", c.RingWidth},
		{"cap_size", c.CapSize},
		{"shadow_blur", c.ShadowBlur},
		{"shadow_offset", c.ShadowOffset},
		{"cap_shadow_blur", c.CapShadowBlur},
		{"cap_shadow_offset", c.CapShadowOffset},
		{"cap_shadow_duration", c.CapShadowDuration},
		{"main_shadow_duration", c.MainShadowDuration},
		{"main_reveal_duration", c.MainRevealDuration},
		{"icon_animation_delay", c.IconAnimationDelay},
		{"icon_animation_duration", c.IconAnimationDuration},
		{"icon_size", c.IconSize},
		{"label_distance", c.LabelDistance},
	}
	if !(c.Size > 0) || math.IsInf(c.Size, 0) {
		return fmt.Errorf("%w: size must be positive, got %v", ErrInvalidConfig, c.Size)
	}
	for _, f := range nonNegative {
		if !(f.v >= 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidConfig, f.name, f.v)
		}
	}
	if math.IsNaN(c.CapShadowOpacity) {
		return fmt.Errorf("%w: cap_shadow_opacity is NaN", ErrInvalidConfig)
	}
	if g := NewGeometry(c); !(g.Inner > 0) {
		return fmt.Errorf("%w: ring does not fit (inner radius %v)", ErrInvalidConfig, g.Inner)
	}
	if _, err := ParseColor(c.CapShadowColor); err != nil {
		return fmt.Errorf("%w: cap_shadow_color: %w", ErrInvalidConfig, err)
	}
	if !c.CapShadowMode.valid() {
		return fmt.Errorf("%w: unknown cap_shadow_mode %q", ErrInvalidConfig, c.CapShadowMode)
	}
	if !c.MainShadowMode.valid() {
		return fmt.Errorf("%w: unknown main_shadow_mode %q", ErrInvalidConfig, c.MainShadowMode)
	}
	if c.CursorMode != CursorModePointer && c.CursorMode != CursorModeNone {
		return fmt.Errorf("%w: unknown cursor_mode %q", ErrInvalidConfig, c.CursorMode)
	}
	if !c.IconAnimationType.valid() {
		return fmt.Errorf("%w: unknown icon_animation_type %q", ErrInvalidConfig, c.IconAnimationType)
	}
	if !c.LabelType.valid() {
		return fmt.Errorf("%w: unknown label_type %q", ErrInvalidConfig, c.LabelType)
	}
	for _, name := range []string{c.RevealEasing, c.MainShadowEasing, c.CapShadowEasing} {
		if _, ok := lookupEasing(name); !ok {
			return fmt.Errorf("%w: unknown easing %q", ErrInvalidConfig, name)
		}
	}
	return nil
}

// capShadowAlpha returns the cap shadow opacity as a fraction.
func (c Config) capShadowAlpha() float64 {
	return min(max(c.CapShadowOpacity, 0), 100) / 100
}

// millis converts a millisecond config value to a duration.
func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
