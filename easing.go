package donut

import (
	"math"
	"slices"
)

// EasingFunc maps a time fraction in [0, 1] to a progress value.
// Every function in the table maps 0 to 0 and 1 to 1; some overshoot
// in between.
type EasingFunc func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

const (
	backC1    = 1.70158
	backC2    = backC1 * 1.525
	backC3    = backC1 + 1
	elasticC4 = 2 * math.Pi / 3
	elasticC5 = 2 * math.Pi / 4.5
)

var easings = map[string]EasingFunc{
	"linear": Linear,

	"easeInQuad":  func(t float64) float64 { return t * t },
	"easeOutQuad": func(t float64) float64 { return t * (2 - t) },
	"easeInOutQuad": func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	},

	"easeInCubic":  func(t float64) float64 { return t * t * t },
	"easeOutCubic": func(t float64) float64 { return 1 - math.Pow(1-t, 3) },
	"easeInOutCubic": func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	},

	"easeInQuart":  func(t float64) float64 { return t * t * t * t },
	"easeOutQuart": func(t float64) float64 { return 1 - math.Pow(1-t, 4) },
	"easeInOutQuart": func(t float64) float64 {
		if t < 0.5 {
			return 8 * t * t * t * t
		}
		return 1 - 8*math.Pow(t-1, 4)
	},

	"easeInQuint":  func(t float64) float64 { return t * t * t * t * t },
	"easeOutQuint": func(t float64) float64 { return 1 - math.Pow(1-t, 5) },
	"easeInOutQuint": func(t float64) float64 {
		if t < 0.5 {
			return 16 * t * t * t * t * t
		}
		return 1 + 16*math.Pow(t-1, 5)
	},

	"easeInSine":    func(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) },
	"easeOutSine":   func(t float64) float64 { return math.Sin(t * math.Pi / 2) },
	"easeInOutSine": func(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 },

	"easeInExpo": func(t float64) float64 {
		if t == 0 {
			return 0
		}
		return math.Pow(2, 10*(t-1))
	},
	"easeOutExpo": func(t float64) float64 {
		if t == 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*t)
	},
	"easeInOutExpo": func(t float64) float64 {
		switch {
		case t == 0:
			return 0
		case t == 1:
			return 1
		case t < 0.5:
			return math.Pow(2, 20*t-10) / 2
		default:
			return (2 - math.Pow(2, -20*t+10)) / 2
		}
	},

	"easeInCirc":  func(t float64) float64 { return 1 - math.Sqrt(1-t*t) },
	"easeOutCirc": func(t float64) float64 { return math.Sqrt(1 - (t-1)*(t-1)) },
	"easeInOutCirc": func(t float64) float64 {
		if t < 0.5 {
			return (1 - math.Sqrt(1-4*t*t)) / 2
		}
		return (math.Sqrt(1-math.Pow(-2*t+2, 2)) + 1) / 2
	},

	"easeInBack": func(t float64) float64 { return backC3*t*t*t - backC1*t*t },
	"easeOutBack": func(t float64) float64 {
		return 1 + backC3*math.Pow(t-1, 3) + backC1*math.Pow(t-1, 2)
	},
	"easeInOutBack": func(t float64) float64 {
		if t < 0.5 {
			return (math.Pow(2*t, 2) * ((backC2+1)*2*t - backC2)) / 2
		}
		return (math.Pow(2*t-2, 2)*((backC2+1)*(t*2-2)+backC2) + 2) / 2
	},

	"easeInElastic": func(t float64) float64 {
		if t == 0 || t == 1 {
			return t
		}
		return -math.Pow(2, 10*t-10) * math.Sin((t*10-10.75)*elasticC4)
	},
	"easeOutElastic": func(t float64) float64 {
		if t == 0 || t == 1 {
			return t
		}
		return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*elasticC4) + 1
	},
	"easeInOutElastic": func(t float64) float64 {
		switch {
		case t == 0 || t == 1:
			return t
		case t < 0.5:
			return -(math.Pow(2, 20*t-10) * math.Sin((20*t-11.125)*elasticC5)) / 2
		default:
			return (math.Pow(2, -20*t+10)*math.Sin((20*t-11.125)*elasticC5))/2 + 1
		}
	},

	"easeInBounce":  func(t float64) float64 { return 1 - easeOutBounce(1-t) },
	"easeOutBounce": easeOutBounce,
	"easeInOutBounce": func(t float64) float64 {
		if t < 0.5 {
			return (1 - easeOutBounce(1-2*t)) / 2
		}
		return (1 + easeOutBounce(2*t-1)) / 2
	},
}

func easeOutBounce(t float64) float64 {
	const (
		n1 = 7.5625
		d1 = 2.75
	)
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// lookupEasing resolves a table name. The empty name is linear.
func lookupEasing(name string) (EasingFunc, bool) {
	if name == "" {
		return Linear, true
	}
	fn, ok := easings[name]
	return fn, ok
}

// Easing returns the named easing function, or Linear if the name is
// unknown. Config.Validate rejects unknown names.
func Easing(name string) EasingFunc {
	if fn, ok := lookupEasing(name); ok {
		return fn
	}
	return Linear
}

// EasingNames returns the names in the easing table, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CubicBezier returns the CSS cubic-bezier timing function with control
// points (x1, y1) and (x2, y2). x1 and x2 must lie in [0, 1].
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	// Polynomial coefficients of B(s) = ((a*s + b)*s + c)*s.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	return func(t float64) float64 {
		if t <= 0 || t >= 1 {
			return t
		}

		// Newton iterations, falling back to bisection on a flat slope.
		s := t
		for range 8 {
			dx := sampleX(s) - t
			if math.Abs(dx) < 1e-7 {
				return ((ay*s+by)*s + cy) * s
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
			if s < 0 || s > 1 {
				break
			}
		}

		lo, hi := 0.0, 1.0
		s = t
		for range 40 {
			x := sampleX(s)
			if math.Abs(x-t) < 1e-7 {
				break
			}
			if x < t {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return ((ay*s+by)*s + cy) * s
	}
}
