package donut

import (
	"fmt"

	"github.com/gogpu/gg"
)

// ParseColor parses a "#RRGGBB" or "#RGB" color.
// gg.Hex accepts malformed input silently, so the format is checked first.
func ParseColor(s string) (gg.RGBA, error) {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return gg.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for i := 1; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return gg.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	return gg.Hex(s), nil
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
