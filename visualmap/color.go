package visualmap

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"github.com/arloliu/chartdata/errs"
)

// ParseColor parses a CSS colour string.
//
// Accepted forms are those of CSS Color Level 4: "#rgb", "#rrggbb",
// "#rrggbbaa", "rgb()", "rgba()", "hsl()", "hwb()", "transparent" and the
// named colours ("steelblue", "red", ...). Matching is case-insensitive and
// channels outside their range are clamped.
func ParseColor(s string) (color.RGBA, error) {
	c, err := csscolorparser.Parse(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", errs.ErrInvalidColor, s)
	}

	return color.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}, nil
}

func channel(f float64) uint8 {
	if math.IsNaN(f) {
		return 0
	}

	return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
}

func colorfulOf(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// FormatColor renders c as "#rrggbb" when opaque, otherwise as "rgba(r,g,b,a)".
func FormatColor(c color.RGBA) string {
	if c.A == 255 {
		return colorfulOf(c).Hex()
	}

	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B,
		strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64))
}

// LerpColor blends a and b in RGB space; t is clamped to [0, 1].
// Alpha is interpolated linearly alongside.
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	r, g, bl := colorfulOf(a).BlendRgb(colorfulOf(b), t).RGB255()
	alpha := uint8(math.Round(float64(a.A) + (float64(b.A)-float64(a.A))*t))

	return color.RGBA{R: r, G: g, B: bl, A: alpha}
}
