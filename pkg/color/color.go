package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Channel names a single component addressable by Extract and Modify.
type Channel string

const (
	ChannelRed        Channel = "red"
	ChannelGreen      Channel = "green"
	ChannelBlue       Channel = "blue"
	ChannelAlpha      Channel = "alpha"
	ChannelHue        Channel = "hue"
	ChannelSaturation Channel = "saturation"
	ChannelLightness  Channel = "lightness"
)

const (
	contrastDark  = "#000000"
	contrastLight = "#ffffff"

	brightnessThreshold = 128
)

var (
	hexDigitsPattern = regexp.MustCompile(`^[0-9a-f]+$`)
	rgbPattern       = regexp.MustCompile(`rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([\d.]+)\s*)?\)`)
	hslPattern       = regexp.MustCompile(`hsla?\(\s*(\d+)\s*,\s*(\d+)%\s*,\s*(\d+)%\s*(?:,\s*([\d.]+)\s*)?\)`)
)

// RGBA is a parsed color with integer channels in [0,255] and alpha in [0,1].
type RGBA struct {
	R, G, B int
	A       float64
}

// HSL holds rounded hue (0-359), saturation and lightness (0-100).
type HSL struct {
	H, S, L int
}

// Parse reads hex (3, 6 or 8 digits), rgb()/rgba() and hsl()/hsla() strings.
// The boolean is false when the input matches none of the supported forms.
func Parse(input string) (RGBA, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return RGBA{}, false
	}

	if strings.HasPrefix(s, "#") {
		if parsed, ok := parseHex(s[1:]); ok {
			return parsed, true
		}
	}

	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		return RGBA{
			R: atoi(m[1]),
			G: atoi(m[2]),
			B: atoi(m[3]),
			A: parseAlpha(m[4]),
		}, true
	}

	if m := hslPattern.FindStringSubmatch(s); m != nil {
		r, g, b := hslToRGB(float64(atoi(m[1])), float64(atoi(m[2])), float64(atoi(m[3])))
		return RGBA{R: r, G: g, B: b, A: parseAlpha(m[4])}, true
	}

	return RGBA{}, false
}

func parseHex(hex string) (RGBA, bool) {
	if !hexDigitsPattern.MatchString(hex) {
		return RGBA{}, false
	}
	switch len(hex) {
	case 3, 6:
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			return RGBA{}, false
		}
		r, g, b := c.RGB255()
		return RGBA{R: int(r), G: int(g), B: int(b), A: 1}, true
	case 8:
		c, err := colorful.Hex("#" + hex[:6])
		if err != nil {
			return RGBA{}, false
		}
		alpha, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return RGBA{}, false
		}
		r, g, b := c.RGB255()
		return RGBA{R: int(r), G: int(g), B: int(b), A: float64(alpha) / 255}, true
	}
	return RGBA{}, false
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseAlpha(raw string) float64 {
	if raw == "" {
		return 1
	}
	a, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 1
	}
	return a
}

// HSL converts the color's RGB channels to rounded HSL.
func (c RGBA) HSL() HSL {
	return rgbToHSL(c.R, c.G, c.B)
}

// String formats the color as rgb() or, when translucent, rgba().
func (c RGBA) String() string {
	return formatRGB(c.R, c.G, c.B, c.A)
}

// Hex formats the RGB channels as #rrggbb, dropping alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func formatRGB(r, g, b int, a float64) string {
	if a < 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatNumber(a))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// round matches the host's half-up rounding (ties toward positive infinity).
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func rgbToHSL(ri, gi, bi int) HSL {
	r := float64(ri) / 255
	g := float64(gi) / 255
	b := float64(bi) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	var h, s float64
	if maxC != minC {
		d := maxC - minC
		if l > 0.5 {
			s = d / (2 - maxC - minC)
		} else {
			s = d / (maxC + minC)
		}
		switch maxC {
		case r:
			offset := 0.0
			if g < b {
				offset = 6
			}
			h = ((g-b)/d + offset) / 6
		case g:
			h = ((b-r)/d + 2) / 6
		case b:
			h = ((r-g)/d + 4) / 6
		}
	}

	return HSL{
		H: round(float64(h*360)) % 360,
		S: round(float64(s * 100)),
		L: round(float64(l * 100)),
	}
}

// Products are wrapped in float64 conversions so the compiler cannot fuse
// them into FMA instructions; channel values must round identically to the
// host renderer.
func hslToRGB(h, s, l float64) (int, int, int) {
	h /= 360
	s /= 100
	l /= 100

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = float64(l * (1 + s))
		} else {
			q = l + s - float64(l*s)
		}
		p := float64(2*l) - q
		r = hueToRGB(p, q, h+1.0/3)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3)
	}

	return round(float64(r * 255)), round(float64(g * 255)), round(float64(b * 255))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + float64(float64((q-p)*6)*t)
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + float64(float64((q-p)*(2.0/3-t))*6)
	default:
		return p
	}
}
