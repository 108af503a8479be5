package color

import (
	"math"
	"strconv"
)

// ToRGB converts a color to rgb() or rgba() notation. Unparseable input is
// returned unchanged.
func ToRGB(color string) string {
	parsed, ok := Parse(color)
	if !ok {
		return color
	}
	return parsed.String()
}

// ToHSL converts a color to hsl() or hsla() notation.
func ToHSL(color string) string {
	parsed, ok := Parse(color)
	if !ok {
		return color
	}
	hsl := parsed.HSL()
	if parsed.A < 1 {
		return "hsla(" + itoa(hsl.H) + ", " + itoa(hsl.S) + "%, " + itoa(hsl.L) + "%, " + formatNumber(parsed.A) + ")"
	}
	return "hsl(" + itoa(hsl.H) + ", " + itoa(hsl.S) + "%, " + itoa(hsl.L) + "%)"
}

// ToHex converts a color to #rrggbb. Alpha has no hex channel here and is
// dropped.
func ToHex(color string) string {
	parsed, ok := Parse(color)
	if !ok {
		return color
	}
	return parsed.Hex()
}

// Lighten raises HSL lightness by amount percentage points, clamped to 100.
func Lighten(color string, amount float64) string {
	return shift(color, func(h, s, l float64) (float64, float64, float64) {
		return h, s, clamp(l+finite(amount), 0, 100)
	})
}

// Darken lowers HSL lightness by amount percentage points, clamped to 0.
func Darken(color string, amount float64) string {
	return shift(color, func(h, s, l float64) (float64, float64, float64) {
		return h, s, clamp(l-finite(amount), 0, 100)
	})
}

// Saturate raises HSL saturation by amount percentage points.
func Saturate(color string, amount float64) string {
	return shift(color, func(h, s, l float64) (float64, float64, float64) {
		return h, clamp(s+finite(amount), 0, 100), l
	})
}

// Desaturate lowers HSL saturation by amount percentage points.
func Desaturate(color string, amount float64) string {
	return shift(color, func(h, s, l float64) (float64, float64, float64) {
		return h, clamp(s-finite(amount), 0, 100), l
	})
}

func shift(color string, apply func(h, s, l float64) (float64, float64, float64)) string {
	parsed, ok := Parse(color)
	if !ok {
		return color
	}
	hsl := parsed.HSL()
	h, s, l := apply(float64(hsl.H), float64(hsl.S), float64(hsl.L))
	r, g, b := hslToRGB(h, s, l)
	return formatRGB(r, g, b, parsed.A)
}

// Mix interpolates the RGB channels of a and b. weight is the share of a in
// percent: 100 yields a, 0 yields b. When either color cannot be parsed, a is
// returned unchanged.
func Mix(a, b string, weight float64) string {
	c1, ok1 := Parse(a)
	c2, ok2 := Parse(b)
	if !ok1 || !ok2 {
		return a
	}

	w := clamp(finite(weight), 0, 100) / 100
	inv := 1 - w
	mix := func(x, y float64) float64 {
		return float64(x*w) + float64(y*inv)
	}

	r := round(mix(float64(c1.R), float64(c2.R)))
	g := round(mix(float64(c1.G), float64(c2.G)))
	bl := round(mix(float64(c1.B), float64(c2.B)))
	alpha := mix(c1.A, c2.A)

	return formatRGB(r, g, bl, alpha)
}

// Brightness returns the perceived brightness (ITU-R BT.601) in [0,255].
func Brightness(color string) int {
	parsed, ok := Parse(color)
	if !ok {
		return 0
	}
	return round(brightness(parsed))
}

func brightness(c RGBA) float64 {
	return float64(c.R*299+c.G*587+c.B*114) / 1000
}

// Contrast picks black or white foreground text for legibility against
// color. Unparseable input yields black.
func Contrast(color string) string {
	parsed, ok := Parse(color)
	if !ok {
		return contrastDark
	}
	if brightness(parsed) > brightnessThreshold {
		return contrastDark
	}
	return contrastLight
}

// Extract returns a single channel. Alpha defaults to 1; unparseable input or
// an unknown channel yields 0.
func Extract(color string, channel Channel) float64 {
	parsed, ok := Parse(color)
	if !ok {
		return 0
	}

	switch channel {
	case ChannelRed:
		return float64(parsed.R)
	case ChannelGreen:
		return float64(parsed.G)
	case ChannelBlue:
		return float64(parsed.B)
	case ChannelAlpha:
		return parsed.A
	case ChannelHue:
		return float64(parsed.HSL().H)
	case ChannelSaturation:
		return float64(parsed.HSL().S)
	case ChannelLightness:
		return float64(parsed.HSL().L)
	default:
		return 0
	}
}

// Modify sets one channel. Alpha edits always produce rgba(); hue wraps
// modulo 360; saturation and lightness clamp to [0,100]; red, green and blue
// clamp to [0,255]. Unparseable input or an unknown channel returns color
// unchanged.
func Modify(color string, channel Channel, value float64) string {
	parsed, ok := Parse(color)
	if !ok {
		return color
	}

	hsl := parsed.HSL()
	h, s, l := float64(hsl.H), float64(hsl.S), float64(hsl.L)

	switch channel {
	case ChannelRed, ChannelGreen, ChannelBlue:
		v := round(clamp(finite(value), 0, 255))
		switch channel {
		case ChannelRed:
			parsed.R = v
		case ChannelGreen:
			parsed.G = v
		default:
			parsed.B = v
		}
		return parsed.String()
	case ChannelAlpha:
		return "rgba(" + itoa(parsed.R) + ", " + itoa(parsed.G) + ", " + itoa(parsed.B) + ", " +
			formatNumber(clamp(finite(value), 0, 1)) + ")"
	case ChannelHue:
		h = math.Mod(math.Mod(finite(value), 360)+360, 360)
	case ChannelSaturation:
		s = clamp(finite(value), 0, 100)
	case ChannelLightness:
		l = clamp(finite(value), 0, 100)
	default:
		return color
	}

	r, g, b := hslToRGB(h, s, l)
	return formatRGB(r, g, b, parsed.A)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
