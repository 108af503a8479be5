package filters

import "github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/color"

const defaultMixWeight = 50

func colorFilters() Set {
	return Set{
		"color_to_rgb": func(in any, _ ...any) any { return color.ToRGB(Text(in)) },
		"color_to_hsl": func(in any, _ ...any) any { return color.ToHSL(Text(in)) },
		"color_to_hex": func(in any, _ ...any) any { return color.ToHex(Text(in)) },
		"color_lighten": func(in any, args ...any) any {
			return color.Lighten(Text(in), Number(arg(args, 0)))
		},
		"color_darken": func(in any, args ...any) any {
			return color.Darken(Text(in), Number(arg(args, 0)))
		},
		"color_saturate": func(in any, args ...any) any {
			return color.Saturate(Text(in), Number(arg(args, 0)))
		},
		"color_desaturate": func(in any, args ...any) any {
			return color.Desaturate(Text(in), Number(arg(args, 0)))
		},
		"color_brightness": func(in any, _ ...any) any { return color.Brightness(Text(in)) },
		"color_contrast":   func(in any, _ ...any) any { return color.Contrast(Text(in)) },
		"color_modify": func(in any, args ...any) any {
			return color.Modify(Text(in), color.Channel(Text(arg(args, 0))), Number(arg(args, 1)))
		},
		"color_extract": func(in any, args ...any) any {
			return color.Extract(Text(in), color.Channel(Text(arg(args, 0))))
		},
		"color_mix": func(in any, args ...any) any {
			weight := float64(defaultMixWeight)
			if len(args) > 1 && args[1] != nil {
				weight = Number(args[1])
			}
			return color.Mix(Text(in), Text(arg(args, 0)), weight)
		},
	}
}
