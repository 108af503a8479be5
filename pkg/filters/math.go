package filters

import "math"

func mathFilters() Set {
	return Set{
		"abs":      func(in any, _ ...any) any { return math.Abs(Number(in)) },
		"ceil":     func(in any, _ ...any) any { return math.Ceil(Number(in)) },
		"floor":    func(in any, _ ...any) any { return math.Floor(Number(in)) },
		"at_least": func(in any, args ...any) any { return math.Max(Number(in), Number(arg(args, 0))) },
		"at_most":  func(in any, args ...any) any { return math.Min(Number(in), Number(arg(args, 0))) },
		"plus":     func(in any, args ...any) any { return Number(in) + Number(arg(args, 0)) },
		"minus":    func(in any, args ...any) any { return Number(in) - Number(arg(args, 0)) },
		"times":    func(in any, args ...any) any { return Number(in) * Number(arg(args, 0)) },
		"divided_by": func(in any, args ...any) any {
			divisor := Number(arg(args, 0))
			if divisor == 0 {
				return 0.0
			}
			return Number(in) / divisor
		},
		"modulo": func(in any, args ...any) any {
			divisor := Number(arg(args, 0))
			if divisor == 0 {
				return 0.0
			}
			return math.Mod(Number(in), divisor)
		},
		"round": func(in any, args ...any) any { return Round(Number(in), int(Number(arg(args, 0)))) },
	}
}

// Round rounds v to precision decimal places, ties toward positive infinity.
func Round(v float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Floor(float64(v*factor)+0.5) / factor
}
