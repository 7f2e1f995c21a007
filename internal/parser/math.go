package parser

import "math"

func mod(a, b float64) float64 {
	return math.Mod(a, b)
}

func powOp(a, b float64) float64 {
	return math.Pow(a, b)
}
