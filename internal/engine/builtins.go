package engine

import (
	"fmt"
	"math"

	"github.com/mabescript/mabescript/internal/entry"
)

// math1 wraps a float64 -> float64 native function as a built-in, matching
// the arity/conversion contract spec.md §9 "Built-in functions" describes:
// positional conversion per a fixed kind list, error entry on mismatch
// rather than a panic.
func math1(name string, fn func(float64) float64) func(args []entry.Entry) entry.Entry {
	return func(args []entry.Entry) entry.Entry {
		if len(args) != 1 {
			return arityError(name, 1, len(args))
		}
		return entry.NewValue("", fn(args[0].AsNumber()), "", nil)
	}
}

func math2(name string, fn func(a, b float64) float64) func(args []entry.Entry) entry.Entry {
	return func(args []entry.Entry) entry.Entry {
		if len(args) != 2 {
			return arityError(name, 2, len(args))
		}
		return entry.NewValue("", fn(args[0].AsNumber(), args[1].AsNumber()), "", nil)
	}
}

func math3(name string, fn func(a, b, c float64) float64) func(args []entry.Entry) entry.Entry {
	return func(args []entry.Entry) entry.Entry {
		if len(args) != 3 {
			return arityError(name, 3, len(args))
		}
		return entry.NewValue("", fn(args[0].AsNumber(), args[1].AsNumber(), args[2].AsNumber()), "", nil)
	}
}

func arityError(name string, want, got int) entry.Entry {
	e := entry.NewError(fmt.Sprintf("%s expects %d argument(s), got %d", name, want, got))
	e.SetTemporary(true)
	return e
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// registerBuiltins installs the engine's fixed math library plus
// EVAL/PRINT/EXIT (spec.md §4.7: "Registers a fixed set of built-in
// functions"), all marked built-in so Write never serializes them.
func (c *Controller) registerBuiltins() {
	add := func(name, desc string, fn func(args []entry.Entry) entry.Entry) {
		if _, err := c.root.AddBuiltinFunction(name, fn, desc); err != nil {
			panic(fmt.Sprintf("registering built-in %q: %v", name, err))
		}
	}

	add("ABS", "Absolute Value", math1("ABS", math.Abs))
	add("EXP", "Exponentiation", math1("EXP", math.Exp))
	// LOG2/LOG are implemented by their mathematical identity, correcting a
	// source bug where both looked like plain POW/log (see DESIGN.md).
	add("LOG2", "Log base-2", math1("LOG2", math.Log2))
	add("LOG10", "Log base-10", math1("LOG10", math.Log10))
	add("SQRT", "Square Root", math1("SQRT", math.Sqrt))
	add("CBRT", "Cube Root", math1("CBRT", math.Cbrt))
	add("SIN", "Sine", math1("SIN", math.Sin))
	add("COS", "Cosine", math1("COS", math.Cos))
	add("TAN", "Tangent", math1("TAN", math.Tan))
	add("ASIN", "Arc Sine", math1("ASIN", math.Asin))
	add("ACOS", "Arc Cosine", math1("ACOS", math.Acos))
	add("ATAN", "Arc Tangent", math1("ATAN", math.Atan))
	add("SINH", "Hyperbolic Sine", math1("SINH", math.Sinh))
	add("COSH", "Hyperbolic Cosine", math1("COSH", math.Cosh))
	add("TANH", "Hyperbolic Tangent", math1("TANH", math.Tanh))
	add("ASINH", "Hyperbolic Arc Sine", math1("ASINH", math.Asinh))
	add("ACOSH", "Hyperbolic Arc Cosine", math1("ACOSH", math.Acosh))
	add("ATANH", "Hyperbolic Arc Tangent", math1("ATANH", math.Atanh))
	add("CEIL", "Round UP", math1("CEIL", math.Ceil))
	add("FLOOR", "Round DOWN", math1("FLOOR", math.Floor))
	add("ROUND", "Round to nearest", math1("ROUND", math.Round))
	add("ISINF", "Test if Infinite", math1("ISINF", func(x float64) float64 { return boolToFloat(math.IsInf(x, 0)) }))
	add("ISNAN", "Test if Not-a-number", math1("ISNAN", func(x float64) float64 { return boolToFloat(math.IsNaN(x)) }))

	add("HYPOT", "Given sides, find hypotenuse", math2("HYPOT", math.Hypot))
	add("LOG", "Take log of arg1 with base arg2", math2("LOG", func(x, base float64) float64 { return math.Log(x) / math.Log(base) }))
	add("MIN", "Return lesser value", math2("MIN", math.Min))
	add("MAX", "Return greater value", math2("MAX", math.Max))
	add("POW", "Take arg1 to the arg2 power", math2("POW", math.Pow))

	add("IF", "If arg1 is true, return arg2, else arg3", math3("IF", func(x, y, z float64) float64 {
		if x != 0.0 {
			return y
		}
		return z
	}))
	add("CLAMP", "Return arg1, forced into range [arg2,arg3]", math3("CLAMP", func(x, y, z float64) float64 {
		switch {
		case x < y:
			return y
		case x > z:
			return z
		default:
			return x
		}
	}))
	add("TO_SCALE", "Scale arg1 to arg2-arg3 as unit distance", math3("TO_SCALE", func(x, y, z float64) float64 {
		return (z-y)*x + y
	}))
	add("FROM_SCALE", "Scale arg1 from arg2-arg3 as unit distance", math3("FROM_SCALE", func(x, y, z float64) float64 {
		return (x - y) / (z - y)
	}))

	add("EVAL", "Dynamically evaluate the string passed in.", func(args []entry.Entry) entry.Entry {
		if len(args) != 1 {
			return arityError("EVAL", 1, len(args))
		}
		result, err := c.Eval(args[0].AsString())
		if err != nil {
			e := entry.NewError(err.Error())
			e.SetTemporary(true)
			return e
		}
		return entry.NewString("", result, "", nil)
	})

	add("PRINT", "Print out the provided variables.", func(args []entry.Entry) entry.Entry {
		for _, a := range args {
			fmt.Fprint(c.stdout, a.AsString())
		}
		return entry.NewValue("", 0, "", nil)
	})

	add("EXIT", "Request that the host stop running.", func(args []entry.Entry) entry.Entry {
		if c.onExit != nil {
			c.onExit()
		}
		return entry.NewValue("", 0, "", nil)
	})
}
