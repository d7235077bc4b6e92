package function

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// ============================================================
// Compilation
// ============================================================

// Callable evaluates a compiled function over the real line. Undefined
// points evaluate to NaN or ±Inf instead of failing.
type Callable interface {
	At(x float64) float64
	Sample(xs []float64) []float64
}

// Compiled is a parsed user expression with a single free variable x.
type Compiled struct {
	source     string
	normalized string
	constant   bool
	value      float64
	expr       *govaluate.EvaluableExpression
}

var _ Callable = (*Compiled)(nil)

var builtins = map[string]govaluate.ExpressionFunction{
	"sin":  unary("sin", math.Sin),
	"cos":  unary("cos", math.Cos),
	"tan":  unary("tan", math.Tan),
	"cot":  unary("cot", func(v float64) float64 { return 1 / math.Tan(v) }),
	"ctg":  unary("ctg", func(v float64) float64 { return 1 / math.Tan(v) }),
	"sqrt": unary("sqrt", math.Sqrt),
	"abs":  unary("abs", math.Abs),
	"Abs":  unary("Abs", math.Abs),
	"exp":  unary("exp", math.Exp),
	"log":  unary("log", math.Log),
	"ln":   unary("ln", math.Log),
	"asin": unary("asin", math.Asin),
	"acos": unary("acos", math.Acos),
	"atan": unary("atan", math.Atan),
	"sinh": unary("sinh", math.Sinh),
	"cosh": unary("cosh", math.Cosh),
	"tanh": unary("tanh", math.Tanh),
	"pow":  binary("pow", math.Pow),
}

// Compile turns user text such as "sin(x)", "1/x", "x^2" or "2" into a
// Callable. Every failure is returned as an *ExpressionError.
func Compile(text string) (c *Compiled, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, exprError(text, "compile: %v", r)
		}
	}()

	normalized, err := Normalize(text)
	if err != nil {
		return nil, &ExpressionError{Source: text, Err: err}
	}

	expr, err := govaluate.NewEvaluableExpressionWithFunctions(normalized, builtins)
	if err != nil {
		return nil, &ExpressionError{Source: text, Err: err}
	}

	free := false
	for _, name := range expr.Vars() {
		switch name {
		case "x":
			free = true
		case "pi", "e":
		default:
			return nil, exprError(text, "unknown variable %q", name)
		}
	}

	c = &Compiled{
		source:     text,
		normalized: normalized,
		expr:       expr,
	}

	// One trial evaluation rejects expressions that parse but do not
	// produce a number, such as comparisons.
	v, err := c.eval(1)
	if err != nil {
		return nil, &ExpressionError{Source: text, Err: err}
	}

	if !free {
		c.constant = true
		c.value = v
	}
	return c, nil
}

func (c *Compiled) Source() string     { return c.source }
func (c *Compiled) Normalized() string { return c.normalized }
func (c *Compiled) IsConstant() bool   { return c.constant }

// At evaluates the function at x. Evaluation failures yield NaN.
func (c *Compiled) At(x float64) float64 {
	if c.constant {
		return c.value
	}
	v, err := c.eval(x)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Sample evaluates the function at every x. Constant functions are
// broadcast over the batch.
func (c *Compiled) Sample(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = c.At(x)
	}
	return ys
}

func (c *Compiled) eval(x float64) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluate: %v", r)
		}
	}()

	out, err := c.expr.Eval(variables{x: x})
	if err != nil {
		return 0, err
	}
	f, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("expression yields %T, not a number", out)
	}
	return f, nil
}

// variables resolves the free variable and the named constants.
type variables struct {
	x float64
}

func (p variables) Get(name string) (interface{}, error) {
	switch name {
	case "x":
		return p.x, nil
	case "pi":
		return math.Pi, nil
	case "e":
		return math.E, nil
	}
	return nil, fmt.Errorf("unknown variable %q", name)
}

func unary(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%s expects a number", name)
		}
		return f(v), nil
	}
}

func binary(name string, f func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s expects 2 arguments, got %d", name, len(args))
		}
		a, ok1 := args[0].(float64)
		b, ok2 := args[1].(float64)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%s expects numbers", name)
		}
		return f(a, b), nil
	}
}
