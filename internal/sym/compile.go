package sym

import (
	"fmt"
	"math"
)

// Compile translates a finished expression into a numeric evaluator
// over a parameter slice ordered like params. Every free variable of
// the expression must appear in params; a leftover symbol means the
// pipeline failed to plumb a parameter through and is a fatal model
// error.
func Compile(e Expr, params []Var) (func(p []float64) float64, error) {
	idx := make(map[Var]int, len(params))
	for i, v := range params {
		idx[v] = i
	}
	fn, err := e.compile(idx)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

func (n Num) compile(map[Var]int) (evalFn, error) {
	c := float64(n)
	return func([]float64) float64 { return c }, nil
}

func (v Var) compile(idx map[Var]int) (evalFn, error) {
	i, ok := idx[v]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnresolved, v)
	}
	return func(p []float64) float64 { return p[i] }, nil
}

func (e add) compile(idx map[Var]int) (evalFn, error) {
	x, y, err := compilePair(e.x, e.y, idx)
	if err != nil {
		return nil, err
	}
	return func(p []float64) float64 { return x(p) + y(p) }, nil
}

func (e mul) compile(idx map[Var]int) (evalFn, error) {
	x, y, err := compilePair(e.x, e.y, idx)
	if err != nil {
		return nil, err
	}
	return func(p []float64) float64 { return x(p) * y(p) }, nil
}

func (e div) compile(idx map[Var]int) (evalFn, error) {
	x, y, err := compilePair(e.x, e.y, idx)
	if err != nil {
		return nil, err
	}
	return func(p []float64) float64 { return x(p) / y(p) }, nil
}

func (e sinOp) compile(idx map[Var]int) (evalFn, error) {
	x, err := e.x.compile(idx)
	if err != nil {
		return nil, err
	}
	return func(p []float64) float64 { return math.Sin(x(p)) }, nil
}

func (e cosOp) compile(idx map[Var]int) (evalFn, error) {
	x, err := e.x.compile(idx)
	if err != nil {
		return nil, err
	}
	return func(p []float64) float64 { return math.Cos(x(p)) }, nil
}

func compilePair(a, b Expr, idx map[Var]int) (evalFn, evalFn, error) {
	x, err := a.compile(idx)
	if err != nil {
		return nil, nil, err
	}
	y, err := b.compile(idx)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}
