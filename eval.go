package fixpoint

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// DefaultTolerance is the convergence tolerance used when an Evaluator does
// not set its own: successive iterates closer than this end the fixed-point
// loop.
const DefaultTolerance = 0.01

// An Evaluator interprets equation trees against the cells of a Store. The
// zero value of the knobs runs with the default tolerance and no iteration
// guard.
type Evaluator[T constraints.Float] struct {
	// Store owns the cells referenced by the trees this evaluator runs.
	Store *Store[T]

	// Tolerance ends the fixed-point loop when successive iterates differ
	// by no more than this. A value <= 0 means DefaultTolerance.
	Tolerance T

	// MaxIterations limits the number of fixed-point iterations. If the
	// loop has not converged when the limit is reached, Evaluate returns an
	// error. A value <= 0 means no limit: a divergent or oscillating body
	// then loops forever, which is the caller's responsibility.
	MaxIterations int
}

// Evaluate runs the equation's convergence loop under a fresh cache and
// returns the converged value. The value is also written into the target
// cell, where it persists after the cache is gone.
func (e *Evaluator[T]) Evaluate(eq Equation[T]) (T, error) {
	return e.eval(eq.node, newCache[T]())
}

// Call evaluates the argument-bearing entry point of a parametrized cell:
// it selects the first registered clause matching arg and evaluates its body
// under a fresh cache binding arg as the parameter.
func (e *Evaluator[T]) Call(h Handle, arg T) (T, error) {
	return e.call(h, arg)
}

// Eval evaluates a standalone tree under a fresh cache with no bound
// parameter.
func (e *Evaluator[T]) Eval(n *Node[T]) (T, error) {
	return e.eval(n, newCache[T]())
}

// eval interprets n against c. Every structural fault aborts the walk with
// an error wrapping ErrInvalidNode; no shape ever defaults to a zero result.
func (e *Evaluator[T]) eval(n *Node[T], c *cache[T]) (T, error) {
	var zero T
	if n == nil {
		return zero, fmt.Errorf("%w: missing child", ErrInvalidNode)
	}

	switch n.kind {
	case kindLit:
		return n.lit, nil

	case kindParam:
		if n.variable {
			return c.parameter()
		}
		return n.lit, nil

	case kindCell:
		// First read memoizes the cell's stored value for the rest of the
		// invocation.
		if v, ok := c.get(n.cell); ok {
			return v, nil
		}
		v := e.Store.Value(n.cell)
		c.remember(n.cell, v)
		return v, nil

	case kindOp:
		return e.evalOp(n, c)
	}
	return zero, fmt.Errorf("%w: %s", ErrInvalidNode, n.kind)
}

func (e *Evaluator[T]) evalOp(n *Node[T], c *cache[T]) (T, error) {
	var zero T

	switch n.op {
	case OpAdd, OpSub, OpMul, OpDiv:
		if len(n.children) != 2 {
			return zero, fmt.Errorf("%w: %#v expects 2 operands, has %d", ErrInvalidNode, n.op, len(n.children))
		}
		x, err := e.eval(n.children[0], c)
		if err != nil {
			return zero, err
		}
		y, err := e.eval(n.children[1], c)
		if err != nil {
			return zero, err
		}
		switch n.op {
		case OpAdd:
			return x + y, nil
		case OpSub:
			return x - y, nil
		case OpMul:
			return x * y, nil
		default:
			// Division by zero is not intercepted: the result follows IEEE
			// semantics and propagates as an ordinary value.
			return x / y, nil
		}

	case OpCeil, OpFloor:
		if len(n.children) != 1 {
			return zero, fmt.Errorf("%w: %s expects 1 operand, has %d", ErrInvalidNode, n.op, len(n.children))
		}
		x, err := e.eval(n.children[0], c)
		if err != nil {
			return zero, err
		}
		if n.op == OpCeil {
			return T(math.Ceil(float64(x))), nil
		}
		return T(math.Floor(float64(x))), nil

	case OpNextLayer:
		return e.converge(n, c)

	case OpCall:
		h, err := e.target(n)
		if err != nil {
			return zero, err
		}
		// The argument is evaluated under the caller's cache; only the
		// clause body runs under a fresh one.
		arg, err := e.eval(n.children[1], c)
		if err != nil {
			return zero, err
		}
		return e.call(h, arg)

	case OpClause:
		// Clauses are dispatched through a call, never evaluated directly.
		return zero, fmt.Errorf("%w: clause evaluated outside a call", ErrInvalidNode)
	}
	return zero, fmt.Errorf("%w: %s", ErrInvalidNode, n.op)
}

// target extracts the cell handle of a special form, whose children[0] must
// be a cell reference.
func (e *Evaluator[T]) target(n *Node[T]) (Handle, error) {
	if len(n.children) != 2 {
		return 0, fmt.Errorf("%w: %s expects 2 operands, has %d", ErrInvalidNode, n.op, len(n.children))
	}
	ref := n.children[0]
	if ref == nil || ref.kind != kindCell {
		return 0, fmt.Errorf("%w: %s target is not a cell reference", ErrInvalidNode, n.op)
	}
	return ref.cell, nil
}

// converge runs the fixed-point loop: evaluate the body for the next layer,
// compare against the previous one memoized in the cache, and write the new
// layer into both the cell and the cache until the two layers are within
// tolerance. The loop always runs at least once, so a body that never
// references its cell still settles after one or two iterations.
func (e *Evaluator[T]) converge(n *Node[T], c *cache[T]) (T, error) {
	var zero T
	h, err := e.target(n)
	if err != nil {
		return zero, err
	}
	body := n.children[1]

	tol := e.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	// Seed: the cell's current value is layer zero.
	c.remember(h, e.Store.Value(h))

	for i := 0; ; i++ {
		if e.MaxIterations > 0 && i >= e.MaxIterations {
			return zero, fmt.Errorf("fixpoint: %s did not converge within %d iterations",
				e.Store.Name(h), e.MaxIterations)
		}

		newLayer, err := e.eval(body, c)
		if err != nil {
			return zero, err
		}
		oldLayer, _ := c.get(h)
		e.Store.SetValue(h, newLayer)
		c.remember(h, newLayer)

		if abs(newLayer-oldLayer) <= tol {
			break
		}
	}
	return e.Store.Value(h), nil
}

// call dispatches arg against the cell's registered clauses and evaluates
// the winning body under a new cache binding arg. Recursive calls inside the
// body repeat this with a fresh cache each time: there is no memoization of
// results keyed by argument, so naively-recursive two-term definitions
// re-derive overlapping sub-calls exponentially in recursion depth.
func (e *Evaluator[T]) call(h Handle, arg T) (T, error) {
	var zero T
	clause, err := e.Store.match(h, arg)
	if err != nil {
		return zero, err
	}

	nc := newCache[T]()
	nc.bindParameter(arg)
	return e.eval(clause.children[1], nc)
}

func abs[T constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
