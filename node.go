package fixpoint

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// A Node is one node of an equation tree: a literal, a parameter pattern, a
// reference to a cell, or an operation over child nodes. Nodes are immutable
// once built and form a finite, non-cyclic value; the only back-edges in an
// equation graph go through the identity of a referenced cell, never through
// nodes.
type Node[T constraints.Float] struct {
	kind kind

	lit      T      // kindLit value, or kindParam constant
	variable bool   // kindParam: matches any argument when true
	cell     Handle // kindCell target

	op       Op
	children []*Node[T]
}

type kind int8

const (
	kindInvalid kind = iota
	kindLit          // a constant value
	kindParam        // a parameter pattern, constant or variable
	kindCell         // a reference to a cell by handle
	kindOp           // an operation over children
)

var kindNames = [...]string{
	kindInvalid: "invalid node",
	kindLit:     "literal",
	kindParam:   "parameter",
	kindCell:    "cell reference",
	kindOp:      "operation",
}

func (k kind) String() string { return kindNames[k] }

// Lit returns a literal node holding the constant v. References that embed a
// value instead of pointing at a cell are built as literals; the distinction
// is made at construction time and never revisited.
func Lit[T constraints.Float](v T) *Node[T] {
	return &Node[T]{kind: kindLit, lit: v}
}

// Ref returns a node referencing the cell identified by h. The handle must
// come from the Store against which the tree is evaluated.
func Ref[T constraints.Float](h Handle) *Node[T] {
	return &Node[T]{kind: kindCell, cell: h}
}

// Const returns a constant parameter pattern: it matches only an argument
// equal to v, and evaluates to v when used as a leaf.
func Const[T constraints.Float](v T) *Node[T] {
	return &Node[T]{kind: kindParam, lit: v}
}

// Variable returns a variable parameter pattern: it matches any argument,
// and evaluates to the currently bound parameter when used as a leaf inside
// a clause body.
func Variable[T constraints.Float]() *Node[T] {
	return &Node[T]{kind: kindParam, variable: true}
}

// Binary returns an operation node combining lhs and rhs with op, which
// should be one of OpAdd, OpSub, OpMul or OpDiv. Operands may be literals,
// references, patterns or nested operations in any combination. Construction
// never fails; a non-binary op surfaces as an invalid-structure error at
// evaluation time.
func Binary[T constraints.Float](op Op, lhs, rhs *Node[T]) *Node[T] {
	return &Node[T]{kind: kindOp, op: op, children: []*Node[T]{lhs, rhs}}
}

// Unary returns an operation node applying op to child, for OpCeil and
// OpFloor.
func Unary[T constraints.Float](op Op, child *Node[T]) *Node[T] {
	return &Node[T]{kind: kindOp, op: op, children: []*Node[T]{child}}
}

// Apply returns a call node that, when evaluated, invokes the clauses
// registered on the cell identified by h with the evaluated value of arg.
// It is the building block for recursive references inside clause bodies.
func Apply[T constraints.Float](h Handle, arg *Node[T]) *Node[T] {
	return &Node[T]{kind: kindOp, op: OpCall, children: []*Node[T]{Ref[T](h), arg}}
}

// An Equation is a runnable self-referential iteration equation built by
// DefineNextLayer.
type Equation[T constraints.Float] struct {
	node *Node[T]
}

// DefineNextLayer builds the equation that drives the cell identified by h
// to a fixed point: body defines the cell's next value in terms of its
// current one and is expected to reference the cell, directly or
// transitively. The cell's current value is the seed of the iteration.
func DefineNextLayer[T constraints.Float](h Handle, body *Node[T]) Equation[T] {
	return Equation[T]{node: &Node[T]{
		kind:     kindOp,
		op:       OpNextLayer,
		children: []*Node[T]{Ref[T](h), body},
	}}
}

func (n *Node[T]) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Node[T]) fmt(b *strings.Builder) {
	switch n.kind {
	case kindLit:
		fmt.Fprintf(b, "%g", float64(n.lit))
	case kindParam:
		if n.variable {
			b.WriteByte('n')
		} else {
			fmt.Fprintf(b, "%g", float64(n.lit))
		}
	case kindCell:
		fmt.Fprintf(b, "cell(%d)", n.cell)
	case kindOp:
		b.WriteString(n.op.String())
		b.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				b.WriteString(", ")
			}
			if c == nil {
				b.WriteByte('?')
				continue
			}
			c.fmt(b)
		}
		b.WriteByte(')')
	default:
		b.WriteByte('$')
	}
}
