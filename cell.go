package fixpoint

import (
	"golang.org/x/exp/constraints"
)

// A Handle identifies a cell within its Store. Handles are stable for the
// lifetime of the Store: reference nodes hold handles rather than pointers,
// so relocating the Store's backing storage never dangles a reference.
type Handle int

// A cell is a named mutable numeric storage location. Its value is written
// by direct assignment and by the convergence loop; its clause list grows by
// registration and is never reordered, because the matcher returns the first
// clause whose pattern matches. Identity (the handle), not value, is what
// the evaluation cache keys on: two cells holding equal values stay distinct.
type cell[T constraints.Float] struct {
	name    string
	value   T
	clauses []*Node[T] // OpClause nodes, in registration order
}

// A Store is an arena owning cells. Cells are created with NewCell and live
// as long as the Store; equation trees refer to them by Handle. A Store and
// its cells are not safe for concurrent use.
type Store[T constraints.Float] struct {
	cells []cell[T]
}

// NewStore returns an empty cell arena.
func NewStore[T constraints.Float]() *Store[T] {
	return &Store[T]{}
}

// NewCell allocates a cell named name holding initial and returns its
// handle. The name is purely diagnostic, it is not required to be unique.
func (s *Store[T]) NewCell(name string, initial T) Handle {
	s.cells = append(s.cells, cell[T]{name: name, value: initial})
	return Handle(len(s.cells) - 1)
}

// Value returns the current stored value of the cell identified by h.
// Reading is idempotent: absent intervening writes, successive reads return
// the same value.
func (s *Store[T]) Value(h Handle) T {
	return s.cells[h].value
}

// SetValue assigns v as the current stored value of the cell identified by
// h.
func (s *Store[T]) SetValue(h Handle, v T) {
	s.cells[h].value = v
}

// Name returns the name the cell identified by h was created with.
func (s *Store[T]) Name(h Handle) string {
	return s.cells[h].name
}

// Len returns the number of cells allocated from the store.
func (s *Store[T]) Len() int {
	return len(s.cells)
}

// DefineClause registers a piecewise clause on the cell identified by h:
// when the cell is called with an argument matched by pattern, the call
// evaluates body under a fresh cache binding the argument as the parameter.
// pattern should be a Const or Variable node. Registration order is
// significant, the first matching clause wins, so the variable "general
// case" clause is conventionally registered last.
//
// This is the only side-effecting construction operation.
func (s *Store[T]) DefineClause(h Handle, pattern, body *Node[T]) {
	head := &Node[T]{
		kind:     kindOp,
		op:       OpCall,
		children: []*Node[T]{Ref[T](h), pattern},
	}
	clause := &Node[T]{
		kind:     kindOp,
		op:       OpClause,
		children: []*Node[T]{head, body},
	}
	c := &s.cells[h]
	c.clauses = append(c.clauses, clause)
}

// Evaluate runs the equation's convergence loop with default settings (see
// Evaluator). The converged value is returned and remains stored in the
// equation's target cell.
func (s *Store[T]) Evaluate(eq Equation[T]) (T, error) {
	ev := Evaluator[T]{Store: s}
	return ev.Evaluate(eq)
}

// Call invokes the clauses registered on the cell identified by h with
// argument arg, with default settings (see Evaluator).
func (s *Store[T]) Call(h Handle, arg T) (T, error) {
	ev := Evaluator[T]{Store: s}
	return ev.Call(h, arg)
}

// Eval evaluates a standalone tree against the store's cells with default
// settings (see Evaluator).
func (s *Store[T]) Eval(n *Node[T]) (T, error) {
	ev := Evaluator[T]{Store: s}
	return ev.Eval(n)
}
