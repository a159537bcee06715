package fixpoint

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// match returns the first clause registered on the cell identified by h
// whose pattern matches arg. Clauses are scanned in registration order and
// the scan is deliberately linear: a variable pattern matches anything, so
// registering one before a constant clause shadows that constant, and an
// indexed lookup would not preserve those semantics.
func (s *Store[T]) match(h Handle, arg T) (*Node[T], error) {
	for _, clause := range s.cells[h].clauses {
		pat, err := clausePattern(clause)
		if err != nil {
			return nil, err
		}
		if pat.variable || pat.lit == arg {
			return clause, nil
		}
	}
	return nil, fmt.Errorf("%w: %s(%g)", ErrNoMatch, s.cells[h].name, float64(arg))
}

// clausePattern digs the parameter pattern out of a registered clause node,
// which has the shape clause(call(cell, pattern), body).
func clausePattern[T constraints.Float](clause *Node[T]) (*Node[T], error) {
	if clause.kind != kindOp || clause.op != OpClause || len(clause.children) != 2 {
		return nil, fmt.Errorf("%w: malformed clause %s", ErrInvalidNode, clause)
	}
	head := clause.children[0]
	if head == nil || head.kind != kindOp || head.op != OpCall || len(head.children) != 2 {
		return nil, fmt.Errorf("%w: malformed clause head in %s", ErrInvalidNode, clause)
	}
	pat := head.children[1]
	if pat == nil || pat.kind != kindParam {
		return nil, fmt.Errorf("%w: clause pattern is not a parameter in %s", ErrInvalidNode, clause)
	}
	return pat, nil
}
