// Package fixpoint is an embedded domain model for declaring numeric
// equations as expression trees and evaluating them in two modes: fixed-point
// iteration of a self-referential equation until successive values converge,
// and recursive evaluation of parametrized equations defined piecewise by
// pattern-matched clauses.
//
// Cells are named mutable storage locations allocated from a Store; every
// other value in an equation tree is immutable once built. A tree is composed
// from literals (Lit), cell references (Ref), parameter patterns (Const,
// Variable), calls (Apply) and arithmetic operations (Binary, Unary). A cell
// becomes a fixed-point quantity by attaching a self-referential body with
// DefineNextLayer, or a recursively-defined function by registering clauses
// with Store.DefineClause.
//
// Evaluation walks the tree against a per-invocation cache that memoizes cell
// values and holds at most one bound parameter. The cache never outlives a
// top-level Evaluate or Call, but the convergence loop writes the converged
// value back into the cell itself, so that value persists across invocations.
//
// A Store and its cells are not safe for concurrent use: cell values are
// mutated by direct assignment and by the convergence loop, both assumed
// sequential, and each top-level invocation must own its cache exclusively.
// There is no cancellation; an equation whose iterates never converge loops
// forever unless Evaluator.MaxIterations is set, and an ill-founded recursive
// definition recurses until the stack is exhausted. Callers are responsible
// for supplying convergent and well-founded equations.
package fixpoint
