package fixpoint

import "errors"

// Errors reported during evaluation. All of them abort the evaluation back
// to the top-level Evaluate or Call: they flag equation-authoring mistakes,
// not transient conditions, so nothing is retried or degraded. Numeric
// faults (division by zero, non-finite intermediates) are not part of this
// set; they propagate as ordinary IEEE values.
var (
	// ErrInvalidNode reports a structural fault: an operator applied to a
	// node shape it does not support, a missing or malformed child, or an
	// operation with no evaluation rule.
	ErrInvalidNode = errors.New("invalid node")

	// ErrUnboundParameter reports evaluation of a variable parameter leaf
	// under a cache with no bound parameter, i.e. outside any clause call.
	ErrUnboundParameter = errors.New("unbound parameter")

	// ErrNoMatch reports a call whose argument is covered by none of the
	// cell's registered clauses.
	ErrNoMatch = errors.New("no matching clause")
)
