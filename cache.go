package fixpoint

import (
	"github.com/dolthub/swiss"
	"golang.org/x/exp/constraints"
)

// A cache is the per-invocation memoization context threaded through a
// single top-level evaluation. It maps cell identities to the last value
// observed for them during this invocation, and holds at most one bound
// parameter, set once at invocation start and visible to every node
// evaluated under it. A cache is never shared across invocations; the only
// values that survive it are the ones the convergence loop writes back into
// the cells themselves.
type cache[T constraints.Float] struct {
	values *swiss.Map[Handle, T]
	param  T
	bound  bool
}

func newCache[T constraints.Float]() *cache[T] {
	return &cache[T]{values: swiss.NewMap[Handle, T](8)}
}

func (c *cache[T]) get(h Handle) (T, bool) {
	return c.values.Get(h)
}

// remember records v as the memoized value for the cell identified by h,
// overwriting any previous entry.
func (c *cache[T]) remember(h Handle, v T) {
	c.values.Put(h, v)
}

// bindParameter sets the invocation's bound parameter. It is called at most
// once per cache, before any node is evaluated under it.
func (c *cache[T]) bindParameter(v T) {
	c.param = v
	c.bound = true
}

func (c *cache[T]) parameter() (T, error) {
	if !c.bound {
		var zero T
		return zero, ErrUnboundParameter
	}
	return c.param, nil
}
