package fixpoint_test

import (
	"testing"

	"github.com/mna/fixpoint"
	"github.com/stretchr/testify/assert"
)

func TestNodeString(t *testing.T) {
	s := fixpoint.NewStore[float64]()
	h := s.NewCell("x", 0)

	cases := []struct {
		node *fixpoint.Node[float64]
		want string
	}{
		{fixpoint.Lit(1.5), "1.5"},
		{fixpoint.Const(3.0), "3"},
		{fixpoint.Variable[float64](), "n"},
		{fixpoint.Ref[float64](h), "cell(0)"},
		{fixpoint.Binary(fixpoint.OpAdd, fixpoint.Lit(1.0), fixpoint.Ref[float64](h)), "+(1, cell(0))"},
		{fixpoint.Unary(fixpoint.OpFloor, fixpoint.Lit(2.7)), "floor(2.7)"},
		{fixpoint.Apply(h, fixpoint.Binary(fixpoint.OpSub, fixpoint.Variable[float64](), fixpoint.Lit(1.0))),
			"call(cell(0), -(n, 1))"},
		{fixpoint.Binary(fixpoint.OpAdd, nil, fixpoint.Lit(1.0)), "+(?, 1)"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.node.String())
	}
}
