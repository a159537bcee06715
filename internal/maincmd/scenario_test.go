package maincmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProgramErrors(t *testing.T) {
	lit := 1.0

	cases := []struct {
		name    string
		sc      scenario
		wantErr string
	}{
		{"unnamed cell", scenario{
			Cells: []cellDef{{Value: 1}},
		}, "cell with no name"},

		{"duplicate cell", scenario{
			Cells: []cellDef{{Name: "x"}, {Name: "x"}},
		}, "duplicate cell: x"},

		{"clause on unknown cell", scenario{
			Clauses: []clauseDef{{Cell: "nope", Pattern: "0", Body: exprDef{Lit: &lit}}},
		}, "unknown cell: nope"},

		{"clause without pattern", scenario{
			Cells:   []cellDef{{Name: "f"}},
			Clauses: []clauseDef{{Cell: "f", Body: exprDef{Lit: &lit}}},
		}, "missing pattern"},

		{"empty expression", scenario{
			Cells:   []cellDef{{Name: "f"}},
			Clauses: []clauseDef{{Cell: "f", Pattern: "0", Body: exprDef{}}},
		}, "empty expression"},

		{"unknown reference", scenario{
			Cells:     []cellDef{{Name: "x"}},
			Equations: []equationDef{{Cell: "x", Body: exprDef{Ref: "nope"}}},
		}, "unknown cell: nope"},

		{"duplicate equation", scenario{
			Cells: []cellDef{{Name: "x"}},
			Equations: []equationDef{
				{Cell: "x", Body: exprDef{Lit: &lit}},
				{Cell: "x", Body: exprDef{Lit: &lit}},
			},
		}, "duplicate equation for cell: x"},

		{"bad arity", scenario{
			Cells:     []cellDef{{Name: "x"}},
			Equations: []equationDef{{Cell: "x", Body: exprDef{Op: "ceil", Args: []exprDef{{Lit: &lit}, {Lit: &lit}}}}},
		}, "ceil expects 1 argument"},

		{"step without form", scenario{
			Steps: []stepDef{{}},
		}, "step must set exactly one"},

		{"step iterate without equation", scenario{
			Cells: []cellDef{{Name: "x"}},
			Steps: []stepDef{{Iterate: "x"}},
		}, "no equation for cell: x"},

		{"step read unknown cell", scenario{
			Steps: []stepDef{{Read: "nope"}},
		}, "unknown cell: nope"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := buildProgram(&c.sc)
			assert.ErrorContains(t, err, c.wantErr)
		})
	}
}

func TestPattern(t *testing.T) {
	p := &program{}

	pat, err := p.pattern("2")
	require.NoError(t, err)
	assert.Equal(t, "2", pat.String())

	pat, err = p.pattern("n")
	require.NoError(t, err)
	assert.Equal(t, "n", pat.String())

	_, err = p.pattern("")
	assert.ErrorContains(t, err, "missing pattern")
}
