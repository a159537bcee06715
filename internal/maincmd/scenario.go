package maincmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mna/fixpoint"
	"gopkg.in/yaml.v3"
)

// A scenario is the YAML declaration of a set of cells, the equations
// attached to them and the steps to execute. It is a structured encoding of
// library calls, not an expression syntax.
type scenario struct {
	// Tolerance and MaxIterations configure the evaluator for this file;
	// command-line flags take precedence over them.
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`

	Cells     []cellDef     `yaml:"cells"`
	Clauses   []clauseDef   `yaml:"clauses"`
	Equations []equationDef `yaml:"equations"`
	Steps     []stepDef     `yaml:"steps"`
}

type cellDef struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// A clauseDef registers one piecewise clause on a cell. Pattern is either a
// number (a constant pattern matching only that argument) or an identifier
// (a variable pattern matching any argument).
type clauseDef struct {
	Cell    string  `yaml:"cell"`
	Pattern string  `yaml:"pattern"`
	Body    exprDef `yaml:"body"`
}

// An equationDef attaches a self-referential next-layer body to a cell.
type equationDef struct {
	Cell string  `yaml:"cell"`
	Body exprDef `yaml:"body"`
}

// A stepDef is one of: call a parametrized cell, iterate a cell's next-layer
// equation to its fixed point, or read a cell's stored value.
type stepDef struct {
	Call    *callDef `yaml:"call"`
	Iterate string   `yaml:"iterate"`
	Read    string   `yaml:"read"`
}

type callDef struct {
	Cell string   `yaml:"cell"`
	Arg  *exprDef `yaml:"arg"`
}

// An exprDef is one expression tree node; exactly one of its forms must be
// set: lit, ref, param, call, or op with args.
type exprDef struct {
	Lit   *float64  `yaml:"lit"`
	Ref   string    `yaml:"ref"`
	Param bool      `yaml:"param"`
	Call  *callDef  `yaml:"call"`
	Op    string    `yaml:"op"`
	Args  []exprDef `yaml:"args"`
}

var opsByName = map[string]fixpoint.Op{
	"+":     fixpoint.OpAdd,
	"-":     fixpoint.OpSub,
	"*":     fixpoint.OpMul,
	"/":     fixpoint.OpDiv,
	"ceil":  fixpoint.OpCeil,
	"floor": fixpoint.OpFloor,
}

func loadScenario(filename string) (*scenario, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var sc scenario
	if err := yaml.Unmarshal(b, &sc); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &sc, nil
}

// A program is a scenario bound to a live store: cells are allocated,
// clauses registered and next-layer equations built, ready for its steps to
// run.
type program struct {
	store *fixpoint.Store[float64]
	cells map[string]fixpoint.Handle
	eqs   map[string]fixpoint.Equation[float64]
	steps []stepDef
}

func buildProgram(sc *scenario) (*program, error) {
	p := &program{
		store: fixpoint.NewStore[float64](),
		cells: make(map[string]fixpoint.Handle, len(sc.Cells)),
		eqs:   make(map[string]fixpoint.Equation[float64], len(sc.Equations)),
		steps: sc.Steps,
	}

	for _, cd := range sc.Cells {
		if cd.Name == "" {
			return nil, fmt.Errorf("cell with no name")
		}
		if _, ok := p.cells[cd.Name]; ok {
			return nil, fmt.Errorf("duplicate cell: %s", cd.Name)
		}
		p.cells[cd.Name] = p.store.NewCell(cd.Name, cd.Value)
	}

	for _, cl := range sc.Clauses {
		h, err := p.cell(cl.Cell)
		if err != nil {
			return nil, err
		}
		pat, err := p.pattern(cl.Pattern)
		if err != nil {
			return nil, fmt.Errorf("clause on %s: %w", cl.Cell, err)
		}
		body, err := p.expr(&cl.Body)
		if err != nil {
			return nil, fmt.Errorf("clause on %s: %w", cl.Cell, err)
		}
		p.store.DefineClause(h, pat, body)
	}

	for _, eq := range sc.Equations {
		h, err := p.cell(eq.Cell)
		if err != nil {
			return nil, err
		}
		if _, ok := p.eqs[eq.Cell]; ok {
			return nil, fmt.Errorf("duplicate equation for cell: %s", eq.Cell)
		}
		body, err := p.expr(&eq.Body)
		if err != nil {
			return nil, fmt.Errorf("equation for %s: %w", eq.Cell, err)
		}
		p.eqs[eq.Cell] = fixpoint.DefineNextLayer(h, body)
	}

	for i, st := range sc.Steps {
		if err := p.checkStep(&st); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return p, nil
}

func (p *program) cell(name string) (fixpoint.Handle, error) {
	h, ok := p.cells[name]
	if !ok {
		return 0, fmt.Errorf("unknown cell: %s", name)
	}
	return h, nil
}

// pattern interprets a clause pattern field: a number is a constant pattern,
// anything else is a variable (the name is purely documentary).
func (p *program) pattern(s string) (*fixpoint.Node[float64], error) {
	if s == "" {
		return nil, fmt.Errorf("missing pattern")
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return fixpoint.Const(v), nil
	}
	return fixpoint.Variable[float64](), nil
}

func (p *program) expr(e *exprDef) (*fixpoint.Node[float64], error) {
	if e == nil {
		return nil, fmt.Errorf("missing expression")
	}

	switch {
	case e.Lit != nil:
		return fixpoint.Lit(*e.Lit), nil

	case e.Ref != "":
		h, err := p.cell(e.Ref)
		if err != nil {
			return nil, err
		}
		return fixpoint.Ref[float64](h), nil

	case e.Param:
		return fixpoint.Variable[float64](), nil

	case e.Call != nil:
		h, err := p.cell(e.Call.Cell)
		if err != nil {
			return nil, err
		}
		arg, err := p.expr(e.Call.Arg)
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", e.Call.Cell, err)
		}
		return fixpoint.Apply(h, arg), nil

	case e.Op != "":
		op, ok := opsByName[e.Op]
		if !ok {
			return nil, fmt.Errorf("unknown operation: %s", e.Op)
		}
		switch op {
		case fixpoint.OpCeil, fixpoint.OpFloor:
			if len(e.Args) != 1 {
				return nil, fmt.Errorf("%s expects 1 argument, has %d", e.Op, len(e.Args))
			}
			child, err := p.expr(&e.Args[0])
			if err != nil {
				return nil, err
			}
			return fixpoint.Unary(op, child), nil
		default:
			if len(e.Args) != 2 {
				return nil, fmt.Errorf("%s expects 2 arguments, has %d", e.Op, len(e.Args))
			}
			lhs, err := p.expr(&e.Args[0])
			if err != nil {
				return nil, err
			}
			rhs, err := p.expr(&e.Args[1])
			if err != nil {
				return nil, err
			}
			return fixpoint.Binary(op, lhs, rhs), nil
		}
	}
	return nil, fmt.Errorf("empty expression: set one of lit, ref, param, call or op")
}

func (p *program) checkStep(st *stepDef) error {
	set := 0
	if st.Call != nil {
		set++
		if _, err := p.cell(st.Call.Cell); err != nil {
			return err
		}
		if _, err := p.expr(st.Call.Arg); err != nil {
			return fmt.Errorf("call %s: %w", st.Call.Cell, err)
		}
	}
	if st.Iterate != "" {
		set++
		if _, ok := p.eqs[st.Iterate]; !ok {
			return fmt.Errorf("no equation for cell: %s", st.Iterate)
		}
	}
	if st.Read != "" {
		set++
		if _, err := p.cell(st.Read); err != nil {
			return err
		}
	}
	if set != 1 {
		return fmt.Errorf("step must set exactly one of call, iterate or read")
	}
	return nil
}

// run executes the program's steps in order, writing one line per step to w.
func (p *program) run(w io.Writer, ev *fixpoint.Evaluator[float64]) error {
	for i, st := range p.steps {
		switch {
		case st.Call != nil:
			arg, err := p.expr(st.Call.Arg)
			if err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			a, err := ev.Eval(arg)
			if err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			h, _ := p.cell(st.Call.Cell)
			v, err := ev.Call(h, a)
			if err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			fmt.Fprintf(w, "%s(%g) = %g\n", st.Call.Cell, a, v)

		case st.Iterate != "":
			v, err := ev.Evaluate(p.eqs[st.Iterate])
			if err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			fmt.Fprintf(w, "%s -> %g\n", st.Iterate, v)

		case st.Read != "":
			h, _ := p.cell(st.Read)
			fmt.Fprintf(w, "%s = %g\n", st.Read, ev.Store.Value(h))
		}
	}
	return nil
}
