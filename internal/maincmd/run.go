package maincmd

import (
	"context"

	"github.com/mna/fixpoint"
	"github.com/mna/mainer"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, file := range args {
		sc, err := loadScenario(file)
		if err != nil {
			return printError(stdio, err)
		}
		p, err := buildProgram(sc)
		if err != nil {
			return printError(stdio, err)
		}

		// flags win over file-level settings
		ev := fixpoint.Evaluator[float64]{
			Store:         p.store,
			Tolerance:     sc.Tolerance,
			MaxIterations: sc.MaxIterations,
		}
		if c.flags["tolerance"] {
			ev.Tolerance = c.Tolerance
		}
		if c.flags["max-iterations"] {
			ev.MaxIterations = c.MaxIterations
		}

		if err := p.run(stdio.Stdout, &ev); err != nil {
			return printError(stdio, err)
		}
	}
	return nil
}
