package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
)

func (c *Cmd) Check(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, file := range args {
		sc, err := loadScenario(file)
		if err != nil {
			return printError(stdio, err)
		}
		if _, err := buildProgram(sc); err != nil {
			return printError(stdio, fmt.Errorf("%s: %w", file, err))
		}
		fmt.Fprintf(stdio.Stdout, "%s: cells=%d clauses=%d equations=%d steps=%d\n",
			file, len(sc.Cells), len(sc.Clauses), len(sc.Equations), len(sc.Steps))
	}
	return nil
}
