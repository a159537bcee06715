package maincmd_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/mna/fixpoint/internal/maincmd"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	var c maincmd.Cmd
	file := filepath.Join("testdata", "in", "cooling.yaml")
	err := c.Check(context.Background(), stdio, []string{file})
	require.NoError(t, err)
	assert.Equal(t, file+": cells=1 clauses=0 equations=1 steps=2\n", buf.String())
	assert.Empty(t, ebuf.String())
}

func TestCheckInvalid(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	var c maincmd.Cmd
	file := filepath.Join("testdata", "in", "badop.yaml")
	err := c.Check(context.Background(), stdio, []string{file})
	assert.ErrorContains(t, err, "unknown operation: ^")
	assert.Empty(t, buf.String())
	assert.Contains(t, ebuf.String(), "badop.yaml")
}

func TestValidate(t *testing.T) {
	file := filepath.Join("testdata", "in", "cooling.yaml")

	cases := []struct {
		name    string
		args    []string
		flags   map[string]bool
		wantErr string
	}{
		{"no command", nil, nil, "no command specified"},
		{"unknown command", []string{"frobnicate"}, nil, "unknown command: frobnicate"},
		{"run without files", []string{"run"}, nil, "at least one file"},
		{"check without files", []string{"check"}, nil, "at least one file"},
		{"run with files", []string{"run", file}, nil, ""},
		{"check with evaluation flag", []string{"check", file}, map[string]bool{"tolerance": true}, "only valid for the run command"},
		{"run with zero tolerance", []string{"run", file}, map[string]bool{"tolerance": true}, "tolerance must be > 0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var cmd maincmd.Cmd
			cmd.SetArgs(c.args)
			cmd.SetFlags(c.flags)
			err := cmd.Validate()
			if c.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, c.wantErr)
			}
		})
	}
}
