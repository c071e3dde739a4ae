package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-autofixture/internal/cli"
)

// scriptedDriver answers prompts by field path and records what was asked.
type scriptedDriver struct {
	answers  map[string]string
	asked    []string
	defaults map[string]string
	confirms []string
	confirm  bool
	err      error
}

func newScriptedDriver(answers map[string]string) *scriptedDriver {
	return &scriptedDriver{answers: answers, defaults: map[string]string{}}
}

func (d *scriptedDriver) Input(_ context.Context, cfg cli.InputConfig) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	path := strings.TrimPrefix(cfg.Message, "Spec for ")
	if i := strings.Index(path, " ("); i >= 0 {
		path = path[:i]
	}
	d.asked = append(d.asked, path)
	d.defaults[path] = cfg.Default

	answer, ok := d.answers[path]
	if !ok {
		answer = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg cli.ConfirmConfig) (bool, error) {
	d.confirms = append(d.confirms, cfg.Message)
	return d.confirm, d.err
}

func execute(t *testing.T, opts cli.Options, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const petDefinition = `
name: pet
template:
  name: ""
  age: 0
  owner:
    email: ""
specs:
  age: 0 < integer < 5
  owner:
    email: string[6]
`
