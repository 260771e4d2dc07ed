package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
	"github.com/shibukawa/pyhdl"
	"github.com/stretchr/testify/require"
)

const counterTree = `
"@type": Module
body:
  - "@type": FunctionDef
    name: tick
    args: {"@type": arguments, args: [{"@type": arg, arg: self}, {"@type": arg, arg: en}]}
    decorator_list: [{"@type": Name, id: seq}]
    body:
      - "@type": If
        test: {"@type": Name, id: en}
        body:
          - "@type": AugAssign
            target:
              "@type": Subscript
              value: {"@type": Attribute, attr: regs, value: {"@type": Name, id: self}}
              slice: {"@type": Index, value: {"@type": Name, id: i}}
            op: Add
            value: {"@type": Num, n: 1}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestSimplifyCmd(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "tick.yaml", counterTree)

	t.Run("Text", func(t *testing.T) {
		var out bytes.Buffer

		cmd := &SimplifyCmd{Input: input}
		err := cmd.Run(&Context{Config: filepath.Join(dir, "missing.yaml"), Quiet: true, Stdout: &out})
		require.NoError(t, err)

		assert.Contains(t, out.String(), "FunctionDef name=tick\n")
		assert.Contains(t, out.String(), "BaseRef name=self")
		assert.Contains(t, out.String(), "Member attr=regs")
		assert.Contains(t, out.String(), "LocalRef name=i")
		assert.Contains(t, out.String(), "decorators: []")
	})

	t.Run("ConfigFormat", func(t *testing.T) {
		config := writeFile(t, dir, "pyhdl.yaml", "output:\n  format: xml\n  positions: true\n")

		var out bytes.Buffer

		cmd := &SimplifyCmd{Input: input}
		require.NoError(t, cmd.Run(&Context{Config: config, Quiet: true, Stdout: &out}))
		assert.Contains(t, out.String(), "<FunctionDef name=\"tick\">")
	})

	t.Run("FlagsOverrideConfig", func(t *testing.T) {
		config := writeFile(t, dir, "pyhdl-xml.yaml", "output:\n  format: xml\n")
		output := filepath.Join(dir, "tick.out.yaml")

		cmd := &SimplifyCmd{Input: input, Format: "yaml", Output: output}
		require.NoError(t, cmd.Run(&Context{Config: config, Quiet: true}))

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(data), "kind: FunctionDef")
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		cmd := &SimplifyCmd{Input: input, Format: "dot"}
		err := cmd.Run(&Context{Config: filepath.Join(dir, "missing.yaml"), Quiet: true, Stdout: &bytes.Buffer{}})
		assert.Error(t, err)
	})

	t.Run("VerboseAndQuiet", func(t *testing.T) {
		cmd := &SimplifyCmd{Input: input}
		err := cmd.Run(&Context{Config: filepath.Join(dir, "missing.yaml"), Verbose: true, Quiet: true})
		assert.True(t, errors.Is(err, ErrVerboseQuietTogether))
	})
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", counterTree)
	bad := writeFile(t, dir, "bad.yaml", `{"@type": Module, body: [{"@type": Pass}]}`)
	config := filepath.Join(dir, "missing.yaml")

	t.Run("OK", func(t *testing.T) {
		cmd := &CheckCmd{Inputs: []string{good}}
		assert.NoError(t, cmd.Run(&Context{Config: config, Quiet: true}))
	})

	t.Run("Failure", func(t *testing.T) {
		cmd := &CheckCmd{Inputs: []string{good, bad}}
		err := cmd.Run(&Context{Config: config, Quiet: true})
		assert.True(t, errors.Is(err, ErrCheckFailed))
		assert.Contains(t, err.Error(), "1 of 2")
	})
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer

	cmd := &VersionCmd{}
	assert.NoError(t, cmd.Run(&Context{Stdout: &out}))
	assert.Equal(t, "pyhdl v0.1.0\n", out.String())
}

func TestCLIParse(t *testing.T) {
	var cli CLI

	parser, err := kong.New(&cli, kong.Name("pyhdl"))
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"-v", "simplify", "tick.yaml", "-f", "yaml", "--receiver", "model", "--positions"})
	require.NoError(t, err)

	assert.Equal(t, "simplify <input>", ctx.Command())
	assert.True(t, cli.Verbose)
	assert.Equal(t, "pyhdl.yaml", cli.Config)
	assert.Equal(t, "yaml", cli.Simplify.Format)
	assert.Equal(t, "model", cli.Simplify.Receiver)
	assert.True(t, cli.Simplify.Positions)
	assert.Equal(t, "tick.yaml", filepath.Base(cli.Simplify.Input))
}

func TestChainCmd(t *testing.T) {
	config := filepath.Join(t.TempDir(), "missing.yaml")

	t.Run("Steps", func(t *testing.T) {
		var out bytes.Buffer

		cmd := &ChainCmd{Path: "s.mem[i].val[0:4]", Steps: true}
		require.NoError(t, cmd.Run(&Context{Config: config, Stdout: &out}))
		assert.Equal(t, "BaseRef -> Member -> IndexAccess -> Member -> SliceAccess\n", out.String())
	})

	t.Run("Text", func(t *testing.T) {
		var out bytes.Buffer

		cmd := &ChainCmd{Path: "s.regs[2]"}
		require.NoError(t, cmd.Run(&Context{Config: config, Stdout: &out}))
		assert.Contains(t, out.String(), "BaseRef name=s\n")
		assert.Contains(t, out.String(), "Num value=2\n")
	})

	t.Run("Step", func(t *testing.T) {
		cmd := &ChainCmd{Path: "x[0:8:2]"}
		err := cmd.Run(&Context{Config: config, Stdout: &bytes.Buffer{}})
		assert.True(t, errors.Is(err, pyhdl.ErrMalformedSlice))
	})
}
