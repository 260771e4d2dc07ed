package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool

	// Stdout receives rendered trees. Nil means os.Stdout.
	Stdout io.Writer
}

func (c *Context) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}

	return c.Stdout
}

// CLI represents the command-line interface
type CLI struct {
	Config   string      `help:"Configuration file path" default:"pyhdl.yaml"`
	Verbose  bool        `help:"Enable verbose output" short:"v"`
	Quiet    bool        `help:"Suppress output" short:"q"`
	Simplify SimplifyCmd `cmd:"" help:"Normalize the parsed tree of one method"`
	Check    CheckCmd    `cmd:"" help:"Check that parsed trees can be normalized"`
	Chain    ChainCmd    `cmd:"" help:"Normalize a single access path such as s.mem[i].val"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.stdout(), "pyhdl v0.1.0")
	return nil
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("pyhdl"),
		kong.Description("Normalize parsed hardware model methods for code generation."),
	)

	appCtx := &Context{
		Config:  cli.Config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
