package main

import (
	"fmt"
	"strings"

	"github.com/shibukawa/pyhdl/accesspath"
	"github.com/shibukawa/pyhdl/chain"
	"github.com/shibukawa/pyhdl/dump"
)

// ChainCmd represents the chain command
type ChainCmd struct {
	Path      string `arg:"" help:"Access path, e.g. 's.mem[i][0:4]'"`
	Format    string `help:"Output format (text, yaml, xml)" short:"f"`
	Steps     bool   `help:"Print only the link kinds in source order"`
	Positions bool   `help:"Include source positions"`
}

// Run executes the chain command
func (cmd *ChainCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if cmd.Format != "" {
		config.Output.Format = cmd.Format
	}

	expr, err := accesspath.Parse(cmd.Path, 1, 1)
	if err != nil {
		return err
	}

	root, err := chain.Reverse(expr)
	if err != nil {
		return err
	}

	if cmd.Steps {
		var kinds []string
		for _, step := range chain.Steps(root) {
			kinds = append(kinds, step.Kind().String())
		}

		_, err = fmt.Fprintln(ctx.stdout(), strings.Join(kinds, " -> "))

		return err
	}

	out, err := dump.Render(root, dump.Format(config.Output.Format), dump.Options{Positions: cmd.Positions || config.Output.Positions})
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(ctx.stdout(), out)

	return err
}
