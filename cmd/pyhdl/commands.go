package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/shibukawa/pyhdl"
	"github.com/shibukawa/pyhdl/ast"
	"github.com/shibukawa/pyhdl/dump"
	"github.com/shibukawa/pyhdl/importer"
	"github.com/shibukawa/pyhdl/simplifier"
	"github.com/sirupsen/logrus"
)

// SimplifyCmd represents the simplify command
type SimplifyCmd struct {
	Input       string `arg:"" help:"Parsed tree file (YAML, JSON or Markdown)" type:"path"`
	Format      string `help:"Output format (text, yaml, xml)" short:"f"`
	InputFormat string `help:"Input format (auto, yaml, json, markdown)"`
	Receiver    string `help:"Receiver parameter name (default: first parameter)"`
	Output      string `help:"Output file (default: stdout)" short:"o" type:"path"`
	Positions   bool   `help:"Include source positions"`
}

// Run executes the simplify command
func (cmd *SimplifyCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if cmd.Format != "" {
		config.Output.Format = cmd.Format
	}

	if cmd.InputFormat != "" {
		config.Input.Format = cmd.InputFormat
	}

	if cmd.Receiver != "" {
		config.Receiver = cmd.Receiver
	}

	if cmd.Output != "" {
		config.Output.Path = cmd.Output
	}

	if cmd.Positions {
		config.Output.Positions = true
	}

	logger := newLogger(ctx, config)

	fn, _, err := normalize(cmd.Input, config, logger)
	if err != nil {
		return err
	}

	out, err := dump.Render(fn, dump.Format(config.Output.Format), dump.Options{Positions: config.Output.Positions})
	if err != nil {
		return err
	}

	if config.Output.Path == "" {
		_, err = fmt.Fprint(ctx.stdout(), out)
		return err
	}

	if err := os.WriteFile(config.Output.Path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !ctx.Quiet {
		color.Green("Simplified %s: %s", cmd.Input, config.Output.Path)
	}

	return nil
}

// CheckCmd represents the check command
type CheckCmd struct {
	Inputs      []string `arg:"" help:"Parsed tree files" type:"path"`
	InputFormat string   `help:"Input format (auto, yaml, json, markdown)"`
	Receiver    string   `help:"Receiver parameter name (default: first parameter)"`
}

// Run executes the check command
func (cmd *CheckCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if cmd.InputFormat != "" {
		config.Input.Format = cmd.InputFormat
	}

	if cmd.Receiver != "" {
		config.Receiver = cmd.Receiver
	}

	logger := newLogger(ctx, config)
	failed := 0

	for _, input := range cmd.Inputs {
		fn, baseName, err := normalize(input, config, logger)
		if err != nil {
			failed++

			if !ctx.Quiet {
				color.Red("NG %s: %v", input, err)
			}

			continue
		}

		if !ctx.Quiet {
			color.Green("OK %s (function %s, base %s)", input, fn.Name, baseName)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrCheckFailed, failed, len(cmd.Inputs))
	}

	if ctx.Verbose {
		color.Blue("Checked %d file(s)", len(cmd.Inputs))
	}

	return nil
}

func loadConfig(ctx *Context) (*pyhdl.Config, error) {
	if ctx.Verbose && ctx.Quiet {
		return nil, ErrVerboseQuietTogether
	}

	config, err := pyhdl.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return config, nil
}

// newLogger writes to stderr so rendered trees on stdout stay clean.
func newLogger(ctx *Context, config *pyhdl.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level, err := logrus.ParseLevel(config.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	switch {
	case ctx.Verbose:
		level = logrus.DebugLevel
	case ctx.Quiet:
		level = logrus.ErrorLevel
	}

	logger.SetLevel(level)

	return logger
}

// normalize loads one tree file and runs the simplifier on it.
func normalize(path string, config *pyhdl.Config, logger logrus.FieldLogger) (*ast.FunctionDef, string, error) {
	mod, err := importer.LoadFile(path, importer.Format(config.Input.Format))
	if err != nil {
		return nil, "", err
	}

	logger.WithFields(logrus.Fields{"file": path, "statements": len(mod.Body)}).Debug("loaded tree")

	s := simplifier.New(config.Receiver)
	s.Logger = logger.WithField("file", path)

	fn, err := s.Simplify(mod)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}

	return fn, s.BaseName(), nil
}
