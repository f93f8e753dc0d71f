// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/hashicorp/tracescrub/hcl"
	"github.com/hashicorp/tracescrub/redact"
	"github.com/hashicorp/tracescrub/trace"
)

var _ cli.Command = &RunCommand{}

type RunCommand struct {
	ui    cli.Ui
	flags *flag.FlagSet

	// Raw trace input location; empty means stdin
	file string

	// HCL file location
	config string

	// Output rendering, "json" or "text"
	format string

	// Sensitive-name override from the command line
	sensitiveNames []string
}

func (c *RunCommand) init() {
	const (
		fileUsageText           = "Path to a file containing the raw trace dump. When omitted, the dump is read from stdin."
		configUsageText         = "Path to HCL configuration file"
		formatUsageText         = "Output format for the redacted frames; one of 'json' or 'text'"
		sensitiveNamesUsageText = "Comma-separated list of argument names whose following value should be masked. Fully replaces the built-in defaults and takes precedence over the configuration file."
	)

	// flag.ContinueOnError allows flag.Parse to return an error if one comes up, rather than doing an `os.Exit(2)`
	// on its own.
	c.flags = flag.NewFlagSet("run", flag.ContinueOnError)

	c.flags.StringVar(&c.file, "file", "", fileUsageText)
	c.flags.StringVar(&c.config, "config", "", configUsageText)
	c.flags.StringVar(&c.format, "format", "json", formatUsageText)
	c.flags.Var(&CSVFlag{&c.sensitiveNames}, "sensitive-names", sensitiveNamesUsageText)

	// When invalid flags are provided, Go will output a usage message of its own. If we direct our flag set to
	// io.Discard, it will effectively be hidden, allowing us to print our own Help message upon failure.
	c.flags.SetOutput(io.Discard)
}

// NewRunCommand produces a new *command pointer, initialized for use in a CLI application.
func NewRunCommand(ui cli.Ui) *RunCommand {
	c := &RunCommand{ui: ui}
	c.init()
	return c
}

// RunCommandFactory provides a cli.CommandFactory that will produce an appropriately-initiated *command.
func RunCommandFactory(ui cli.Ui) cli.CommandFactory {
	return func() (cli.Command, error) {
		return NewRunCommand(ui), nil
	}
}

// Help provides help text to users who pass in the --help flag or who enter invalid options.
func (c *RunCommand) Help() string {
	helpText := `Usage: tracescrub run [options]

Parses a raw stack-trace dump into structured call frames and masks the argument values
that follow sensitive argument names, then writes the redacted frames to stdout.
`

	return Usage(helpText, c.flags)
}

// Synopsis provides a brief description of the command, for inclusion in the application's primary --help.
func (c *RunCommand) Synopsis() string {
	return "Redact sensitive argument values from a stack-trace dump"
}

// Run executes the command.
func (c *RunCommand) Run(args []string) int {
	if err := c.parseFlags(args); err != nil {
		// Output the specific error to help the user understand what went wrong.
		c.ui.Warn(err.Error())
		// Since there was an issue in input, let's show our Help to try and assist the user.
		c.ui.Warn(c.Help())
		return FlagParseError
	}

	if c.format != "json" && c.format != "text" {
		c.ui.Warn(fmt.Sprintf("invalid format, format=%s", c.format))
		c.ui.Warn(c.Help())
		return FlagParseError
	}

	l := configureLogging("tracescrub")

	// Build redaction configuration from the HCL file, then let flags win over it.
	var cfg redact.Config
	if c.config != "" {
		path, err := homedir.Expand(c.config)
		if err != nil {
			l.Error("Failed to expand configuration path", "config", c.config, "error", err)
			return ConfigError
		}
		hclCfg, err := hcl.Parse(path)
		if err != nil {
			l.Error("Failed to load configuration", "config", path, "error", err)
			return ConfigError
		}
		l.Debug("HCL config is", "hcl", hclCfg)
		cfg = hcl.MapConfig(hclCfg)
	}
	cfg = c.mergeConfig(cfg)
	l.Debug("merged cfg", "cfg", fmt.Sprintf("%+v", cfg))

	raw, err := c.readTrace()
	if err != nil {
		l.Error("Failed to read trace input", "file", c.file, "error", err)
		return InputError
	}

	frames, err := redact.Scrub(trace.NewLineParser(), raw, cfg)
	if err != nil {
		l.Error("Failed to parse trace", "error", err)
		return ParseError
	}
	l.Debug("redacted frames", "count", len(frames))

	if err := writeFrames(os.Stdout, frames, c.format); err != nil {
		l.Error("Failed to write redacted frames", "error", err)
		return OutputError
	}

	return Success
}

// configureLogging takes a logger name, sets the default configuration, grabs the LOG_LEVEL from our ENV vars, and
// returns a configured and usable logger.
func configureLogging(loggerName string) hclog.Logger {
	// Create logger, set default and log level
	appLogger := hclog.New(&hclog.LoggerOptions{
		Name:  loggerName,
		Color: hclog.AutoColor,
	})
	hclog.SetDefault(appLogger)
	if logStr := os.Getenv("LOG_LEVEL"); logStr != "" {
		if level := hclog.LevelFromString(logStr); level != hclog.NoLevel {
			appLogger.SetLevel(level)
			appLogger.Debug("Logger configuration change", "LOG_LEVEL", hclog.Fmt("%s", logStr))
		}
	}
	return hclog.Default()
}

type CSVFlag struct {
	Values *[]string
}

func (s CSVFlag) String() string {
	if s.Values == nil {
		return ""
	}
	return strings.Join(*s.Values, ",")
}

func (s CSVFlag) Set(v string) error {
	*s.Values = strings.Split(v, ",")
	return nil
}

func (c *RunCommand) parseFlags(args []string) error {
	return c.flags.Parse(args)
}

// mergeConfig merges flags into the redact.Config, prioritizing flags over HCL config.
func (c *RunCommand) mergeConfig(cfg redact.Config) redact.Config {
	if c.sensitiveNames != nil {
		cfg.SensitiveNames = c.sensitiveNames
	}
	return cfg
}

// readTrace reads the raw dump from the configured file, or stdin when no file is set.
func (c *RunCommand) readTrace() (string, error) {
	if c.file == "" {
		bts, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(bts), nil
	}
	path, err := homedir.Expand(c.file)
	if err != nil {
		return "", err
	}
	bts, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(bts), nil
}

// writeFrames renders the redacted frames to w in the requested format.
func writeFrames(w io.Writer, frames []trace.RedactedCallFrame, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(frames)
	case "text":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, f := range frames {
			location := fmt.Sprintf("%s:%d", f.File, f.Line)
			if f.Func == "" {
				_, _ = fmt.Fprintf(tw, "%s\ttrace begun\n", location)
				continue
			}
			_, _ = fmt.Fprintf(tw, "%s\t%s(%s)\n", location, f.Func, renderArgs(f.RedactedArgs))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format, format=%s", format)
	}
}

// renderArgs joins the redacted argument values for the text rendering, spelling out
// missing values as undef the way the dump format does.
func renderArgs(args []*string) string {
	vals := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			vals[i] = "undef"
			continue
		}
		vals[i] = *a
	}
	return strings.Join(vals, ", ")
}
