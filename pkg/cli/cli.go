package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/khalid-nowaf/radixtree/internal/config"
	"github.com/pkg/errors"
)

// Context is handed to every command's Run method.
type Context struct {
	Config config.Config
	Logger *slog.Logger
	Out    io.Writer
}

// CLI is the kong grammar of the radix command.
type CLI struct {
	Config    string `help:"TOML config file, ./radix.toml is used when present" type:"path" placeholder:"FILE"`
	Buckets   int    `help:"Child table size of every tree node, overrides the config file"`
	LogLevel  string `help:"Log level (debug, info, warn, error), overrides the config file"`
	LogFormat string `help:"Log format (text, json), overrides the config file"`

	Lookup LookupCmd `cmd:"" help:"Resolve IP addresses to their most specific CIDR"`
	Dump   DumpCmd   `cmd:"" help:"Print the CIDRs, or the prefix tree, built from input files"`
	Prefix PrefixCmd `cmd:"" help:"Find the longest dictionary word that prefixes each query"`
}

// Execute parses args and runs the selected command, writing results to
// stdout and logs to stderr.
func Execute(args []string, stdout io.Writer, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("radix"),
		kong.Description("Longest prefix lookups on compressed prefix trees."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	runCtx, err := cli.context(stdout, stderr, flagSet(ctx, "buckets"))
	if err != nil {
		return err
	}
	return ctx.Run(runCtx)
}

// flagSet reports whether the flag name was given on the command line.
func flagSet(ctx *kong.Context, name string) bool {
	for _, path := range ctx.Path {
		if path.Flag != nil && path.Flag.Name == name {
			return true
		}
	}
	return false
}

// context resolves the configuration: defaults, then the config file, then
// the command line flags.
func (c *CLI) context(stdout io.Writer, stderr io.Writer, bucketsSet bool) (*Context, error) {
	path := c.Config
	if path == "" {
		if _, err := os.Stat(config.FileName); err == nil {
			path = config.FileName
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if bucketsSet {
		cfg.Buckets = c.Buckets
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.Log.Format = c.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid flags")
	}

	logger := newLogger(cfg, stderr)
	if cfg.LoadPath != "" {
		logger.Debug("config loaded", "path", cfg.LoadPath, "buckets", cfg.Buckets)
	}
	return &Context{
		Config: cfg,
		Logger: logger,
		Out:    stdout,
	}, nil
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
