package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/ecmastr/internal/config"
	"github.com/dshills/ecmastr/internal/engine"
	"github.com/dshills/ecmastr/internal/logging"
)

// cli holds the flags and the engine shared by every command.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string
	logFormat  string
	locale     string
	noFast     bool
	jsonOut    bool
	file       string

	log    zerolog.Logger
	closer io.Closer
	engine *engine.Engine
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{in: stdin, out: stdout, errOut: stderr}

	root := &cobra.Command{
		Use:           "ecmastr",
		Short:         "Inspect and compare engine strings",
		Long:          "ecmastr builds engine strings from text and reports their layout, hash and locale ordering.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return c.setup()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.teardown()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "Path to configuration file (TOML or YAML)")
	pf.StringVar(&c.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	pf.StringVar(&c.logFormat, "log-format", "", "Log format (auto, console, json)")
	pf.StringVarP(&c.locale, "locale", "l", "", "Default comparison locale")
	pf.BoolVar(&c.noFast, "no-fast-path", false, "Always use the collation oracle")
	pf.BoolVar(&c.jsonOut, "json", false, "Write JSON output")
	pf.StringVarP(&c.file, "file", "f", "", "Read input text from a file (\"-\" for stdin)")

	root.AddCommand(
		newHashCmd(c),
		newCompareCmd(c),
		newInspectCmd(c),
		newFlattenCmd(c),
		newLocalesCmd(c),
		newVersionCmd(c),
	)
	return root
}

// setup loads the configuration, applies flag overrides and creates the
// logger and engine.
func (c *cli) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Log.Format = c.logFormat
	}
	if c.locale != "" {
		cfg.Collation.DefaultLocale = c.locale
	}
	if c.noFast {
		cfg.Collation.DisableFastPath = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, closer, err := logging.New(cfg.Log, logging.WithOutput(c.errOut))
	if err != nil {
		return err
	}
	c.log, c.closer = log, closer
	for _, key := range cfg.Unused {
		c.log.Warn().Str("key", key).Msg("unknown config key")
	}

	e, err := engine.New(engine.WithConfig(cfg), engine.WithLogger(log))
	if err != nil {
		closer.Close()
		return err
	}
	c.engine = e
	return nil
}

func (c *cli) teardown() error {
	var errs []error
	if c.engine != nil {
		errs = append(errs, c.engine.Close())
		c.engine = nil
	}
	if c.closer != nil {
		errs = append(errs, c.closer.Close())
		c.closer = nil
	}
	return errors.Join(errs...)
}

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(c.out, "ecmastr %s\n", version)
			fmt.Fprintf(c.out, "Commit: %s\n", commit)
			fmt.Fprintf(c.out, "Built: %s\n", date)
		},
	}
}
