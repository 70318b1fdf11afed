package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/fg-sync/pkg/runtime/terminal/commands"
	"github.com/de-tools/fg-sync/pkg/runtime/terminal/export"
	"github.com/de-tools/fg-sync/pkg/services/pipeline"
)

// CLI represents the command-line interface
type CLI struct {
	runtime  *commands.Runtime
	logLevel string
	pretty   bool
	logOut   io.Writer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry pipeline.Registry
	Output   io.Writer
	Connect  commands.Connector
	Sheets   commands.SheetsConnector
	Now      func() time.Time

	// LogOutput receives the structured log. Defaults to stderr.
	LogOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	cli := &CLI{
		runtime: &commands.Runtime{
			Registry: opts.Registry,
			Reporter: export.NewReporter(opts.Output),
			Connect:  opts.Connect,
			Sheets:   opts.Sheets,
			Now:      opts.Now,
		},
		logOut: opts.LogOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mainly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "fgsync",
		Short:             "Sync FG packing operations from the ERP to Google Sheets",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setupLogger,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.runtime.ConfigFile, "config", "", "Path to a yaml, toml or json config file")
	flags.StringSliceVar(&cli.runtime.EnvFiles, "env-file", []string{".env"}, "Dotenv files to load")
	flags.StringVar(&cli.runtime.ProfilesFile, "profiles", "", "Path to an ini file with ERP connection profiles")
	flags.StringVar(&cli.runtime.Profile, "profile", "DEFAULT", "Profile to read from --profiles")
	flags.StringVar(&cli.runtime.ExportDir, "xlsx", "", "Directory to write a local xlsx copy of each run")
	flags.BoolVar(&cli.runtime.DryRun, "dry-run", false, "Skip publishing to Google Sheets")
	flags.StringVar(&cli.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.BoolVar(&cli.pretty, "pretty", false, "Human readable log output")

	cmd.AddCommand(commands.NewRunCmd(cli.runtime))
	cmd.AddCommand(commands.NewPipelinesCmd(cli.runtime))
	for _, name := range cli.runtime.Registry.List() {
		cmd.AddCommand(commands.NewPipelineCmd(cli.runtime, name))
	}

	return cmd
}

func (cli *CLI) setupLogger(cmd *cobra.Command, _ []string) error {
	level, err := zerolog.ParseLevel(cli.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cli.logLevel, err)
	}

	out := cli.logOut
	if cli.pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}
