package qrgen

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Badsnus/qrgen/internal/adapters/config"
	"github.com/Badsnus/qrgen/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion overrides the build information shown by `qrgen version`.
// Empty values keep the defaults.
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
	if d != "" {
		date = d
	}
}

type cli struct {
	configPath string
	verbose    bool
	stderr     io.Writer
	app        *App
}

// NewRootCommand builds the command tree. Command output goes to the
// command's out writer, logs to stderr.
func NewRootCommand(stderr io.Writer) *cobra.Command {
	c := &cli{stderr: stderr}

	root := &cobra.Command{
		Use:           "qrgen",
		Short:         "qrgen renders branded QR codes for social media profiles",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(versionString())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a config file (default ./config.yaml if present)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.newGenerateCmd())
	root.AddCommand(newScanCmd())
	root.AddCommand(newPlatformsCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// load reads configuration and builds the App on first use. Commands that do
// not render never pay for it.
func (c *cli) load() (*App, error) {
	if c.app != nil {
		return c.app, nil
	}

	cfg, err := config.Get(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.verbose {
		cfg.Logger.Debug = true
	}
	cfg.Logger.Output = c.stderr

	if err = logger.Init(cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	app, err := NewApp(cfg)
	if err != nil {
		return nil, err
	}
	c.app = app
	return app, nil
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}

func versionString() string {
	return fmt.Sprintf("qrgen %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionString())
		},
	}
}
