package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaultops/syspass-cli/internal/api/syspass"
	"github.com/vaultops/syspass-cli/internal/config"
	"github.com/vaultops/syspass-cli/internal/logging"
	"github.com/vaultops/syspass-cli/internal/prompt"
	"github.com/vaultops/syspass-cli/internal/usage"
)

// Execute runs the CLI and returns the first error a command produced.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

// NewRootCmd builds the command tree. The App collaborators are wired in
// PersistentPreRunE so flags are already parsed when the config loads.
func NewRootCmd(version string) *cobra.Command {
	app := &App{out: os.Stdout, version: version}

	var (
		configPath string
		verbose    bool
		debug      bool
	)

	root := &cobra.Command{
		Use:           "syspass-cli",
		Short:         "CLI client for the sysPass password manager",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(configPath, verbose, debug)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to a custom config file")
	pf.BoolVarP(&app.quiet, "quiet", "q", false, "Do not output any message")
	pf.BoolVar(&verbose, "verbose", false, "Output more information")
	pf.BoolVarP(&debug, "debug", "d", false, "Output debug information")

	root.AddCommand(
		newSearchCmd(app),
		newNewCmd(app),
		newEditCmd(app),
		newRemoveCmd(app),
		newCheckUpdateCmd(app),
	)
	return root
}

// init loads the config and wires logger, prompts, usage store and the
// API client for the selected backend version.
func (a *App) init(configPath string, verbose, debug bool) error {
	level := slog.LevelWarn
	switch {
	case debug:
		level = slog.LevelDebug
	case verbose:
		level = slog.LevelInfo
	case a.quiet:
		level = slog.LevelError
	}
	a.log = logging.NewTextLogger(os.Stderr, level)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.ask = &prompt.Asker{Quiet: a.quiet}

	usagePath, err := config.UsagePath()
	if err != nil {
		return err
	}
	store := usage.NewStore(usagePath, a.log)
	a.usage = store

	client, err := syspass.New(cfg, store, a.secretPrompt(), a.log)
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

// secretPrompt asks for the vault password when the config leaves it
// empty. The transport caches the answer for the process.
func (a *App) secretPrompt() syspass.SecretPrompt {
	return func() (string, error) {
		return a.ask.Password("Enter vault password:", false)
	}
}
