package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	platformerrors "github.com/jmgilman/gitbind/errors"
	"github.com/jmgilman/gitbind/git"
	"github.com/jmgilman/gitbind/internal/config"
	"github.com/spf13/cobra"
)

// app holds state shared by all commands of one invocation.
type app struct {
	configPath string
	repoPath   string
	jsonOutput bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "gitbind",
		Short: "Inspect git repositories and native error codes",
		Long: `gitbind inspects git repositories through the gitbind binding.

Settings are read from gitbind.toml in the working directory (or --config)
and GITBIND_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cfg.Log.NewLogger(cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVarP(&a.repoPath, "repo", "C", "", "repository path (overrides config)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "print results and errors as JSON")

	root.AddCommand(
		newExplainCmd(a),
		newCodesCmd(a),
		newShowCmd(a),
		newBranchesCmd(a),
		newDiffCmd(a),
	)
	return root
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		a.printError(stderr, err)
		return 1
	}
	return 0
}

func (a *app) printError(w io.Writer, err error) {
	if a.jsonOutput {
		_ = json.NewEncoder(w).Encode(platformerrors.ToJSON(err))
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// open opens the repository selected by --repo or the config.
func (a *app) open() (*git.Repository, error) {
	path := a.cfg.Repository
	if a.repoPath != "" {
		path = a.repoPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, platformerrors.Wrapf(err, platformerrors.CodeInvalidInput, "invalid repository path %q", path)
	}
	a.logger.Debug("opening repository", "path", abs)
	//nolint:wrapcheck // errors from git package are already wrapped
	return git.Open(abs,
		git.WithLogger(a.logger),
		git.WithRetry(a.cfg.Retry.Attempts, a.cfg.Retry.Delay),
	)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeInternal, "failed to encode output")
	}
	return nil
}
