package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/crateloft/plugseed/internal/bundle"
	"github.com/crateloft/plugseed/internal/messages"
	"github.com/crateloft/plugseed/internal/policy"
	"github.com/crateloft/plugseed/internal/seed"
	"github.com/crateloft/plugseed/internal/terminal"
)

const defaultConfigName = "plugseed.toml"

var isTerminal = terminal.IsInteractive

type seedFlags struct {
	bundleDir       string
	installDir      string
	prefix          string
	configPath      string
	interactive     bool
	installOptional bool
	verbose         bool
}

func newSeedCmd() *cobra.Command {
	var flags seedFlags

	cmd := &cobra.Command{
		Use:   messages.SeedUse,
		Short: messages.SeedShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.bundleDir, "bundle", "", messages.SeedFlagBundle)
	cmd.Flags().StringVar(&flags.installDir, "install-dir", "", messages.SeedFlagInstallDir)
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", messages.SeedFlagPrefix)
	cmd.Flags().StringVar(&flags.configPath, "config", "", messages.SeedFlagConfig)
	cmd.Flags().BoolVar(&flags.interactive, "interactive", false, messages.SeedFlagInteractive)
	cmd.Flags().BoolVar(&flags.installOptional, "install-optional", false, messages.SeedFlagInstallOptional)
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, messages.SeedFlagVerbose)
	cmd.MarkFlagsMutuallyExclusive("interactive", "install-optional")

	return cmd
}

func runSeed(cmd *cobra.Command, flags seedFlags) error {
	file, err := loadPolicyFile(flags.configPath)
	if err != nil {
		return err
	}

	bundleDir := flags.bundleDir
	installDir := flags.installDir
	prefix := flags.prefix
	var pol policy.Policy
	if file != nil {
		pol = file.Policy()
		if bundleDir == "" {
			bundleDir = file.Bundle.Dir
		}
		if installDir == "" {
			installDir = file.Install.Dir
		}
		if prefix == "" {
			prefix = file.Bundle.Prefix
		}
	}
	if bundleDir == "" {
		return fmt.Errorf(messages.SeedBundleRequired)
	}
	if installDir == "" {
		return fmt.Errorf(messages.SeedInstallDirRequired)
	}
	if bundleDir, err = expandPath(bundleDir); err != nil {
		return err
	}
	if installDir, err = expandPath(installDir); err != nil {
		return err
	}

	source, err := bundle.NewDirSource(bundleDir)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), flags.verbose)

	var hook seed.Hook
	switch {
	case flags.interactive:
		if !isTerminal() {
			return fmt.Errorf(messages.SeedInteractiveNoTerminal)
		}
		hook = confirmOptionalHook(logger)
	case flags.installOptional:
		hook = seed.InstallOptionalHook()
	}

	engine, err := seed.New(seed.Options{
		InstallDir: installDir,
		Prefix:     prefix,
		Source:     source,
		Hook:       hook,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	installed, err := engine.Run(pol)
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), installed, installDir)
	return nil
}

// loadPolicyFile loads the policy file from the --config path, falling back
// to plugseed.toml in the working directory when one exists.
func loadPolicyFile(path string) (*policy.File, error) {
	if path != "" {
		return policy.Load(path)
	}
	if _, err := os.Stat(defaultConfigName); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return policy.Load(defaultConfigName)
}

func expandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.SeedExpandPathFmt, path, err)
	}
	return expanded, nil
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "plugseed"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func printSummary(out io.Writer, installed []string, installDir string) {
	if len(installed) == 0 {
		_, _ = fmt.Fprintln(out, messages.SeedSummaryNothing)
		return
	}
	_, _ = fmt.Fprintln(out, color.GreenString(messages.SeedSummaryInstalledFmt, len(installed), installDir))
	for _, name := range installed {
		_, _ = fmt.Fprintf(out, messages.SeedResultLineFmt, name)
	}
}
