// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/session"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/utils"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

// app carries what every command shares: flags, logger and the session.
type app struct {
	env     string
	format  string
	verbose bool
	iniPath string

	logger *zap.Logger
}

func main() {
	// Ctrl-C cancels in-flight platform calls and storage writes
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	stop()
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mscli",
		Short: "Upload files to Media Shuttle share portals",
		Long: `mscli resolves a Media Shuttle account and share portal by name,
opens an upload session on it and transfers local files.

Credentials and defaults are read from ~/.mediashuttle.ini (see 'mscli configure')
and can be overridden by environment variables or a .env file.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			a.logger = logger
			zap.ReplaceGlobals(logger)

			if a.iniPath == "" {
				a.iniPath = utils.IniPath()
			}
			return utils.RegisterIniCfgWithViper(a.iniPath, a.env)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.env, "env", "e", "", "environment (INI section) to use")
	rootCmd.PersistentFlags().StringVarP(&a.format, "out", "o", "short", "output format: short, json, yaml")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging and per-file progress")
	rootCmd.PersistentFlags().StringVar(&a.iniPath, "config", "", "path of the INI file (default ~/.mediashuttle.ini)")

	rootCmd.AddCommand(
		configureCmd(a),
		accountsCmd(a),
		portalsCmd(a),
		resolveCmd(a),
		uploadCmd(a),
	)
	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

func (a *app) session() (*session.Session, error) {
	conf, err := utils.PlatformConfigFromViper()
	if err != nil {
		return nil, err
	}
	return session.NewSessionFromConfig(conf, session.WithLogger(a.logger)), nil
}
