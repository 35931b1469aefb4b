// Package cmd wires the command-line interface to the application logic.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yfe404/actor-adopte-get-auth-token/internal/app"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/config"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/logger"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "adopte-auth [flags]",
		Short: "Log into Adopte and exchange the session for an API auth token.",
		Long: `Adopte Auth logs into the Adopte web application with the given account,
captures the refresh token the login response carries, exchanges it for a
bearer auth token at the API, and writes a single run result record.

The login can be performed either with a direct HTTP request or with a real
browser, and all traffic is routed through the configured proxy tunnel.`,
		Version:          version.Full(),
		Args:             cobra.NoArgs,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"email",
		"e",
		"",
		"account email used for login.")

	rootCmdFlags.StringP(
		"password",
		"p",
		"",
		"account password used for login.")

	rootCmdFlags.StringP(
		"strategy",
		"s",
		"",
		"login strategy: http = direct login request, browser = real browser session.")

	rootCmdFlags.Bool(
		"headless",
		true,
		"run the browser without a visible window (browser strategy only).")

	rootCmdFlags.StringP(
		"output",
		"o",
		"",
		"file to write the run result record to (default is standard output).")

	rootCmdFlags.StringP(
		"format",
		"f",
		"",
		"run result format: json or yaml.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("email"); flag != nil && flag.Changed {
		cfg.Email, _ = flags.GetString("email")
	}

	if flag := flags.Lookup("password"); flag != nil && flag.Changed {
		cfg.Password, _ = flags.GetString("password")
	}

	if flag := flags.Lookup("strategy"); flag != nil && flag.Changed {
		cfg.Strategy, _ = flags.GetString("strategy")
	}

	if flag := flags.Lookup("headless"); flag != nil && flag.Changed {
		cfg.Headless, _ = flags.GetBool("headless")
	}

	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("format"); flag != nil && flag.Changed {
		cfg.OutputFormat, _ = flags.GetString("format")
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	logger.SetLevel(cfg.ParsedLogLevel)

	return nil
}
