package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/metalagman/buildassets/internal/asset"
	"github.com/metalagman/buildassets/internal/config"
	"github.com/metalagman/buildassets/internal/logging"
	"github.com/metalagman/buildassets/internal/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var errValidationFailed = errors.New("validation failed")

// Execute runs the root command.
func Execute() error {
	cmd, err := rootCmd()
	if err != nil {
		return err
	}
	return cmd.Execute()
}

func rootCmd() (*cobra.Command, error) {
	v := viper.New()
	v.SetEnvPrefix("BUILD_ASSETS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var (
		validateOnly bool
		format       string
	)
	cmd := &cobra.Command{
		Use:           "build-assets [assets-file]",
		Short:         "Generate modules exporting package versions and file contents",
		Long:          "build-assets reads an assets file and writes one small JavaScript module per asset, exporting a package version or the text of a file as a constant.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Init(cmd.ErrOrStderr(), v.GetBool("debug"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := v.GetString("assets-file")
			if len(args) == 1 {
				path = args[0]
			}
			if validateOnly {
				return runValidate(cmd.OutOrStdout(), cmd.ErrOrStderr(), path, format)
			}
			return runBuild(path)
		},
	}

	cmd.Flags().StringP("assets-file", "a", config.DefaultFile, "assets file path")
	cmd.Flags().BoolVar(&validateOnly, "validate", false, "check the assets file and print the build plan without writing anything")
	cmd.Flags().StringVar(&format, "format", report.FormatText, "validation output format ("+strings.Join(report.Formats, ", ")+")")
	cmd.Flags().Bool("debug", false, "enable debug logging")
	for _, name := range []string{"assets-file", "debug"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind %s flag: %w", name, err)
		}
	}
	return cmd, nil
}

func runValidate(stdout, stderr io.Writer, path, format string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	rep := asset.Validate(cfg)
	out := stdout
	if !rep.OK() && (format == "" || strings.EqualFold(format, report.FormatText)) {
		out = stderr
	}
	if err := report.Write(out, rep, format); err != nil {
		return err
	}
	if !rep.OK() {
		return errValidationFailed
	}
	return nil
}

func runBuild(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	outputs, err := asset.Build(cfg)
	if err != nil {
		return fmt.Errorf("build assets: %w", err)
	}
	log.Info().Int("assets", len(outputs)).Str("dir", cfg.AssetsDir).Msg("build complete")
	return nil
}
