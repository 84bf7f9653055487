package main

import (
	"fmt"
	"os"

	"github.com/hiveden/hwsnap/internal/config"
	"github.com/hiveden/hwsnap/internal/hw"
	"github.com/hiveden/hwsnap/internal/logging"
	"github.com/hiveden/hwsnap/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	if err := newRootCommand(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "hwsnap",
		Short:         "Report CPU, RAM and disk characteristics of this host",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(v, configFile)
			if err != nil {
				return err
			}

			logger, err = logging.New(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	config.SetDefaults(v)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringP("format", "o", config.DefaultFormat, "Output format: text, json, yaml")
	v.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	v.BindPFlag(config.KeyFormat, rootCmd.PersistentFlags().Lookup("format"))

	rootCmd.AddCommand(buildSnapshotCommand(v))
	rootCmd.AddCommand(buildHardwareCommand())
	rootCmd.AddCommand(buildSystemCommand())

	return rootCmd
}

func outputFormat() (report.Format, error) {
	return report.ParseFormat(cfg.Format)
}

func buildSnapshotCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Collect a one-shot CPU, RAM and disk snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			collector := hw.NewCollector(hw.WithLogger(logger), hw.WithStoragePath(cfg.Path))

			var snap hw.Snapshot
			if err := collector.Collect(&snap); err != nil {
				return fmt.Errorf("failed to collect system snapshot: %w", err)
			}

			return report.Snapshot(cmd.OutOrStdout(), format, &snap)
		},
	}

	cmd.Flags().String("path", "", "Report the volume containing this path (default is the working directory)")
	v.BindPFlag(config.KeyPath, cmd.Flags().Lookup("path"))

	return cmd
}

func buildHardwareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hw",
		Short: "Show processors, installed memory and block devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			info, err := hw.Inventory()
			if err != nil {
				return err
			}

			return report.Hardware(cmd.OutOrStdout(), format, info)
		},
	}
}

func buildSystemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "system",
		Short: "Show OS, distribution and kernel of this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			info, err := hw.HostInfo()
			if err != nil {
				return err
			}

			return report.System(cmd.OutOrStdout(), format, info)
		},
	}
}
