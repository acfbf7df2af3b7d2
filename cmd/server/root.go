package main

import (
	"github.com/spf13/cobra"

	"custody/internal/platform/config"
)

var envFiles []string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "custody",
		Short:        "Custody movement case management service",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "Env files to load before reading the environment")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newRepairCmd())
	return cmd
}

func loadConfig() (config.Config, error) {
	return config.Load(envFiles...)
}
