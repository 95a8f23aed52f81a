package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foliocite/foliocite/internal/cliout"
	"github.com/foliocite/foliocite/internal/config"
	"github.com/foliocite/foliocite/internal/svcctx"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cliout.Output(svcctx.ConfigFrom(cmd.Context()))
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
