/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/retrodesk/cmd"
	"github.com/cristianoliveira/retrodesk/internal/config"
	"github.com/spf13/cobra"
)

type configClient interface {
	All() []config.Entry
	Path() string
}

const configCommandLong = `Inspect the effective configuration.

Values come from defaults, the config file (TOML or YAML) and RETRODESK_<KEY>
environment variables, in that order.

USAGE:
    retrodesk config <subcommand>

SUBCOMMANDS:
    show    Print every effective value
    path    Print the config file in use`

// NewConfigCmd creates the config command with explicit dependencies.
func NewConfigCmd(client configClient) *cobra.Command {
	if client == nil {
		panic("NewConfigCmd: client dependency cannot be nil")
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
		Long:  configCommandLong,
	}

	var onlyChanged bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print every effective value",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			writeConfig(c.OutOrStdout(), client.All(), onlyChanged)
			return nil
		},
	}
	showCmd.Flags().BoolVar(&onlyChanged, "changed", false, "Only print values that differ from the defaults")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			path := client.Path()
			if path == "" {
				return fmt.Errorf("no config file found")
			}
			fmt.Fprintln(c.OutOrStdout(), path)
			return nil
		},
	}

	configCmd.AddCommand(showCmd, pathCmd)
	return configCmd
}

func writeConfig(w io.Writer, entries []config.Entry, onlyChanged bool) {
	for _, e := range entries {
		if onlyChanged && e.Default {
			continue
		}
		marker := ""
		if !e.Default {
			marker = "  # set"
		}
		fmt.Fprintf(w, "%s = %q%s\n", e.Key, e.Value, marker)
	}
}

// configCmd represents the config command
var configCmd = NewConfigCmd(configAdapter{})

func init() {
	cmd.RootCmd.AddCommand(configCmd)
}
