/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/retrodesk/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "retrodesk",
	Short:         "A retro desktop of draggable windows in your terminal.",
	Long:          `A retro desktop of draggable windows in your terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// commandOrder is the order commands are listed in the help text.
var commandOrder = []string{
	"run",
	"sessions",
	"config",
	"version",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			if cmd.Long == "" {
				fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), cmd.Long)
			return
		}
		PrintHelp(cmd.OutOrStdout(), cmd)
	})
}

// PrintHelp writes the top-level help text listing the registered commands.
func PrintHelp(w io.Writer, root *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	fmt.Fprintf(w, `retrodesk %s

A retro desktop of draggable windows in your terminal.

USAGE:
    retrodesk [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
}
