/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cristianoliveira/retrodesk/cmd"
	"github.com/cristianoliveira/retrodesk/internal/storage"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type sessionsClient interface {
	ListSessions(ctx context.Context) ([]storage.SessionInfo, error)
	LoadSession(ctx context.Context, screen string) (storage.Session, error)
	DeleteSession(ctx context.Context, screen string) error
	ClearSessions(ctx context.Context) (int, error)
}

const (
	sessionsTimeout = 5 * time.Second

	sessionsCommandLong = `Manage saved window layouts.

USAGE:
    retrodesk sessions <subcommand>

SUBCOMMANDS:
    list     List saved layouts
    show     Show the windows saved for a screen
    clear    Delete saved layouts

EXAMPLES:
    # List saved layouts
    retrodesk sessions list

    # Show the layout saved for the chat screen
    retrodesk sessions show chat

    # Delete every saved layout without confirmation
    retrodesk sessions clear --force`
	clearSessionsLong = `Delete the layout saved for a screen, or every saved layout.

USAGE:
    retrodesk sessions clear [SCREEN] [OPTIONS]

OPTIONS:
    --force    Delete without confirmation
    -h, --help Show this help`
)

// NewSessionsCmd creates the sessions command with explicit dependencies.
func NewSessionsCmd(client sessionsClient) *cobra.Command {
	if client == nil {
		panic("NewSessionsCmd: client dependency cannot be nil")
	}

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage saved window layouts",
		Long:  sessionsCommandLong,
	}
	sessionsCmd.AddCommand(newListSessionsCmd(client))
	sessionsCmd.AddCommand(newShowSessionCmd(client))
	sessionsCmd.AddCommand(newClearSessionsCmd(client))
	return sessionsCmd
}

func newListSessionsCmd(client sessionsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved layouts",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(c.Context(), sessionsTimeout)
			defer cancel()
			infos, err := client.ListSessions(ctx)
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
			writeSessionList(c.OutOrStdout(), infos)
			return nil
		},
	}
}

func newShowSessionCmd(client sessionsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "show SCREEN",
		Short: "Show the windows saved for a screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(c.Context(), sessionsTimeout)
			defer cancel()
			sess, err := client.LoadSession(ctx, strings.ToLower(args[0]))
			if errors.Is(err, storage.ErrSessionNotFound) {
				notices.Info(fmt.Sprintf("No layout saved for %s", args[0]))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load session: %w", err)
			}
			writeSession(c.OutOrStdout(), sess)
			return nil
		},
	}
}

func newClearSessionsCmd(client sessionsClient) *cobra.Command {
	var force bool
	clearCmd := &cobra.Command{
		Use:   "clear [SCREEN]",
		Short: "Delete saved layouts",
		Long:  clearSessionsLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			screen := ""
			if len(args) == 1 {
				screen = strings.ToLower(args[0])
			}
			if !force && os.Getenv("CI") == "" && !confirmClear(c.InOrStdin(), c.OutOrStdout(), screen) {
				notices.Info("Operation cancelled")
				return nil
			}
			return runClearSessions(c.Context(), client, screen)
		},
	}
	clearCmd.Flags().BoolVar(&force, "force", false, "Delete without confirmation")
	return clearCmd
}

func runClearSessions(ctx context.Context, client sessionsClient, screen string) error {
	ctx, cancel := context.WithTimeout(ctx, sessionsTimeout)
	defer cancel()
	if screen != "" {
		err := client.DeleteSession(ctx, screen)
		if errors.Is(err, storage.ErrSessionNotFound) {
			notices.Info(fmt.Sprintf("No layout saved for %s", screen))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		notices.Success(fmt.Sprintf("Deleted layout for %s", screen))
		return nil
	}
	n, err := client.ClearSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	notices.Success(fmt.Sprintf("Deleted %d saved %s", n, pluralize(n, "layout", "layouts")))
	return nil
}

func writeSessionList(w io.Writer, infos []storage.SessionInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No saved layouts")
		return
	}
	fmt.Fprintf(w, "%-10s  %-7s  %s\n", "SCREEN", "WINDOWS", "SAVED")
	for _, info := range infos {
		fmt.Fprintf(w, "%-10s  %-7d  %s\n", info.Screen, info.WindowCount, humanize.Time(info.SavedAt))
	}
}

func writeSession(w io.Writer, sess storage.Session) {
	fmt.Fprintf(w, "%s: %d %s saved %s\n", sess.Screen, len(sess.Windows),
		pluralize(len(sess.Windows), "window", "windows"), humanize.Time(sess.SavedAt))
	for _, snap := range sess.Windows {
		fmt.Fprintf(w, "  %-14s %-28q at %d,%d  %dx%d  %s\n",
			snap.ID, snap.Title, snap.Position.X, snap.Position.Y, snap.Size.Width, snap.Size.Height, snap.Mode)
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// confirmClear asks the user for confirmation before deleting layouts.
func confirmClear(in io.Reader, out io.Writer, screen string) bool {
	target := "all saved layouts"
	if screen != "" {
		target = "the layout saved for " + screen
	}
	fmt.Fprintf(out, "Are you sure you want to delete %s? (y/N): ", target)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}

// sessionsCmd represents the sessions command
var sessionsCmd = NewSessionsCmd(sessionStore)

func init() {
	cmd.RootCmd.AddCommand(sessionsCmd)
}
