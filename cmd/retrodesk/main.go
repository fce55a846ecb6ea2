package main

import (
	"fmt"
	"os"

	"github.com/cristianoliveira/retrodesk/cmd"
	"github.com/cristianoliveira/retrodesk/internal/colors"
	"github.com/cristianoliveira/retrodesk/internal/config"
	apperrors "github.com/cristianoliveira/retrodesk/internal/errors"
	"github.com/cristianoliveira/retrodesk/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], cmd.Execute))
}

// run loads configuration and logging, then executes the command line.
func run(args []string, execute func() error) int {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if err := logging.InitGlobal(); err != nil {
		notices.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	defer func() {
		_ = sessionStore.Close()
		_ = logging.ShutdownGlobal()
	}()

	cmd.RootCmd.SetArgs(args)
	logging.Info("startup", "args", args)
	if err := execute(); err != nil {
		logging.Error("command failed", "error", err)
		apperrors.Report(notices, err)
		return 1
	}
	logging.Debug("command completed")
	return 0
}
