package main

import (
	"os"

	"github.com/openshift-eng/iib-setup/internal/pkg/cli"
	"github.com/openshift-eng/iib-setup/internal/pkg/errcode"
	clog "github.com/openshift-eng/iib-setup/internal/pkg/log"
)

func main() {
	// Setup pluggable logger. Feel free to plug in your own logger, just use
	// the PluggableLoggerInterface in internal/pkg/log/logger.go
	log := clog.New("info")

	rootCmd := cli.NewSetupCmd(log)
	if err := rootCmd.Execute(); err != nil {
		log.Error("[Executor] %v ", err)
		os.Exit(exitCodeFromError(err))
	}
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(cli.CodeExiter); ok {
		return e.ExitCode()
	}
	return errcode.GenericErr
}
