package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogdevs/backoffice-client/internal/cli"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewClientLogger("backoffice-client")
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Debug().Str("build", buildInfo.String()).Msg("starting")

	if err := cli.Execute(ctx, buildInfo, log); err != nil {
		log.Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
