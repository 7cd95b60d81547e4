// Command hrctl is the operator tool for the job board: schema migrations,
// reference data and manager accounts, which have no public API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/hrprojector/jobboard/internal/infrastructure/config"
	"github.com/hrprojector/jobboard/pkg/logger"
)

const usage = `usage: hrctl <command> [flags]

commands:
  migrate up|down          apply pending migrations or roll back one step
  department create        -name
  manager create           -email -password -first -last [-patronymic] -department
  audit history            -resource resume|vacancy -id
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	if err := dispatch(ctx, cfg, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("hrctl failed")
	}
}

func dispatch(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return errUsage
	}

	switch args[0] + " " + args[1] {
	case "migrate up":
		return migrateUp(cfg)
	case "migrate down":
		return migrateDown(cfg)
	case "department create":
		return createDepartment(ctx, cfg, args[2:])
	case "manager create":
		return createManager(ctx, cfg, args[2:])
	case "audit history":
		return auditHistory(ctx, cfg, args[2:])
	default:
		return errUsage
	}
}
