package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"

	"github.com/hrprojector/jobboard/internal/core/ports"
	"github.com/hrprojector/jobboard/internal/core/service"
	"github.com/hrprojector/jobboard/internal/infrastructure/config"
	"github.com/hrprojector/jobboard/internal/infrastructure/db/mongo"
	"github.com/hrprojector/jobboard/internal/infrastructure/db/postgres"
	"github.com/hrprojector/jobboard/pkg/logger"
)

var errUsage = errors.New("usage")

// out receives command results; logs go to stderr.
var out io.Writer = os.Stdout

func migrateUp(cfg *config.Config) error {
	if err := postgres.MigrateUp(cfg.Postgres.URL); err != nil {
		return err
	}
	log := logger.Get()
	log.Info().Msg("migrations applied")
	return nil
}

func migrateDown(cfg *config.Config) error {
	if err := postgres.MigrateDown(cfg.Postgres.URL); err != nil {
		return err
	}
	log := logger.Get()
	log.Info().Msg("rolled back one migration")
	return nil
}

func createDepartment(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("department create", flag.ContinueOnError)
	name := fs.String("name", "", "department name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("-name is required")
	}

	return withDB(ctx, cfg, func(db *gorm.DB) error {
		dept, err := service.NewDepartmentService(postgres.NewDepartmentRepository(db)).Create(ctx, *name)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{"id": dept.ID, "name": dept.Name})
	})
}

func createManager(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("manager create", flag.ContinueOnError)
	var in ports.RegisterInput
	fs.StringVar(&in.Email, "email", "", "login email")
	fs.StringVar(&in.Password, "password", "", "initial password")
	fs.StringVar(&in.FirstName, "first", "", "first name")
	fs.StringVar(&in.LastName, "last", "", "last name")
	fs.StringVar(&in.Patronymic, "patronymic", "", "patronymic")
	fs.Int64Var(&in.DepartmentID, "department", 0, "department id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" || in.DepartmentID <= 0 {
		return fmt.Errorf("-email, -password, -first, -last and -department are required")
	}
	in.PasswordConfirmation = in.Password

	return withDB(ctx, cfg, func(db *gorm.DB) error {
		auth := service.NewAuthService(
			postgres.NewUserRepository(db),
			postgres.NewDepartmentRepository(db),
			cfg.JWTSecret,
			cfg.JWTTTL,
		)
		user, err := auth.CreateManager(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{
			"id":            user.ID,
			"email":         user.Email,
			"role":          user.Role,
			"department_id": user.DepartmentID,
		})
	})
}

func auditHistory(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("audit history", flag.ContinueOnError)
	resource := fs.String("resource", "", "resume or vacancy")
	id := fs.Int64("id", 0, "resource id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*resource != "resume" && *resource != "vacancy") || *id <= 0 {
		return fmt.Errorf("-resource must be resume or vacancy and -id positive")
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer mongo.Disconnect(client)

	events, err := mongo.NewEventRepository(db).History(ctx, *resource, *id)
	if err != nil {
		return err
	}

	rows := make([]map[string]any, len(events))
	for i, e := range events {
		rows[i] = map[string]any{
			"action":      e.Action,
			"from":        e.From,
			"to":          e.To,
			"actor_id":    e.ActorID,
			"occurred_at": e.OccurredAt,
		}
	}
	return printJSON(rows)
}

func withDB(ctx context.Context, cfg *config.Config, fn func(db *gorm.DB) error) error {
	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL}, logger.Component("postgres"))
	if err != nil {
		return err
	}
	defer postgres.Close(db)
	return fn(db)
}

func printJSON(v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
