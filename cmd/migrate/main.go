// Command migrate manages the storefront schema and seeds the catalog.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/tailorline/storefront/internal/catalog"
	"github.com/tailorline/storefront/pkg/config"
	"github.com/tailorline/storefront/pkg/db"
	"github.com/tailorline/storefront/pkg/logger"
	"github.com/tailorline/storefront/pkg/migrate"
)

type options struct {
	cmd      string
	dir      string
	name     string
	version  string
	seedFile string
}

func main() {
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.cmd, "cmd", "up", "migration command: up|down|status|version|create|validate|seed")
	flag.StringVar(&opts.dir, "dir", migrate.DefaultDir, "goose migrations directory")
	flag.StringVar(&opts.name, "name", "", "migration name (for create)")
	flag.StringVar(&opts.version, "version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.StringVar(&opts.seedFile, "seed", "seed/catalog.yaml", "catalog YAML file (for seed)")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "migrate"})
	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "resource not working: config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": opts.cmd,
		"dir": opts.dir,
	})

	if err := run(ctx, cfg, logg, opts, os.Stdout); err != nil {
		logg.Error(ctx, "migrate failed", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", opts.cmd, err)
		os.Exit(1)
	}
}

// run executes one command. create and validate work on files only; the
// rest open the database.
func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts options, out io.Writer) error {
	switch opts.cmd {
	case "create":
		if opts.name == "" {
			return errors.New("missing -name for create")
		}
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "created migration:", path)
		return nil
	case "validate":
		if err := migrate.ValidateFS(migrationsFS(opts.dir)); err != nil {
			return err
		}
		fmt.Fprintln(out, "migration validation passed")
		return nil
	}

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer client.Close()

	if opts.cmd == "seed" {
		n, err := catalog.SeedFromFile(ctx, catalog.NewRepository(client.DB()), opts.seedFile)
		if err != nil {
			return err
		}
		logg.Info(logg.WithField(ctx, "products", n), "catalog seeded")
		return nil
	}

	if client.IsSQLite() {
		if opts.cmd != "up" {
			return errors.New("sqlite databases only support -cmd=up")
		}
		if err := migrate.AutoMigrateModels(ctx, client); err != nil {
			return err
		}
		logg.Info(ctx, "sqlite schema up to date")
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return err
	}
	runner, err := migrate.NewRunner(sqlDB, migrationsFS(opts.dir))
	if err != nil {
		return err
	}
	return runGoose(ctx, runner, logg, opts, out)
}

func runGoose(ctx context.Context, runner *migrate.Runner, logg *logger.Logger, opts options, out io.Writer) error {
	switch opts.cmd {
	case "up":
		applied, err := runner.Up(ctx)
		if err != nil {
			return err
		}
		logg.Info(logg.WithField(ctx, "applied", applied), "migrations applied")
	case "down":
		version, err := runner.Down(ctx)
		if err != nil {
			return err
		}
		logg.Info(logg.WithField(ctx, "version", version), "migration rolled back")
	case "status":
		statuses, err := runner.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(out, "%d\t%-8s\t%s\n", s.Version, state, s.Path)
		}
	case "version":
		if opts.version == "" {
			return errors.New("missing -version for version command")
		}
		return runner.ToVersion(ctx, opts.version)
	default:
		return fmt.Errorf("unknown -cmd value %q", opts.cmd)
	}
	return nil
}

// migrationsFS prefers the embedded files unless another directory is named.
func migrationsFS(dir string) fs.FS {
	if dir == "" || dir == migrate.DefaultDir {
		return migrate.Migrations()
	}
	return os.DirFS(dir)
}
