package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/config"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/logger"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/migration"
	"github.com/NapatKulnarong/ReMeals/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

// dbCommand runs against an open migrator; args excludes the command name
type dbCommand func(m *migration.Migrator, log *zap.Logger, args []string) error

var dbCommands = map[string]dbCommand{
	"up": func(m *migration.Migrator, _ *zap.Logger, _ []string) error {
		return m.Up()
	},
	"down": func(m *migration.Migrator, _ *zap.Logger, _ []string) error {
		return m.Down()
	},
	"step": func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		n, err := intArg(args, "step <n>")
		if err != nil {
			return err
		}
		return m.Steps(n)
	},
	"goto": func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		n, err := intArg(args, "goto <version>")
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("version must not be negative: %d", n)
		}
		return m.GoTo(uint(n))
	},
	"version": func(m *migration.Migrator, log *zap.Logger, _ []string) error {
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("Schema is empty, no migration applied")
			return nil
		}
		log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	},
	"force": func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		n, err := intArg(args, "force <version>")
		if err != nil {
			return err
		}
		return m.Force(n)
	},
	"drop": func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		if !slices.Contains(args, "-confirm") && !slices.Contains(args, "--confirm") {
			return errors.New("drop removes every table; rerun as 'migrate drop -confirm'")
		}
		return m.Drop()
	},
}

func main() {
	dir := flag.String("path", "", "Read migrations from this directory instead of the embedded set")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      *logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if err := run(log, *dir, args[0], args[1:]); err != nil {
		log.Error("migrate failed", zap.String("command", args[0]), zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.Logger, dir, command string, args []string) error {
	switch command {
	case "create":
		if len(args) == 0 {
			return errors.New("usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 1 {
			description = args[1]
		}
		mf, err := migration.CreateMigration(resolveDir(dir), args[0], description)
		if err != nil {
			return err
		}
		log.Info("Migration files written",
			zap.String("version", mf.Version),
			zap.String("up", mf.UpPath),
			zap.String("down", mf.DownPath))
		return nil

	case "list":
		names, err := migration.ListMigrations(resolveDir(dir))
		if err != nil {
			return err
		}
		log.Info("Migrations", zap.Int("count", len(names)))
		for _, name := range names {
			fmt.Println("  -", name)
		}
		return nil
	}

	cmd, ok := dbCommands[command]
	if !ok {
		usage()
		return fmt.Errorf("unknown command %q", command)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("versioned migrations need the postgres driver, configured %q (sqlite uses auto-migration)",
			cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	var m *migration.Migrator
	if dir != "" {
		log.Info("Using migrations directory", zap.String("path", resolveDir(dir)))
		m, err = migration.NewFromDir(db, resolveDir(dir), log)
	} else {
		m, err = migration.NewFromFS(db, migrations.FS, log)
	}
	if err != nil {
		_ = db.Close()
		return err
	}
	// closing the migrator also closes db
	defer m.Close()

	return cmd(m, log, args)
}

func intArg(args []string, form string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("usage: migrate %s", form)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", args[0])
	}
	return n, nil
}

func resolveDir(dir string) string {
	if dir == "" {
		dir = defaultMigrationsDir
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

func usage() {
	fmt.Println(`ReMeals schema migrations

Usage:
  migrate [-path dir] [-log-level level] <command> [arguments]

Commands:
  up                    apply every pending migration
  down                  roll back every migration
  step <n>              apply n migrations, negative n rolls back
  goto <version>        migrate up or down to version
  version               print the applied version
  force <version>       record version without running it (clears a dirty state)
  drop -confirm         drop every table
  create <name> [desc]  write a new up/down pair into ./migrations (or -path)
  list                  list the migrations in ./migrations (or -path)

The database comes from config.toml and REMEALS_DATABASE_* variables. Without
-path the migrations compiled into the binary are applied.`)
}
