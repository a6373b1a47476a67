package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/stemsi/coursehub-backend/internal/config"
	"github.com/stemsi/coursehub-backend/internal/logger"
)

func main() {
	var migrationDir string
	flag.StringVar(&migrationDir, "path", "migrations", "Path to migration files")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://"+migrationDir, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("path", migrationDir).Msg("Migration failed to initialize")
	}
	defer m.Close()

	if err := run(m, args, log); err != nil {
		log.Error().Err(err).Str("command", args[0]).Msg("Migration failed")
		m.Close()
		os.Exit(1)
	}
}

func run(m *migrate.Migrate, args []string, log zerolog.Logger) error {
	switch args[0] {
	case "up":
		if err := ignoreNoChange(m.Up()); err != nil {
			return err
		}
	case "down":
		if err := ignoreNoChange(m.Down()); err != nil {
			return err
		}
	case "steps":
		n, err := intArg(args, "steps")
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Steps(n)); err != nil {
			return err
		}
	case "force":
		v, err := intArg(args, "force")
		if err != nil {
			return err
		}
		if err := m.Force(v); err != nil {
			return err
		}
	case "version":
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("Schema is empty")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msgf("Migrate %s done", args[0])
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func intArg(args []string, command string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a number argument", command)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid %s argument %q: %w", command, args[1], err)
	}
	return n, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: migrate [flags] <command>")
	fmt.Fprintln(os.Stderr, "Commands: up, down, steps <n>, version, force <version>")
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}
