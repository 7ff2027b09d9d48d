package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	identityapp "github.com/timetracker/backend/internal/application/identity"
	"github.com/timetracker/backend/internal/infrastructure/auth"
	"github.com/timetracker/backend/internal/infrastructure/cache"
	"github.com/timetracker/backend/internal/infrastructure/config"
	"github.com/timetracker/backend/internal/infrastructure/logger"
	"github.com/timetracker/backend/internal/infrastructure/migration"
	"github.com/timetracker/backend/internal/infrastructure/persistence"
	"github.com/timetracker/backend/migrations"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)

	flag.StringVar(&migrationsPath, "path", "", "Path to a migrations directory (default: migrations embedded in the binary)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if migrationsPath != "" {
		absPath, err := filepath.Abs(migrationsPath)
		if err != nil {
			log.Fatal("Failed to get absolute path", zap.Error(err))
		}
		migrationsPath = absPath
	}

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", displayPath(migrationsPath)),
	)

	// Commands that don't need a database connection
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		dir := migrationsPath
		if dir == "" {
			dir = defaultMigrationsPath
		}

		mf, err := migration.CreateMigration(dir, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created successfully",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return

	case "list":
		names, err := migration.ListMigrations(migrationSource(migrationsPath))
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		if len(names) == 0 {
			log.Info("No migrations found")
			return
		}
		log.Info("Available migrations", zap.Int("count", len(names)))
		for _, name := range names {
			fmt.Println("  -", name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	switch command {
	case "create-credential", "disable-credential":
		runCredentialCommand(cfg, log, command, args[1:])
		return
	}

	if cfg.Database.Driver != "postgres" {
		log.Fatal("SQL migrations only run against postgres; sqlite schemas are created on server start",
			zap.String("driver", cfg.Database.Driver))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	m, err := migration.New(db, migrationSource(migrationsPath), log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		log.Warn("Forcing migration version - use with caution!")
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// runCredentialCommand manages the API credentials the desktop client
// exchanges for access tokens
func runCredentialCommand(cfg *config.Config, log *zap.Logger, command string, args []string) {
	if len(args) < 1 {
		if command == "create-credential" {
			log.Fatal("User required. Usage: migrate create-credential <user>")
		}
		log.Fatal("API key required. Usage: migrate disable-credential <api_key>")
	}

	db, err := persistence.NewDatabase(&cfg.Database, nil)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()
	if db.Driver() == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	// Tokens of a disabled credential are only rejected by servers sharing
	// this revocation list, so use redis whenever it is configured.
	var revocation auth.RevocationList = auth.NewInMemoryRevocationList()
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			_ = client.Close()
		}()
		revocation = auth.NewRedisRevocationList(client)
	}

	tokens := identityapp.NewTokenService(
		persistence.NewGormAPICredentialRepository(db.DB),
		auth.NewJWTService(cfg.JWT),
		revocation,
		nil,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch command {
	case "create-credential":
		result, err := tokens.CreateCredential(ctx, args[0])
		if err != nil {
			log.Fatal("Failed to create credential", zap.Error(err))
		}
		fmt.Println("Store the secret now, it is not shown again:")
		fmt.Printf("  user:       %s\n", result.User)
		fmt.Printf("  api_key:    %s\n", result.APIKey)
		fmt.Printf("  api_secret: %s\n", result.APISecret)

	case "disable-credential":
		if err := tokens.DisableCredential(ctx, args[0]); err != nil {
			log.Fatal("Failed to disable credential", zap.Error(err))
		}
		if !cfg.Redis.Enabled {
			log.Warn("Redis is disabled; tokens already issued stay valid on running servers until they expire")
		}
	}
}

func migrationSource(path string) fs.FS {
	if path == "" {
		return migrations.FS
	}
	return os.DirFS(path)
}

func displayPath(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func printUsage() {
	fmt.Println(`Time Tracker Database Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                           Apply all pending migrations
  down                         Roll back all migrations
  step <n>                     Apply n migrations (positive=up, negative=down)
  version                      Show current migration version
  force <version>              Force set migration version (use with caution)
  create <name> [desc]         Create a new migration file pair
  list                         List available migrations
  create-credential <user>     Create an API key/secret pair for the desktop client
  disable-credential <api_key> Disable a credential and revoke its tokens

Flags:
  -path string          Path to a migrations directory (default: embedded migrations)
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  TT_DATABASE_HOST, TT_DATABASE_PORT, TT_DATABASE_USER, TT_DATABASE_PASSWORD,
  TT_DATABASE_DBNAME, TT_DATABASE_SSLMODE, TT_JWT_SECRET, TT_REDIS_ENABLED

Examples:
  # Apply all pending migrations
  migrate up

  # Roll back the last migration
  migrate step -1

  # Create a credential for a user
  migrate create-credential jane@example.com`)
}
