package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/fundora/ledger/internal/api"
	"github.com/fundora/ledger/internal/config"
	"github.com/fundora/ledger/internal/database"
	"github.com/fundora/ledger/internal/export"
	"github.com/fundora/ledger/internal/store"
	"github.com/fundora/ledger/internal/strategy"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	app := &cli.App{
		Name:  "fundora",
		Usage: "fund investment strategy ledger",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API server",
				Action: runServe,
			},
			{
				Name:  "export-captable",
				Usage: "export the cap table of a strategy",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "strategy",
						Usage:    "strategy id to export",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "write an XLSX file to this path",
					},
					&cli.BoolFlag{
						Name:  "sheets",
						Usage: "write to the configured Google Sheets spreadsheet",
					},
				},
				Action: runExport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	st, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	strategySvc := strategy.NewService(st, cfg.DefaultInitialBalance)
	srv := api.NewServer(cfg.HTTPPort, strategySvc)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func runExport(c *cli.Context) error {
	ctx := c.Context
	cfg := config.Load()

	st, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	writer, err := newWriter(ctx, c, cfg)
	if err != nil {
		return err
	}

	strategySvc := strategy.NewService(st, cfg.DefaultInitialBalance)
	exportSvc := export.NewService(strategySvc, writer)

	strategyID := c.String("strategy")
	if err := exportSvc.Export(ctx, strategyID); err != nil {
		return fmt.Errorf("exporting cap table: %w", err)
	}
	log.Printf("Cap table of strategy %s exported", strategyID)
	return nil
}

func newWriter(ctx context.Context, c *cli.Context, cfg config.Config) (export.SheetWriter, error) {
	switch {
	case c.Bool("sheets"):
		if cfg.SheetsSpreadsheetID == "" || cfg.GoogleCredentialsJSON == "" {
			return nil, errors.New("SHEETS_SPREADSHEET_ID and GOOGLE_CREDENTIALS_JSON are required for --sheets")
		}
		return export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.GoogleCredentialsJSON)
	case c.String("out") != "":
		return export.NewXLSXWriter(c.String("out")), nil
	default:
		return nil, errors.New("either --out or --sheets is required")
	}
}

// openStore connects to PostgreSQL when DATABASE_URL is set and falls back to
// the in-memory store otherwise.
func openStore(ctx context.Context, cfg config.Config) (strategy.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, using in-memory store; nothing will be persisted")
		return store.NewMemoryStore(), func() {}, nil
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	return store.NewPgStore(pool), pool.Close, nil
}
