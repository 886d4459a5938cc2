package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	accountStore "github.com/MrJamesThe3rd/ledgerbridge/internal/account/store"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/config"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/database"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/export"
	lbHttp "github.com/MrJamesThe3rd/ledgerbridge/internal/http"
	accountHandler "github.com/MrJamesThe3rd/ledgerbridge/internal/http/account"
	exportHandler "github.com/MrJamesThe3rd/ledgerbridge/internal/http/export"
	matchingHandler "github.com/MrJamesThe3rd/ledgerbridge/internal/http/matching"
	projectHandler "github.com/MrJamesThe3rd/ledgerbridge/internal/http/project"
	txHandler "github.com/MrJamesThe3rd/ledgerbridge/internal/http/transaction"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/ledgerbridge/internal/matching/store"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/project"
	projectStore "github.com/MrJamesThe3rd/ledgerbridge/internal/project/store"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
	txStore "github.com/MrJamesThe3rd/ledgerbridge/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	var (
		projectService     = project.NewService(projectStore.New(db))
		accountService     = account.NewService(accountStore.New(db))
		transactionService = transaction.NewService(txStore.New(db))
		matchingService    = matching.NewService(matchingStore.New(db))
		importService      = importer.NewService()
		exportService      = export.NewService(projectService, accountService, transactionService)
	)

	var (
		projectH     = projectHandler.NewHandler(projectService)
		accountH     = accountHandler.NewHandler(accountService, importService)
		transactionH = txHandler.NewHandler(transactionService, accountService, matchingService, importService)
		matchingH    = matchingHandler.NewHandler(matchingService)
		exportH      = exportHandler.NewHandler(exportService, cfg.Export.DefaultFormat)
	)

	router := lbHttp.New(cfg, projectH, accountH, transactionH, matchingH, exportH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "auth", cfg.AuthEnabled())

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
