// main.go
package main

import (
	"context"
	"log"

	"tour-booking/cmd"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/ledger"
	"tour-booking/internal/mailer"
	"tour-booking/internal/outbox"
	"tour-booking/internal/payment"
	"tour-booking/internal/wire"
	"tour-booking/pkg/database"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Apply migrations
	if err := database.Migrate(context.Background(), config.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis (wizard draft store)
	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer rdb.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, rdb, config.Booking.DraftTTLMinutes, logger)

	// Payment provider: token loader and orders client
	loader := payment.NewLoader(payment.NewTokenSource(config.PayPal), logger)
	orders := payment.NewClient(config.PayPal, loader, logger)

	// Outgoing email
	mail := mailer.NewResendMailer(config.Email, logger)

	// Spreadsheet ledger and the outbox worker that feeds it
	sheetsLedger, err := ledger.NewSheetsLedger(context.Background(), config.Sheets, logger)
	if err != nil {
		logger.Fatal("Failed to initialize spreadsheet ledger", zap.Error(err))
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go outbox.NewWorker(repos, sheetsLedger, mail, logger).Start(workerCtx)

	// Wire all dependencies
	app := wire.Wiring(repos, config, loader, orders, mail, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
