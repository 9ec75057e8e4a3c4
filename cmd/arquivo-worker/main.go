package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"revenda/internal/amqp"
	"revenda/internal/cli"
	"revenda/internal/ledger"
	"revenda/internal/ledger/google"
	"revenda/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting arquivo-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	sqliteRepo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer sqliteRepo.Close()

	renderer := cli.InitRenderer(logger, cfg)

	// Initialize the Google Sheets sales ledger (optional)
	var ledgerWriter ledger.Writer
	if cfg.LedgerEnabled() {
		client, err := google.New(context.Background(), cfg.LedgerSpreadsheetID, cfg.LedgerSheetName)
		if err != nil {
			logger.Error("Failed to initialize ledger client", "error", err)
			os.Exit(1)
		}
		ledgerWriter = client
		logger.Info("Sales ledger initialized",
			"spreadsheet_id", cfg.LedgerSpreadsheetID,
			"sheet", cfg.LedgerSheetName)
	} else {
		logger.Info("Sales ledger disabled - no LEDGER_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	archiveWorker := worker.NewArchiveWorker(sqliteRepo, renderer, ledgerWriter, cfg.ArchiveBatchSize)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// On startup, archive any receipts whose job was missed while down.
	logger.Info("Performing startup archive check...")
	if err := archiveWorker.ProcessPendingRecibos(ctx); err != nil {
		logger.Error("Failed startup archive check", "error", err)
		// Don't exit - continue with normal operation
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeDocumentoEmitido(gctx, func(msg *amqp.DocumentoEmitidoMessage) error {
			return archiveWorker.HandleDocumentoEmitido(gctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.ArchiveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := archiveWorker.ProcessPendingRecibos(gctx); err != nil {
					logger.Error("Periodic archive failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
