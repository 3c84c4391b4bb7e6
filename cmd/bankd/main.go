/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the banking simulation server. Handles
  configuration, dependency wiring, scheduled jobs, and graceful
  shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags and load the YAML config
  2. Open the audit sinks (logrus JSON file, optional SQLite)
  3. Build the currency table (optionally backed by a remote feed)
  4. Create the ledger, scheduler, and report services
  5. Register cron jobs (daily scheduler pass, interest accrual,
     optional rate refresh)
  6. Start the HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  YAML config path (default: bankd.yaml; missing file is fine)
  -port    HTTP server port, overrides the config value when set
  -seed    Load demo customers, accounts, loans, and schedules

CRON JOBS:
  @daily    One scheduler pass plus daily interest accrual; on the
            first of the month, a monthly accrual pass too.
  rates     Remote rate refresh on the configured schedule, only when
            a feed URL is configured.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the cron runner
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close the audit SQLite sink
  5. Exit

SEE ALSO:
  - config/config.go: Configuration schema
  - api/server.go: Router configuration
  - scheduler/scheduler.go: Due-payment execution
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jaazielocasio-source/sistema-de-banco/api"
	"github.com/jaazielocasio-source/sistema-de-banco/audit"
	"github.com/jaazielocasio-source/sistema-de-banco/config"
	"github.com/jaazielocasio-source/sistema-de-banco/domain"
	"github.com/jaazielocasio-source/sistema-de-banco/fx"
	"github.com/jaazielocasio-source/sistema-de-banco/ledger"
	"github.com/jaazielocasio-source/sistema-de-banco/report"
	"github.com/jaazielocasio-source/sistema-de-banco/scheduler"
)

func main() {
	configPath := flag.String("config", "bankd.yaml", "YAML config path")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	seed := flag.Bool("seed", false, "load demo data")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Audit sinks: JSON file always, SQLite when configured.
	fileAudit, err := audit.New(cfg.Audit.LogPath)
	if err != nil {
		log.Fatalf("Failed to open audit log: %v", err)
	}
	sinks := audit.Multi{fileAudit}
	var sqliteSink *audit.SQLiteSink
	if cfg.Audit.SQLitePath != "" {
		sqliteSink, err = audit.NewSQLiteSink(cfg.Audit.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open audit database: %v", err)
		}
		defer sqliteSink.Close()
		sinks = append(sinks, sqliteSink)
	}

	// Currency table, optionally refreshed from a remote feed.
	rates := fx.NewStaticTable()
	var ratesClient *fx.RatesClient
	if cfg.Rates.FeedURL != "" {
		feedLog := logrus.New()
		feedLog.SetFormatter(&logrus.JSONFormatter{})
		ratesClient = fx.NewRatesClient(cfg.Rates.FeedURL, feedLog)
		if err := ratesClient.Refresh(rates); err != nil {
			log.Printf("Warning: initial rate refresh failed: %v", err)
		}
	}

	bank := ledger.New(sinks, rates)
	sched := scheduler.New(sinks)
	reports := report.NewService(bank, sinks, cfg.Report.Dir)

	if *seed || cfg.Seed {
		seedSampleData(bank)
		log.Println("Demo data loaded")
	}

	// Scheduled jobs.
	c := cron.New()
	c.AddFunc("@daily", func() {
		today := domain.Today()
		executed := sched.ExecuteDuePayments(bank, today)
		bank.ApplyInterestToAll(today, false)
		if today.Day() == 1 {
			bank.ApplyInterestToAll(today, true)
		}
		log.Printf("Daily pass complete: %d scheduled payments executed", executed)
	})
	if ratesClient != nil {
		c.AddFunc(cfg.Rates.RefreshSchedule, func() {
			if err := ratesClient.Refresh(rates); err != nil {
				log.Printf("Rate refresh failed: %v", err)
			}
		})
	}
	c.Start()

	handler := api.NewHandler(bank, sched, reports)
	handler.SMTP = report.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	c.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
