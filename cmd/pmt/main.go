package main

import (
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/tracklab/pmt/internal/cli"
	"github.com/tracklab/pmt/internal/cli/formatter"
	"github.com/tracklab/pmt/internal/config"
	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/notify"
	"github.com/tracklab/pmt/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.pmt/pmt.db
	dbPath := os.Getenv("PMT_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".pmt", "pmt.db")
	}

	cfg, err := config.Load(os.Getenv("PMT_CONFIG"), config.Default(dbPath))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "pmt"})

	var notifier service.Notifier
	if cfg.SMTP.Enabled() {
		var auth smtp.Auth
		if cfg.SMTP.Username != "" {
			auth = smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host)
		}
		notifier = &notify.SMTPNotifier{Addr: cfg.SMTP.Addr(), From: cfg.SMTP.From, Auth: auth}
	} else {
		notifier = &notify.LogNotifier{Logger: logger}
	}

	var observers []service.OperationObserver
	if os.Getenv("PMT_TRACE") != "" {
		observers = append(observers, service.NewLogOperationObserver(os.Stderr))
	}

	app := &cli.App{
		Workflow:   service.NewWorkflowService(database, uow, notifier, logger, observers...),
		Timelines:  service.NewTimelineService(database),
		Reports:    service.NewReportService(database, notifier, logger),
		Milestones: service.NewMilestoneService(database, uow, logger),
		Projects:   service.NewProjectService(database),
		Config:     cfg,
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		formatter.DisableColor()
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
