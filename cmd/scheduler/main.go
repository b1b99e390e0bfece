package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/segyhp/reminder-engine/internal/app"
	"github.com/segyhp/reminder-engine/internal/config"
	"github.com/segyhp/reminder-engine/internal/service"
	"github.com/segyhp/reminder-engine/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	lg.Info("Starting reminder scheduler...")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application, err := app.New(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer application.Close()

	// Initialize cron scheduler
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.GetLocation()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	// Schedule tasks
	if err := setupCronJobs(ctx, c, cfg, application.Services.Reminder, lg); err != nil {
		lg.Fatal("Error scheduling reminder job", zap.Error(err))
	}

	// Start the scheduler
	c.Start()
	lg.Info("Scheduler started successfully",
		zap.String("cron", cfg.Scheduler.ReminderCron),
		zap.String("timezone", cfg.Scheduler.Timezone),
	)

	// Wait for interrupt signal to gracefully shutdown
	<-ctx.Done()

	lg.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	lg.Info("Scheduler stopped")
}

func setupCronJobs(ctx context.Context, c *cron.Cron, cfg *config.Config, reminders *service.ReminderService, lg *zap.Logger) error {
	// Daily reminder run over every unpaid payment that is overdue or due soon
	_, err := c.AddFunc(cfg.Scheduler.ReminderCron, func() {
		lg.Info("Running daily payment reminder job...")
		sendDueReminders(ctx, reminders, lg)
	})
	return err
}

func sendDueReminders(ctx context.Context, reminders *service.ReminderService, lg *zap.Logger) {
	// the job finishes its run even after a shutdown signal
	report, err := reminders.SendDue(context.WithoutCancel(ctx))
	if err != nil {
		lg.Error("Payment reminder job failed", zap.Error(err))
		return
	}

	lg.Info("Payment reminder job finished",
		zap.String("run_id", report.RunID.String()),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
	)
}
