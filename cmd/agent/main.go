// cmd/agent/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/focusdeck/focusdeck/internal/api"
	"github.com/focusdeck/focusdeck/internal/config"
	"github.com/focusdeck/focusdeck/internal/gateway"
	"github.com/focusdeck/focusdeck/internal/notify"
	"github.com/focusdeck/focusdeck/internal/planner"
	"github.com/focusdeck/focusdeck/internal/reminder"
	"github.com/focusdeck/focusdeck/internal/session"
	"github.com/focusdeck/focusdeck/internal/store"
	"github.com/focusdeck/focusdeck/internal/tomato"
	"github.com/focusdeck/focusdeck/pkg/email"
	"github.com/focusdeck/focusdeck/pkg/sms"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	db, err := store.NewDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}

	ctx := context.Background()

	sess := session.NewStore(store.NewSessionRepository(db))
	if err := sess.Load(ctx); err != nil {
		log.Fatalf("Failed to restore session: %v", err)
	}

	client := gateway.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, sess)

	notifier := notify.Notifier(notify.NewDesktopNotifier(cfg.Email.AppName))
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		notifier = notify.LogNotifier{}
	}

	var emailSvc email.Service
	switch {
	case cfg.Email.TestingMode || (cfg.IsDevelopment() && cfg.Email.SMTPHost == ""):
		log.Println("Using mock email service")
		emailSvc = email.NewMockService()
	case cfg.Email.SMTPHost != "":
		emailSvc = email.NewSMTPService(&email.Config{
			SMTPHost:     cfg.Email.SMTPHost,
			SMTPPort:     cfg.Email.SMTPPort,
			SMTPUsername: cfg.Email.SMTPUsername,
			SMTPPassword: cfg.Email.SMTPPassword,
			FromEmail:    cfg.Email.FromEmail,
			FromName:     cfg.Email.FromName,
			AppName:      cfg.Email.AppName,
		})
	default:
		log.Println("No SMTP relay configured, email reminders disabled")
	}

	var smsSender sms.Sender
	if cfg.SMS.GatewayURL != "" {
		smsSender = sms.NewGatewaySender(&sms.Config{
			GatewayURL: cfg.SMS.GatewayURL,
			APIKey:     cfg.SMS.APIKey,
			Sender:     cfg.SMS.Sender,
		})
	} else {
		log.Println("No SMS gateway configured, SMS reminders disabled")
	}

	dispatcher := reminder.NewDispatcher(notifier, emailSvc, smsSender, sess)
	scheduler := reminder.NewScheduler(store.NewAlarmRepository(db), dispatcher, time.Local)
	if err := scheduler.Restore(ctx); err != nil {
		log.Fatalf("Failed to restore alarm registry: %v", err)
	}
	scheduler.Start()

	controller := planner.NewController(client, scheduler, sess, cfg.Reminder.RetentionDays)
	users := planner.NewUserService(client, sess)

	if _, ok := sess.UserID(); ok {
		if err := controller.LoadTasks(ctx); err != nil {
			log.Printf("Initial task load failed: %v", err)
		}
		if err := controller.LoadTeams(ctx); err != nil {
			log.Printf("Initial team load failed: %v", err)
		}
		scheduler.NotifyOnAppOpen(ctx, controller.Tasks())
	}

	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every "+cfg.Reminder.SweepInterval.String(), func() {
		sweepCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := controller.SweepExpired(sweepCtx); err != nil {
			log.Printf("Recycle bin sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to register sweep job: %v", err)
	}
	sweeper.Start()

	timer := tomato.NewTimer(notifier)
	timer.OnFocusComplete(func(durationSeconds int64) {
		focusCtx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout)
		defer cancel()
		if err := controller.SubmitFocusData(focusCtx, durationSeconds, 0); err != nil {
			log.Printf("Failed to submit focus data: %v", err)
		}
	})

	server := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: api.NewServer(controller, users, timer).Router(),
	}

	go func() {
		log.Printf("FocusDeck agent listening on %s", cfg.Server.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	sweeper.Stop()
	scheduler.Stop()
	timer.Stop()
	log.Println("Agent stopped")
}
