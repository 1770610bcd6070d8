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
	"github.com/monitorly-dev/monitorly/db"
	"github.com/monitorly-dev/monitorly/internal/config"
	"github.com/monitorly-dev/monitorly/internal/handlers"
	"github.com/monitorly-dev/monitorly/internal/incidents"
	"github.com/monitorly-dev/monitorly/internal/router"
	"github.com/monitorly-dev/monitorly/internal/scheduler"
	"github.com/monitorly-dev/monitorly/internal/services"
	"github.com/monitorly-dev/monitorly/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	st := store.New(db.DB)

	var email services.EmailTransport
	if cfg.SMTP.Host != "" {
		email = services.NewEmailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		log.Println("SMTP_HOST not set, email alerts disabled")
	}

	dispatcher := services.NewDispatcher(st, email)
	manager := incidents.NewManager(st)

	sched := scheduler.New(st, manager, dispatcher, scheduler.Options{
		Interval: cfg.Scheduler.Interval,
		Workers:  cfg.Scheduler.Workers,
	})
	sched.Start()

	r := router.NewRouter(&handlers.StatusHandler{
		Store:     st,
		Scheduler: sched,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
