package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/GestionTG-25-26/tg-backend/config"
	"github.com/GestionTG-25-26/tg-backend/internal/notificaciones"
	proyectorepo "github.com/GestionTG-25-26/tg-backend/internal/proyectos/repository"
)

// RunNotify subscribes to the project event firehose and logs a Spanish
// notification per event. It also schedules the daily stale-review reminder.
func RunNotify() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := proyectorepo.NewProyectoRepository(db)
	scheduler := notificaciones.NewReminderScheduler(repo, cfg.Notifier.ReminderMaxAge)
	cr, err := scheduler.Start()
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer cr.Stop()

	notifier := notificaciones.NewNotifier(rdb)
	if err := notifier.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("notifier: %v", err)
	}
}

// RunRemind fires the stale-review reminder once and exits.
func RunRemind() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	repo := proyectorepo.NewProyectoRepository(db)
	scheduler := notificaciones.NewReminderScheduler(repo, cfg.Notifier.ReminderMaxAge)
	scheduler.RunOnce(context.Background())
}
