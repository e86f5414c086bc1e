package notificaciones

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/GestionTG-25-26/tg-backend/internal/proyectos/service"
)

// ReminderScheduler logs a nightly reminder for every proyecto that has been
// waiting for a verdict longer than maxAge.
type ReminderScheduler struct {
	repo   service.ProyectoRepository
	maxAge time.Duration
}

// NewReminderScheduler creates a scheduler over the proyecto repository.
func NewReminderScheduler(repo service.ProyectoRepository, maxAge time.Duration) *ReminderScheduler {
	return &ReminderScheduler{repo: repo, maxAge: maxAge}
}

// Start registers the nightly job (08:00) and starts the cron loop.
func (s *ReminderScheduler) Start() (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc("0 0 8 * * *", func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return nil, err
	}
	log.Println("reminder scheduler started (daily at 08:00)")
	c.Start()
	return c, nil
}

// RunOnce emits reminders for every stale review right now.
func (s *ReminderScheduler) RunOnce(ctx context.Context) {
	stale, err := s.repo.ListUnderReviewSince(ctx, time.Now().Add(-s.maxAge))
	if err != nil {
		log.Printf("reminder: listing stale reviews: %v", err)
		return
	}
	for _, p := range stale {
		log.Printf("[recordatorio] proyecto=%s %q lleva más de %s en estado %s",
			p.ID, p.Title, s.maxAge, p.State)
	}
	if len(stale) > 0 {
		log.Printf("reminder: %d proyecto(s) pendientes de revisión", len(stale))
	}
}
