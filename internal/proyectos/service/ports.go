package service

import (
	"context"
	"io"
	"time"

	"github.com/GestionTG-25-26/tg-backend/internal/proyectos/domain"
	usersdomain "github.com/GestionTG-25-26/tg-backend/internal/users/domain"
)

// Global roles checked before invoking aggregate behavior. The names belong
// to the account directory; the aggregate itself only checks participant
// identity.
const (
	RoleEstudiante  = usersdomain.RoleEstudiante
	RoleDocente     = usersdomain.RoleDocente
	RoleCoordinador = usersdomain.RoleCoordinador
	RoleJefatura    = usersdomain.RoleJefatura
)

// Upload is an incoming file handed to the storage port. The service never
// keeps file contents; only the stored reference reaches the aggregate.
type Upload struct {
	Filename string
	Content  io.Reader
	Size     int64
}

// ProyectoRepository is the persistence port. Save must provide the
// single-writer guarantee via compare-and-swap on the aggregate version,
// returning domain.ErrVersionConflict on a lost race.
type ProyectoRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Proyecto, error)
	Save(ctx context.Context, p *domain.Proyecto) error
	ListByParticipant(ctx context.Context, participantID string) ([]domain.Proyecto, error)
	ListUnderReviewSince(ctx context.Context, olderThan time.Time) ([]domain.Proyecto, error)
}

// EventPublisher is the outbound event port. Delivery is fire-and-forget:
// failures must never roll back an already-committed state transition.
type EventPublisher interface {
	Publish(ctx context.Context, e domain.Event) error
	PublishAll(ctx context.Context, events []domain.Event) error
}

// FileStorage stores an uploaded file under a folder and returns the opaque
// path the aggregate will keep.
type FileStorage interface {
	Store(ctx context.Context, folder string, upload Upload) (string, error)
}

// RoleChecker answers global role questions for an actor id.
type RoleChecker interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
}
