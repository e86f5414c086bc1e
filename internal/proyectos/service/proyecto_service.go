package service

import (
	"context"
	"fmt"
	"log"

	"github.com/GestionTG-25-26/tg-backend/internal/proyectos/domain"
)

// ProyectoService orchestrates the trabajo de grado workflow: each operation
// loads the aggregate, invokes one behavior, persists and forwards the queued
// events. All collaborators arrive through the constructor.
type ProyectoService struct {
	repo      ProyectoRepository
	publisher EventPublisher
	storage   FileStorage
	roles     RoleChecker
}

// NewProyectoService creates a new ProyectoService.
func NewProyectoService(repo ProyectoRepository, publisher EventPublisher, storage FileStorage, roles RoleChecker) *ProyectoService {
	return &ProyectoService{
		repo:      repo,
		publisher: publisher,
		storage:   storage,
		roles:     roles,
	}
}

// CreateProyectoInput carries the payload to create a proyecto with its first
// Formato A attempt.
type CreateProyectoInput struct {
	Title              string
	Modality           domain.Modality
	GeneralObjective   string
	SpecificObjectives []string
	DirectorID         string
	CodirectorID       string
	Student1ID         string
	Student2ID         string
	PDF                Upload
	AcceptanceLetter   *Upload
}

// Create registers a new proyecto. The actor must be a docente and must be
// the proyecto's director.
func (s *ProyectoService) Create(ctx context.Context, actorID string, in CreateProyectoInput) (*domain.Proyecto, error) {
	if err := s.requireRole(ctx, actorID, RoleDocente); err != nil {
		return nil, err
	}
	if actorID != in.DirectorID {
		return nil, &domain.UnauthorizedActorError{ActorID: actorID, Reason: "only the director can create the proyecto"}
	}

	pdf, err := s.storePDF(ctx, "formato-a", in.PDF)
	if err != nil {
		return nil, err
	}
	var letter *domain.Attachment
	if in.AcceptanceLetter != nil {
		att, err := s.storePDF(ctx, "cartas", *in.AcceptanceLetter)
		if err != nil {
			return nil, err
		}
		letter = &att
	}

	proyecto, err := domain.NewProyecto(domain.NewProyectoParams{
		Title:              in.Title,
		Modality:           in.Modality,
		GeneralObjective:   in.GeneralObjective,
		SpecificObjectives: in.SpecificObjectives,
		DirectorID:         in.DirectorID,
		CodirectorID:       in.CodirectorID,
		Student1ID:         in.Student1ID,
		Student2ID:         in.Student2ID,
		PDF:                pdf,
		AcceptanceLetter:   letter,
	})
	if err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, proyecto); err != nil {
		return nil, err
	}
	return proyecto, nil
}

// SubmitForReview sends the drafted Formato A to coordinator review.
func (s *ProyectoService) SubmitForReview(ctx context.Context, actorID, proyectoID string) (*domain.Proyecto, error) {
	return s.transition(ctx, proyectoID, func(p *domain.Proyecto) error {
		if actorID != p.Participants.DirectorID {
			return &domain.UnauthorizedActorError{ActorID: actorID, Reason: "only the director can submit the formato A"}
		}
		return p.SubmitForReview()
	})
}

// ReviewFormatoA records the coordinator's verdict over the current attempt.
func (s *ProyectoService) ReviewFormatoA(ctx context.Context, actorID, proyectoID string, approved bool, comments string) (*domain.Proyecto, error) {
	if err := s.requireRole(ctx, actorID, RoleCoordinador); err != nil {
		return nil, err
	}
	return s.transition(ctx, proyectoID, func(p *domain.Proyecto) error {
		return p.ReviewFormatoA(approved, comments, actorID)
	})
}

// ResubmitFormatoA uploads a corrected Formato A version after a revision
// request.
func (s *ProyectoService) ResubmitFormatoA(ctx context.Context, actorID, proyectoID string, pdfUpload Upload, letterUpload *Upload) (*domain.Proyecto, error) {
	proyecto, err := s.repo.FindByID(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	if actorID != proyecto.Participants.DirectorID {
		return nil, &domain.UnauthorizedActorError{ActorID: actorID, Reason: "only the director can resubmit the formato A"}
	}
	// Guard before touching storage so a refused transition leaves no
	// orphaned upload behind.
	if !proyecto.State.CanResubmit() {
		return nil, &domain.InvalidStateError{Op: "resubmit formato A", Current: proyecto.State, Expected: domain.StateFormatoARevisionRequested}
	}

	pdf, err := s.storePDF(ctx, "formato-a", pdfUpload)
	if err != nil {
		return nil, err
	}
	var letter *domain.Attachment
	if letterUpload != nil {
		att, err := s.storePDF(ctx, "cartas", *letterUpload)
		if err != nil {
			return nil, err
		}
		letter = &att
	}

	if err := proyecto.ResubmitFormatoA(pdf, letter); err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, proyecto); err != nil {
		return nil, err
	}
	return proyecto, nil
}

// UploadAnteproyecto stores the second-stage document. Director identity is
// enforced by the aggregate.
func (s *ProyectoService) UploadAnteproyecto(ctx context.Context, actorID, proyectoID string, pdfUpload Upload) (*domain.Proyecto, error) {
	proyecto, err := s.repo.FindByID(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	if !proyecto.State.CanUploadAnteproyecto() {
		return nil, &domain.InvalidStateError{Op: "upload anteproyecto", Current: proyecto.State, Expected: domain.StateFormatoAApproved}
	}
	pdf, err := s.storePDF(ctx, "anteproyectos", pdfUpload)
	if err != nil {
		return nil, err
	}
	if err := proyecto.UploadAnteproyecto(pdf, actorID); err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, proyecto); err != nil {
		return nil, err
	}
	return proyecto, nil
}

// AssignEvaluators assigns both anteproyecto evaluators. Requires the
// jefatura role.
func (s *ProyectoService) AssignEvaluators(ctx context.Context, actorID, proyectoID, eval1ID, eval2ID string) (*domain.Proyecto, error) {
	if err := s.requireRole(ctx, actorID, RoleJefatura); err != nil {
		return nil, err
	}
	return s.transition(ctx, proyectoID, func(p *domain.Proyecto) error {
		return p.AssignEvaluators(eval1ID, eval2ID)
	})
}

// ReviewAnteproyecto records one assigned evaluator's verdict. Assignment
// membership is enforced by the aggregate.
func (s *ProyectoService) ReviewAnteproyecto(ctx context.Context, actorID, proyectoID string, approved bool, comments string) (*domain.Proyecto, error) {
	return s.transition(ctx, proyectoID, func(p *domain.Proyecto) error {
		return p.ReviewAnteproyecto(approved, comments, actorID)
	})
}

// Get returns one proyecto by id.
func (s *ProyectoService) Get(ctx context.Context, proyectoID string) (*domain.Proyecto, error) {
	return s.repo.FindByID(ctx, proyectoID)
}

// ListByParticipant returns every proyecto the given user participates in.
func (s *ProyectoService) ListByParticipant(ctx context.Context, participantID string) ([]domain.Proyecto, error) {
	return s.repo.ListByParticipant(ctx, participantID)
}

// transition loads the aggregate, applies fn and persists. Events queued by
// fn are published only after the save succeeds.
func (s *ProyectoService) transition(ctx context.Context, proyectoID string, fn func(*domain.Proyecto) error) (*domain.Proyecto, error) {
	proyecto, err := s.repo.FindByID(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	if err := fn(proyecto); err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, proyecto); err != nil {
		return nil, err
	}
	return proyecto, nil
}

func (s *ProyectoService) saveAndPublish(ctx context.Context, p *domain.Proyecto) error {
	if err := s.repo.Save(ctx, p); err != nil {
		return err
	}
	events := p.DrainEvents()
	if len(events) == 0 {
		return nil
	}
	// Fire-and-forget: the transition is already durable, a publish failure
	// must not undo it.
	if err := s.publisher.PublishAll(ctx, events); err != nil {
		log.Printf("proyecto %s: failed to publish %d event(s): %v", p.ID, len(events), err)
	}
	return nil
}

func (s *ProyectoService) storePDF(ctx context.Context, folder string, upload Upload) (domain.Attachment, error) {
	path, err := s.storage.Store(ctx, folder, upload)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("store %s upload: %w", folder, err)
	}
	return domain.NewPDFAttachment(path, upload.Filename)
}

func (s *ProyectoService) requireRole(ctx context.Context, actorID, role string) error {
	ok, err := s.roles.HasRole(ctx, actorID, role)
	if err != nil {
		return fmt.Errorf("check role %s: %w", role, err)
	}
	if !ok {
		return &domain.UnauthorizedActorError{ActorID: actorID, Reason: "role " + role + " required"}
	}
	return nil
}
