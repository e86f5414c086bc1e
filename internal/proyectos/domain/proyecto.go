package domain

import (
	"time"

	"github.com/google/uuid"
)

// Proyecto is the aggregate root of the trabajo de grado workflow. It owns
// the lifecycle state, delegates document bookkeeping to FormatoAInfo and
// AnteproyectoInfo, guards every transition against the current state and
// queues domain events for the use-case layer to publish after a save.
//
// The aggregate is pure state plus validation: no transition blocks, and
// validation always happens before any mutation so a failed call leaves the
// proyecto untouched. Single-writer semantics are the caller's contract,
// enforced at persistence time through the Version field.
type Proyecto struct {
	ID           string            `json:"id"`
	Title        Title             `json:"title"`
	Modality     Modality          `json:"modality"`
	Objectives   Objectives        `json:"objectives"`
	Participants Participants      `json:"participants"`
	State        State             `json:"state"`
	FormatoA     *FormatoAInfo     `json:"formato_a"`
	Anteproyecto *AnteproyectoInfo `json:"anteproyecto,omitempty"`
	Version      int               `json:"version"`
	CreatedAt    time.Time         `json:"created_at"`
	ModifiedAt   time.Time         `json:"modified_at"`

	pendingEvents []Event
}

// NewProyectoParams carries everything needed to create a proyecto with its
// first Formato A attempt.
type NewProyectoParams struct {
	Title              string
	Modality           Modality
	GeneralObjective   string
	SpecificObjectives []string
	DirectorID         string
	CodirectorID       string
	Student1ID         string
	Student2ID         string
	PDF                Attachment
	AcceptanceLetter   *Attachment
}

// NewProyecto is the aggregate factory. It validates every value object,
// creates Formato A attempt 1 and queues the FormatoACreated event. No other
// code path constructs a proyecto in a non-initial state.
func NewProyecto(p NewProyectoParams) (*Proyecto, error) {
	title, err := NewTitle(p.Title)
	if err != nil {
		return nil, err
	}
	if !p.Modality.IsValid() {
		return nil, newValidation("modality", "unknown modality")
	}
	objectives, err := NewObjectives(p.GeneralObjective, p.SpecificObjectives)
	if err != nil {
		return nil, err
	}
	participants, err := NewParticipants(p.DirectorID, p.CodirectorID, p.Student1ID, p.Student2ID)
	if err != nil {
		return nil, err
	}
	if p.PDF.IsZero() || p.PDF.Kind != KindPDF {
		return nil, newValidation("pdf", "a PDF document is required")
	}
	if p.Modality.RequiresAcceptanceLetter() && p.AcceptanceLetter == nil {
		return nil, newValidation("acceptance_letter", "professional practice requires an acceptance letter")
	}

	now := time.Now().UTC()
	proyecto := &Proyecto{
		ID:           uuid.New().String(),
		Title:        title,
		Modality:     p.Modality,
		Objectives:   objectives,
		Participants: participants,
		State:        StateFormatoADrafted,
		FormatoA:     newFormatoA(p.PDF, p.AcceptanceLetter),
		CreatedAt:    now,
		ModifiedAt:   now,
	}
	proyecto.record(FormatoACreated{
		eventBase:  newEventBase(proyecto.ID),
		Title:      title.String(),
		Modality:   p.Modality,
		DirectorID: participants.DirectorID,
		Attempt:    proyecto.FormatoA.AttemptNumber,
	})
	return proyecto, nil
}

// SubmitForReview moves a drafted Formato A into coordinator review.
func (p *Proyecto) SubmitForReview() error {
	if p.State != StateFormatoADrafted {
		return newInvalidState("submit for review", p.State, StateFormatoADrafted)
	}
	if p.Title == "" {
		return newValidation("title", "title is required")
	}
	p.State = StateFormatoAUnderReview
	p.touch()
	return nil
}

// ReviewFormatoA records the coordinator's verdict over the current attempt.
// A rejection on the 3rd attempt is terminal; earlier rejections request a
// revision.
func (p *Proyecto) ReviewFormatoA(approved bool, comments, reviewerID string) error {
	if p.State != StateFormatoAUnderReview {
		return newInvalidState("review formato A", p.State, StateFormatoAUnderReview)
	}
	ev, err := NewEvaluation(reviewerID, approved, comments)
	if err != nil {
		return err
	}

	p.FormatoA.addEvaluation(ev)
	switch {
	case approved:
		p.State = StateFormatoAApproved
	case p.FormatoA.AttemptNumber >= MaxFormatoAAttempts:
		p.State = StateFormatoARejected
	default:
		p.State = StateFormatoARevisionRequested
	}
	p.record(FormatoAEvaluated{
		eventBase:   newEventBase(p.ID),
		Approved:    approved,
		Comments:    ev.Comments,
		EvaluatorID: ev.EvaluatorID,
		Attempt:     p.FormatoA.AttemptNumber,
	})
	p.touch()
	return nil
}

// ResubmitFormatoA submits a corrected version after a revision request. The
// attempt counter advances here, on resubmission: a 4th version can never be
// produced.
func (p *Proyecto) ResubmitFormatoA(pdf Attachment, letter *Attachment) error {
	if p.State != StateFormatoARevisionRequested {
		return newInvalidState("resubmit formato A", p.State, StateFormatoARevisionRequested)
	}
	if pdf.IsZero() || pdf.Kind != KindPDF {
		return newValidation("pdf", "a PDF document is required")
	}
	if err := p.FormatoA.IncrementAttempt(); err != nil {
		return err
	}
	p.FormatoA.ReplaceAttachments(pdf, letter)
	p.State = StateFormatoAUnderReview
	p.record(FormatoAResubmitted{
		eventBase: newEventBase(p.ID),
		Attempt:   p.FormatoA.AttemptNumber,
	})
	p.touch()
	return nil
}

// UploadAnteproyecto creates the second-stage document. Only the proyecto
// director may upload it, and only once.
func (p *Proyecto) UploadAnteproyecto(pdf Attachment, actorID string) error {
	if p.State != StateFormatoAApproved {
		return newInvalidState("upload anteproyecto", p.State, StateFormatoAApproved)
	}
	if actorID != p.Participants.DirectorID {
		return &UnauthorizedActorError{ActorID: actorID, Reason: "only the director can upload the anteproyecto"}
	}
	if p.Anteproyecto != nil {
		return newValidation("anteproyecto", "anteproyecto already uploaded")
	}
	if pdf.IsZero() || pdf.Kind != KindPDF {
		return newValidation("pdf", "a PDF document is required")
	}
	p.Anteproyecto = newAnteproyecto(pdf)
	p.State = StateAnteproyectoSubmitted
	p.record(AnteproyectoSubmitted{
		eventBase: newEventBase(p.ID),
		PDFPath:   pdf.Path,
	})
	p.touch()
	return nil
}

// AssignEvaluators assigns both anteproyecto evaluators at once. All
// exclusion checks run before any mutation, so a partial assignment never
// occurs, and a second assignment is refused.
func (p *Proyecto) AssignEvaluators(eval1ID, eval2ID string) error {
	if p.State != StateAnteproyectoSubmitted {
		return newInvalidState("assign evaluators", p.State, StateAnteproyectoSubmitted)
	}
	if eval1ID == "" || eval2ID == "" {
		return newValidation("evaluators", "both evaluators are required")
	}
	if eval1ID == eval2ID {
		return newValidation("evaluators", "evaluators must be distinct")
	}
	for _, id := range []string{eval1ID, eval2ID} {
		if id == p.Participants.DirectorID || (p.Participants.CodirectorID != "" && id == p.Participants.CodirectorID) {
			return newValidation("evaluators", "evaluators cannot direct the proyecto")
		}
	}
	if p.Anteproyecto.HasEvaluators() {
		return newValidation("evaluators", "evaluators already assigned")
	}
	p.Anteproyecto.assignEvaluators(eval1ID, eval2ID)
	p.State = StateAnteproyectoUnderReview
	p.record(EvaluatorsAssigned{
		eventBase:    newEventBase(p.ID),
		Evaluator1ID: eval1ID,
		Evaluator2ID: eval2ID,
	})
	p.touch()
	return nil
}

// ReviewAnteproyecto records one assigned evaluator's verdict. The state only
// leaves review once both evaluators have responded; the consensus decision
// then fires a single terminal AnteproyectoEvaluated event.
func (p *Proyecto) ReviewAnteproyecto(approved bool, comments, evaluatorID string) error {
	if p.State != StateAnteproyectoUnderReview {
		return newInvalidState("review anteproyecto", p.State, StateAnteproyectoUnderReview)
	}
	ev, err := NewEvaluation(evaluatorID, approved, comments)
	if err != nil {
		return err
	}
	if err := p.Anteproyecto.addEvaluation(ev); err != nil {
		return err
	}
	if p.Anteproyecto.BothEvaluated() {
		final := p.Anteproyecto.Consensus()
		if final {
			p.State = StateAnteproyectoApproved
		} else {
			p.State = StateAnteproyectoRejected
		}
		p.record(AnteproyectoEvaluated{
			eventBase: newEventBase(p.ID),
			Approved:  final,
			Comments:  ev.Comments,
		})
	}
	p.touch()
	return nil
}

// DrainEvents returns the queued domain events and clears the queue. The
// use-case layer drains only after a successful save so that nothing is
// published that was not durably committed.
func (p *Proyecto) DrainEvents() []Event {
	events := p.pendingEvents
	p.pendingEvents = nil
	return events
}

// PendingEvents returns the queued events without clearing them.
func (p *Proyecto) PendingEvents() []Event {
	return p.pendingEvents
}

func (p *Proyecto) record(e Event) {
	p.pendingEvents = append(p.pendingEvents, e)
}

func (p *Proyecto) touch() {
	p.ModifiedAt = time.Now().UTC()
}
