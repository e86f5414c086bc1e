package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() NewProyectoParams {
	pdf, _ := NewPDFAttachment("uploads/formato-a-v1.pdf", "formatoA.pdf")
	return NewProyectoParams{
		Title:              "Automated Grading Pipeline for Programming Courses",
		Modality:           ModalityResearch,
		GeneralObjective:   "Construir una plataforma de calificacion automatica",
		SpecificObjectives: []string{"Disenar el pipeline", "Evaluar precision"},
		DirectorID:         "dir-1",
		CodirectorID:       "codir-1",
		Student1ID:         "est-1",
		Student2ID:         "est-2",
		PDF:                pdf,
	}
}

func newTestProyecto(t *testing.T) *Proyecto {
	t.Helper()
	p, err := NewProyecto(validParams())
	require.NoError(t, err)
	p.DrainEvents()
	return p
}

func eventTypes(events []Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.EventType())
	}
	return out
}

func TestNewProyecto(t *testing.T) {
	t.Run("creates attempt 1 in drafted state and queues created event", func(t *testing.T) {
		p, err := NewProyecto(validParams())
		require.NoError(t, err)

		assert.NotEmpty(t, p.ID)
		assert.Equal(t, StateFormatoADrafted, p.State)
		assert.Equal(t, 1, p.FormatoA.AttemptNumber)
		assert.Nil(t, p.Anteproyecto)

		events := p.DrainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(FormatoACreated)
		require.True(t, ok)
		assert.Equal(t, p.ID, created.ProjectID())
		assert.Equal(t, "dir-1", created.DirectorID)
		assert.Equal(t, 1, created.Attempt)
		assert.Empty(t, p.PendingEvents())
	})

	t.Run("professional practice requires acceptance letter", func(t *testing.T) {
		params := validParams()
		params.Modality = ModalityProfessionalPractice
		_, err := NewProyecto(params)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)

		letter, _ := NewPDFAttachment("uploads/carta.pdf", "carta_aceptacion.pdf")
		params.AcceptanceLetter = &letter
		p, err := NewProyecto(params)
		require.NoError(t, err)
		require.NotNil(t, p.FormatoA.AcceptanceLetter)
		assert.Equal(t, "uploads/carta.pdf", p.FormatoA.AcceptanceLetter.Path)
	})

	t.Run("rejects missing pdf", func(t *testing.T) {
		params := validParams()
		params.PDF = Attachment{}
		_, err := NewProyecto(params)
		assert.Error(t, err)
	})
}

func TestSubmitForReview(t *testing.T) {
	t.Run("drafted to under review", func(t *testing.T) {
		p := newTestProyecto(t)
		require.NoError(t, p.SubmitForReview())
		assert.Equal(t, StateFormatoAUnderReview, p.State)
	})

	t.Run("fails from any other state", func(t *testing.T) {
		p := newTestProyecto(t)
		require.NoError(t, p.SubmitForReview())

		err := p.SubmitForReview()
		var serr *InvalidStateError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, StateFormatoAUnderReview, serr.Current)
	})
}

func TestReviewFormatoA(t *testing.T) {
	t.Run("approval unlocks anteproyecto upload", func(t *testing.T) {
		p := newTestProyecto(t)
		require.NoError(t, p.SubmitForReview())
		require.NoError(t, p.ReviewFormatoA(true, "bien planteado", "coord-1"))

		assert.Equal(t, StateFormatoAApproved, p.State)
		require.Len(t, p.FormatoA.Evaluations, 1)
		assert.Equal(t, "coord-1", p.FormatoA.Evaluations[0].EvaluatorID)

		events := p.DrainEvents()
		require.Len(t, events, 1)
		evaluated := events[0].(FormatoAEvaluated)
		assert.True(t, evaluated.Approved)
		assert.Equal(t, 1, evaluated.Attempt)
	})

	t.Run("rejection before attempt 3 requests revision", func(t *testing.T) {
		p := newTestProyecto(t)
		require.NoError(t, p.SubmitForReview())
		require.NoError(t, p.ReviewFormatoA(false, "corregir objetivos", "coord-1"))
		assert.Equal(t, StateFormatoARevisionRequested, p.State)
		assert.False(t, p.State.IsFinal())
	})

	t.Run("fails outside under review", func(t *testing.T) {
		p := newTestProyecto(t)
		err := p.ReviewFormatoA(true, "", "coord-1")
		var serr *InvalidStateError
		require.ErrorAs(t, err, &serr)
		assert.Empty(t, p.PendingEvents())
	})
}

func TestResubmitFormatoA(t *testing.T) {
	newVersion := func(t *testing.T, n int) Attachment {
		t.Helper()
		att, err := NewPDFAttachment(fmt.Sprintf("uploads/formato-a-v%d.pdf", n), "formatoA.pdf")
		require.NoError(t, err)
		return att
	}

	t.Run("advances attempt and returns to review", func(t *testing.T) {
		p := newTestProyecto(t)
		require.NoError(t, p.SubmitForReview())
		require.NoError(t, p.ReviewFormatoA(false, "corregir", "coord-1"))
		p.DrainEvents()

		require.NoError(t, p.ResubmitFormatoA(newVersion(t, 2), nil))
		assert.Equal(t, StateFormatoAUnderReview, p.State)
		assert.Equal(t, 2, p.FormatoA.AttemptNumber)

		events := p.DrainEvents()
		require.Len(t, events, 1)
		resubmitted := events[0].(FormatoAResubmitted)
		assert.Equal(t, 2, resubmitted.Attempt)
	})

	t.Run("only legal from revision requested, aggregate unchanged otherwise", func(t *testing.T) {
		p := newTestProyecto(t)
		err := p.ResubmitFormatoA(newVersion(t, 2), nil)
		var serr *InvalidStateError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, StateFormatoADrafted, p.State)
		assert.Equal(t, 1, p.FormatoA.AttemptNumber)
		assert.Empty(t, p.PendingEvents())
	})

	t.Run("third rejection is terminal with no event after it", func(t *testing.T) {
		p := newTestProyecto(t)
		require.NoError(t, p.SubmitForReview())

		// attempt 1 rejected, resubmit; attempt 2 rejected, resubmit;
		// attempt 3 rejected -> terminal.
		require.NoError(t, p.ReviewFormatoA(false, "rechazo 1", "coord-1"))
		require.NoError(t, p.ResubmitFormatoA(newVersion(t, 2), nil))
		require.NoError(t, p.ReviewFormatoA(false, "rechazo 2", "coord-1"))
		require.NoError(t, p.ResubmitFormatoA(newVersion(t, 3), nil))
		require.NoError(t, p.ReviewFormatoA(false, "rechazo 3", "coord-1"))

		assert.Equal(t, StateFormatoARejected, p.State)
		assert.True(t, p.State.IsFinal())
		assert.Equal(t, 3, p.FormatoA.AttemptNumber)
		require.Len(t, p.FormatoA.Evaluations, 3)

		types := eventTypes(p.DrainEvents())
		assert.Equal(t, []string{
			EventFormatoAEvaluated, EventFormatoAResubmitted,
			EventFormatoAEvaluated, EventFormatoAResubmitted,
			EventFormatoAEvaluated,
		}, types)

		// No further resubmission is possible from the terminal state.
		err := p.ResubmitFormatoA(newVersion(t, 4), nil)
		var serr *InvalidStateError
		require.ErrorAs(t, err, &serr)
		assert.Empty(t, p.PendingEvents())
	})

	t.Run("attempt counter never exceeds three", func(t *testing.T) {
		f := newFormatoA(Attachment{Path: "x", OriginalFilename: "x", Kind: KindPDF}, nil)
		require.NoError(t, f.IncrementAttempt())
		require.NoError(t, f.IncrementAttempt())
		assert.Equal(t, 3, f.AttemptNumber)

		err := f.IncrementAttempt()
		var merr *MaxAttemptsError
		require.ErrorAs(t, err, &merr)
		assert.Equal(t, 3, merr.Attempt)
		assert.Equal(t, 3, f.AttemptNumber)
	})
}

func approvedProyecto(t *testing.T) *Proyecto {
	t.Helper()
	p := newTestProyecto(t)
	require.NoError(t, p.SubmitForReview())
	require.NoError(t, p.ReviewFormatoA(true, "", "coord-1"))
	p.DrainEvents()
	return p
}

func TestUploadAnteproyecto(t *testing.T) {
	pdf, _ := NewPDFAttachment("uploads/anteproyecto.pdf", "anteproyecto.pdf")

	t.Run("director uploads once", func(t *testing.T) {
		p := approvedProyecto(t)
		require.NoError(t, p.UploadAnteproyecto(pdf, "dir-1"))
		assert.Equal(t, StateAnteproyectoSubmitted, p.State)
		require.NotNil(t, p.Anteproyecto)
		assert.False(t, p.Anteproyecto.SubmittedAt.IsZero())

		events := p.DrainEvents()
		require.Len(t, events, 1)
		submitted := events[0].(AnteproyectoSubmitted)
		assert.Equal(t, "uploads/anteproyecto.pdf", submitted.PDFPath)
	})

	t.Run("non-director is rejected", func(t *testing.T) {
		p := approvedProyecto(t)
		err := p.UploadAnteproyecto(pdf, "est-1")
		var uerr *UnauthorizedActorError
		require.ErrorAs(t, err, &uerr)
		assert.Nil(t, p.Anteproyecto)
	})

	t.Run("fails before approval", func(t *testing.T) {
		p := newTestProyecto(t)
		err := p.UploadAnteproyecto(pdf, "dir-1")
		var serr *InvalidStateError
		require.ErrorAs(t, err, &serr)
	})
}

func submittedProyecto(t *testing.T) *Proyecto {
	t.Helper()
	p := approvedProyecto(t)
	pdf, _ := NewPDFAttachment("uploads/anteproyecto.pdf", "anteproyecto.pdf")
	require.NoError(t, p.UploadAnteproyecto(pdf, "dir-1"))
	p.DrainEvents()
	return p
}

func TestAssignEvaluators(t *testing.T) {
	t.Run("assigns both and moves to review", func(t *testing.T) {
		p := submittedProyecto(t)
		require.NoError(t, p.AssignEvaluators("eval-1", "eval-2"))
		assert.Equal(t, StateAnteproyectoUnderReview, p.State)
		assert.True(t, p.Anteproyecto.HasEvaluators())

		events := p.DrainEvents()
		require.Len(t, events, 1)
		assigned := events[0].(EvaluatorsAssigned)
		assert.Equal(t, "eval-1", assigned.Evaluator1ID)
		assert.Equal(t, "eval-2", assigned.Evaluator2ID)
	})

	t.Run("director can never evaluate, regardless of the other id", func(t *testing.T) {
		p := submittedProyecto(t)
		assert.Error(t, p.AssignEvaluators("dir-1", "eval-2"))
		assert.Error(t, p.AssignEvaluators("eval-1", "dir-1"))
		assert.False(t, p.Anteproyecto.HasEvaluators())
	})

	t.Run("codirector excluded and ids must be distinct", func(t *testing.T) {
		p := submittedProyecto(t)
		assert.Error(t, p.AssignEvaluators("codir-1", "eval-2"))
		assert.Error(t, p.AssignEvaluators("eval-1", "eval-1"))
		assert.Error(t, p.AssignEvaluators("", "eval-2"))
	})

	t.Run("second assignment is refused without partial mutation", func(t *testing.T) {
		p := submittedProyecto(t)
		require.NoError(t, p.AssignEvaluators("eval-1", "eval-2"))
		p.State = StateAnteproyectoSubmitted // force a replay of the guard
		err := p.AssignEvaluators("eval-3", "eval-4")
		assert.Error(t, err)
		assert.Equal(t, "eval-1", p.Anteproyecto.Evaluator1ID)
		assert.Equal(t, "eval-2", p.Anteproyecto.Evaluator2ID)
	})
}

func underReviewProyecto(t *testing.T) *Proyecto {
	t.Helper()
	p := submittedProyecto(t)
	require.NoError(t, p.AssignEvaluators("eval-1", "eval-2"))
	p.DrainEvents()
	return p
}

func TestReviewAnteproyecto(t *testing.T) {
	t.Run("one verdict keeps the review open with no terminal event", func(t *testing.T) {
		p := underReviewProyecto(t)
		require.NoError(t, p.ReviewAnteproyecto(true, "solido", "eval-1"))
		assert.Equal(t, StateAnteproyectoUnderReview, p.State)
		assert.Empty(t, p.PendingEvents())
		require.Len(t, p.Anteproyecto.Evaluations, 1)
	})

	t.Run("both approvals reach terminal approval", func(t *testing.T) {
		p := underReviewProyecto(t)
		require.NoError(t, p.ReviewAnteproyecto(true, "", "eval-1"))
		require.NoError(t, p.ReviewAnteproyecto(true, "", "eval-2"))
		assert.Equal(t, StateAnteproyectoApproved, p.State)

		events := p.DrainEvents()
		require.Len(t, events, 1)
		final := events[0].(AnteproyectoEvaluated)
		assert.True(t, final.Approved)
	})

	t.Run("a single rejection is decisive", func(t *testing.T) {
		p := underReviewProyecto(t)
		require.NoError(t, p.ReviewAnteproyecto(true, "aprobado", "eval-1"))
		assert.Equal(t, StateAnteproyectoUnderReview, p.State)

		require.NoError(t, p.ReviewAnteproyecto(false, "alcance insuficiente", "eval-2"))
		assert.Equal(t, StateAnteproyectoRejected, p.State)
		assert.True(t, p.State.IsFinal())

		events := p.DrainEvents()
		require.Len(t, events, 1)
		final := events[0].(AnteproyectoEvaluated)
		assert.False(t, final.Approved)
	})

	t.Run("unassigned evaluator cannot record", func(t *testing.T) {
		p := underReviewProyecto(t)
		err := p.ReviewAnteproyecto(true, "", "intruso")
		var uerr *UnauthorizedActorError
		require.ErrorAs(t, err, &uerr)
		assert.Empty(t, p.Anteproyecto.Evaluations)
	})

	t.Run("same evaluator cannot record twice", func(t *testing.T) {
		p := underReviewProyecto(t)
		require.NoError(t, p.ReviewAnteproyecto(true, "", "eval-1"))
		err := p.ReviewAnteproyecto(false, "cambio de opinion", "eval-1")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, StateAnteproyectoUnderReview, p.State)
		require.Len(t, p.Anteproyecto.Evaluations, 1)
	})
}
