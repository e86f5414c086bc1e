package domain

// State represents the lifecycle state of a Proyecto.
type State string

// Lifecycle states for the trabajo de grado workflow.
const (
	StateFormatoADrafted           State = "formato_a_drafted"
	StateFormatoAUnderReview       State = "formato_a_under_review"
	StateFormatoARevisionRequested State = "formato_a_revision_requested"
	StateFormatoAApproved          State = "formato_a_approved"
	StateFormatoARejected          State = "formato_a_rejected"
	StateAnteproyectoSubmitted     State = "anteproyecto_submitted"
	StateAnteproyectoUnderReview   State = "anteproyecto_under_review"
	StateAnteproyectoApproved      State = "anteproyecto_approved"
	StateAnteproyectoRejected      State = "anteproyecto_rejected"
)

// IsValid reports whether s is one of the known lifecycle states.
func (s State) IsValid() bool {
	switch s {
	case StateFormatoADrafted, StateFormatoAUnderReview, StateFormatoARevisionRequested,
		StateFormatoAApproved, StateFormatoARejected,
		StateAnteproyectoSubmitted, StateAnteproyectoUnderReview,
		StateAnteproyectoApproved, StateAnteproyectoRejected:
		return true
	}
	return false
}

// IsFinal reports whether the workflow can no longer advance from s.
func (s State) IsFinal() bool {
	switch s {
	case StateFormatoARejected, StateAnteproyectoApproved, StateAnteproyectoRejected:
		return true
	}
	return false
}

// CanResubmit reports whether a new Formato A version may be submitted from s.
func (s State) CanResubmit() bool {
	return s == StateFormatoARevisionRequested
}

// CanUploadAnteproyecto reports whether the second-stage document may be
// uploaded from s.
func (s State) CanUploadAnteproyecto() bool {
	return s == StateFormatoAApproved
}
