package domain

import "time"

// Event type names as published on the event bus.
const (
	EventFormatoACreated       = "formato_a.created"
	EventFormatoAEvaluated     = "formato_a.evaluated"
	EventFormatoAResubmitted   = "formato_a.resubmitted"
	EventAnteproyectoSubmitted = "anteproyecto.submitted"
	EventEvaluatorsAssigned    = "anteproyecto.evaluators_assigned"
	EventAnteproyectoEvaluated = "anteproyecto.evaluated"
)

// Event is a domain event queued on the aggregate and drained by the use-case
// layer after a successful save.
type Event interface {
	EventType() string
	ProjectID() string
	OccurredAt() time.Time
}

type eventBase struct {
	ProyectoID string    `json:"proyecto_id"`
	At         time.Time `json:"at"`
}

func newEventBase(proyectoID string) eventBase {
	return eventBase{ProyectoID: proyectoID, At: time.Now().UTC()}
}

func (e eventBase) ProjectID() string     { return e.ProyectoID }
func (e eventBase) OccurredAt() time.Time { return e.At }

// FormatoACreated fires when a proyecto and its first Formato A attempt are
// created.
type FormatoACreated struct {
	eventBase
	Title      string   `json:"title"`
	Modality   Modality `json:"modality"`
	DirectorID string   `json:"director_id"`
	Attempt    int      `json:"attempt"`
}

func (FormatoACreated) EventType() string { return EventFormatoACreated }

// FormatoAEvaluated fires on every coordinator verdict over a Formato A
// attempt.
type FormatoAEvaluated struct {
	eventBase
	Approved    bool   `json:"approved"`
	Comments    string `json:"comments,omitempty"`
	EvaluatorID string `json:"evaluator_id"`
	Attempt     int    `json:"attempt"`
}

func (FormatoAEvaluated) EventType() string { return EventFormatoAEvaluated }

// FormatoAResubmitted fires when a corrected Formato A version is submitted.
type FormatoAResubmitted struct {
	eventBase
	Attempt int `json:"attempt"`
}

func (FormatoAResubmitted) EventType() string { return EventFormatoAResubmitted }

// AnteproyectoSubmitted fires when the director uploads the second-stage
// document.
type AnteproyectoSubmitted struct {
	eventBase
	PDFPath string `json:"pdf_path"`
}

func (AnteproyectoSubmitted) EventType() string { return EventAnteproyectoSubmitted }

// EvaluatorsAssigned fires when both anteproyecto evaluators are assigned.
type EvaluatorsAssigned struct {
	eventBase
	Evaluator1ID string `json:"evaluator1_id"`
	Evaluator2ID string `json:"evaluator2_id"`
}

func (EvaluatorsAssigned) EventType() string { return EventEvaluatorsAssigned }

// AnteproyectoEvaluated fires once, when the second evaluator's verdict
// closes the review and the consensus decision is reached.
type AnteproyectoEvaluated struct {
	eventBase
	Approved bool   `json:"approved"`
	Comments string `json:"comments,omitempty"`
}

func (AnteproyectoEvaluated) EventType() string { return EventAnteproyectoEvaluated }
