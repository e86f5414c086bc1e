package domain

import "time"

// AnteproyectoInfo tracks the second-stage document: its file, the two
// assigned evaluators and their individual verdicts. It exists only after the
// Formato A was approved and is created through the aggregate.
type AnteproyectoInfo struct {
	PDF          Attachment   `json:"pdf"`
	SubmittedAt  time.Time    `json:"submitted_at"`
	Evaluator1ID string       `json:"evaluator1_id,omitempty"`
	Evaluator2ID string       `json:"evaluator2_id,omitempty"`
	Evaluations  []Evaluation `json:"evaluations"`
}

func newAnteproyecto(pdf Attachment) *AnteproyectoInfo {
	return &AnteproyectoInfo{
		PDF:         pdf,
		SubmittedAt: time.Now().UTC(),
		Evaluations: []Evaluation{},
	}
}

// HasEvaluators reports whether both evaluators have been assigned.
// Evaluators are assigned together or not at all.
func (a *AnteproyectoInfo) HasEvaluators() bool {
	return a.Evaluator1ID != "" && a.Evaluator2ID != ""
}

func (a *AnteproyectoInfo) assignEvaluators(eval1ID, eval2ID string) {
	a.Evaluator1ID = eval1ID
	a.Evaluator2ID = eval2ID
}

// IsAssignedEvaluator reports whether id is one of the two assigned
// evaluators.
func (a *AnteproyectoInfo) IsAssignedEvaluator(id string) bool {
	return id != "" && (id == a.Evaluator1ID || id == a.Evaluator2ID)
}

func (a *AnteproyectoInfo) hasEvaluationFrom(id string) bool {
	for _, ev := range a.Evaluations {
		if ev.EvaluatorID == id {
			return true
		}
	}
	return false
}

// addEvaluation records one assigned evaluator's verdict. An unassigned
// evaluator cannot record, and the same evaluator cannot record twice.
func (a *AnteproyectoInfo) addEvaluation(ev Evaluation) error {
	if !a.IsAssignedEvaluator(ev.EvaluatorID) {
		return &UnauthorizedActorError{ActorID: ev.EvaluatorID, Reason: "not an assigned evaluator"}
	}
	if a.hasEvaluationFrom(ev.EvaluatorID) {
		return newValidation("evaluator_id", "evaluator already recorded a verdict")
	}
	a.Evaluations = append(a.Evaluations, ev)
	return nil
}

// BothEvaluated reports whether both assigned evaluators have recorded a
// verdict.
func (a *AnteproyectoInfo) BothEvaluated() bool {
	return a.HasEvaluators() &&
		a.hasEvaluationFrom(a.Evaluator1ID) &&
		a.hasEvaluationFrom(a.Evaluator2ID)
}

// Consensus combines both verdicts into the final decision: approval requires
// both evaluators to approve, any rejection is decisive. It is only
// meaningful once BothEvaluated is true.
func (a *AnteproyectoInfo) Consensus() bool {
	for _, ev := range a.Evaluations {
		if !ev.Approved {
			return false
		}
	}
	return len(a.Evaluations) > 0
}
