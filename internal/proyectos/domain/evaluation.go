package domain

import (
	"strings"
	"time"
)

// Evaluation is one evaluator's verdict on one document version.
type Evaluation struct {
	Approved    bool      `json:"approved"`
	Comments    string    `json:"comments,omitempty"`
	EvaluatorID string    `json:"evaluator_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewEvaluation builds a timestamped evaluation for the given evaluator.
func NewEvaluation(evaluatorID string, approved bool, comments string) (Evaluation, error) {
	if strings.TrimSpace(evaluatorID) == "" {
		return Evaluation{}, newValidation("evaluator_id", "evaluator is required")
	}
	return Evaluation{
		Approved:    approved,
		Comments:    strings.TrimSpace(comments),
		EvaluatorID: strings.TrimSpace(evaluatorID),
		Timestamp:   time.Now().UTC(),
	}, nil
}
