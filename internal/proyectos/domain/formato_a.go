package domain

// MaxFormatoAAttempts is the ceiling on Formato A submission attempts.
const MaxFormatoAAttempts = 3

// FormatoAInfo tracks the first-stage document: its attempt counter, attached
// files and evaluation history. One exists per proyecto, created with it.
type FormatoAInfo struct {
	AttemptNumber    int          `json:"attempt_number"`
	PDF              Attachment   `json:"pdf"`
	AcceptanceLetter *Attachment  `json:"acceptance_letter,omitempty"`
	Evaluations      []Evaluation `json:"evaluations"`
}

func newFormatoA(pdf Attachment, letter *Attachment) *FormatoAInfo {
	return &FormatoAInfo{
		AttemptNumber:    1,
		PDF:              pdf,
		AcceptanceLetter: letter,
		Evaluations:      []Evaluation{},
	}
}

// IncrementAttempt advances the attempt counter. It is called on
// resubmission, not on rejection: rejecting the 3rd attempt reaches a
// terminal state without a 4th increment.
func (f *FormatoAInfo) IncrementAttempt() error {
	if f.AttemptNumber >= MaxFormatoAAttempts {
		return &MaxAttemptsError{Attempt: f.AttemptNumber}
	}
	f.AttemptNumber++
	return nil
}

// ReplaceAttachments swaps in the documents of a new attempt.
func (f *FormatoAInfo) ReplaceAttachments(pdf Attachment, letter *Attachment) {
	f.PDF = pdf
	if letter != nil {
		f.AcceptanceLetter = letter
	}
}

func (f *FormatoAInfo) addEvaluation(ev Evaluation) {
	f.Evaluations = append(f.Evaluations, ev)
}
