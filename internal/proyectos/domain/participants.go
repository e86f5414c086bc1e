package domain

import "strings"

// Participants identifies the people attached to a proyecto. Optional members
// (codirector, second student) are represented by an empty id.
type Participants struct {
	DirectorID   string `json:"director_id"`
	CodirectorID string `json:"codirector_id,omitempty"`
	Student1ID   string `json:"student1_id"`
	Student2ID   string `json:"student2_id,omitempty"`
}

// NewParticipants validates the participant set. The director and codirector
// must be distinct from each other and from both students.
func NewParticipants(directorID, codirectorID, student1ID, student2ID string) (Participants, error) {
	directorID = strings.TrimSpace(directorID)
	codirectorID = strings.TrimSpace(codirectorID)
	student1ID = strings.TrimSpace(student1ID)
	student2ID = strings.TrimSpace(student2ID)

	if directorID == "" {
		return Participants{}, newValidation("director_id", "director is required")
	}
	if student1ID == "" {
		return Participants{}, newValidation("student1_id", "at least one student is required")
	}
	if directorID == student1ID || directorID == student2ID {
		return Participants{}, newValidation("director_id", "director cannot also be a student")
	}
	if codirectorID != "" {
		if codirectorID == directorID {
			return Participants{}, newValidation("codirector_id", "codirector must differ from director")
		}
		if codirectorID == student1ID || codirectorID == student2ID {
			return Participants{}, newValidation("codirector_id", "codirector cannot also be a student")
		}
	}
	if student2ID != "" && student2ID == student1ID {
		return Participants{}, newValidation("student2_id", "students must be distinct")
	}

	return Participants{
		DirectorID:   directorID,
		CodirectorID: codirectorID,
		Student1ID:   student1ID,
		Student2ID:   student2ID,
	}, nil
}

// Includes reports whether id belongs to any participant of the proyecto.
func (p Participants) Includes(id string) bool {
	return id != "" && (id == p.DirectorID || id == p.CodirectorID || id == p.Student1ID || id == p.Student2ID)
}
