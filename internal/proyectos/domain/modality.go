package domain

// Modality is the kind of trabajo de grado being proposed.
type Modality string

const (
	// ModalityResearch is a research proyecto.
	ModalityResearch Modality = "research"
	// ModalityProfessionalPractice is a professional practice proyecto and
	// requires a company acceptance letter alongside the Formato A.
	ModalityProfessionalPractice Modality = "professional_practice"
)

// IsValid reports whether m is a known modality.
func (m Modality) IsValid() bool {
	return m == ModalityResearch || m == ModalityProfessionalPractice
}

// RequiresAcceptanceLetter reports whether the modality demands an acceptance
// letter attachment.
func (m Modality) RequiresAcceptanceLetter() bool {
	return m == ModalityProfessionalPractice
}
