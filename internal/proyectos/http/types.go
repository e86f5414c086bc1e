package http

// CreateProyectoRequest is the multipart form for creating a proyecto. The
// Formato A PDF (field "pdf") and, for professional practice, the acceptance
// letter (field "carta_aceptacion") travel as files.
type CreateProyectoRequest struct {
	Title              string   `form:"title" binding:"required"`
	Modality           string   `form:"modality" binding:"required"`
	GeneralObjective   string   `form:"general_objective" binding:"required"`
	SpecificObjectives []string `form:"specific_objectives" binding:"required"`
	CodirectorID       string   `form:"codirector_id"`
	Student1ID         string   `form:"student1_id" binding:"required"`
	Student2ID         string   `form:"student2_id"`
}

// EvaluationRequest carries a reviewer or evaluator verdict.
type EvaluationRequest struct {
	Approved *bool  `json:"approved" binding:"required"`
	Comments string `json:"comments"`
}

// AssignEvaluatorsRequest carries the two anteproyecto evaluator ids.
type AssignEvaluatorsRequest struct {
	Evaluator1ID string `json:"evaluator1_id" binding:"required"`
	Evaluator2ID string `json:"evaluator2_id" binding:"required"`
}
