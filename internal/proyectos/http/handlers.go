package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GestionTG-25-26/tg-backend/internal/auth"
	"github.com/GestionTG-25-26/tg-backend/internal/proyectos/domain"
	"github.com/GestionTG-25-26/tg-backend/internal/proyectos/service"
)

// Handler exposes the trabajo de grado workflow over HTTP.
type Handler struct {
	svc *service.ProyectoService
}

// NewHandler creates a new proyectos handler.
func NewHandler(svc *service.ProyectoService) *Handler {
	return &Handler{svc: svc}
}

// Create registers a new proyecto with its Formato A attempt 1. The caller is
// the director.
func (h *Handler) Create(c *gin.Context) {
	actorID := auth.UserFirebaseUID(c)
	if actorID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateProyectoRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	pdf, err := formUpload(c, "pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer pdf.close()

	letter, err := optionalFormUpload(c, "carta_aceptacion")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if letter != nil {
		defer letter.close()
	}

	in := service.CreateProyectoInput{
		Title:              req.Title,
		Modality:           domain.Modality(req.Modality),
		GeneralObjective:   req.GeneralObjective,
		SpecificObjectives: req.SpecificObjectives,
		DirectorID:         actorID,
		CodirectorID:       req.CodirectorID,
		Student1ID:         req.Student1ID,
		Student2ID:         req.Student2ID,
		PDF:                pdf.upload,
	}
	if letter != nil {
		in.AcceptanceLetter = &letter.upload
	}

	proyecto, err := h.svc.Create(c.Request.Context(), actorID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"proyecto": proyecto})
}

// Get returns one proyecto.
func (h *Handler) Get(c *gin.Context) {
	proyecto, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proyecto": proyecto})
}

// List returns the proyectos the caller participates in.
func (h *Handler) List(c *gin.Context) {
	actorID := auth.UserFirebaseUID(c)
	proyectos, err := h.svc.ListByParticipant(c.Request.Context(), actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proyectos": proyectos})
}

// Submit sends the drafted Formato A to review.
func (h *Handler) Submit(c *gin.Context) {
	proyecto, err := h.svc.SubmitForReview(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proyecto": proyecto})
}

// ReviewFormatoA records the coordinator verdict.
func (h *Handler) ReviewFormatoA(c *gin.Context) {
	var req EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	proyecto, err := h.svc.ReviewFormatoA(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("id"), *req.Approved, req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proyecto": proyecto})
}

// Resubmit uploads a corrected Formato A version.
func (h *Handler) Resubmit(c *gin.Context) {
	pdf, err := formUpload(c, "pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer pdf.close()

	letter, err := optionalFormUpload(c, "carta_aceptacion")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var letterUpload *service.Upload
	if letter != nil {
		defer letter.close()
		letterUpload = &letter.upload
	}

	proyecto, err := h.svc.ResubmitFormatoA(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("id"), pdf.upload, letterUpload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proyecto": proyecto})
}

// UploadAnteproyecto stores the second-stage document.
func (h *Handler) UploadAnteproyecto(c *gin.Context) {
	pdf, err := formUpload(c, "pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer pdf.close()

	proyecto, err := h.svc.UploadAnteproyecto(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("id"), pdf.upload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proyecto": proyecto})
}

// AssignEvaluators assigns both anteproyecto evaluators.
func (h *Handler) AssignEvaluators(c *gin.Context) {
	var req AssignEvaluatorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	proyecto, err := h.svc.AssignEvaluators(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("id"), req.Evaluator1ID, req.Evaluator2ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proyecto": proyecto})
}

// ReviewAnteproyecto records one evaluator verdict.
func (h *Handler) ReviewAnteproyecto(c *gin.Context) {
	var req EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	proyecto, err := h.svc.ReviewAnteproyecto(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("id"), *req.Approved, req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proyecto": proyecto})
}

type formFile struct {
	upload service.Upload
	file   multipart.File
}

func (f *formFile) close() { _ = f.file.Close() }

func formUpload(c *gin.Context, field string) (*formFile, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, errors.New("file field '" + field + "' is required")
	}
	return openFormFile(fh, field)
}

func optionalFormUpload(c *gin.Context, field string) (*formFile, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return openFormFile(fh, field)
}

func openFormFile(fh *multipart.FileHeader, field string) (*formFile, error) {
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return nil, errors.New("file field '" + field + "' must be a PDF")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.New("cannot read file field '" + field + "'")
	}
	return &formFile{
		upload: service.Upload{Filename: fh.Filename, Content: f, Size: fh.Size},
		file:   f,
	}, nil
}

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	var (
		stateErr    *domain.InvalidStateError
		validErr    *domain.ValidationError
		attemptsErr *domain.MaxAttemptsError
		actorErr    *domain.UnauthorizedActorError
	)
	switch {
	case errors.Is(err, domain.ErrProyectoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "proyecto not found"})
	case errors.Is(err, domain.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "concurrent update, retry"})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error(), "state": string(stateErr.Current)})
	case errors.As(err, &attemptsErr):
		c.JSON(http.StatusConflict, gin.H{"error": attemptsErr.Error()})
	case errors.As(err, &validErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validErr.Error()})
	case errors.As(err, &actorErr):
		c.JSON(http.StatusForbidden, gin.H{"error": actorErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
