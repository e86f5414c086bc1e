package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GestionTG-25-26/tg-backend/internal/auth"
	"github.com/GestionTG-25-26/tg-backend/internal/proyectos/domain"
	"github.com/GestionTG-25-26/tg-backend/internal/proyectos/service"
)

type stubRepo struct {
	proyectos map[string]*domain.Proyecto
}

func (r *stubRepo) FindByID(_ context.Context, id string) (*domain.Proyecto, error) {
	p, ok := r.proyectos[id]
	if !ok {
		return nil, domain.ErrProyectoNotFound
	}
	return p, nil
}

func (r *stubRepo) Save(_ context.Context, p *domain.Proyecto) error {
	p.Version++
	r.proyectos[p.ID] = p
	return nil
}

func (r *stubRepo) ListByParticipant(_ context.Context, participantID string) ([]domain.Proyecto, error) {
	var out []domain.Proyecto
	for _, p := range r.proyectos {
		if p.Participants.Includes(participantID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubRepo) ListUnderReviewSince(_ context.Context, _ time.Time) ([]domain.Proyecto, error) {
	return nil, nil
}

type stubPublisher struct{}

func (stubPublisher) Publish(context.Context, domain.Event) error      { return nil }
func (stubPublisher) PublishAll(context.Context, []domain.Event) error { return nil }

type stubStorage struct{ n int }

func (s *stubStorage) Store(_ context.Context, folder string, upload service.Upload) (string, error) {
	s.n++
	return fmt.Sprintf("%s/%d.pdf", folder, s.n), nil
}

type stubRoles struct{ roles map[string]string }

func (r stubRoles) HasRole(_ context.Context, userID, role string) (bool, error) {
	return r.roles[userID] == role, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &stubRepo{proyectos: make(map[string]*domain.Proyecto)}
	svc := service.NewProyectoService(repo, stubPublisher{}, &stubStorage{}, stubRoles{roles: map[string]string{
		"dir-1":   service.RoleDocente,
		"coord-1": service.RoleCoordinador,
		"jefa-1":  service.RoleJefatura,
	}})

	r := gin.New()
	// Stand-in for the auth middleware: the caller declares itself via header.
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxFirebaseUID, c.GetHeader("X-Test-Uid"))
	})
	Register(r.Group("/proyectos"), NewHandler(svc))
	return r, repo
}

func seedProyecto(t *testing.T, repo *stubRepo, state domain.State) *domain.Proyecto {
	t.Helper()
	p, err := domain.NewProyecto(domain.NewProyectoParams{
		Title:            "Sistema de seguimiento de egresados del programa",
		Modality:         domain.ModalityResearch,
		GeneralObjective: "Construir el sistema de seguimiento",
		SpecificObjectives: []string{
			"Modelar la informacion de egresados",
		},
		DirectorID: "dir-1",
		Student1ID: "est-1",
		PDF:        domain.Attachment{Path: "formato-a/seed.pdf", OriginalFilename: "seed.pdf", Kind: domain.KindPDF},
	})
	require.NoError(t, err)
	p.DrainEvents()
	p.State = state
	p.Version = 1
	repo.proyectos[p.ID] = p
	return p
}

func doJSON(r *gin.Engine, method, path, uid string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Uid", uid)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doMultipart(t *testing.T, r *gin.Engine, path, uid string, fields map[string]string, fileField, filename string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	fw, err := mw.CreateFormFile(fileField, filename)
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.7"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Test-Uid", uid)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProyectoEndpoint(t *testing.T) {
	r, repo := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", "Plataforma de practicas profesionales del programa")
	_ = mw.WriteField("modality", string(domain.ModalityResearch))
	_ = mw.WriteField("general_objective", "Gestionar el ciclo de practicas")
	_ = mw.WriteField("specific_objectives", "Registrar convenios")
	_ = mw.WriteField("student1_id", "est-1")
	fw, err := mw.CreateFormFile("pdf", "formatoA.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.7"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/proyectos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Test-Uid", "dir-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, repo.proyectos, 1)

	var resp struct {
		Proyecto domain.Proyecto `json:"proyecto"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.StateFormatoADrafted, resp.Proyecto.State)
	assert.Equal(t, 1, resp.Proyecto.FormatoA.AttemptNumber)
}

func TestCreateProyectoEndpointRejectsNonPDF(t *testing.T) {
	r, _ := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", "Plataforma de practicas profesionales del programa")
	_ = mw.WriteField("modality", string(domain.ModalityResearch))
	_ = mw.WriteField("general_objective", "Gestionar el ciclo de practicas")
	_ = mw.WriteField("specific_objectives", "Registrar convenios")
	_ = mw.WriteField("student1_id", "est-1")
	fw, err := mw.CreateFormFile("pdf", "formatoA.docx")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("no es pdf"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/proyectos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Test-Uid", "dir-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be a PDF")
}

func TestGetProyectoEndpoint(t *testing.T) {
	r, repo := newTestRouter(t)
	p := seedProyecto(t, repo, domain.StateFormatoADrafted)

	w := doJSON(r, http.MethodGet, "/proyectos/"+p.ID, "est-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), p.ID)

	w = doJSON(r, http.MethodGet, "/proyectos/no-existe", "est-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewFormatoAEndpoint(t *testing.T) {
	r, repo := newTestRouter(t)
	p := seedProyecto(t, repo, domain.StateFormatoAUnderReview)

	t.Run("missing verdict is a 400", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/proyectos/"+p.ID+"/formato-a/evaluacion", "coord-1",
			map[string]any{"comments": "sin veredicto"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non coordinador is a 403", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/proyectos/"+p.ID+"/formato-a/evaluacion", "dir-1",
			map[string]any{"approved": true})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("approval moves the proyecto", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/proyectos/"+p.ID+"/formato-a/evaluacion", "coord-1",
			map[string]any{"approved": true, "comments": "aprobado"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, domain.StateFormatoAApproved, repo.proyectos[p.ID].State)
	})

	t.Run("reviewing twice is a 409 with the current state", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/proyectos/"+p.ID+"/formato-a/evaluacion", "coord-1",
			map[string]any{"approved": true})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), string(domain.StateFormatoAApproved))
	})
}

func TestResubmitEndpoint(t *testing.T) {
	t.Run("director resubmits after a revision request", func(t *testing.T) {
		r, repo := newTestRouter(t)
		p := seedProyecto(t, repo, domain.StateFormatoARevisionRequested)

		w := doMultipart(t, r, "/proyectos/"+p.ID+"/formato-a/reenvio", "dir-1", nil, "pdf", "formatoA_v2.pdf")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		saved := repo.proyectos[p.ID]
		assert.Equal(t, domain.StateFormatoAUnderReview, saved.State)
		assert.Equal(t, 2, saved.FormatoA.AttemptNumber)
	})

	t.Run("only the director may resubmit", func(t *testing.T) {
		r, repo := newTestRouter(t)
		p := seedProyecto(t, repo, domain.StateFormatoARevisionRequested)

		w := doMultipart(t, r, "/proyectos/"+p.ID+"/formato-a/reenvio", "est-1", nil, "pdf", "formatoA_v2.pdf")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, 1, repo.proyectos[p.ID].FormatoA.AttemptNumber)
	})

	t.Run("resubmission without a revision request is a 409", func(t *testing.T) {
		r, repo := newTestRouter(t)
		p := seedProyecto(t, repo, domain.StateFormatoADrafted)

		w := doMultipart(t, r, "/proyectos/"+p.ID+"/formato-a/reenvio", "dir-1", nil, "pdf", "formatoA_v2.pdf")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), string(domain.StateFormatoADrafted))
	})

	t.Run("missing file is a 400", func(t *testing.T) {
		r, repo := newTestRouter(t)
		p := seedProyecto(t, repo, domain.StateFormatoARevisionRequested)

		w := doJSON(r, http.MethodPost, "/proyectos/"+p.ID+"/formato-a/reenvio", "dir-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAssignEvaluatorsEndpoint(t *testing.T) {
	r, repo := newTestRouter(t)
	p := seedProyecto(t, repo, domain.StateFormatoAApproved)

	w := doJSON(r, http.MethodPost, "/proyectos/"+p.ID+"/anteproyecto", "dir-1", nil)
	// multipart expected, json body is a 400
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("pdf", "anteproyecto.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.7"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/proyectos/"+p.ID+"/anteproyecto", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Test-Uid", "dir-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	w = doJSON(r, http.MethodPost, "/proyectos/"+p.ID+"/anteproyecto/evaluadores", "jefa-1",
		AssignEvaluatorsRequest{Evaluator1ID: "eval-1", Evaluator2ID: "eval-2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.StateAnteproyectoUnderReview, repo.proyectos[p.ID].State)

	w = doJSON(r, http.MethodPost, "/proyectos/"+p.ID+"/anteproyecto/evaluacion", "eval-1",
		map[string]any{"approved": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/proyectos/"+p.ID+"/anteproyecto/evaluacion", "intruso",
		map[string]any{"approved": false})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, "/proyectos/"+p.ID+"/anteproyecto/evaluacion", "eval-2",
		map[string]any{"approved": true, "comments": "bien"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StateAnteproyectoApproved, repo.proyectos[p.ID].State)
}

func TestListEndpoint(t *testing.T) {
	r, repo := newTestRouter(t)
	seedProyecto(t, repo, domain.StateFormatoADrafted)

	w := doJSON(r, http.MethodGet, "/proyectos", "est-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "proyectos"))

	w = doJSON(r, http.MethodGet, "/proyectos", "ajeno", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
