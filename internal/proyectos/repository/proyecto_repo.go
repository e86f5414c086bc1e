package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/GestionTG-25-26/tg-backend/internal/proyectos/domain"
)

// ProyectoRepository persists proyectos in PostgreSQL. The aggregate's
// sub-documents (objectives, participants, formato A, anteproyecto) are kept
// as JSONB and the version column carries the optimistic lock: Save only
// succeeds when the stored version matches the one the aggregate was loaded
// with, which serializes concurrent writers per aggregate id.
type ProyectoRepository struct {
	db *sql.DB
}

// NewProyectoRepository creates a new proyecto repository.
func NewProyectoRepository(db *sql.DB) *ProyectoRepository {
	return &ProyectoRepository{db: db}
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS proyectos (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	modality     TEXT NOT NULL,
	objectives   JSONB NOT NULL,
	participants JSONB NOT NULL,
	state        TEXT NOT NULL,
	formato_a    JSONB NOT NULL,
	anteproyecto JSONB,
	version      INTEGER NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	modified_at  TIMESTAMPTZ NOT NULL
);
`

// Migrate creates the proyectos table if it does not exist.
func (r *ProyectoRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createTableSQL)
	return err
}

// FindByID loads one proyecto by id.
func (r *ProyectoRepository) FindByID(ctx context.Context, id string) (*domain.Proyecto, error) {
	const q = `
SELECT id, title, modality, objectives, participants, state, formato_a, anteproyecto, version, created_at, modified_at
FROM proyectos
WHERE id = $1;
`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// Save inserts a new proyecto or updates an existing one through a
// compare-and-swap on the version column. A lost race returns
// domain.ErrVersionConflict; the caller reloads and retries.
func (r *ProyectoRepository) Save(ctx context.Context, p *domain.Proyecto) error {
	objectives, err := json.Marshal(p.Objectives)
	if err != nil {
		return fmt.Errorf("marshal objectives: %w", err)
	}
	participants, err := json.Marshal(p.Participants)
	if err != nil {
		return fmt.Errorf("marshal participants: %w", err)
	}
	formatoA, err := json.Marshal(p.FormatoA)
	if err != nil {
		return fmt.Errorf("marshal formato A: %w", err)
	}
	var anteproyecto any
	if p.Anteproyecto != nil {
		raw, err := json.Marshal(p.Anteproyecto)
		if err != nil {
			return fmt.Errorf("marshal anteproyecto: %w", err)
		}
		anteproyecto = raw
	}

	if p.Version == 0 {
		const q = `
INSERT INTO proyectos (id, title, modality, objectives, participants, state, formato_a, anteproyecto, version, created_at, modified_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9, $10);
`
		_, err := r.db.ExecContext(ctx, q,
			p.ID, p.Title.String(), string(p.Modality), objectives, participants,
			string(p.State), formatoA, anteproyecto, p.CreatedAt, p.ModifiedAt)
		if err != nil {
			var pgErr *pq.Error
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domain.ErrVersionConflict
			}
			return fmt.Errorf("insert proyecto: %w", err)
		}
		p.Version = 1
		return nil
	}

	const q = `
UPDATE proyectos
SET title = $3, modality = $4, objectives = $5, participants = $6, state = $7,
    formato_a = $8, anteproyecto = $9, version = version + 1, modified_at = $10
WHERE id = $1 AND version = $2;
`
	result, err := r.db.ExecContext(ctx, q,
		p.ID, p.Version, p.Title.String(), string(p.Modality), objectives, participants,
		string(p.State), formatoA, anteproyecto, p.ModifiedAt)
	if err != nil {
		return fmt.Errorf("update proyecto: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the row is gone or another writer bumped the version.
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM proyectos WHERE id = $1)`, p.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrProyectoNotFound
		}
		return domain.ErrVersionConflict
	}
	p.Version++
	return nil
}

// ListByParticipant returns the proyectos where the given user appears as
// director, codirector or student, newest first.
func (r *ProyectoRepository) ListByParticipant(ctx context.Context, participantID string) ([]domain.Proyecto, error) {
	const q = `
SELECT id, title, modality, objectives, participants, state, formato_a, anteproyecto, version, created_at, modified_at
FROM proyectos
WHERE participants->>'director_id' = $1
   OR participants->>'codirector_id' = $1
   OR participants->>'student1_id' = $1
   OR participants->>'student2_id' = $1
ORDER BY created_at DESC;
`
	return r.queryList(ctx, q, participantID)
}

// ListUnderReviewSince returns the proyectos that have been waiting for a
// reviewer or evaluator verdict since before olderThan.
func (r *ProyectoRepository) ListUnderReviewSince(ctx context.Context, olderThan time.Time) ([]domain.Proyecto, error) {
	const q = `
SELECT id, title, modality, objectives, participants, state, formato_a, anteproyecto, version, created_at, modified_at
FROM proyectos
WHERE state IN ($1, $2) AND modified_at < $3
ORDER BY modified_at ASC;
`
	return r.queryList(ctx, q,
		string(domain.StateFormatoAUnderReview), string(domain.StateAnteproyectoUnderReview), olderThan)
}

func (r *ProyectoRepository) queryList(ctx context.Context, q string, args ...any) ([]domain.Proyecto, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Proyecto, 0, 16)
	for rows.Next() {
		p, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ProyectoRepository) scanOne(row rowScanner) (*domain.Proyecto, error) {
	var (
		p            domain.Proyecto
		title        string
		modality     string
		state        string
		objectives   []byte
		participants []byte
		formatoA     []byte
		anteproyecto []byte
	)
	err := row.Scan(&p.ID, &title, &modality, &objectives, &participants, &state,
		&formatoA, &anteproyecto, &p.Version, &p.CreatedAt, &p.ModifiedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProyectoNotFound
		}
		return nil, err
	}

	p.Title = domain.Title(title)
	p.Modality = domain.Modality(modality)
	p.State = domain.State(state)
	if err := json.Unmarshal(objectives, &p.Objectives); err != nil {
		return nil, fmt.Errorf("unmarshal objectives: %w", err)
	}
	if err := json.Unmarshal(participants, &p.Participants); err != nil {
		return nil, fmt.Errorf("unmarshal participants: %w", err)
	}
	p.FormatoA = &domain.FormatoAInfo{}
	if err := json.Unmarshal(formatoA, p.FormatoA); err != nil {
		return nil, fmt.Errorf("unmarshal formato A: %w", err)
	}
	if len(anteproyecto) > 0 {
		p.Anteproyecto = &domain.AnteproyectoInfo{}
		if err := json.Unmarshal(anteproyecto, p.Anteproyecto); err != nil {
			return nil, fmt.Errorf("unmarshal anteproyecto: %w", err)
		}
	}
	return &p, nil
}
