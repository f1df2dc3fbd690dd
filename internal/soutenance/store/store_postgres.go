package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"doctorat/internal/soutenance/models"
	id "doctorat/pkg/domain"
	"doctorat/pkg/platform/sentinel"
)

// PostgresStore persists defenses. The jury and prerequisites are stored as
// JSONB; the partial index soutenances_one_active_per_doctorant rejects a
// second non-terminal defense.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const soutenanceColumns = `
	id, doctorant_id, supervisor_id, status, thesis_title,
	manuscript_ref, anti_plagiarism_ref, authorization_ref, prerequisites, jury,
	submitted_at, authorized_at, authorization_comment,
	proposed_date, proposed_place, scheduled_date, scheduled_place,
	final_grade, mention, distinction, completed_at, rejection_motif, rejected_at,
	created_at, updated_at, version`

func (p *PostgresStore) Create(ctx context.Context, s *models.Soutenance) error {
	values, err := args(s)
	if err != nil {
		return err
	}
	query := `INSERT INTO soutenances (` + soutenanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	if _, err := p.db.ExecContext(ctx, query, values...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert soutenance: %w", err)
	}
	return nil
}

func (p *PostgresStore) FindByID(ctx context.Context, soutenanceID id.SoutenanceID) (*models.Soutenance, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+soutenanceColumns+` FROM soutenances WHERE id = $1`, uuid.UUID(soutenanceID))
	s, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find soutenance: %w", err)
	}
	return s, nil
}

func (p *PostgresStore) ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Soutenance, error) {
	return p.list(ctx, `SELECT `+soutenanceColumns+` FROM soutenances WHERE doctorant_id = $1 ORDER BY created_at`, uuid.UUID(doctorantID))
}

func (p *PostgresStore) ListByStatus(ctx context.Context, status models.Status) ([]*models.Soutenance, error) {
	return p.list(ctx, `SELECT `+soutenanceColumns+` FROM soutenances WHERE status = $1 ORDER BY created_at`, string(status))
}

// Update rewrites every mutable column when the stored version still equals
// expectedVersion.
func (p *PostgresStore) Update(ctx context.Context, s *models.Soutenance, expectedVersion int) error {
	prerequisites, jury, err := encodeJSON(s)
	if err != nil {
		return err
	}
	query := `
		UPDATE soutenances SET
			status = $3, thesis_title = $4, manuscript_ref = $5, anti_plagiarism_ref = $6,
			authorization_ref = $7, prerequisites = $8, jury = $9, submitted_at = $10,
			authorized_at = $11, authorization_comment = $12, proposed_date = $13,
			proposed_place = $14, scheduled_date = $15, scheduled_place = $16,
			final_grade = $17, mention = $18, distinction = $19, completed_at = $20,
			rejection_motif = $21, rejected_at = $22, updated_at = $23, version = version + 1
		WHERE id = $1 AND version = $2`
	res, err := p.db.ExecContext(ctx, query,
		uuid.UUID(s.ID), expectedVersion,
		string(s.Status), s.ThesisTitle, s.ManuscriptRef, s.AntiPlagiarismRef,
		s.AuthorizationRef, prerequisites, jury, s.SubmittedAt,
		s.AuthorizedAt, s.AuthorizationComment, s.ProposedDate,
		s.ProposedPlace, s.ScheduledDate, s.ScheduledPlace,
		s.FinalGrade, string(s.Mention), s.Distinction, s.CompletedAt,
		s.RejectionMotif, s.RejectedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update soutenance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update soutenance rows affected: %w", err)
	}
	if n == 0 {
		if _, findErr := p.FindByID(ctx, s.ID); errors.Is(findErr, sentinel.ErrNotFound) {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	s.Version = expectedVersion + 1
	return nil
}

func (p *PostgresStore) list(ctx context.Context, query string, arg any) ([]*models.Soutenance, error) {
	rows, err := p.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query soutenances: %w", err)
	}
	defer rows.Close()
	var out []*models.Soutenance
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan soutenance: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Soutenance, error) {
	var (
		s                               models.Soutenance
		rawID, doctorant, supervisor    uuid.UUID
		status, mention                 string
		prerequisites, jury             []byte
		submitted, authorized, proposed sql.NullTime
		scheduled, completed, rejected  sql.NullTime
		grade                           sql.NullFloat64
	)
	err := row.Scan(&rawID, &doctorant, &supervisor, &status, &s.ThesisTitle,
		&s.ManuscriptRef, &s.AntiPlagiarismRef, &s.AuthorizationRef, &prerequisites, &jury,
		&submitted, &authorized, &s.AuthorizationComment,
		&proposed, &s.ProposedPlace, &scheduled, &s.ScheduledPlace,
		&grade, &mention, &s.Distinction, &completed, &s.RejectionMotif, &rejected,
		&s.CreatedAt, &s.UpdatedAt, &s.Version)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(prerequisites, &s.Prerequisites); err != nil {
		return nil, fmt.Errorf("decode prerequisites: %w", err)
	}
	if err := json.Unmarshal(jury, &s.Jury); err != nil {
		return nil, fmt.Errorf("decode jury: %w", err)
	}
	s.ID = id.SoutenanceID(rawID)
	s.DoctorantID = id.DoctorantID(doctorant)
	s.SupervisorID = id.SupervisorID(supervisor)
	s.Status = models.Status(status)
	s.Mention = models.Mention(mention)
	s.SubmittedAt = nullTime(submitted)
	s.AuthorizedAt = nullTime(authorized)
	s.ProposedDate = nullTime(proposed)
	s.ScheduledDate = nullTime(scheduled)
	s.CompletedAt = nullTime(completed)
	s.RejectedAt = nullTime(rejected)
	if grade.Valid {
		g := grade.Float64
		s.FinalGrade = &g
	}
	return &s, nil
}

// encodeJSON returns the JSONB columns as strings; lib/pq would send []byte
// as bytea.
func encodeJSON(s *models.Soutenance) (string, string, error) {
	prerequisites, err := json.Marshal(s.Prerequisites)
	if err != nil {
		return "", "", fmt.Errorf("encode prerequisites: %w", err)
	}
	jury := s.Jury
	if jury == nil {
		jury = []models.JuryMember{}
	}
	juryJSON, err := json.Marshal(jury)
	if err != nil {
		return "", "", fmt.Errorf("encode jury: %w", err)
	}
	return string(prerequisites), string(juryJSON), nil
}

func args(s *models.Soutenance) ([]any, error) {
	prerequisites, jury, err := encodeJSON(s)
	if err != nil {
		return nil, err
	}
	return []any{
		uuid.UUID(s.ID), uuid.UUID(s.DoctorantID), uuid.UUID(s.SupervisorID), string(s.Status), s.ThesisTitle,
		s.ManuscriptRef, s.AntiPlagiarismRef, s.AuthorizationRef, prerequisites, jury,
		s.SubmittedAt, s.AuthorizedAt, s.AuthorizationComment,
		s.ProposedDate, s.ProposedPlace, s.ScheduledDate, s.ScheduledPlace,
		s.FinalGrade, string(s.Mention), s.Distinction, s.CompletedAt, s.RejectionMotif, s.RejectedAt,
		s.CreatedAt, s.UpdatedAt, s.Version,
	}, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
