package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"doctorat/internal/inscription/models"
	id "doctorat/pkg/domain"
	"doctorat/pkg/platform/sentinel"
)

// PostgresStore persists inscriptions. The unique constraint
// inscriptions_doctorant_campaign_key backs the one-per-campaign rule.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const inscriptionColumns = `
	id, doctorant_id, supervisor_id, campaign_id, kind, status, subject, laboratory,
	first_registration_date, submitted_at, supervisor_comment, supervisor_validated_at,
	admin_comment, admin_validated_at, created_at, updated_at, version`

func (s *PostgresStore) Create(ctx context.Context, ins *models.Inscription) error {
	query := `INSERT INTO inscriptions (` + inscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	if _, err := s.db.ExecContext(ctx, query, args(ins)...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert inscription: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, inscriptionID id.InscriptionID) (*models.Inscription, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+inscriptionColumns+` FROM inscriptions WHERE id = $1`, uuid.UUID(inscriptionID))
	ins, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find inscription: %w", err)
	}
	return ins, nil
}

func (s *PostgresStore) ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Inscription, error) {
	return s.list(ctx, `SELECT `+inscriptionColumns+` FROM inscriptions WHERE doctorant_id = $1 ORDER BY created_at`, uuid.UUID(doctorantID))
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status models.Status) ([]*models.Inscription, error) {
	return s.list(ctx, `SELECT `+inscriptionColumns+` FROM inscriptions WHERE status = $1 ORDER BY created_at`, string(status))
}

// Update writes ins only if the stored version still equals expectedVersion.
func (s *PostgresStore) Update(ctx context.Context, ins *models.Inscription, expectedVersion int) error {
	query := `
		UPDATE inscriptions SET
			supervisor_id = $3, status = $4, first_registration_date = $5, submitted_at = $6,
			supervisor_comment = $7, supervisor_validated_at = $8,
			admin_comment = $9, admin_validated_at = $10,
			updated_at = $11, version = version + 1
		WHERE id = $1 AND version = $2`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(ins.ID), expectedVersion,
		nullSupervisor(ins.SupervisorID), string(ins.Status), ins.FirstRegistrationDate, ins.SubmittedAt,
		ins.SupervisorComment, ins.SupervisorValidatedAt,
		ins.AdminComment, ins.AdminValidatedAt,
		ins.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inscription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update inscription rows affected: %w", err)
	}
	if n == 0 {
		if _, findErr := s.FindByID(ctx, ins.ID); errors.Is(findErr, sentinel.ErrNotFound) {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	ins.Version = expectedVersion + 1
	return nil
}

func (s *PostgresStore) list(ctx context.Context, query string, arg any) ([]*models.Inscription, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query inscriptions: %w", err)
	}
	defer rows.Close()
	var out []*models.Inscription
	for rows.Next() {
		ins, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inscription: %w", err)
		}
		out = append(out, ins)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Inscription, error) {
	var (
		ins                              models.Inscription
		rawID, doctorant, campaign       uuid.UUID
		supervisor                       uuid.NullUUID
		kind, status                     string
		first, submitted, supAt, adminAt sql.NullTime
	)
	err := row.Scan(&rawID, &doctorant, &supervisor, &campaign, &kind, &status, &ins.Subject, &ins.Laboratory,
		&first, &submitted, &ins.SupervisorComment, &supAt,
		&ins.AdminComment, &adminAt, &ins.CreatedAt, &ins.UpdatedAt, &ins.Version)
	if err != nil {
		return nil, err
	}
	ins.ID = id.InscriptionID(rawID)
	ins.DoctorantID = id.DoctorantID(doctorant)
	ins.CampaignID = id.CampaignID(campaign)
	if supervisor.Valid {
		sid := id.SupervisorID(supervisor.UUID)
		ins.SupervisorID = &sid
	}
	ins.Kind = models.Kind(kind)
	ins.Status = models.Status(status)
	ins.FirstRegistrationDate = nullTime(first)
	ins.SubmittedAt = nullTime(submitted)
	ins.SupervisorValidatedAt = nullTime(supAt)
	ins.AdminValidatedAt = nullTime(adminAt)
	return &ins, nil
}

func args(ins *models.Inscription) []any {
	return []any{
		uuid.UUID(ins.ID), uuid.UUID(ins.DoctorantID), nullSupervisor(ins.SupervisorID), uuid.UUID(ins.CampaignID),
		string(ins.Kind), string(ins.Status), ins.Subject, ins.Laboratory,
		ins.FirstRegistrationDate, ins.SubmittedAt, ins.SupervisorComment, ins.SupervisorValidatedAt,
		ins.AdminComment, ins.AdminValidatedAt, ins.CreatedAt, ins.UpdatedAt, ins.Version,
	}
}

func nullSupervisor(s *id.SupervisorID) uuid.NullUUID {
	if s == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*s), Valid: true}
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
