package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"doctorat/internal/derogation/models"
	id "doctorat/pkg/domain"
	"doctorat/pkg/platform/sentinel"
)

// PostgresStore persists derogations. Uniqueness of pending requests per
// (doctorant, type) is enforced by the partial index
// derogations_one_pending_per_type.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const derogationColumns = `
	id, doctorant_id, supervisor_id, inscription_id, exemption_type, status, motif, requested_year,
	supervisor_comment, supervisor_decision_at, admin_comment, admin_decision_at, expiration_date,
	created_at, updated_at, version`

func (s *PostgresStore) CreateIfNonePending(ctx context.Context, d *models.Derogation) error {
	query := `INSERT INTO derogations (` + derogationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := s.db.ExecContext(ctx, query, args(d)...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert derogation: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, derogationID id.DerogationID) (*models.Derogation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+derogationColumns+` FROM derogations WHERE id = $1`, uuid.UUID(derogationID))
	d, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find derogation: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Derogation, error) {
	return s.list(ctx, `SELECT `+derogationColumns+` FROM derogations WHERE doctorant_id = $1 ORDER BY created_at`, uuid.UUID(doctorantID))
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status models.Status) ([]*models.Derogation, error) {
	return s.list(ctx, `SELECT `+derogationColumns+` FROM derogations WHERE status = $1 ORDER BY created_at`, string(status))
}

func (s *PostgresStore) ListExpirable(ctx context.Context, today time.Time) ([]*models.Derogation, error) {
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return s.list(ctx, `SELECT `+derogationColumns+` FROM derogations
		WHERE status = 'APPROVED' AND expiration_date IS NOT NULL AND expiration_date < $1
		ORDER BY expiration_date`, day)
}

// Update writes d only if the stored version still equals expectedVersion.
func (s *PostgresStore) Update(ctx context.Context, d *models.Derogation, expectedVersion int) error {
	query := `
		UPDATE derogations SET
			status = $3, supervisor_comment = $4, supervisor_decision_at = $5,
			admin_comment = $6, admin_decision_at = $7, expiration_date = $8,
			updated_at = $9, version = version + 1
		WHERE id = $1 AND version = $2`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(d.ID), expectedVersion,
		string(d.Status), d.SupervisorComment, d.SupervisorDecisionAt,
		d.AdminComment, d.AdminDecisionAt, d.ExpirationDate, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update derogation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update derogation rows affected: %w", err)
	}
	if n == 0 {
		if _, findErr := s.FindByID(ctx, d.ID); errors.Is(findErr, sentinel.ErrNotFound) {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	d.Version = expectedVersion + 1
	return nil
}

func (s *PostgresStore) list(ctx context.Context, query string, arg any) ([]*models.Derogation, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query derogations: %w", err)
	}
	defer rows.Close()
	var out []*models.Derogation
	for rows.Next() {
		d, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan derogation: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Derogation, error) {
	var (
		d                                 models.Derogation
		rawID, doctorant, supervisor      uuid.UUID
		inscription                       uuid.NullUUID
		exemptionType, status             string
		supervisorAt, adminAt, expiration sql.NullTime
	)
	err := row.Scan(&rawID, &doctorant, &supervisor, &inscription, &exemptionType, &status, &d.Motif, &d.RequestedYear,
		&d.SupervisorComment, &supervisorAt, &d.AdminComment, &adminAt, &expiration,
		&d.CreatedAt, &d.UpdatedAt, &d.Version)
	if err != nil {
		return nil, err
	}
	d.ID = id.DerogationID(rawID)
	d.DoctorantID = id.DoctorantID(doctorant)
	d.SupervisorID = id.SupervisorID(supervisor)
	if inscription.Valid {
		ins := id.InscriptionID(inscription.UUID)
		d.InscriptionID = &ins
	}
	d.Type = models.ExemptionType(exemptionType)
	d.Status = models.Status(status)
	d.SupervisorDecisionAt = nullTime(supervisorAt)
	d.AdminDecisionAt = nullTime(adminAt)
	d.ExpirationDate = nullTime(expiration)
	return &d, nil
}

func args(d *models.Derogation) []any {
	var inscription uuid.NullUUID
	if d.InscriptionID != nil {
		inscription = uuid.NullUUID{UUID: uuid.UUID(*d.InscriptionID), Valid: true}
	}
	return []any{
		uuid.UUID(d.ID), uuid.UUID(d.DoctorantID), uuid.UUID(d.SupervisorID), inscription,
		string(d.Type), string(d.Status), d.Motif, d.RequestedYear,
		d.SupervisorComment, d.SupervisorDecisionAt, d.AdminComment, d.AdminDecisionAt, d.ExpirationDate,
		d.CreatedAt, d.UpdatedAt, d.Version,
	}
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
