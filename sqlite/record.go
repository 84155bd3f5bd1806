package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fwojciec/modelcat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ modelcat.RecordService = (*RecordService)(nil)

// RecordService implements modelcat.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// CreateRun creates a new extraction run for the given source and returns
// its ID.
func (s *RecordService) CreateRun(ctx context.Context, source string) (string, error) {
	if source == "" {
		return "", modelcat.Errorf(modelcat.EINVALID, "run source required")
	}

	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source, created_at)
		VALUES (?, ?, ?)
	`, id, source, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return id, nil
}

// CreateRecord stores a record under the given run. Records keep the order
// in which they were stored.
func (s *RecordService) CreateRecord(ctx context.Context, runID string, record *modelcat.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (
			id, run_id, position, fingerprint,
			model_id, name, organization, link, description,
			precision, provider, context, downloads, stars, task_type, pub_date
		)
		VALUES (
			?, ?,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM records WHERE run_id = ?),
			?,
			?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?
		)
	`, uuid.New().String(), runID, runID, fmt.Sprintf("%016x", record.Fingerprint()),
		record.ID, record.Name, record.Organization, record.Link, record.Description,
		record.Precision, record.Provider, record.Context, record.Downloads,
		record.Stars, record.TaskType, record.PubDate)

	return err
}

// FindRecordsByRun retrieves the records of a run in storage order.
// Returns ENOTFOUND if the run does not exist.
func (s *RecordService) FindRecordsByRun(ctx context.Context, runID string) ([]*modelcat.Record, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, modelcat.Errorf(modelcat.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT model_id, name, organization, link, description,
			precision, provider, context, downloads, stars, task_type, pub_date
		FROM records
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*modelcat.Record
	for rows.Next() {
		var r modelcat.Record
		if err := rows.Scan(&r.ID, &r.Name, &r.Organization, &r.Link, &r.Description,
			&r.Precision, &r.Provider, &r.Context, &r.Downloads, &r.Stars,
			&r.TaskType, &r.PubDate); err != nil {
			return nil, err
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}
