package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"yojana/internal/profile/models"
	id "yojana/pkg/domain"
)

// PostgresDocumentStore persists document extracts in PostgreSQL.
type PostgresDocumentStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed document store.
func NewPostgres(db *sql.DB) *PostgresDocumentStore {
	return &PostgresDocumentStore{db: db}
}

func (s *PostgresDocumentStore) Save(ctx context.Context, extract *models.DocumentExtract) error {
	if extract == nil {
		return fmt.Errorf("document extract is required")
	}
	fields, err := json.Marshal(extract.Fields)
	if err != nil {
		return fmt.Errorf("marshal extract fields: %w", err)
	}
	warnings, err := json.Marshal(extract.Warnings)
	if err != nil {
		return fmt.Errorf("marshal extract warnings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO document_extracts (id, subject_id, document_type, fields, confidence, warnings, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.UUID(extract.ID),
		uuid.UUID(extract.SubjectID),
		string(extract.Type),
		fields,
		nullFloat(extract.Confidence),
		warnings,
		extract.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("save document extract: %w", err)
	}
	return nil
}

func (s *PostgresDocumentStore) ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]*models.DocumentExtract, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subject_id, document_type, fields, confidence, warnings, uploaded_at
		FROM document_extracts
		WHERE subject_id = $1
		ORDER BY uploaded_at, id`,
		uuid.UUID(subjectID),
	)
	if err != nil {
		return nil, fmt.Errorf("list document extracts: %w", err)
	}
	defer rows.Close()

	var extracts []*models.DocumentExtract
	for rows.Next() {
		extract, err := scanExtract(rows)
		if err != nil {
			return nil, err
		}
		extracts = append(extracts, extract)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document extracts: %w", err)
	}
	return extracts, nil
}

func (s *PostgresDocumentStore) ListSubjects(ctx context.Context) ([]id.SubjectID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT subject_id FROM document_extracts ORDER BY subject_id`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []id.SubjectID
	for rows.Next() {
		var subjectID uuid.UUID
		if err := rows.Scan(&subjectID); err != nil {
			return nil, fmt.Errorf("scan subject id: %w", err)
		}
		subjects = append(subjects, id.SubjectID(subjectID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subjects: %w", err)
	}
	return subjects, nil
}

func scanExtract(rows *sql.Rows) (*models.DocumentExtract, error) {
	var (
		extractID  uuid.UUID
		subjectID  uuid.UUID
		docType    string
		fieldsRaw  []byte
		confidence sql.NullFloat64
		warnings   []byte
		uploadedAt sql.NullTime
	)
	if err := rows.Scan(&extractID, &subjectID, &docType, &fieldsRaw, &confidence, &warnings, &uploadedAt); err != nil {
		return nil, fmt.Errorf("scan document extract: %w", err)
	}

	extract := &models.DocumentExtract{
		ID:        id.DocumentID(extractID),
		SubjectID: id.SubjectID(subjectID),
		Type:      models.DocumentType(docType),
	}
	if err := json.Unmarshal(fieldsRaw, &extract.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal extract fields: %w", err)
	}
	if len(warnings) > 0 {
		if err := json.Unmarshal(warnings, &extract.Warnings); err != nil {
			return nil, fmt.Errorf("unmarshal extract warnings: %w", err)
		}
	}
	if confidence.Valid {
		value := confidence.Float64
		extract.Confidence = &value
	}
	if uploadedAt.Valid {
		extract.UploadedAt = uploadedAt.Time
	}
	return extract, nil
}

func nullFloat(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}
