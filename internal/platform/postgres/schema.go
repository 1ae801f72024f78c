package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema for the three relational stores. Kept as idempotent DDL so a fresh
// database bootstraps itself on startup; schema migrations beyond this are
// managed operationally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS document_extracts (
		id UUID PRIMARY KEY,
		subject_id UUID NOT NULL,
		document_type TEXT NOT NULL,
		fields JSONB NOT NULL,
		confidence DOUBLE PRECISION,
		warnings JSONB,
		uploaded_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_document_extracts_subject
		ON document_extracts (subject_id, uploaded_at)`,

	`CREATE TABLE IF NOT EXISTS schemes (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		provider TEXT NOT NULL,
		description TEXT,
		rules JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS eligibility_results (
		subject_id UUID NOT NULL,
		scheme_id UUID NOT NULL,
		scheme_name TEXT NOT NULL,
		status TEXT NOT NULL,
		eligible BOOLEAN NOT NULL,
		match_score DOUBLE PRECISION NOT NULL,
		matched_rules INT NOT NULL,
		total_rules INT NOT NULL,
		summary TEXT NOT NULL,
		rule_details JSONB NOT NULL,
		missing_requirements JSONB NOT NULL,
		recalculated_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (subject_id, scheme_id)
	)`,
}

// EnsureSchema creates the tables the stores depend on if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
