package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"yojana/internal/eligibility"
	id "yojana/pkg/domain"
)

// PostgresResultStore persists eligibility verdicts in PostgreSQL.
type PostgresResultStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed result store.
func NewPostgres(db *sql.DB) *PostgresResultStore {
	return &PostgresResultStore{db: db}
}

func (s *PostgresResultStore) Upsert(ctx context.Context, result *eligibility.Result) error {
	ruleDetails, err := json.Marshal(result.RuleResults)
	if err != nil {
		return fmt.Errorf("marshal rule details: %w", err)
	}
	missing, err := json.Marshal(result.MissingRequirements)
	if err != nil {
		return fmt.Errorf("marshal missing requirements: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO eligibility_results (
			subject_id, scheme_id, scheme_name, status, eligible,
			match_score, matched_rules, total_rules, summary,
			rule_details, missing_requirements, recalculated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (subject_id, scheme_id) DO UPDATE SET
			scheme_name = EXCLUDED.scheme_name,
			status = EXCLUDED.status,
			eligible = EXCLUDED.eligible,
			match_score = EXCLUDED.match_score,
			matched_rules = EXCLUDED.matched_rules,
			total_rules = EXCLUDED.total_rules,
			summary = EXCLUDED.summary,
			rule_details = EXCLUDED.rule_details,
			missing_requirements = EXCLUDED.missing_requirements,
			recalculated_at = EXCLUDED.recalculated_at`,
		uuid.UUID(result.SubjectID),
		uuid.UUID(result.SchemeID),
		result.SchemeName,
		string(result.Status),
		result.Eligible,
		result.MatchScore,
		result.MatchedRules,
		result.TotalRules,
		result.Summary,
		ruleDetails,
		missing,
		result.RecalculatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert eligibility result: %w", err)
	}
	return nil
}

func (s *PostgresResultStore) ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]*eligibility.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT subject_id, scheme_id, scheme_name, status, eligible,
			match_score, matched_rules, total_rules, summary,
			rule_details, missing_requirements, recalculated_at
		FROM eligibility_results
		WHERE subject_id = $1
		ORDER BY recalculated_at, scheme_id`,
		uuid.UUID(subjectID),
	)
	if err != nil {
		return nil, fmt.Errorf("list eligibility results: %w", err)
	}
	defer rows.Close()

	var results []*eligibility.Result
	for rows.Next() {
		var (
			result     eligibility.Result
			subject    uuid.UUID
			scheme     uuid.UUID
			status     string
			details    []byte
			missingRaw []byte
		)
		if err := rows.Scan(
			&subject, &scheme, &result.SchemeName, &status, &result.Eligible,
			&result.MatchScore, &result.MatchedRules, &result.TotalRules, &result.Summary,
			&details, &missingRaw, &result.RecalculatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan eligibility result: %w", err)
		}
		result.SubjectID = id.SubjectID(subject)
		result.SchemeID = id.SchemeID(scheme)
		result.Status = eligibility.Status(status)
		if err := json.Unmarshal(details, &result.RuleResults); err != nil {
			return nil, fmt.Errorf("unmarshal rule details: %w", err)
		}
		if err := json.Unmarshal(missingRaw, &result.MissingRequirements); err != nil {
			return nil, fmt.Errorf("unmarshal missing requirements: %w", err)
		}
		results = append(results, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate eligibility results: %w", err)
	}
	return results, nil
}
