// Package models defines benefit schemes and their eligibility rules.
package models

import (
	"time"

	profileModel "yojana/internal/profile/models"
	id "yojana/pkg/domain"
	dErrors "yojana/pkg/domain-errors"
)

// Operator is a comparison operator in an eligibility rule.
type Operator string

const (
	OpEqual          Operator = "="
	OpNotEqual       Operator = "!="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpIn             Operator = "in"
	OpNotIn          Operator = "not_in"
	OpContains       Operator = "contains"
)

// IsValid reports whether the operator is one of the supported comparators.
func (op Operator) IsValid() bool {
	switch op {
	case OpEqual, OpNotEqual, OpLess, OpLessOrEqual,
		OpGreater, OpGreaterOrEqual, OpIn, OpNotIn, OpContains:
		return true
	}
	return false
}

// Rule is one eligibility criterion: a profile field compared against an
// expected value. Explanation is shown to applicants when the rule fails.
type Rule struct {
	Field       profileModel.FieldName `json:"field"`
	Operator    Operator               `json:"operator"`
	Value       any                    `json:"value"`
	Explanation string                 `json:"explanation,omitempty"`
}

// Validate checks one rule for structural problems. Unknown operators are
// rejected at intake even though evaluation treats them as non-matching.
func (r Rule) Validate() error {
	if r.Field == "" {
		return dErrors.New(dErrors.CodeValidation, "rule field cannot be empty")
	}
	if !r.Operator.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unsupported operator: "+string(r.Operator))
	}
	if r.Value == nil {
		return dErrors.New(dErrors.CodeValidation, "rule value cannot be null")
	}
	switch r.Operator {
	case OpIn, OpNotIn:
		if _, ok := r.Value.([]any); !ok {
			if _, ok := r.Value.([]string); !ok {
				return dErrors.New(dErrors.CodeValidation, "operator "+string(r.Operator)+" requires a list value")
			}
		}
	}
	return nil
}

// Scheme is one benefit scheme in the catalog.
type Scheme struct {
	ID          id.SchemeID `json:"id"`
	Name        string      `json:"name"`
	Provider    string      `json:"provider"`
	Description string      `json:"description,omitempty"`
	Rules       []Rule      `json:"rules"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Validate checks the scheme and all of its rules.
func (s *Scheme) Validate() error {
	if s.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "scheme name cannot be empty")
	}
	if s.Provider == "" {
		return dErrors.New(dErrors.CodeValidation, "scheme provider cannot be empty")
	}
	for _, rule := range s.Rules {
		if err := rule.Validate(); err != nil {
			return err
		}
	}
	return nil
}
