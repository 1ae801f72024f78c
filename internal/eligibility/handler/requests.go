package handler

import (
	id "yojana/pkg/domain"
)

// EvaluateRequest asks for a full recalculation for one subject.
type EvaluateRequest struct {
	SubjectID string `json:"subject_id"`

	subjectID id.SubjectID
}

// Validate checks and normalizes the request.
func (r *EvaluateRequest) Validate() error {
	subjectID, err := id.ParseSubjectID(r.SubjectID)
	if err != nil {
		return err
	}
	r.subjectID = subjectID
	return nil
}

// EvaluateSchemeRequest asks for a verdict against a single scheme.
type EvaluateSchemeRequest struct {
	SubjectID string `json:"subject_id"`
	SchemeID  string `json:"scheme_id"`

	subjectID id.SubjectID
	schemeID  id.SchemeID
}

// Validate checks and normalizes the request.
func (r *EvaluateSchemeRequest) Validate() error {
	subjectID, err := id.ParseSubjectID(r.SubjectID)
	if err != nil {
		return err
	}
	schemeID, err := id.ParseSchemeID(r.SchemeID)
	if err != nil {
		return err
	}
	r.subjectID = subjectID
	r.schemeID = schemeID
	return nil
}
