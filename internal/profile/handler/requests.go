package handler

import (
	"yojana/internal/profile/models"
	id "yojana/pkg/domain"
	dErrors "yojana/pkg/domain-errors"
)

// AddDocumentRequest is the intake payload for one extracted document.
type AddDocumentRequest struct {
	SubjectID    string                   `json:"subject_id"`
	DocumentType string                   `json:"document_type"`
	Fields       map[models.FieldName]any `json:"fields"`
	Confidence   *float64                 `json:"confidence,omitempty"`

	subjectID id.SubjectID
}

// Validate checks and normalizes the request.
func (r *AddDocumentRequest) Validate() error {
	subjectID, err := id.ParseSubjectID(r.SubjectID)
	if err != nil {
		return err
	}
	r.subjectID = subjectID

	if !models.DocumentType(r.DocumentType).IsValid() {
		return dErrors.New(dErrors.CodeBadRequest, "unsupported document_type: "+r.DocumentType)
	}
	if len(r.Fields) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "fields cannot be empty")
	}
	if r.Confidence != nil && (*r.Confidence < 0 || *r.Confidence > 1) {
		return dErrors.New(dErrors.CodeBadRequest, "confidence must be between 0 and 1")
	}
	return nil
}

// Extract builds the domain object the service stores.
func (r *AddDocumentRequest) Extract() *models.DocumentExtract {
	return &models.DocumentExtract{
		SubjectID:  r.subjectID,
		Type:       models.DocumentType(r.DocumentType),
		Fields:     r.Fields,
		Confidence: r.Confidence,
	}
}

// AddDocumentResponse acknowledges accepted intake.
type AddDocumentResponse struct {
	DocumentID string   `json:"document_id"`
	Warnings   []string `json:"warnings,omitempty"`
}
