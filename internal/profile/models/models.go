// Package models defines the closed field schema for applicant profiles and
// the document extracts they are assembled from.
package models

import (
	"strconv"
	"time"

	id "yojana/pkg/domain"
)

// FieldName is a key in the applicant profile schema. The known set is closed;
// extraction collaborators may supply additional extension keys which are
// merged and stored but never drive eligibility decisions on their own.
type FieldName string

const (
	FieldFullName         FieldName = "full_name"
	FieldGender           FieldName = "gender"
	FieldCategory         FieldName = "category"
	FieldAnnualIncome     FieldName = "annual_income"
	FieldDomicileState    FieldName = "domicile_state"
	FieldStudyState       FieldName = "study_state"
	FieldMarksPercentage  FieldName = "marks_percentage"
	FieldDisabilityStatus FieldName = "disability_status"
	FieldReligion         FieldName = "religion"
	FieldCourseLevel      FieldName = "course_level"
)

// KnownFields enumerates the closed profile schema in canonical order.
func KnownFields() []FieldName {
	return []FieldName{
		FieldFullName,
		FieldGender,
		FieldCategory,
		FieldAnnualIncome,
		FieldDomicileState,
		FieldStudyState,
		FieldMarksPercentage,
		FieldDisabilityStatus,
		FieldReligion,
		FieldCourseLevel,
	}
}

// RequiredFields is the subset of the schema that must be present before
// eligibility evaluation is meaningful. It is deliberately narrower than the
// full schema.
func RequiredFields() []FieldName {
	return []FieldName{
		FieldFullName,
		FieldGender,
		FieldCategory,
		FieldAnnualIncome,
		FieldDomicileState,
	}
}

// IsKnown reports whether the field is part of the closed schema.
func (f FieldName) IsKnown() bool {
	switch f {
	case FieldFullName, FieldGender, FieldCategory, FieldAnnualIncome,
		FieldDomicileState, FieldStudyState, FieldMarksPercentage,
		FieldDisabilityStatus, FieldReligion, FieldCourseLevel:
		return true
	}
	return false
}

// DocumentType classifies a submitted document.
type DocumentType string

const (
	DocumentTypeIncomeCertificate   DocumentType = "income_certificate"
	DocumentTypeCasteCertificate    DocumentType = "caste_certificate"
	DocumentTypeMarkSheet           DocumentType = "mark_sheet"
	DocumentTypeIDProof             DocumentType = "id_proof"
	DocumentTypeDomicileCertificate DocumentType = "domicile_certificate"
	DocumentTypeOther               DocumentType = "other"
)

// IsValid reports whether the document type is one of the supported values.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeIncomeCertificate, DocumentTypeCasteCertificate,
		DocumentTypeMarkSheet, DocumentTypeIDProof,
		DocumentTypeDomicileCertificate, DocumentTypeOther:
		return true
	}
	return false
}

// DocumentExtract is the structured output an extraction collaborator produced
// for one document. Field values are nullable: a key that is absent or nil was
// not found in the document.
type DocumentExtract struct {
	ID         id.DocumentID          `json:"id"`
	SubjectID  id.SubjectID           `json:"subject_id"`
	Type       DocumentType           `json:"document_type"`
	Fields     map[FieldName]any      `json:"fields"`
	Confidence *float64               `json:"confidence,omitempty"`
	Warnings   []string               `json:"warnings,omitempty"`
	UploadedAt time.Time              `json:"uploaded_at"`
}

// MergedProfile is the canonical profile derived from all of a subject's
// document extracts. It is a derived view, rebuilt on demand.
type MergedProfile struct {
	SubjectID id.SubjectID      `json:"subject_id"`
	Fields    map[FieldName]any `json:"fields"`
	// Confidence is the mean of confidences across contributing documents.
	Confidence float64 `json:"confidence"`
	// Sources records which document supplied each surviving field value.
	Sources       map[FieldName]id.DocumentID `json:"sources,omitempty"`
	MissingFields []FieldName                 `json:"missing_fields"`
	IsComplete    bool                        `json:"is_complete"`
}

// Field returns the merged value for a field, or nil when unset.
func (p *MergedProfile) Field(name FieldName) any {
	if p == nil || p.Fields == nil {
		return nil
	}
	return p.Fields[name]
}

// IsEmpty reports whether no field holds a value at all.
func (p *MergedProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	for _, v := range p.Fields {
		if v != nil {
			return false
		}
	}
	return true
}

// Completion returns the percentage of required fields present, for dashboard
// display.
func (p *MergedProfile) Completion() float64 {
	required := RequiredFields()
	if len(required) == 0 {
		return 0
	}
	present := 0
	for _, field := range required {
		if p.Field(field) != nil {
			present++
		}
	}
	return float64(present) / float64(len(required)) * 100
}

// Float coerces a field value to float64. JSON decoding yields float64 for
// numbers, but extraction collaborators also hand over numeric strings
// ("200000"), which must coerce the same way.
func Float(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
