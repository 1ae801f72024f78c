// Package domain defines shared domain primitives: typed identifiers that are
// validated at trust boundaries so the rest of the code can assume well-formed
// values.
package domain

import (
	"github.com/google/uuid"

	dErrors "yojana/pkg/domain-errors"
)

// SubjectID identifies one applicant whose documents and eligibility verdicts
// the system tracks.
type SubjectID uuid.UUID

// SchemeID identifies one benefit scheme in the catalog.
type SchemeID uuid.UUID

// DocumentID identifies one submitted document extract.
type DocumentID uuid.UUID

// NewSubjectID returns a fresh random subject ID.
func NewSubjectID() SubjectID { return SubjectID(uuid.New()) }

// NewSchemeID returns a fresh random scheme ID.
func NewSchemeID() SchemeID { return SchemeID(uuid.New()) }

// NewDocumentID returns a fresh random document ID.
func NewDocumentID() DocumentID { return DocumentID(uuid.New()) }

// ParseSubjectID validates and returns a SubjectID. Empty, malformed, and nil
// UUIDs are rejected.
func ParseSubjectID(s string) (SubjectID, error) {
	parsed, err := parseUUID(s, "subject id")
	if err != nil {
		return SubjectID{}, err
	}
	return SubjectID(parsed), nil
}

// ParseSchemeID validates and returns a SchemeID.
func ParseSchemeID(s string) (SchemeID, error) {
	parsed, err := parseUUID(s, "scheme id")
	if err != nil {
		return SchemeID{}, err
	}
	return SchemeID(parsed), nil
}

// ParseDocumentID validates and returns a DocumentID.
func ParseDocumentID(s string) (DocumentID, error) {
	parsed, err := parseUUID(s, "document id")
	if err != nil {
		return DocumentID{}, err
	}
	return DocumentID(parsed), nil
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+what+": must be a UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be the nil UUID")
	}
	return parsed, nil
}

func (id SubjectID) String() string  { return uuid.UUID(id).String() }
func (id SchemeID) String() string   { return uuid.UUID(id).String() }
func (id DocumentID) String() string { return uuid.UUID(id).String() }

// MarshalText lets JSON encoding render IDs as canonical UUID strings.
func (id SubjectID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id SchemeID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id DocumentID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText parses a canonical UUID string.
func (id *SubjectID) UnmarshalText(text []byte) error {
	parsed, err := ParseSubjectID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *SchemeID) UnmarshalText(text []byte) error {
	parsed, err := ParseSchemeID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *DocumentID) UnmarshalText(text []byte) error {
	parsed, err := ParseDocumentID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// IsNil reports whether the subject ID is the zero value.
func (id SubjectID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// IsNil reports whether the scheme ID is the zero value.
func (id SchemeID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// IsNil reports whether the document ID is the zero value.
func (id DocumentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
