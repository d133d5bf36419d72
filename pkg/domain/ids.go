// Package domain defines the typed identifiers shared across the community
// modules. Parsing happens at trust boundaries (HTTP edge, snapshot load) so
// services only ever see well-formed ids.
package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	dErrors "finca/pkg/domain-errors"
)

// nationalIDPattern matches a Spanish national id: 8 digits plus one letter.
var nationalIDPattern = regexp.MustCompile(`^[0-9]{8}[A-Za-z]$`)

// ResidentID is a resident's national id, normalized to upper case.
// Residents are identified by it for their entire lifecycle.
type ResidentID string

// ParseResidentID validates and normalizes a raw national id.
func ParseResidentID(raw string) (ResidentID, error) {
	trimmed := strings.TrimSpace(raw)
	if !nationalIDPattern.MatchString(trimmed) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid national id, expected format: 12345678A")
	}
	return ResidentID(strings.ToUpper(trimmed)), nil
}

func (r ResidentID) String() string { return string(r) }

// Sequential identifiers allocated by the domain store's counters.
type (
	VisitID   int
	InvoiceID int
	AuditID   int
)

// UUID-backed identifiers handed out at registration time.
type (
	CourseID     uuid.UUID
	InstructorID uuid.UUID
	AuditorID    uuid.UUID
	MaterialID   uuid.UUID
)

func NewCourseID() CourseID         { return CourseID(uuid.New()) }
func NewInstructorID() InstructorID { return InstructorID(uuid.New()) }
func NewAuditorID() AuditorID       { return AuditorID(uuid.New()) }
func NewMaterialID() MaterialID     { return MaterialID(uuid.New()) }

func ParseCourseID(raw string) (CourseID, error) {
	u, err := parseUUID(raw)
	return CourseID(u), err
}

func ParseInstructorID(raw string) (InstructorID, error) {
	u, err := parseUUID(raw)
	return InstructorID(u), err
}

func ParseAuditorID(raw string) (AuditorID, error) {
	u, err := parseUUID(raw)
	return AuditorID(u), err
}

func ParseMaterialID(raw string) (MaterialID, error) {
	u, err := parseUUID(raw)
	return MaterialID(u), err
}

// parseUUID enforces the shared invariant: ids must be valid, non-nil UUIDs.
func parseUUID(raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil uuid")
	}
	return u, nil
}

func (c CourseID) String() string     { return uuid.UUID(c).String() }
func (i InstructorID) String() string { return uuid.UUID(i).String() }
func (a AuditorID) String() string    { return uuid.UUID(a).String() }
func (m MaterialID) String() string   { return uuid.UUID(m).String() }

func (c CourseID) IsZero() bool     { return uuid.UUID(c) == uuid.Nil }
func (i InstructorID) IsZero() bool { return uuid.UUID(i) == uuid.Nil }
func (a AuditorID) IsZero() bool    { return uuid.UUID(a) == uuid.Nil }
func (m MaterialID) IsZero() bool   { return uuid.UUID(m) == uuid.Nil }

// Text marshalling keeps UUID ids as canonical strings in snapshots and API
// payloads instead of raw byte arrays.

func (c CourseID) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *CourseID) UnmarshalText(text []byte) error {
	id, err := ParseCourseID(string(text))
	if err != nil {
		return err
	}
	*c = id
	return nil
}

func (i InstructorID) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *InstructorID) UnmarshalText(text []byte) error {
	id, err := ParseInstructorID(string(text))
	if err != nil {
		return err
	}
	*i = id
	return nil
}

func (a AuditorID) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *AuditorID) UnmarshalText(text []byte) error {
	id, err := ParseAuditorID(string(text))
	if err != nil {
		return err
	}
	*a = id
	return nil
}

func (m MaterialID) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MaterialID) UnmarshalText(text []byte) error {
	id, err := ParseMaterialID(string(text))
	if err != nil {
		return err
	}
	*m = id
	return nil
}
