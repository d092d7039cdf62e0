package identifier

import "strings"

// Kind distinguishes the three identifier families
type Kind int

const (
	// KindParticipant identifies senders and receivers
	KindParticipant Kind = iota
	// KindDocumentType identifies the business document type
	KindDocumentType
	// KindProcess identifies the business process
	KindProcess
)

// String returns a human readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindParticipant:
		return "participant"
	case KindDocumentType:
		return "document type"
	case KindProcess:
		return "process"
	default:
		return "unknown"
	}
}

// ParticipantID identifies a sender or receiver
type ParticipantID struct {
	Scheme string
	Value  string
}

// IsSet reports whether both scheme and value are present and not blank
func (p ParticipantID) IsSet() bool {
	return present(p.Scheme, p.Value)
}

func (p ParticipantID) String() string {
	return p.Scheme + "::" + p.Value
}

// DocumentTypeID identifies the type of the wrapped business document
type DocumentTypeID struct {
	Scheme string
	Value  string
}

// IsSet reports whether both scheme and value are present and not blank
func (d DocumentTypeID) IsSet() bool {
	return present(d.Scheme, d.Value)
}

func (d DocumentTypeID) String() string {
	return d.Scheme + "::" + d.Value
}

// ProcessID identifies the business process a document belongs to
type ProcessID struct {
	Scheme string
	Value  string
}

// IsSet reports whether both scheme and value are present and not blank
func (p ProcessID) IsSet() bool {
	return present(p.Scheme, p.Value)
}

func present(scheme, value string) bool {
	return strings.TrimSpace(scheme) != "" && strings.TrimSpace(value) != ""
}

func (p ProcessID) String() string {
	return p.Scheme + "::" + p.Value
}

// Registry decides which identifier schemes and values are acceptable.
// Implementations must be safe for concurrent use when shared between readers.
type Registry interface {
	// IsValidScheme reports whether scheme may be used for identifiers of the given kind
	IsValidScheme(kind Kind, scheme string) bool
	// IsValidValue reports whether value is acceptable under an already accepted scheme
	IsValidValue(kind Kind, scheme, value string) bool
}

type anyScheme struct{}

func (anyScheme) IsValidScheme(Kind, string) bool        { return true }
func (anyScheme) IsValidValue(Kind, string, string) bool { return true }

// AnyScheme accepts every scheme and value
var AnyScheme Registry = anyScheme{}
