package sbdh

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/sirosfoundation/go-sbdh/pkg/envelope"
	"github.com/sirosfoundation/go-sbdh/pkg/identifier"
)

// Builder provides a fluent interface for creating SBDH envelopes.
// String values are stored with surrounding whitespace removed, as a reader
// would see them.
type Builder struct {
	env Envelope
	err error
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithSender sets the sending participant
func (b *Builder) WithSender(scheme, value string) *Builder {
	if b.err != nil {
		return b
	}
	b.env.sender = identifier.ParticipantID{Scheme: strings.TrimSpace(scheme), Value: strings.TrimSpace(value)}
	return b
}

// WithReceiver sets the receiving participant
func (b *Builder) WithReceiver(scheme, value string) *Builder {
	if b.err != nil {
		return b
	}
	b.env.receiver = identifier.ParticipantID{Scheme: strings.TrimSpace(scheme), Value: strings.TrimSpace(value)}
	return b
}

// WithDocumentType sets the document type identifier
func (b *Builder) WithDocumentType(scheme, value string) *Builder {
	if b.err != nil {
		return b
	}
	b.env.documentType = identifier.DocumentTypeID{Scheme: strings.TrimSpace(scheme), Value: strings.TrimSpace(value)}
	return b
}

// WithProcess sets the process identifier
func (b *Builder) WithProcess(scheme, value string) *Builder {
	if b.err != nil {
		return b
	}
	b.env.process = identifier.ProcessID{Scheme: strings.TrimSpace(scheme), Value: strings.TrimSpace(value)}
	return b
}

// WithDocumentIdentification sets the standard, type version and type
func (b *Builder) WithDocumentIdentification(standard, typeVersion, docType string) *Builder {
	if b.err != nil {
		return b
	}
	b.env.standard = strings.TrimSpace(standard)
	b.env.typeVersion = strings.TrimSpace(typeVersion)
	b.env.docType = strings.TrimSpace(docType)
	return b
}

// WithDocumentIdentificationFromDocumentType derives standard, type and
// type version from the parts of the document type identifier set before.
func (b *Builder) WithDocumentIdentificationFromDocumentType() *Builder {
	if b.err != nil {
		return b
	}
	parts, err := identifier.ParseDocTypeParts(b.env.documentType.Value)
	if err != nil {
		b.err = fmt.Errorf("deriving document identification: %w", err)
		return b
	}
	return b.WithDocumentIdentification(parts.RootNS(), parts.Version(), parts.LocalName())
}

// WithInstanceIdentifier sets the envelope-unique identifier
func (b *Builder) WithInstanceIdentifier(id string) *Builder {
	if b.err != nil {
		return b
	}
	b.env.instanceIdentifier = strings.TrimSpace(id)
	return b
}

// WithRandomInstanceIdentifier sets a random UUID as instance identifier
func (b *Builder) WithRandomInstanceIdentifier() *Builder {
	return b.WithInstanceIdentifier(uuid.NewString())
}

// WithCreationDateAndTime sets the creation timestamp
func (b *Builder) WithCreationDateAndTime(t time.Time) *Builder {
	if b.err != nil {
		return b
	}
	b.env.creationDateAndTime = t
	return b
}

// WithCreationDateAndTimeNow sets the creation timestamp to the current
// time in UTC, truncated to milliseconds
func (b *Builder) WithCreationDateAndTimeNow() *Builder {
	return b.WithCreationDateAndTime(time.Now().UTC().Truncate(time.Millisecond))
}

// WithBusinessMessage sets a copy of msg as the business message
func (b *Builder) WithBusinessMessage(msg *etree.Element) *Builder {
	if b.err != nil {
		return b
	}
	b.env.businessMessage = envelope.DetachElement(msg)
	return b
}

// AreAllFieldsSet reports whether Build would succeed
func (b *Builder) AreAllFieldsSet() bool {
	return b.err == nil && missingField(&b.env) == ""
}

// Build creates the envelope. The builder may be reused afterwards without
// affecting the returned envelope.
func (b *Builder) Build() (*Envelope, error) {
	if b.err != nil {
		return nil, b.err
	}
	if field := missingField(&b.env); field != "" {
		return nil, fmt.Errorf("%s is required: %w", field, envelope.ErrIncomplete)
	}
	env := b.env
	env.businessMessage = envelope.DetachElement(b.env.businessMessage)
	return &env, nil
}
