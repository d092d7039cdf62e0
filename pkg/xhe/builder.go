package xhe

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/sirosfoundation/go-sbdh/pkg/envelope"
	"github.com/sirosfoundation/go-sbdh/pkg/identifier"
)

// Builder provides a fluent interface for creating XHE envelopes
type Builder struct {
	env Envelope
	err error
}

// NewBuilder creates a new XHE builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithSender sets the FromParty identifier
func (b *Builder) WithSender(scheme, value string) *Builder {
	if b.err != nil {
		return b
	}
	b.env.sender = identifier.ParticipantID{Scheme: strings.TrimSpace(scheme), Value: strings.TrimSpace(value)}
	return b
}

// WithReceiver sets the ToParty identifier
func (b *Builder) WithReceiver(scheme, value string) *Builder {
	if b.err != nil {
		return b
	}
	b.env.receiver = identifier.ParticipantID{Scheme: strings.TrimSpace(scheme), Value: strings.TrimSpace(value)}
	return b
}

// WithInstanceIdentifier sets the header ID
func (b *Builder) WithInstanceIdentifier(id string) *Builder {
	if b.err != nil {
		return b
	}
	b.env.instanceIdentifier = strings.TrimSpace(id)
	return b
}

// WithRandomInstanceIdentifier sets a random UUID as header ID
func (b *Builder) WithRandomInstanceIdentifier() *Builder {
	return b.WithInstanceIdentifier(uuid.NewString())
}

// WithCreationDateTime sets the creation timestamp
func (b *Builder) WithCreationDateTime(t time.Time) *Builder {
	if b.err != nil {
		return b
	}
	b.env.creationDateTime = t
	return b
}

// WithCreationDateTimeNow sets the creation timestamp to the current time
// in UTC, truncated to milliseconds
func (b *Builder) WithCreationDateTimeNow() *Builder {
	return b.WithCreationDateTime(time.Now().UTC().Truncate(time.Millisecond))
}

// WithCustomizationID sets the envelope level customization
func (b *Builder) WithCustomizationID(id string) *Builder {
	if b.err != nil {
		return b
	}
	b.env.customizationID = strings.TrimSpace(id)
	return b
}

// WithProfileID sets the envelope level profile
func (b *Builder) WithProfileID(id string) *Builder {
	if b.err != nil {
		return b
	}
	b.env.profileID = strings.TrimSpace(id)
	return b
}

// AddPayload appends a copy of the payload with its string fields trimmed
func (b *Builder) AddPayload(p Payload) *Builder {
	if b.err != nil {
		return b
	}
	b.env.payloads = append(b.env.payloads, p.trimmed().clone())
	return b
}

// AddXMLPayload appends an unencrypted XML payload holding a copy of content
func (b *Builder) AddXMLPayload(content *etree.Element) *Builder {
	if b.err != nil {
		return b
	}
	if content == nil {
		b.err = fmt.Errorf("payload content is required: %w", envelope.ErrIncomplete)
		return b
	}
	p := Payload{ContentTypeCode: ContentTypeXML, ContentTypeListID: ContentTypeListMIME}
	p.SetContent(content)
	return b.AddPayload(p)
}

// AreAllFieldsSet reports whether Build would succeed
func (b *Builder) AreAllFieldsSet() bool {
	return b.err == nil && missingField(&b.env) == ""
}

// Build creates the XHE envelope. The builder may be reused afterwards
// without affecting the returned envelope.
func (b *Builder) Build() (*Envelope, error) {
	if b.err != nil {
		return nil, b.err
	}
	if field := missingField(&b.env); field != "" {
		return nil, fmt.Errorf("%s is required: %w", field, envelope.ErrIncomplete)
	}
	env := b.env
	env.payloads = b.env.Payloads()
	return &env, nil
}
