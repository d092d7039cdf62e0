package xhe

import (
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/sirosfoundation/go-sbdh/pkg/envelope"
	"github.com/sirosfoundation/go-sbdh/pkg/identifier"
)

// Namespace constants for XHE
const (
	// NsXHE is the namespace of the XHE root element
	NsXHE = "http://docs.oasis-open.org/bdxr/ns/XHE/1/ExchangeHeaderEnvelope"
	// NsXHA is the aggregate components namespace
	NsXHA = "http://docs.oasis-open.org/bdxr/ns/XHE/1/AggregateComponents"
	// NsXHB is the basic components namespace
	NsXHB = "http://docs.oasis-open.org/bdxr/ns/XHE/1/BasicComponents"

	// VersionID is the only supported XHEVersionID
	VersionID = "1.0"

	// FlavorName identifies XHE in observer callbacks and metrics
	FlavorName = "xhe"

	// ContentTypeXML is the content type code of XML payloads
	ContentTypeXML = "application/xml"
	// ContentTypeListMIME is the list ID of MIME content type codes
	ContentTypeListMIME = "MIME"
)

// Payload is one entry of the XHE payload list
type Payload struct {
	Description string

	ContentTypeCode   string
	ContentTypeListID string

	CustomizationID       string
	CustomizationSchemeID string

	ProfileID       string
	ProfileSchemeID string

	InstanceEncryptionIndicator bool
	InstanceEncryptionMethod    string

	content *etree.Element
}

// Content returns a copy of the payload content element
func (p *Payload) Content() *etree.Element {
	return envelope.DetachElement(p.content)
}

// SetContent stores a copy of el as the payload content
func (p *Payload) SetContent(el *etree.Element) {
	p.content = envelope.DetachElement(el)
}

// IsComplete reports whether the payload has a content type code and content
func (p *Payload) IsComplete() bool {
	return strings.TrimSpace(p.ContentTypeCode) != "" && p.content != nil
}

func (p Payload) trimmed() Payload {
	for _, f := range []*string{
		&p.Description, &p.ContentTypeCode, &p.ContentTypeListID,
		&p.CustomizationID, &p.CustomizationSchemeID,
		&p.ProfileID, &p.ProfileSchemeID, &p.InstanceEncryptionMethod,
	} {
		*f = strings.TrimSpace(*f)
	}
	return p
}

func (p Payload) clone() Payload {
	p.content = envelope.DetachElement(p.content)
	return p
}

func (p Payload) equal(o Payload) bool {
	pc, oc := p.content, o.content
	p.content, o.content = nil, nil
	return p == o && envelope.ElementsEqual(pc, oc)
}

// Envelope is a validated XHE. It is created by a Reader or a Builder and
// is not modified afterwards.
type Envelope struct {
	sender   identifier.ParticipantID
	receiver identifier.ParticipantID

	instanceIdentifier string
	creationDateTime   time.Time

	customizationID string
	profileID       string

	payloads []Payload
}

// Sender returns the FromParty identifier
func (e *Envelope) Sender() identifier.ParticipantID { return e.sender }

// Receiver returns the ToParty identifier
func (e *Envelope) Receiver() identifier.ParticipantID { return e.receiver }

// InstanceIdentifier returns the header ID
func (e *Envelope) InstanceIdentifier() string { return e.instanceIdentifier }

// CreationDateTime returns the creation timestamp with its zone
func (e *Envelope) CreationDateTime() time.Time { return e.creationDateTime }

// CustomizationID returns the envelope level customization, if any
func (e *Envelope) CustomizationID() string { return e.customizationID }

// ProfileID returns the envelope level profile, if any
func (e *Envelope) ProfileID() string { return e.profileID }

// Payloads returns copies of the payloads in document order
func (e *Envelope) Payloads() []Payload {
	out := make([]Payload, len(e.payloads))
	for i, p := range e.payloads {
		out[i] = p.clone()
	}
	return out
}

// PayloadCount returns the number of payloads
func (e *Envelope) PayloadCount() int { return len(e.payloads) }

// FirstPayload returns a copy of the first payload
func (e *Envelope) FirstPayload() (Payload, bool) {
	if len(e.payloads) == 0 {
		return Payload{}, false
	}
	return e.payloads[0].clone(), true
}

// AreAllFieldsSet reports whether every mandatory field is present
func (e *Envelope) AreAllFieldsSet() bool {
	return e != nil && missingField(e) == ""
}

// Equal reports whether both envelopes carry the same data
func (e *Envelope) Equal(o *Envelope) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.sender != o.sender ||
		e.receiver != o.receiver ||
		e.instanceIdentifier != o.instanceIdentifier ||
		!e.creationDateTime.Equal(o.creationDateTime) ||
		e.customizationID != o.customizationID ||
		e.profileID != o.profileID ||
		len(e.payloads) != len(o.payloads) {
		return false
	}
	for i := range e.payloads {
		if !e.payloads[i].equal(o.payloads[i]) {
			return false
		}
	}
	return true
}

// ToBuilder returns a builder pre-populated with the envelope's data
func (e *Envelope) ToBuilder() *Builder {
	b := NewBuilder()
	b.env = *e
	b.env.payloads = e.Payloads()
	return b
}

func missingField(e *Envelope) string {
	switch {
	case !e.sender.IsSet():
		return "sender"
	case !e.receiver.IsSet():
		return "receiver"
	case strings.TrimSpace(e.instanceIdentifier) == "":
		return "instance identifier"
	case e.creationDateTime.IsZero():
		return "creation date and time"
	case len(e.payloads) == 0:
		return "payload"
	}
	for i := range e.payloads {
		if !e.payloads[i].IsComplete() {
			return "complete payload"
		}
	}
	return ""
}
