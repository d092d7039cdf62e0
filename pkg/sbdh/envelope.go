package sbdh

import (
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/sirosfoundation/go-sbdh/pkg/envelope"
	"github.com/sirosfoundation/go-sbdh/pkg/identifier"
)

// Envelope is a validated SBDH envelope. It is created by a Reader or a
// Builder and is not modified afterwards.
type Envelope struct {
	sender       identifier.ParticipantID
	receiver     identifier.ParticipantID
	documentType identifier.DocumentTypeID
	process      identifier.ProcessID

	standard            string
	typeVersion         string
	docType             string
	instanceIdentifier  string
	creationDateAndTime time.Time

	businessMessage *etree.Element
}

// Sender returns the sending participant
func (e *Envelope) Sender() identifier.ParticipantID { return e.sender }

// Receiver returns the receiving participant
func (e *Envelope) Receiver() identifier.ParticipantID { return e.receiver }

// DocumentType returns the document type identifier from the business scope
func (e *Envelope) DocumentType() identifier.DocumentTypeID { return e.documentType }

// Process returns the process identifier from the business scope
func (e *Envelope) Process() identifier.ProcessID { return e.process }

// Standard returns the namespace URI of the business message
func (e *Envelope) Standard() string { return e.standard }

// TypeVersion returns the syntax version of the business message
func (e *Envelope) TypeVersion() string { return e.typeVersion }

// Type returns the local name of the business message root element
func (e *Envelope) Type() string { return e.docType }

// InstanceIdentifier returns the envelope-unique identifier
func (e *Envelope) InstanceIdentifier() string { return e.instanceIdentifier }

// CreationDateAndTime returns the creation timestamp with its zone
func (e *Envelope) CreationDateAndTime() time.Time { return e.creationDateAndTime }

// BusinessMessage returns a copy of the embedded business document
func (e *Envelope) BusinessMessage() *etree.Element {
	return envelope.DetachElement(e.businessMessage)
}

// BusinessMessageTag returns the local name of the business message root
func (e *Envelope) BusinessMessageTag() string {
	if e.businessMessage == nil {
		return ""
	}
	return e.businessMessage.Tag
}

// DocumentTypeParts parses the document type identifier value
func (e *Envelope) DocumentTypeParts() (*identifier.DocTypeParts, error) {
	return identifier.ParseDocTypeParts(e.documentType.Value)
}

// ExtendedDocumentTypeParts parses the document type identifier value with
// the chained customization dialect
func (e *Envelope) ExtendedDocumentTypeParts() (*identifier.ExtendedDocTypeParts, error) {
	return identifier.ParseExtendedDocTypeParts(e.documentType.Value)
}

// AreAllFieldsSet reports whether every mandatory field is present
func (e *Envelope) AreAllFieldsSet() bool {
	return e != nil && missingField(e) == ""
}

// Equal reports whether both envelopes carry the same data. Timestamps are
// compared as instants and business messages by their serialized form.
func (e *Envelope) Equal(o *Envelope) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.sender == o.sender &&
		e.receiver == o.receiver &&
		e.documentType == o.documentType &&
		e.process == o.process &&
		e.standard == o.standard &&
		e.typeVersion == o.typeVersion &&
		e.docType == o.docType &&
		e.instanceIdentifier == o.instanceIdentifier &&
		e.creationDateAndTime.Equal(o.creationDateAndTime) &&
		envelope.ElementsEqual(e.businessMessage, o.businessMessage)
}

// ToBuilder returns a builder pre-populated with the envelope's data
func (e *Envelope) ToBuilder() *Builder {
	b := NewBuilder()
	b.env = *e
	b.env.businessMessage = envelope.DetachElement(e.businessMessage)
	return b
}

func missingField(e *Envelope) string {
	switch {
	case !e.sender.IsSet():
		return "sender"
	case !e.receiver.IsSet():
		return "receiver"
	case strings.TrimSpace(e.standard) == "":
		return "standard"
	case strings.TrimSpace(e.typeVersion) == "":
		return "type version"
	case strings.TrimSpace(e.docType) == "":
		return "type"
	case strings.TrimSpace(e.instanceIdentifier) == "":
		return "instance identifier"
	case e.creationDateAndTime.IsZero():
		return "creation date and time"
	case !e.documentType.IsSet():
		return "document type identifier"
	case !e.process.IsSet():
		return "process identifier"
	case e.businessMessage == nil:
		return "business message"
	}
	return ""
}
