package xhe

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/sirosfoundation/go-sbdh/pkg/envelope"
	"github.com/sirosfoundation/go-sbdh/pkg/identifier"
)

// Reader decodes XHE envelopes. A Reader holds no mutable state; it may be
// used from several goroutines if its validators and observer allow that.
type Reader struct {
	registry        identifier.Registry
	businessMessage envelope.BusinessMessageValidator
	creationTime    envelope.CreationTimeValidator
	observer        envelope.Observer
}

// ReaderOption configures a Reader
type ReaderOption func(*Reader)

// WithRegistry sets the registry checking party identifiers
func WithRegistry(registry identifier.Registry) ReaderOption {
	return func(r *Reader) {
		r.registry = registry
	}
}

// WithBusinessMessageValidator sets the check applied to every payload content
func WithBusinessMessageValidator(v envelope.BusinessMessageValidator) ReaderOption {
	return func(r *Reader) {
		r.businessMessage = v
	}
}

// WithCreationTimeValidator sets the creation timestamp check
func WithCreationTimeValidator(v envelope.CreationTimeValidator) ReaderOption {
	return func(r *Reader) {
		r.creationTime = v
	}
}

// WithObserver installs an observer notified of every failure
func WithObserver(o envelope.Observer) ReaderOption {
	return func(r *Reader) {
		r.observer = o
	}
}

// NewReader creates an XHE reader. Without options every scheme, payload
// and timestamp is accepted.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = identifier.AnyScheme
	}
	if r.businessMessage == nil {
		r.businessMessage = envelope.AnyBusinessMessage
	}
	if r.creationTime == nil {
		r.creationTime = envelope.AnyCreationTime
	}
	return r
}

// Read decodes and validates an envelope from XML bytes
func (r *Reader) Read(data []byte) (*Envelope, error) {
	doc, err := envelope.ParseXML(data)
	if err != nil {
		return nil, r.fail(&envelope.Error{Code: envelope.CodeInvalidSBDXML, Message: "input is not a well-formed XML document", Err: err})
	}
	return r.ReadDocument(doc)
}

// ReadFrom decodes and validates an envelope from a stream
func (r *Reader) ReadFrom(in io.Reader) (*Envelope, error) {
	doc, err := envelope.ParseXMLFrom(in)
	if err != nil {
		return nil, r.fail(&envelope.Error{Code: envelope.CodeInvalidSBDXML, Message: "input is not a well-formed XML document", Err: err})
	}
	return r.ReadDocument(doc)
}

// ReadDocument validates an already parsed document. The document is not
// modified and the result shares no nodes with it.
func (r *Reader) ReadDocument(doc *etree.Document) (*Envelope, error) {
	if doc == nil || doc.Root() == nil {
		return nil, r.fail(envelope.Errorf(envelope.CodeInvalidSBDXML, "", "document has no root element"))
	}
	return r.ReadElement(doc.Root())
}

// ReadElement validates an XHE element
func (r *Reader) ReadElement(root *etree.Element) (*Envelope, error) {
	env, verr := r.read(root)
	if verr != nil {
		return nil, r.fail(verr)
	}
	return env, nil
}

func (r *Reader) fail(e *envelope.Error) error {
	if r.observer != nil {
		r.observer(FlavorName, e)
	}
	return e
}

func (r *Reader) read(root *etree.Element) (*Envelope, *envelope.Error) {
	if root == nil {
		return nil, envelope.Errorf(envelope.CodeInvalidSBDXML, "", "document has no root element")
	}
	if !envelope.Is(root, NsXHE, "XHE") {
		return nil, envelope.Errorf(envelope.CodeMissingSBDH, "XHE",
			"root element {%s}%s is not an XHE", root.NamespaceURI(), root.Tag)
	}
	header := envelope.ChildElement(root, NsXHA, "Header")
	if header == nil {
		return nil, envelope.Errorf(envelope.CodeMissingSBDH, "Header", "no Header present")
	}
	if v := envelope.ChildText(root, NsXHB, "XHEVersionID"); v != VersionID {
		return nil, envelope.Errorf(envelope.CodeInvalidHeaderVersion, "XHEVersionID",
			"XHE version %q is not the expected %q", v, VersionID)
	}

	env := &Envelope{
		customizationID: envelope.ChildText(root, NsXHB, "CustomizationID"),
		profileID:       envelope.ChildText(root, NsXHB, "ProfileID"),
	}

	// The schema fixes FromParty at exactly one, so a count violation is structural.
	from := envelope.ChildElements(header, NsXHA, "FromParty")
	if len(from) != 1 {
		return nil, envelope.Errorf(envelope.CodeInvalidSBDXML, "Header/FromParty",
			"expected exactly one FromParty, found %d", len(from))
	}
	var verr *envelope.Error
	if env.sender, verr = r.readParty(from[0], envelope.Sender, "Header/FromParty"); verr != nil {
		return nil, verr
	}

	to := envelope.ChildElements(header, NsXHA, "ToParty")
	if len(to) != 1 {
		return nil, envelope.Errorf(envelope.CodeInvalidReceiverCount, "Header/ToParty",
			"expected exactly one ToParty, found %d", len(to))
	}
	if env.receiver, verr = r.readParty(to[0], envelope.Receiver, "Header/ToParty"); verr != nil {
		return nil, verr
	}

	if env.instanceIdentifier = envelope.ChildText(header, NsXHB, "ID"); env.instanceIdentifier == "" {
		return nil, envelope.Errorf(envelope.CodeInvalidInstanceIdentifier, "Header/ID", "ID is missing or empty")
	}

	if env.creationDateTime, verr = envelope.CheckCreationDateTime(envelope.CodeInvalidCreationDateAndTime,
		"Header/CreationDateTime", envelope.ChildText(header, NsXHB, "CreationDateTime"), r.creationTime); verr != nil {
		return nil, verr
	}

	if env.payloads, verr = r.readPayloads(root); verr != nil {
		return nil, verr
	}
	return env, nil
}

func (r *Reader) readParty(party *etree.Element, role envelope.PartyRole, field string) (identifier.ParticipantID, *envelope.Error) {
	id := envelope.ChildElement(envelope.ChildElement(party, NsXHA, "PartyIdentification"), NsXHB, "ID")
	if id == nil {
		return identifier.ParticipantID{}, envelope.Errorf(role.Value, field+"/PartyIdentification/ID",
			"%s has no PartyIdentification/ID", role.Name)
	}
	scheme, present := envelope.Attr(id, "schemeID")
	return envelope.CheckParticipant(role, r.registry, field+"/PartyIdentification/ID/@schemeID", scheme, present, envelope.Text(id))
}

func (r *Reader) readPayloads(root *etree.Element) ([]Payload, *envelope.Error) {
	list := envelope.ChildElement(root, NsXHA, "Payloads")
	if list == nil {
		return nil, envelope.Errorf(envelope.CodeMissingPayload, "Payloads", "no Payloads present")
	}
	elems := envelope.ChildElements(list, NsXHA, "Payload")
	if len(elems) == 0 {
		return nil, envelope.Errorf(envelope.CodeMissingPayload, "Payloads/Payload", "Payloads contains no Payload")
	}

	payloads := make([]Payload, 0, len(elems))
	for i, el := range elems {
		p, verr := r.readPayload(el, fmt.Sprintf("Payloads/Payload[%d]", i+1))
		if verr != nil {
			return nil, verr
		}
		payloads = append(payloads, p)
	}
	return payloads, nil
}

func (r *Reader) readPayload(el *etree.Element, field string) (Payload, *envelope.Error) {
	p := Payload{
		Description:              envelope.ChildText(el, NsXHB, "Description"),
		InstanceEncryptionMethod: envelope.ChildText(el, NsXHB, "InstanceEncryptionMethod"),
	}
	p.ContentTypeCode, p.ContentTypeListID = codeWithAttr(el, "ContentTypeCode", "listID")
	p.CustomizationID, p.CustomizationSchemeID = codeWithAttr(el, "CustomizationID", "schemeID")
	p.ProfileID, p.ProfileSchemeID = codeWithAttr(el, "ProfileID", "schemeID")

	if p.ContentTypeCode == "" {
		return Payload{}, envelope.Errorf(envelope.CodeInvalidPayload, field+"/ContentTypeCode", "payload has no content type code")
	}

	if ind := envelope.ChildElement(el, NsXHB, "InstanceEncryptionIndicator"); ind != nil {
		v, ok := parseBoolean(envelope.Text(ind))
		if !ok {
			return Payload{}, envelope.Errorf(envelope.CodeInvalidPayload, field+"/InstanceEncryptionIndicator",
				"instance encryption indicator %q is not a boolean", envelope.Text(ind))
		}
		p.InstanceEncryptionIndicator = v
	}

	content := envelope.ChildElement(el, NsXHA, "PayloadContent")
	if content == nil {
		return Payload{}, envelope.Errorf(envelope.CodeInvalidPayload, field+"/PayloadContent", "payload has no PayloadContent")
	}
	children := content.ChildElements()
	if len(children) != 1 {
		return Payload{}, envelope.Errorf(envelope.CodeInvalidPayload, field+"/PayloadContent",
			"expected exactly one content element, found %d", len(children))
	}
	msg, verr := envelope.CheckBusinessMessage(field+"/PayloadContent", children[0], r.businessMessage)
	if verr != nil {
		return Payload{}, verr
	}
	p.content = msg
	return p, nil
}

func codeWithAttr(el *etree.Element, name, attr string) (value, attrValue string) {
	child := envelope.ChildElement(el, NsXHB, name)
	if child == nil {
		return "", ""
	}
	attrValue, _ = envelope.Attr(child, attr)
	return envelope.Text(child), attrValue
}

// parseBoolean accepts the lexical forms of xsd:boolean
func parseBoolean(s string) (bool, bool) {
	switch s {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}
