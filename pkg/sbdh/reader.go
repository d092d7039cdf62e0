package sbdh

import (
	"io"

	"github.com/beevik/etree"
	"github.com/sirosfoundation/go-sbdh/pkg/envelope"
	"github.com/sirosfoundation/go-sbdh/pkg/identifier"
)

// Reader decodes SBDH envelopes. A Reader holds no mutable state; it may be
// used from several goroutines if its validators and observer allow that.
type Reader struct {
	flavor          Flavor
	registry        identifier.Registry
	businessMessage envelope.BusinessMessageValidator
	creationTime    envelope.CreationTimeValidator
	observer        envelope.Observer
}

// ReaderOption configures a Reader
type ReaderOption func(*Reader)

// WithRegistry replaces the flavor's identifier registry
func WithRegistry(registry identifier.Registry) ReaderOption {
	return func(r *Reader) {
		r.registry = registry
	}
}

// WithBusinessMessageValidator replaces the flavor's business message check
func WithBusinessMessageValidator(v envelope.BusinessMessageValidator) ReaderOption {
	return func(r *Reader) {
		r.businessMessage = v
	}
}

// WithCreationTimeValidator replaces the flavor's creation timestamp check
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

// NewReader creates a reader for the given flavor
func NewReader(flavor Flavor, opts ...ReaderOption) *Reader {
	r := &Reader{
		flavor:          flavor,
		registry:        flavor.Registry,
		businessMessage: flavor.BusinessMessage,
		creationTime:    flavor.CreationTime,
	}
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

// Flavor returns the flavor the reader was created for
func (r *Reader) Flavor() Flavor {
	return r.flavor
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

// ReadElement validates a StandardBusinessDocument element
func (r *Reader) ReadElement(root *etree.Element) (*Envelope, error) {
	env, verr := r.read(root)
	if verr != nil {
		return nil, r.fail(verr)
	}
	return env, nil
}

func (r *Reader) fail(e *envelope.Error) error {
	if r.observer != nil {
		r.observer(r.flavor.Name, e)
	}
	return e
}

func (r *Reader) read(root *etree.Element) (*Envelope, *envelope.Error) {
	ns := r.flavor.Namespace
	if root == nil {
		return nil, envelope.Errorf(envelope.CodeInvalidSBDXML, "", "document has no root element")
	}
	if !envelope.Is(root, ns, "StandardBusinessDocument") {
		return nil, envelope.Errorf(envelope.CodeMissingSBDH, "StandardBusinessDocument",
			"root element {%s}%s is not a StandardBusinessDocument", root.NamespaceURI(), root.Tag)
	}
	header := envelope.ChildElement(root, ns, "StandardBusinessDocumentHeader")
	if header == nil {
		return nil, envelope.Errorf(envelope.CodeMissingSBDH, "StandardBusinessDocumentHeader", "no StandardBusinessDocumentHeader present")
	}

	if v := envelope.ChildText(header, ns, "HeaderVersion"); v != r.flavor.HeaderVersion {
		return nil, envelope.Errorf(envelope.CodeInvalidHeaderVersion, "HeaderVersion",
			"header version %q is not the expected %q", v, r.flavor.HeaderVersion)
	}

	env := &Envelope{}
	var verr *envelope.Error
	if env.sender, verr = r.readParty(header, envelope.Sender); verr != nil {
		return nil, verr
	}
	if env.receiver, verr = r.readParty(header, envelope.Receiver); verr != nil {
		return nil, verr
	}
	if verr = r.readDocumentIdentification(header, env); verr != nil {
		return nil, verr
	}
	if verr = r.readBusinessScope(header, env); verr != nil {
		return nil, verr
	}

	var messages []*etree.Element
	for _, child := range root.ChildElements() {
		if child != header {
			messages = append(messages, child)
		}
	}
	if len(messages) != 1 {
		return nil, envelope.Errorf(envelope.CodeInvalidSBDXML, "BusinessMessage",
			"expected exactly one business message, found %d", len(messages))
	}
	if env.businessMessage, verr = envelope.CheckBusinessMessage("BusinessMessage", messages[0], r.businessMessage); verr != nil {
		return nil, verr
	}
	return env, nil
}

func (r *Reader) readParty(header *etree.Element, role envelope.PartyRole) (identifier.ParticipantID, *envelope.Error) {
	ns := r.flavor.Namespace
	blocks := envelope.ChildElements(header, ns, role.Name)
	if len(blocks) != 1 {
		return identifier.ParticipantID{}, envelope.Errorf(role.Count, role.Name,
			"expected exactly one %s, found %d", role.Name, len(blocks))
	}
	id := envelope.ChildElement(blocks[0], ns, "Identifier")
	if id == nil {
		return identifier.ParticipantID{}, envelope.Errorf(role.Value, role.Name+"/Identifier",
			"%s has no Identifier", role.Name)
	}
	scheme, present := envelope.Attr(id, "Authority")
	return envelope.CheckParticipant(role, r.registry, role.Name+"/Identifier/@Authority", scheme, present, envelope.Text(id))
}

func (r *Reader) readDocumentIdentification(header *etree.Element, env *Envelope) *envelope.Error {
	ns := r.flavor.Namespace
	docID := envelope.ChildElement(header, ns, "DocumentIdentification")
	if docID == nil {
		return envelope.Errorf(envelope.CodeInvalidSBDXML, "DocumentIdentification", "no DocumentIdentification present")
	}

	fields := []struct {
		name   string
		code   envelope.ErrorCode
		target *string
	}{
		{"Standard", envelope.CodeInvalidStandard, &env.standard},
		{"TypeVersion", envelope.CodeInvalidTypeVersion, &env.typeVersion},
		{"Type", envelope.CodeInvalidType, &env.docType},
		{"InstanceIdentifier", envelope.CodeInvalidInstanceIdentifier, &env.instanceIdentifier},
	}
	for _, f := range fields {
		v := envelope.ChildText(docID, ns, f.name)
		if v == "" {
			return envelope.Errorf(f.code, "DocumentIdentification/"+f.name, "%s is missing or empty", f.name)
		}
		*f.target = v
	}

	created, verr := envelope.CheckCreationDateTime(r.flavor.CreationTimeCode, "DocumentIdentification/CreationDateAndTime",
		envelope.ChildText(docID, ns, "CreationDateAndTime"), r.creationTime)
	if verr != nil {
		return verr
	}
	env.creationDateAndTime = created
	return nil
}

func (r *Reader) readBusinessScope(header *etree.Element, env *Envelope) *envelope.Error {
	ns := r.flavor.Namespace
	scope := envelope.ChildElement(header, ns, "BusinessScope")
	if scope == nil {
		return envelope.Errorf(envelope.CodeBusinessScopeMissing, "BusinessScope", "no BusinessScope present")
	}

	expected := []string{r.flavor.DocumentTypeScope, r.flavor.ProcessScope}
	scopes := envelope.ChildElements(scope, ns, "Scope")
	if len(scopes) == 0 || len(scopes) > len(expected) {
		return envelope.Errorf(envelope.CodeInvalidScopeCount, "BusinessScope/Scope",
			"expected %d scopes, found %d", len(expected), len(scopes))
	}

	byType := make(map[string]*etree.Element, len(scopes))
	for _, s := range scopes {
		t := envelope.ChildText(s, ns, "Type")
		if _, dup := byType[t]; dup {
			return envelope.Errorf(envelope.CodeInvalidScopeCount, "BusinessScope/Scope",
				"scope type %q occurs more than once", t)
		}
		byType[t] = s
	}

	docScope := byType[r.flavor.DocumentTypeScope]
	if docScope == nil {
		return envelope.Errorf(envelope.CodeMissingDocumentTypeIdentifier, "BusinessScope/Scope",
			"no %s scope present", r.flavor.DocumentTypeScope)
	}
	scheme, value := envelope.ChildText(docScope, ns, "Identifier"), envelope.ChildText(docScope, ns, "InstanceIdentifier")
	if verr := r.checkDocumentType(scheme, value); verr != nil {
		return verr
	}
	env.documentType = identifier.DocumentTypeID{Scheme: scheme, Value: value}

	procScope := byType[r.flavor.ProcessScope]
	if procScope == nil {
		return envelope.Errorf(envelope.CodeMissingProcessIdentifier, "BusinessScope/Scope",
			"no %s scope present", r.flavor.ProcessScope)
	}
	scheme, value = envelope.ChildText(procScope, ns, "Identifier"), envelope.ChildText(procScope, ns, "InstanceIdentifier")
	if verr := r.checkProcess(scheme, value); verr != nil {
		return verr
	}
	env.process = identifier.ProcessID{Scheme: scheme, Value: value}
	return nil
}

func (r *Reader) checkDocumentType(scheme, value string) *envelope.Error {
	const field = "BusinessScope/Scope[DOCUMENTID]"
	code := envelope.CodeInvalidDocumentTypeIdentifier
	switch {
	case value == "":
		return envelope.Errorf(code, field, "document type identifier value is empty")
	case scheme == "":
		return envelope.Errorf(code, field, "document type identifier has no scheme")
	case !r.registry.IsValidScheme(identifier.KindDocumentType, scheme):
		return envelope.Errorf(code, field, "document type identifier scheme %q is not supported", scheme)
	case !r.registry.IsValidValue(identifier.KindDocumentType, scheme, value):
		return envelope.Errorf(code, field, "document type identifier %q is not valid for scheme %q", value, scheme)
	}
	if err := r.flavor.checkDocumentTypeValue(value); err != nil {
		return &envelope.Error{Code: code, Field: field, Message: err.Error(), Err: err}
	}
	return nil
}

func (r *Reader) checkProcess(scheme, value string) *envelope.Error {
	const field = "BusinessScope/Scope[PROCESSID]"
	code := envelope.CodeInvalidProcessIdentifier
	switch {
	case value == "":
		return envelope.Errorf(code, field, "process identifier value is empty")
	case scheme == "":
		return envelope.Errorf(code, field, "process identifier has no scheme")
	case !r.registry.IsValidScheme(identifier.KindProcess, scheme):
		return envelope.Errorf(code, field, "process identifier scheme %q is not supported", scheme)
	case !r.registry.IsValidValue(identifier.KindProcess, scheme, value):
		return envelope.Errorf(code, field, "process identifier %q is not valid for scheme %q", value, scheme)
	}
	return nil
}
