package sbdh

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/sirosfoundation/go-sbdh/pkg/envelope"
	"github.com/sirosfoundation/go-sbdh/pkg/identifier"
)

// Prefix bound to the SBDH namespace in written documents
const Prefix = "sh"

// Writer encodes envelopes into StandardBusinessDocument trees
type Writer struct {
	flavor Flavor
}

// NewWriter creates a writer for the given flavor
func NewWriter(flavor Flavor) *Writer {
	return &Writer{flavor: flavor}
}

// Write builds a new document from env. The envelope is not modified and
// the document shares no nodes with it.
func (w *Writer) Write(env *Envelope) (*etree.Document, error) {
	if env == nil {
		return nil, fmt.Errorf("nil envelope: %w", envelope.ErrIncomplete)
	}
	if field := missingField(env); field != "" {
		return nil, fmt.Errorf("%s is required: %w", field, envelope.ErrIncomplete)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement(Prefix + ":StandardBusinessDocument")
	root.CreateAttr("xmlns:"+Prefix, w.flavor.Namespace)

	header := w.element(root, "StandardBusinessDocumentHeader")
	w.text(header, "HeaderVersion", w.flavor.HeaderVersion)
	w.party(header, "Sender", env.sender)
	w.party(header, "Receiver", env.receiver)

	docID := w.element(header, "DocumentIdentification")
	w.text(docID, "Standard", env.standard)
	w.text(docID, "TypeVersion", env.typeVersion)
	w.text(docID, "InstanceIdentifier", env.instanceIdentifier)
	w.text(docID, "Type", env.docType)
	w.text(docID, "CreationDateAndTime", envelope.FormatDateTime(env.creationDateAndTime))

	scope := w.element(header, "BusinessScope")
	w.scope(scope, w.flavor.DocumentTypeScope, env.documentType.Value, env.documentType.Scheme)
	w.scope(scope, w.flavor.ProcessScope, env.process.Value, env.process.Scheme)

	root.AddChild(envelope.DetachElement(env.businessMessage))
	return doc, nil
}

// WriteBytes writes env and serializes the document. The business message
// is serialized unchanged, without re-indentation.
func (w *Writer) WriteBytes(env *Envelope) ([]byte, error) {
	doc, err := w.Write(env)
	if err != nil {
		return nil, err
	}
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize envelope: %w", err)
	}
	return out, nil
}

func (w *Writer) element(parent *etree.Element, name string) *etree.Element {
	return parent.CreateElement(Prefix + ":" + name)
}

func (w *Writer) text(parent *etree.Element, name, value string) {
	w.element(parent, name).SetText(value)
}

func (w *Writer) party(parent *etree.Element, name string, pid identifier.ParticipantID) {
	id := w.element(w.element(parent, name), "Identifier")
	id.CreateAttr("Authority", pid.Scheme)
	id.SetText(pid.Value)
}

func (w *Writer) scope(parent *etree.Element, scopeType, value, scheme string) {
	s := w.element(parent, "Scope")
	w.text(s, "Type", scopeType)
	w.text(s, "InstanceIdentifier", value)
	w.text(s, "Identifier", scheme)
}
