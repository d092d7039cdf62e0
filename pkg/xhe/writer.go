package xhe

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/sirosfoundation/go-sbdh/pkg/envelope"
	"github.com/sirosfoundation/go-sbdh/pkg/identifier"
)

// Prefixes bound to the XHE namespaces in written documents
const (
	PrefixXHE = "xhe"
	PrefixXHA = "xha"
	PrefixXHB = "xhb"
)

// Writer encodes envelopes into XHE trees
type Writer struct{}

// NewWriter creates an XHE writer
func NewWriter() *Writer {
	return &Writer{}
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

	root := doc.CreateElement(PrefixXHE + ":XHE")
	root.CreateAttr("xmlns:"+PrefixXHE, NsXHE)
	root.CreateAttr("xmlns:"+PrefixXHA, NsXHA)
	root.CreateAttr("xmlns:"+PrefixXHB, NsXHB)

	basic(root, "XHEVersionID").SetText(VersionID)
	if env.customizationID != "" {
		basic(root, "CustomizationID").SetText(env.customizationID)
	}
	if env.profileID != "" {
		basic(root, "ProfileID").SetText(env.profileID)
	}

	header := aggregate(root, "Header")
	basic(header, "ID").SetText(env.instanceIdentifier)
	basic(header, "CreationDateTime").SetText(envelope.FormatDateTime(env.creationDateTime))
	party(aggregate(header, "FromParty"), env.sender)
	party(aggregate(header, "ToParty"), env.receiver)

	list := aggregate(root, "Payloads")
	for i := range env.payloads {
		payload(aggregate(list, "Payload"), &env.payloads[i])
	}
	return doc, nil
}

// WriteBytes writes env and serializes the document without re-indenting
// payload content
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

func aggregate(parent *etree.Element, name string) *etree.Element {
	return parent.CreateElement(PrefixXHA + ":" + name)
}

func basic(parent *etree.Element, name string) *etree.Element {
	return parent.CreateElement(PrefixXHB + ":" + name)
}

func party(parent *etree.Element, pid identifier.ParticipantID) {
	id := basic(aggregate(parent, "PartyIdentification"), "ID")
	id.CreateAttr("schemeID", pid.Scheme)
	id.SetText(pid.Value)
}

func codeWithAttrElement(parent *etree.Element, name, value, attr, attrValue string) {
	if value == "" {
		return
	}
	el := basic(parent, name)
	if attrValue != "" {
		el.CreateAttr(attr, attrValue)
	}
	el.SetText(value)
}

func payload(el *etree.Element, p *Payload) {
	if p.Description != "" {
		basic(el, "Description").SetText(p.Description)
	}
	codeWithAttrElement(el, "ContentTypeCode", p.ContentTypeCode, "listID", p.ContentTypeListID)
	codeWithAttrElement(el, "CustomizationID", p.CustomizationID, "schemeID", p.CustomizationSchemeID)
	codeWithAttrElement(el, "ProfileID", p.ProfileID, "schemeID", p.ProfileSchemeID)
	basic(el, "InstanceEncryptionIndicator").SetText(strconv.FormatBool(p.InstanceEncryptionIndicator))
	if p.InstanceEncryptionMethod != "" {
		basic(el, "InstanceEncryptionMethod").SetText(p.InstanceEncryptionMethod)
	}
	aggregate(el, "PayloadContent").AddChild(envelope.DetachElement(p.content))
}
