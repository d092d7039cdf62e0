package xhe

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
)

// sampleXHE is a valid two-payload envelope used as the base of most tests
const sampleXHE = `<?xml version="1.0" encoding="UTF-8"?>
<xhe:XHE xmlns:xhe="http://docs.oasis-open.org/bdxr/ns/XHE/1/ExchangeHeaderEnvelope"
         xmlns:xha="http://docs.oasis-open.org/bdxr/ns/XHE/1/AggregateComponents"
         xmlns:xhb="http://docs.oasis-open.org/bdxr/ns/XHE/1/BasicComponents">
  <xhb:XHEVersionID>1.0</xhb:XHEVersionID>
  <xhb:CustomizationID>urn:fdc:digg.se:edelivery:xhe:1.0</xhb:CustomizationID>
  <xha:Header>
    <xhb:ID>9f1e2d3c-4b5a-4968-8776-5a4b3c2d1e0f</xhb:ID>
    <xhb:CreationDateTime>2025-01-15T10:30:00Z</xhb:CreationDateTime>
    <xha:FromParty>
      <xha:PartyIdentification>
        <xhb:ID schemeID="iso6523-actorid-upis">0203:sender-org</xhb:ID>
      </xha:PartyIdentification>
    </xha:FromParty>
    <xha:ToParty>
      <xha:PartyIdentification>
        <xhb:ID schemeID="iso6523-actorid-upis">0203:recipient-org</xhb:ID>
      </xha:PartyIdentification>
    </xha:ToParty>
  </xha:Header>
  <xha:Payloads>
    <xha:Payload>
      <xhb:Description>Invoice</xhb:Description>
      <xhb:ContentTypeCode listID="MIME">application/xml</xhb:ContentTypeCode>
      <xhb:CustomizationID schemeID="cenbii-procid-ubl">urn:cen.eu:en16931:2017</xhb:CustomizationID>
      <xhb:ProfileID>urn:fdc:peppol.eu:2017:poacc:billing:01:1.0</xhb:ProfileID>
      <xhb:InstanceEncryptionIndicator>false</xhb:InstanceEncryptionIndicator>
      <xha:PayloadContent>
        <Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2" xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
          <cbc:ID>INV-1</cbc:ID>
        </Invoice>
      </xha:PayloadContent>
    </xha:Payload>
    <xha:Payload>
      <xhb:ContentTypeCode>application/xml</xhb:ContentTypeCode>
      <xhb:InstanceEncryptionIndicator>1</xhb:InstanceEncryptionIndicator>
      <xhb:InstanceEncryptionMethod>CMS</xhb:InstanceEncryptionMethod>
      <xha:PayloadContent><Attachment xmlns="urn:example:attachment">AQID</Attachment></xha:PayloadContent>
    </xha:Payload>
  </xha:Payloads>
</xhe:XHE>`

// mutate returns the sample envelope with old replaced by new exactly once
func mutate(t *testing.T, old, new string) []byte {
	t.Helper()
	if !strings.Contains(sampleXHE, old) {
		t.Fatalf("fixture does not contain %q", old)
	}
	return []byte(strings.Replace(sampleXHE, old, new, 1))
}

// mutateAll returns the sample envelope with every old replaced by new
func mutateAll(t *testing.T, old, new string) []byte {
	t.Helper()
	if !strings.Contains(sampleXHE, old) {
		t.Fatalf("fixture does not contain %q", old)
	}
	return []byte(strings.ReplaceAll(sampleXHE, old, new))
}

func testDocument(name string) *etree.Element {
	el := etree.NewElement(name)
	el.CreateAttr("xmlns", "urn:example:"+strings.ToLower(name))
	el.CreateElement("Line").SetText(name + "-1")
	return el
}
