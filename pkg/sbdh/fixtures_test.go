package sbdh

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
)

const (
	peppolDocType = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2::Invoice##urn:cen.eu:en16931:2017#compliant#urn:fdc:peppol.eu:2017:poacc:billing:3.0::2.1"
	peppolProcess = "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0"

	extendedDocType = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2::Invoice##urn:www.cenbii.eu:transaction:biitrns010:ver2.0:extended:urn:www.peppol.eu:bis:peppol4a:ver2.0::2.1"
)

// peppolSBD is a valid Peppol envelope used as the base of most tests
const peppolSBD = `<?xml version="1.0" encoding="UTF-8"?>
<StandardBusinessDocument xmlns="http://www.unece.org/cefact/namespaces/StandardBusinessDocumentHeader">
  <StandardBusinessDocumentHeader>
    <HeaderVersion>1.0</HeaderVersion>
    <Sender>
      <Identifier Authority="iso6523-actorid-upis">0088:7315458756324</Identifier>
    </Sender>
    <Receiver>
      <Identifier Authority="iso6523-actorid-upis">0192:987654325</Identifier>
    </Receiver>
    <DocumentIdentification>
      <Standard>urn:oasis:names:specification:ubl:schema:xsd:Invoice-2</Standard>
      <TypeVersion>2.1</TypeVersion>
      <InstanceIdentifier>4d3a9f3c-0b7e-4c55-9a3e-2f7b1c1d8e21</InstanceIdentifier>
      <Type>Invoice</Type>
      <CreationDateAndTime>2024-02-19T05:10:10Z</CreationDateAndTime>
    </DocumentIdentification>
    <BusinessScope>
      <Scope>
        <Type>DOCUMENTID</Type>
        <InstanceIdentifier>` + peppolDocType + `</InstanceIdentifier>
        <Identifier>busdox-docid-qns</Identifier>
      </Scope>
      <Scope>
        <Type>PROCESSID</Type>
        <InstanceIdentifier>` + peppolProcess + `</InstanceIdentifier>
        <Identifier>cenbii-procid-ubl</Identifier>
      </Scope>
    </BusinessScope>
  </StandardBusinessDocumentHeader>
  <Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2" xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
    <cbc:CustomizationID>urn:cen.eu:en16931:2017#compliant#urn:fdc:peppol.eu:2017:poacc:billing:3.0</cbc:CustomizationID>
    <cbc:ID>INV-1</cbc:ID>
  </Invoice>
</StandardBusinessDocument>`

const senderBlock = `<Sender>
      <Identifier Authority="iso6523-actorid-upis">0088:7315458756324</Identifier>
    </Sender>`

const processScope = `<Scope>
        <Type>PROCESSID</Type>
        <InstanceIdentifier>` + peppolProcess + `</InstanceIdentifier>
        <Identifier>cenbii-procid-ubl</Identifier>
      </Scope>`

// mutate returns the Peppol fixture with old replaced by new exactly once
func mutate(t *testing.T, old, new string) []byte {
	t.Helper()
	if !strings.Contains(peppolSBD, old) {
		t.Fatalf("fixture does not contain %q", old)
	}
	return []byte(strings.Replace(peppolSBD, old, new, 1))
}

// mutateAll returns the Peppol fixture with every old replaced by new
func mutateAll(t *testing.T, old, new string) []byte {
	t.Helper()
	if !strings.Contains(peppolSBD, old) {
		t.Fatalf("fixture does not contain %q", old)
	}
	return []byte(strings.ReplaceAll(peppolSBD, old, new))
}

func testInvoice() *etree.Element {
	inv := etree.NewElement("Invoice")
	inv.CreateAttr("xmlns", "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2")
	inv.CreateAttr("xmlns:cbc", "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2")
	inv.CreateElement("cbc:ID").SetText("INV-42")
	return inv
}
