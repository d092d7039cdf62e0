package sbdh

import (
	"github.com/sirosfoundation/go-sbdh/pkg/codelist"
	"github.com/sirosfoundation/go-sbdh/pkg/envelope"
	"github.com/sirosfoundation/go-sbdh/pkg/identifier"
)

// NsSBDH is the SBDH namespace
const NsSBDH = "http://www.unece.org/cefact/namespaces/StandardBusinessDocumentHeader"

// Scope types carrying classification identifiers
const (
	ScopeDocumentID = "DOCUMENTID"
	ScopeProcessID  = "PROCESSID"
)

// Dialect selects how document type identifier values are checked
type Dialect int

const (
	// DialectFlat treats the customization part as opaque
	DialectFlat Dialect = iota
	// DialectChained requires a transaction ID with ":extended:" extension IDs
	DialectChained
)

// Flavor is the configuration of one SBDH variant
type Flavor struct {
	Name          string
	Namespace     string
	HeaderVersion string

	DocumentTypeScope   string
	ProcessScope        string
	DocumentTypeDialect Dialect

	// CreationTimeCode is reported for unparseable or rejected timestamps
	CreationTimeCode envelope.ErrorCode

	Registry        identifier.Registry
	BusinessMessage envelope.BusinessMessageValidator
	CreationTime    envelope.CreationTimeValidator
}

var (
	// Generic is the UBL SBDH without scheme restrictions. Unparseable
	// creation timestamps are treated as structurally invalid XML.
	Generic = Flavor{
		Name:                "generic",
		Namespace:           NsSBDH,
		HeaderVersion:       "1.0",
		DocumentTypeScope:   ScopeDocumentID,
		ProcessScope:        ScopeProcessID,
		DocumentTypeDialect: DialectFlat,
		CreationTimeCode:    envelope.CodeInvalidSBDXML,
		Registry:            identifier.AnyScheme,
		BusinessMessage:     envelope.AnyBusinessMessage,
		CreationTime:        envelope.AnyCreationTime,
	}

	// Peppol is the Peppol SBDH with identifiers checked against the code lists
	Peppol = Flavor{
		Name:                "peppol",
		Namespace:           NsSBDH,
		HeaderVersion:       "1.0",
		DocumentTypeScope:   ScopeDocumentID,
		ProcessScope:        ScopeProcessID,
		DocumentTypeDialect: DialectFlat,
		CreationTimeCode:    envelope.CodeInvalidCreationDateAndTime,
		Registry:            codelist.Default(),
		BusinessMessage:     envelope.AnyBusinessMessage,
		CreationTime:        envelope.AnyCreationTime,
	}

	// DeliveryProfile is the Peppol SBDH for delivery profiles that extend
	// a base transaction, with namespaced business messages only
	DeliveryProfile = Flavor{
		Name:                "delivery-profile",
		Namespace:           NsSBDH,
		HeaderVersion:       "1.0",
		DocumentTypeScope:   ScopeDocumentID,
		ProcessScope:        ScopeProcessID,
		DocumentTypeDialect: DialectChained,
		CreationTimeCode:    envelope.CodeInvalidCreationDateAndTime,
		Registry:            codelist.Default(),
		BusinessMessage:     envelope.NamespacedBusinessMessage,
		CreationTime:        envelope.AnyCreationTime,
	}
)

// FlavorByName returns the flavor with the given name
func FlavorByName(name string) (Flavor, bool) {
	for _, f := range []Flavor{Generic, Peppol, DeliveryProfile} {
		if f.Name == name {
			return f, true
		}
	}
	return Flavor{}, false
}

// checkDocumentTypeValue applies the flavor's grammar to a document type value
func (f Flavor) checkDocumentTypeValue(value string) error {
	switch f.DocumentTypeDialect {
	case DialectChained:
		_, err := identifier.ParseExtendedDocTypeParts(value)
		return err
	default:
		_, err := identifier.ParseDocTypeParts(value)
		return err
	}
}
