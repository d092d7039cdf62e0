package identifier

import (
	"errors"
	"fmt"
	"strings"
)

// Separators used in document type identifier values
const (
	NamespaceSeparator = "::"
	SubtypeSeparator   = "##"
	VersionSeparator   = "::"
	ExtensionSeparator = ":extended:"
)

// Grammar errors, in the order the rules are checked
var (
	ErrMissingSubtype          = errors.New("no subtype present")
	ErrInvalidRootPart         = errors.New("root namespace and local name must be separated by exactly one '::'")
	ErrMissingVersionSeparator = errors.New("no version separator")
	ErrEmptyVersion            = errors.New("empty version")
	ErrEmptyCustomization      = errors.New("empty customization")
	ErrEmptyTransactionID      = errors.New("empty transaction id")
	ErrEmptyExtensionID        = errors.New("empty extension id")
)

// ParseError reports a document type identifier that violates the grammar
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid document type identifier %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DocTypeParts is a parsed document type identifier with an opaque customization
type DocTypeParts struct {
	rootNS        string
	localName     string
	customization string
	version       string
}

// NewDocTypeParts creates parts from their components and checks them
// against the same rules as ParseDocTypeParts.
func NewDocTypeParts(rootNS, localName, customization, version string) (*DocTypeParts, error) {
	p := &DocTypeParts{rootNS: rootNS, localName: localName, customization: customization, version: version}
	if _, err := ParseDocTypeParts(p.String()); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseDocTypeParts parses a document type identifier value.
// The first violated rule is reported.
func ParseDocTypeParts(s string) (*DocTypeParts, error) {
	rootNS, localName, subtype, err := splitMain(s)
	if err != nil {
		return nil, &ParseError{Input: s, Err: err}
	}
	customization, version, err := splitSubtype(subtype)
	if err != nil {
		return nil, &ParseError{Input: s, Err: err}
	}
	return &DocTypeParts{
		rootNS:        rootNS,
		localName:     localName,
		customization: customization,
		version:       version,
	}, nil
}

func splitMain(s string) (rootNS, localName, subtype string, err error) {
	main, subtype, found := strings.Cut(s, SubtypeSeparator)
	if !found {
		return "", "", "", ErrMissingSubtype
	}
	if strings.Count(main, NamespaceSeparator) != 1 {
		return "", "", "", ErrInvalidRootPart
	}
	rootNS, localName, _ = strings.Cut(main, NamespaceSeparator)
	if rootNS == "" || localName == "" {
		return "", "", "", ErrInvalidRootPart
	}
	return rootNS, localName, subtype, nil
}

func splitSubtype(subtype string) (customization, version string, err error) {
	idx := strings.LastIndex(subtype, VersionSeparator)
	if idx < 0 {
		return "", "", ErrMissingVersionSeparator
	}
	customization = subtype[:idx]
	version = subtype[idx+len(VersionSeparator):]
	if version == "" {
		return "", "", ErrEmptyVersion
	}
	if customization == "" {
		return "", "", ErrEmptyCustomization
	}
	return customization, version, nil
}

// RootNS returns the namespace URI of the business document root element
func (p *DocTypeParts) RootNS() string { return p.rootNS }

// LocalName returns the local name of the business document root element
func (p *DocTypeParts) LocalName() string { return p.localName }

// CustomizationID returns the customization part between "##" and the version
func (p *DocTypeParts) CustomizationID() string { return p.customization }

// Version returns the syntax version
func (p *DocTypeParts) Version() string { return p.version }

// SubTypeIdentifier returns everything after "##", including the version
func (p *DocTypeParts) SubTypeIdentifier() string {
	return p.customization + VersionSeparator + p.version
}

// String returns the identifier value these parts were parsed from
func (p *DocTypeParts) String() string {
	return p.rootNS + NamespaceSeparator + p.localName + SubtypeSeparator + p.SubTypeIdentifier()
}

// ExtendedDocTypeParts is a parsed document type identifier whose
// customization is a transaction ID followed by extension IDs.
type ExtendedDocTypeParts struct {
	DocTypeParts
	transactionID string
	extensionIDs  []string
}

// NewExtendedDocTypeParts creates parts from a transaction ID and its extensions
func NewExtendedDocTypeParts(rootNS, localName, transactionID string, extensionIDs []string, version string) (*ExtendedDocTypeParts, error) {
	customization := strings.Join(append([]string{transactionID}, extensionIDs...), ExtensionSeparator)
	return ParseExtendedDocTypeParts(rootNS + NamespaceSeparator + localName + SubtypeSeparator + customization + VersionSeparator + version)
}

// ParseExtendedDocTypeParts parses a document type identifier value using
// the chained customization dialect.
func ParseExtendedDocTypeParts(s string) (*ExtendedDocTypeParts, error) {
	base, err := ParseDocTypeParts(s)
	if err != nil {
		return nil, err
	}
	segments := strings.Split(base.customization, ExtensionSeparator)
	if segments[0] == "" {
		return nil, &ParseError{Input: s, Err: ErrEmptyTransactionID}
	}
	for _, ext := range segments[1:] {
		if ext == "" {
			return nil, &ParseError{Input: s, Err: ErrEmptyExtensionID}
		}
	}
	return &ExtendedDocTypeParts{
		DocTypeParts:  *base,
		transactionID: segments[0],
		extensionIDs:  segments[1:],
	}, nil
}

// TransactionID returns the leading customization segment
func (p *ExtendedDocTypeParts) TransactionID() string { return p.transactionID }

// ExtensionIDs returns a copy of the extension IDs in order
func (p *ExtendedDocTypeParts) ExtensionIDs() []string {
	out := make([]string, len(p.extensionIDs))
	copy(out, p.extensionIDs)
	return out
}
