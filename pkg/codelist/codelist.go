// Package codelist provides static identifier code lists loaded from
// embedded YAML. A Table implements identifier.Registry.
package codelist

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirosfoundation/go-sbdh/pkg/identifier"
	"gopkg.in/yaml.v3"
)

//go:embed data/schemes.yaml
var embedded []byte

// Maximum length of a participant identifier value
const MaxParticipantValueLength = 135

type participantScheme struct {
	ID          string `yaml:"id"`
	ICDPrefixed bool   `yaml:"icdPrefixed"`
}

type file struct {
	Participant struct {
		Schemes []participantScheme `yaml:"schemes"`
	} `yaml:"participant"`
	ICD          []string `yaml:"icd"`
	DocumentType struct {
		Schemes []string `yaml:"schemes"`
	} `yaml:"documentType"`
	Process struct {
		Schemes []string `yaml:"schemes"`
	} `yaml:"process"`
}

// Table is an immutable set of accepted schemes and ICD codes
type Table struct {
	participant  map[string]participantScheme
	icd          map[string]bool
	documentType map[string]bool
	process      map[string]bool
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table built from the embedded code list
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(bytes.NewReader(embedded))
		if err != nil {
			panic(fmt.Sprintf("codelist: embedded data is invalid: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Load builds a table from YAML in the embedded file's format
func Load(r io.Reader) (*Table, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding code list: %w", err)
	}

	t := &Table{
		participant:  make(map[string]participantScheme),
		icd:          make(map[string]bool),
		documentType: make(map[string]bool),
		process:      make(map[string]bool),
	}
	for _, s := range f.Participant.Schemes {
		if s.ID == "" {
			return nil, fmt.Errorf("participant scheme without id")
		}
		t.participant[s.ID] = s
	}
	for _, code := range f.ICD {
		if len(code) != 4 {
			return nil, fmt.Errorf("ICD code %q must have four digits", code)
		}
		t.icd[code] = true
	}
	for _, s := range f.DocumentType.Schemes {
		t.documentType[s] = true
	}
	for _, s := range f.Process.Schemes {
		t.process[s] = true
	}
	if len(t.participant) == 0 || len(t.documentType) == 0 || len(t.process) == 0 {
		return nil, fmt.Errorf("code list must define participant, document type and process schemes")
	}
	return t, nil
}

// IsValidScheme implements identifier.Registry
func (t *Table) IsValidScheme(kind identifier.Kind, scheme string) bool {
	switch kind {
	case identifier.KindParticipant:
		_, ok := t.participant[scheme]
		return ok
	case identifier.KindDocumentType:
		return t.documentType[scheme]
	case identifier.KindProcess:
		return t.process[scheme]
	}
	return false
}

// IsValidValue implements identifier.Registry. Participant values of
// ICD-prefixed schemes must look like "0088:value" with a known ICD.
func (t *Table) IsValidValue(kind identifier.Kind, scheme, value string) bool {
	if strings.TrimSpace(value) != value || value == "" {
		return false
	}
	if kind != identifier.KindParticipant {
		return true
	}
	if len(value) > MaxParticipantValueLength {
		return false
	}
	s, ok := t.participant[scheme]
	if !ok {
		return false
	}
	if !s.ICDPrefixed {
		return true
	}
	icd, rest, found := strings.Cut(value, ":")
	return found && rest != "" && t.icd[icd]
}

// IsKnownICD reports whether code is a known ISO 6523 ICD
func (t *Table) IsKnownICD(code string) bool {
	return t.icd[code]
}

// ParticipantSchemes returns the accepted participant scheme IDs
func (t *Table) ParticipantSchemes() []string {
	out := make([]string, 0, len(t.participant))
	for id := range t.participant {
		out = append(out, id)
	}
	return out
}
