package envelope

import (
	"time"

	"github.com/beevik/etree"
)

// BusinessMessageValidator decides whether an embedded business document is
// acceptable. It receives a private copy of the element; changes made to it,
// during or after the call, never reach the envelope.
type BusinessMessageValidator interface {
	IsValidBusinessMessage(msg *etree.Element) bool
}

// BusinessMessageValidatorFunc adapts a function to BusinessMessageValidator
type BusinessMessageValidatorFunc func(msg *etree.Element) bool

// IsValidBusinessMessage calls f(msg)
func (f BusinessMessageValidatorFunc) IsValidBusinessMessage(msg *etree.Element) bool {
	return f(msg)
}

// CreationTimeValidator decides whether a parsed creation timestamp is acceptable
type CreationTimeValidator interface {
	IsValidCreationDateTime(t time.Time) bool
}

// CreationTimeValidatorFunc adapts a function to CreationTimeValidator
type CreationTimeValidatorFunc func(t time.Time) bool

// IsValidCreationDateTime calls f(t)
func (f CreationTimeValidatorFunc) IsValidCreationDateTime(t time.Time) bool {
	return f(t)
}

// AnyBusinessMessage accepts every non-nil element
var AnyBusinessMessage BusinessMessageValidator = BusinessMessageValidatorFunc(func(msg *etree.Element) bool {
	return msg != nil
})

// AnyCreationTime accepts every timestamp
var AnyCreationTime CreationTimeValidator = CreationTimeValidatorFunc(func(time.Time) bool {
	return true
})

// NamespacedBusinessMessage accepts elements whose root is bound to a
// namespace, as required for UBL and CII documents.
var NamespacedBusinessMessage BusinessMessageValidator = BusinessMessageValidatorFunc(func(msg *etree.Element) bool {
	return msg != nil && msg.NamespaceURI() != ""
})

// NotAfter returns a validator rejecting timestamps later than now()+skew
func NotAfter(now func() time.Time, skew time.Duration) CreationTimeValidator {
	return CreationTimeValidatorFunc(func(t time.Time) bool {
		return !t.After(now().Add(skew))
	})
}
