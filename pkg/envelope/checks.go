package envelope

import (
	"time"

	"github.com/beevik/etree"
	"github.com/sirosfoundation/go-sbdh/pkg/identifier"
)

// PartyRole selects the error codes used for a participant block
type PartyRole struct {
	Name      string
	Count     ErrorCode
	Authority ErrorCode
	Value     ErrorCode
}

var (
	// Sender maps participant failures to the sender codes
	Sender = PartyRole{
		Name:      "Sender",
		Count:     CodeInvalidSenderCount,
		Authority: CodeInvalidSenderAuthority,
		Value:     CodeInvalidSenderValue,
	}
	// Receiver maps participant failures to the receiver codes
	Receiver = PartyRole{
		Name:      "Receiver",
		Count:     CodeInvalidReceiverCount,
		Authority: CodeInvalidReceiverAuthority,
		Value:     CodeInvalidReceiverValue,
	}
)

// CheckParticipant validates an extracted participant scheme and value.
// field names the scheme-bearing attribute for error reports.
func CheckParticipant(role PartyRole, registry identifier.Registry, field, scheme string, schemePresent bool, value string) (identifier.ParticipantID, *Error) {
	if !schemePresent || scheme == "" {
		return identifier.ParticipantID{}, Errorf(role.Authority, field, "%s identifier has no scheme", role.Name)
	}
	if !registry.IsValidScheme(identifier.KindParticipant, scheme) {
		return identifier.ParticipantID{}, Errorf(role.Authority, field, "%s identifier scheme %q is not supported", role.Name, scheme)
	}
	if value == "" {
		return identifier.ParticipantID{}, Errorf(role.Value, role.Name, "%s identifier value is empty", role.Name)
	}
	if !registry.IsValidValue(identifier.KindParticipant, scheme, value) {
		return identifier.ParticipantID{}, Errorf(role.Value, role.Name, "%s identifier value %q is not valid for scheme %q", role.Name, value, scheme)
	}
	return identifier.ParticipantID{Scheme: scheme, Value: value}, nil
}

// CheckCreationDateTime parses text and passes the result through validator.
// Both unparseable values and rejected values are reported with code.
func CheckCreationDateTime(code ErrorCode, field, text string, validator CreationTimeValidator) (time.Time, *Error) {
	t, err := ParseDateTime(text)
	if err != nil {
		return time.Time{}, &Error{Code: code, Field: field, Message: "creation date and time cannot be parsed", Err: err}
	}
	if !validator.IsValidCreationDateTime(t) {
		return time.Time{}, Errorf(code, field, "creation date and time %s was rejected", FormatDateTime(t))
	}
	return t, nil
}

// CheckBusinessMessage detaches msg from its tree and passes a copy through
// validator. On success a second copy, never seen by the validator, is
// returned.
func CheckBusinessMessage(field string, msg *etree.Element, validator BusinessMessageValidator) (*etree.Element, *Error) {
	owned := DetachElement(msg)
	var seen *etree.Element
	if owned != nil {
		seen = owned.Copy()
	}
	if !validator.IsValidBusinessMessage(seen) {
		name := ""
		if owned != nil {
			name = owned.Tag
		}
		return nil, Errorf(CodeInvalidBusinessMessage, field, "business message %q was rejected", name)
	}
	return owned, nil
}
