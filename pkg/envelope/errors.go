package envelope

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the rule an envelope violated. The values are stable
// and may be reported to business partners.
type ErrorCode string

const (
	CodeInvalidSBDXML                 ErrorCode = "INVALID_SBD_XML"
	CodeMissingSBDH                   ErrorCode = "MISSING_SBDH"
	CodeInvalidHeaderVersion          ErrorCode = "INVALID_HEADER_VERSION"
	CodeInvalidSenderCount            ErrorCode = "INVALID_SENDER_COUNT"
	CodeInvalidSenderAuthority        ErrorCode = "INVALID_SENDER_AUTHORITY"
	CodeInvalidSenderValue            ErrorCode = "INVALID_SENDER_VALUE"
	CodeInvalidReceiverCount          ErrorCode = "INVALID_RECEIVER_COUNT"
	CodeInvalidReceiverAuthority      ErrorCode = "INVALID_RECEIVER_AUTHORITY"
	CodeInvalidReceiverValue          ErrorCode = "INVALID_RECEIVER_VALUE"
	CodeInvalidStandard               ErrorCode = "INVALID_STANDARD"
	CodeInvalidTypeVersion            ErrorCode = "INVALID_TYPE_VERSION"
	CodeInvalidType                   ErrorCode = "INVALID_TYPE"
	CodeInvalidInstanceIdentifier     ErrorCode = "INVALID_INSTANCE_IDENTIFIER"
	CodeInvalidCreationDateAndTime    ErrorCode = "INVALID_CREATION_DATE_AND_TIME"
	CodeBusinessScopeMissing          ErrorCode = "BUSINESS_SCOPE_MISSING"
	CodeInvalidScopeCount             ErrorCode = "INVALID_SCOPE_COUNT"
	CodeMissingDocumentTypeIdentifier ErrorCode = "MISSING_DOCUMENT_TYPE_IDENTIFIER"
	CodeInvalidDocumentTypeIdentifier ErrorCode = "INVALID_DOCUMENT_TYPE_IDENTIFIER"
	CodeMissingProcessIdentifier      ErrorCode = "MISSING_PROCESS_IDENTIFIER"
	CodeInvalidProcessIdentifier      ErrorCode = "INVALID_PROCESS_IDENTIFIER"
	CodeInvalidBusinessMessage        ErrorCode = "INVALID_BUSINESS_MESSAGE"
	CodeMissingPayload                ErrorCode = "MISSING_PAYLOAD"
	CodeInvalidPayload                ErrorCode = "INVALID_PAYLOAD"
)

// ErrorCodes lists every code in declaration order
var ErrorCodes = []ErrorCode{
	CodeInvalidSBDXML,
	CodeMissingSBDH,
	CodeInvalidHeaderVersion,
	CodeInvalidSenderCount,
	CodeInvalidSenderAuthority,
	CodeInvalidSenderValue,
	CodeInvalidReceiverCount,
	CodeInvalidReceiverAuthority,
	CodeInvalidReceiverValue,
	CodeInvalidStandard,
	CodeInvalidTypeVersion,
	CodeInvalidType,
	CodeInvalidInstanceIdentifier,
	CodeInvalidCreationDateAndTime,
	CodeBusinessScopeMissing,
	CodeInvalidScopeCount,
	CodeMissingDocumentTypeIdentifier,
	CodeInvalidDocumentTypeIdentifier,
	CodeMissingProcessIdentifier,
	CodeInvalidProcessIdentifier,
	CodeInvalidBusinessMessage,
	CodeMissingPayload,
	CodeInvalidPayload,
}

// ErrIncomplete is returned by builders and writers when required fields
// are missing. It indicates a programming error, not bad input data.
var ErrIncomplete = errors.New("envelope is incomplete")

// Error is a validation failure reported by an envelope reader
type Error struct {
	Code    ErrorCode
	Message string
	// Field names the offending element or attribute, if any
	Field string
	// Err is the underlying cause, if any
	Err error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same code, so callers can write
// errors.Is(err, &envelope.Error{Code: envelope.CodeMissingSBDH}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Errorf creates an *Error with a formatted message
func Errorf(code ErrorCode, field, format string, args ...any) *Error {
	return &Error{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the error code from err
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
