// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package envelope holds the pieces shared by every envelope codec: the error
taxonomy reported by readers, the validation hooks callers can install, the
failure observer, XML ownership helpers and timestamp handling.

# Errors

Readers report the first violated rule as an [*Error] carrying a stable
[ErrorCode]:

	env, err := reader.Read(data)
	if code, ok := envelope.CodeOf(err); ok && code == envelope.CodeInvalidSenderCount {
	    // report to the sending party
	}

Reader errors are data problems. Writers and builders report incomplete
input with [ErrIncomplete], which indicates a bug in the calling code.

# Hooks

Two hooks refine the structural rules with domain rules:

	reader := sbdh.NewReader(sbdh.Peppol,
	    sbdh.WithBusinessMessageValidator(envelope.BusinessMessageValidatorFunc(
	        func(msg *etree.Element) bool { return msg.Tag == "Invoice" })),
	)

The defaults accept every non-nil element and every timestamp. Readers may
be shared between goroutines only when the installed hooks and observer are
safe for concurrent use.

# Ownership

Envelopes never share XML nodes with caller-owned trees. [DetachElement]
copies an element and re-declares the namespace prefixes it inherited from
its ancestors, so the copy stands on its own.
*/
package envelope
