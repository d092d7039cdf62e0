// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package identifier provides the participant, document type and process
identifier value types carried by business document envelopes, and the
grammar of compound document type identifiers.

# Identifier Values

Every identifier is a (scheme, value) pair:

	sender := identifier.ParticipantID{Scheme: "iso6523-actorid-upis", Value: "0088:5798000000001"}
	docType := identifier.DocumentTypeID{Scheme: "busdox-docid-qns", Value: "urn:...::Invoice##...::2.1"}

Which schemes and values are acceptable is decided by a [Registry]. The
package ships [AnyScheme], which accepts everything; code-list backed
registries live in the codelist package.

# Document Type Identifier Parts

A document type identifier value has the shape

	rootNS "::" localName "##" customization "::" version

[ParseDocTypeParts] treats the customization as an opaque string.
[ParseExtendedDocTypeParts] splits it into a transaction ID followed by zero
or more extension IDs joined with ":extended:":

	parts, err := identifier.ParseExtendedDocTypeParts(
	    "root::local##basic:extended:subtype:extended:ext1::ver1")
	// parts.TransactionID() == "basic"
	// parts.ExtensionIDs() == []string{"subtype", "ext1"}

Both forms serialize back with String().
*/
package identifier
