// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package xhe reads and writes OASIS Exchange Header Envelopes (XHE 1.0).

An XHE carries routing metadata for one sender and one receiver and an
ordered list of payloads. Each payload describes its content with a MIME
content type code and optional customization and profile identifiers, and
embeds exactly one XML element.

# Building

	env, err := xhe.NewBuilder().
	    WithSender("iso6523-actorid-upis", "0088:7315458756324").
	    WithReceiver("iso6523-actorid-upis", "0192:987654325").
	    WithRandomInstanceIdentifier().
	    WithCreationDateTimeNow().
	    AddXMLPayload(invoice).
	    Build()

# Reading and writing

	data, err := xhe.NewWriter().WriteBytes(env)
	env, err = xhe.NewReader().Read(data)

Reader failures are *envelope.Error values. A missing or empty payload list
is reported as MISSING_PAYLOAD and a malformed payload as INVALID_PAYLOAD.

# References

  - OASIS XHE 1.0: https://docs.oasis-open.org/bdxr/xhe/v1.0/xhe-v1.0.html
*/
package xhe
