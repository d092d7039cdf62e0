// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package gosbdh reads, validates and writes business document envelopes used
in electronic invoicing networks.

# Overview

go-sbdh implements the envelopes that wrap business documents such as UBL
invoices with routing metadata: sender and receiver, document type and
process classification, a creation timestamp, an instance identifier and the
embedded document itself. Four envelope flavors are supported:

  - Generic UBL Standard Business Document Header (SBDH)
  - Peppol SBDH, with identifiers checked against the Peppol code lists
  - Delivery profile SBDH, whose document types extend a base transaction
  - OASIS Exchange Header Envelope (XHE) with one or more payloads

Every reader failure is reported as an *envelope.Error carrying a stable
error code, suitable for reporting back to a business partner.

# Specifications Implemented

  - UN/CEFACT Standard Business Document Header 1.3: https://unece.org/trade/uncefact/xml-schemas
  - Peppol Envelope Specification 2.0: https://docs.peppol.eu/edelivery/envelope/
  - Peppol Policy for use of Identifiers 4.2: https://docs.peppol.eu/edelivery/policies/
  - OASIS Exchange Header Envelope 1.0: https://docs.oasis-open.org/bdxr/xhe/v1.0/xhe-v1.0.html

# Package Structure

	github.com/sirosfoundation/go-sbdh/pkg/identifier  - Identifier types and the document type grammar
	github.com/sirosfoundation/go-sbdh/pkg/envelope    - Error codes, reader hooks, observers and DOM helpers
	github.com/sirosfoundation/go-sbdh/pkg/sbdh        - SBDH envelopes, builder, reader, writer and flavors
	github.com/sirosfoundation/go-sbdh/pkg/xhe         - XHE envelopes, builder, reader and writer
	github.com/sirosfoundation/go-sbdh/pkg/codelist    - Embedded Peppol identifier scheme tables
	github.com/sirosfoundation/go-sbdh/pkg/compression - GZIP and Zstandard envelope files
	github.com/sirosfoundation/go-sbdh/pkg/metrics     - Prometheus validation metrics

The sbdhcheck command in cmd/sbdhcheck validates envelope files from the
command line.

# Quick Start

To read a Peppol envelope:

	import "github.com/sirosfoundation/go-sbdh/pkg/sbdh"

	env, err := sbdh.NewReader(sbdh.Peppol).Read(data)
	if err != nil {
	    code, _ := envelope.CodeOf(err)
	    // report code to the sender
	}
	invoice := env.BusinessMessage()

To write one:

	env, err := sbdh.NewBuilder().
	    WithSender("iso6523-actorid-upis", "0088:7315458756324").
	    WithReceiver("iso6523-actorid-upis", "0192:987654325").
	    WithDocumentType("busdox-docid-qns", docType).
	    WithProcess("cenbii-procid-ubl", process).
	    WithDocumentIdentificationFromDocumentType().
	    WithRandomInstanceIdentifier().
	    WithCreationDateAndTimeNow().
	    WithBusinessMessage(invoice).
	    Build()
	data, err := sbdh.NewWriter(sbdh.Peppol).WriteBytes(env)

# Validation Hooks

Readers accept injected strategies replacing the flavor defaults:

  - identifier.Registry: accepted identifier schemes and values
  - envelope.BusinessMessageValidator: checks the embedded document
  - envelope.CreationTimeValidator: checks the creation timestamp
  - envelope.Observer: notified of each failure, e.g. for logging or metrics

# License

BSD-2-Clause License
*/
package gosbdh
