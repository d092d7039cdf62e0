// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package sbdh reads and writes Standard Business Document Header (SBDH)
envelopes as used in Peppol and other e-invoicing networks.

# Flavors

A [Flavor] configures the reader and writer for one envelope variant:

  - [Generic]: UBL SBDH with any identifier schemes
  - [Peppol]: Peppol SBDH with code-list checked identifiers
  - [DeliveryProfile]: Peppol SBDH whose document type identifiers use the
    chained ":extended:" customization and whose business message must be
    a namespaced document

# Reading

	reader := sbdh.NewReader(sbdh.Peppol)
	env, err := reader.Read(data)
	if err != nil {
	    code, _ := envelope.CodeOf(err) // e.g. INVALID_SENDER_COUNT
	}
	fmt.Println(env.Sender(), env.DocumentType(), env.InstanceIdentifier())

The reader stops at the first violated rule. The returned [Envelope] owns
its business message; it never shares nodes with the input tree.

# Building and Writing

	env, err := sbdh.NewBuilder().
	    WithSender("iso6523-actorid-upis", "0088:7315458756324").
	    WithReceiver("iso6523-actorid-upis", "0192:987654325").
	    WithDocumentType("busdox-docid-qns", docTypeID).
	    WithProcess("cenbii-procid-ubl", "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0").
	    WithDocumentIdentificationFromDocumentType().
	    WithRandomInstanceIdentifier().
	    WithCreationDateAndTimeNow().
	    WithBusinessMessage(invoice).
	    Build()

	doc, err := sbdh.NewWriter(sbdh.Peppol).Write(env)

Reading the written document yields an envelope equal to env.

# References

  - UN/CEFACT SBDH 1.3: https://unece.org/trade/uncefact/xml-schemas
  - Peppol Envelope Specification: https://docs.peppol.eu/edelivery/envelope/
*/
package sbdh
