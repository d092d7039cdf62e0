// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package compression provides GZIP and Zstandard compression for envelope files.

Envelopes are often archived or exchanged compressed. The package compresses
and decompresses whole documents and detects the format from its magic bytes,
so readers can accept plain and compressed input alike.

# Compression

	compressor := compression.NewCompressor(compression.Gzip)
	compressed, err := compressor.Compress(envelope)
	plain, err := compressor.Decompress(compressed)

# Transparent decompression

NewReader inspects the first bytes of a stream and decompresses it when it
starts with a GZIP or Zstandard frame; anything else is passed through:

	r, err := compression.NewReader(file)
	defer r.Close()
	env, err := sbdh.NewReader(sbdh.Peppol).ReadFrom(r)

# References

  - GZIP RFC 1952: https://datatracker.ietf.org/doc/html/rfc1952
  - Zstandard RFC 8878: https://datatracker.ietf.org/doc/html/rfc8878
*/
package compression
