package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-sbdh/pkg/compression"
	"github.com/sirosfoundation/go-sbdh/pkg/sbdh"
	"github.com/sirosfoundation/go-sbdh/pkg/xhe"
)

const peppolDocType = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2::Invoice##urn:cen.eu:en16931:2017#compliant#urn:fdc:peppol.eu:2017:poacc:billing:3.0::2.1"

func invoice() *etree.Element {
	inv := etree.NewElement("Invoice")
	inv.CreateAttr("xmlns", "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2")
	inv.CreateElement("ID").SetText("INV-7")
	return inv
}

func peppolEnvelope(t *testing.T, created time.Time) []byte {
	t.Helper()
	env, err := sbdh.NewBuilder().
		WithSender("iso6523-actorid-upis", "0088:7315458756324").
		WithReceiver("iso6523-actorid-upis", "0192:987654325").
		WithDocumentType("busdox-docid-qns", peppolDocType).
		WithProcess("cenbii-procid-ubl", "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0").
		WithDocumentIdentificationFromDocumentType().
		WithRandomInstanceIdentifier().
		WithCreationDateAndTime(created).
		WithBusinessMessage(invoice()).
		Build()
	require.NoError(t, err)

	data, err := sbdh.NewWriter(sbdh.Peppol).WriteBytes(env)
	require.NoError(t, err)
	return data
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func exitCode(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return -1
}

func TestRun_ValidFiles(t *testing.T) {
	dir := t.TempDir()
	plain := peppolEnvelope(t, time.Now().UTC())
	gz, err := compression.NewCompressor(compression.Gzip).Compress(plain)
	require.NoError(t, err)
	zs, err := compression.NewCompressor(compression.Zstd).Compress(plain)
	require.NoError(t, err)

	files := []string{
		writeFile(t, dir, "a.xml", plain),
		writeFile(t, dir, "b.xml.gz", gz),
		writeFile(t, dir, "c.xml.zst", zs),
	}

	var stdout, stderr bytes.Buffer
	err = run(context.Background(), append([]string{"--flavor", "peppol", "-j", "2"}, files...), &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	assert.Empty(t, stdout.String())
	assert.Equal(t, 3, strings.Count(stderr.String(), "Envelope valid"))
	assert.Contains(t, stderr.String(), "compression=gzip")
	assert.Contains(t, stderr.String(), "compression=zstd")
}

func TestRun_Canonical(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.xml", peppolEnvelope(t, time.Now().UTC()))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--canonical", path}, &stdout, &stderr))

	env, err := sbdh.NewReader(sbdh.Peppol).Read(bytes.TrimSpace(stdout.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "Invoice", env.BusinessMessageTag())
}

func TestRun_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.xml", peppolEnvelope(t, time.Now().UTC()))
	invalid := writeFile(t, dir, "invalid.xml", bytes.Replace(
		peppolEnvelope(t, time.Now().UTC()), []byte(">0088:7315458756324<"), []byte(">7315458756324<"), 1))
	metricsFile := filepath.Join(dir, "sbdh.prom")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--metrics-file", metricsFile, "--log-format", "json", valid, invalid}, &stdout, &stderr)
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, err.Error(), "1 of 2 envelopes failed validation")

	logs := stderr.String()
	assert.Contains(t, logs, `"code":"INVALID_SENDER_VALUE"`)
	assert.Contains(t, logs, `"file":"`+invalid+`"`)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `sbdh_validation_failures_total{code="INVALID_SENDER_VALUE",flavor="peppol"} 1`)
	assert.Contains(t, string(data), `sbdh_envelopes_read_total{flavor="peppol"} 1`)
}

func TestRun_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.xml")}, &stdout, &stderr)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stderr.String(), "Failed to open envelope")
}

func TestRun_XHE(t *testing.T) {
	env, err := xhe.NewBuilder().
		WithSender("iso6523-actorid-upis", "0203:sender-org").
		WithReceiver("iso6523-actorid-upis", "0203:recipient-org").
		WithRandomInstanceIdentifier().
		WithCreationDateTimeNow().
		AddXMLPayload(invoice()).
		Build()
	require.NoError(t, err)
	data, err := xhe.NewWriter().WriteBytes(env)
	require.NoError(t, err)

	path := writeFile(t, t.TempDir(), "a.xhe", data)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--flavor", "xhe", "--canonical", path}, &stdout, &stderr))

	parsed, err := xhe.NewReader().Read(bytes.TrimSpace(stdout.Bytes()))
	require.NoError(t, err)
	assert.True(t, env.Equal(parsed))
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	future := writeFile(t, dir, "future.xml", peppolEnvelope(t, time.Now().Add(48*time.Hour).UTC()))
	cfgPath := writeFile(t, dir, "config.yaml", []byte(`
flavor: generic
validation:
  maxClockSkew: 1h
logging:
  level: warn
`))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--config", cfgPath, future}, &stdout, &stderr)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stderr.String(), "code=INVALID_SBD_XML")
	assert.NotContains(t, stderr.String(), "Check finished")

	stderr.Reset()
	err = run(context.Background(), []string{"--config", cfgPath, "--flavor", "peppol", future}, &stdout, &stderr)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stderr.String(), "code=INVALID_CREATION_DATE_AND_TIME")
}

func TestRun_CodelistOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.xml", peppolEnvelope(t, time.Now().UTC()))
	table := writeFile(t, dir, "schemes.yaml", []byte(`
participant:
  schemes:
    - id: iso6523-actorid-upis
      icdPrefixed: true
icd:
  - "0088"
documentType:
  schemes:
    - busdox-docid-qns
process:
  schemes:
    - cenbii-procid-ubl
`))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--codelist", table, path}, &stdout, &stderr)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stderr.String(), "code=INVALID_RECEIVER_VALUE")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no files", nil},
		{"unknown flag", []string{"--bogus", "a.xml"}},
		{"unknown flavor", []string{"--flavor", "as4", "a.xml"}},
		{"bad concurrency", []string{"-j", "0", "a.xml"}},
		{"missing config", []string{"--config", "/nonexistent/config.yaml", "a.xml"}},
		{"missing codelist", []string{"--codelist", "/nonexistent/schemes.yaml", "a.xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			require.Error(t, err)
			assert.Equal(t, 2, exitCode(err))
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.xml", peppolEnvelope(t, time.Now().UTC()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	err := run(ctx, []string{path}, &stdout, &stderr)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
