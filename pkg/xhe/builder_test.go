package xhe

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirosfoundation/go-sbdh/pkg/envelope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeBuilder() *Builder {
	return NewBuilder().
		WithSender("iso6523-actorid-upis", "0203:sender-org").
		WithReceiver("iso6523-actorid-upis", "0203:recipient-org").
		WithRandomInstanceIdentifier().
		WithCreationDateTimeNow()
}

func TestBuilder_Completeness(t *testing.T) {
	t.Run("no payloads", func(t *testing.T) {
		b := completeBuilder()
		assert.False(t, b.AreAllFieldsSet())

		_, err := b.Build()
		assert.ErrorIs(t, err, envelope.ErrIncomplete)
		assert.Contains(t, err.Error(), "payload is required")
	})

	t.Run("payload without content type code", func(t *testing.T) {
		p := Payload{}
		p.SetContent(testDocument("Invoice"))
		assert.False(t, p.IsComplete())

		b := completeBuilder().AddPayload(p)
		assert.False(t, b.AreAllFieldsSet())
		_, err := b.Build()
		assert.ErrorIs(t, err, envelope.ErrIncomplete)
	})

	t.Run("payload without content", func(t *testing.T) {
		p := Payload{ContentTypeCode: ContentTypeXML}
		assert.False(t, p.IsComplete())
		assert.False(t, completeBuilder().AddPayload(p).AreAllFieldsSet())
	})

	t.Run("blank content type code", func(t *testing.T) {
		p := Payload{ContentTypeCode: "  "}
		p.SetContent(testDocument("Invoice"))
		assert.False(t, p.IsComplete())
		assert.False(t, completeBuilder().AddPayload(p).AreAllFieldsSet())
	})

	t.Run("blank instance identifier", func(t *testing.T) {
		b := completeBuilder().WithInstanceIdentifier(" ").AddXMLPayload(testDocument("Invoice"))
		assert.False(t, b.AreAllFieldsSet())
		_, err := b.Build()
		assert.ErrorIs(t, err, envelope.ErrIncomplete)
	})

	t.Run("one complete payload", func(t *testing.T) {
		b := completeBuilder().AddXMLPayload(testDocument("Invoice"))
		assert.True(t, b.AreAllFieldsSet())

		env, err := b.Build()
		require.NoError(t, err)
		assert.True(t, env.AreAllFieldsSet())
		assert.Equal(t, 1, env.PayloadCount())
	})

	t.Run("one complete and one incomplete payload", func(t *testing.T) {
		b := completeBuilder().
			AddXMLPayload(testDocument("Invoice")).
			AddPayload(Payload{Description: "empty"})
		assert.False(t, b.AreAllFieldsSet())
	})
}

func TestBuilder_MissingHeaderFields(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		wantErr string
	}{
		{"sender", NewBuilder().AddXMLPayload(testDocument("Invoice")), "sender is required"},
		{"receiver", NewBuilder().WithSender("s", "v"), "receiver is required"},
		{"instance identifier", NewBuilder().WithSender("s", "v").WithReceiver("s", "v"), "instance identifier is required"},
		{
			"creation time",
			NewBuilder().WithSender("s", "v").WithReceiver("s", "v").WithInstanceIdentifier("id"),
			"creation date and time is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, envelope.ErrIncomplete)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuilder_NilXMLPayload(t *testing.T) {
	b := completeBuilder().AddXMLPayload(nil).AddXMLPayload(testDocument("Invoice"))
	assert.False(t, b.AreAllFieldsSet())

	_, err := b.Build()
	assert.ErrorIs(t, err, envelope.ErrIncomplete)
}

func TestBuilder_RandomInstanceIdentifier(t *testing.T) {
	env, err := completeBuilder().AddXMLPayload(testDocument("Invoice")).Build()
	require.NoError(t, err)

	_, err = uuid.Parse(env.InstanceIdentifier())
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, env.CreationDateTime().Location())
}

func TestBuilder_CopiesPayloads(t *testing.T) {
	doc := testDocument("Invoice")
	p := Payload{ContentTypeCode: ContentTypeXML}
	p.SetContent(doc)

	b := completeBuilder().AddPayload(p)
	doc.ChildElements()[0].SetText("CHANGED")

	env, err := b.Build()
	require.NoError(t, err)
	first, _ := env.FirstPayload()
	assert.NotContains(t, envelope.ElementString(first.Content()), "CHANGED")

	more, err := b.AddXMLPayload(testDocument("Other")).Build()
	require.NoError(t, err)
	assert.Equal(t, 1, env.PayloadCount())
	assert.Equal(t, 2, more.PayloadCount())
}

func TestEnvelope_ToBuilder(t *testing.T) {
	env := buildEnvelope(t)

	changed, err := env.ToBuilder().WithReceiver("iso6523-actorid-upis", "0203:other-org").Build()
	require.NoError(t, err)

	assert.Equal(t, "0203:recipient-org", env.Receiver().Value)
	assert.Equal(t, "0203:other-org", changed.Receiver().Value)
	assert.False(t, env.Equal(changed))

	same, err := env.ToBuilder().Build()
	require.NoError(t, err)
	assert.True(t, env.Equal(same))
}

func TestEnvelope_ZeroValue(t *testing.T) {
	var env *Envelope
	assert.False(t, env.AreAllFieldsSet())
	assert.False(t, (&Envelope{}).AreAllFieldsSet())
	assert.Empty(t, (&Envelope{}).Payloads())

	_, ok := (&Envelope{}).FirstPayload()
	assert.False(t, ok)
}
