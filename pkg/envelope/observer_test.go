package envelope

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockObserver struct {
	mock.Mock
}

func (m *mockObserver) Observe(flavor string, err *Error) {
	m.Called(flavor, err)
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	observe := LogObserver(logger)
	observe("peppol", Errorf(CodeInvalidSenderCount, "Sender", "expected exactly one Sender, found 2"))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "code=INVALID_SENDER_COUNT")
	assert.Contains(t, out, "field=Sender")
	assert.Contains(t, out, "flavor=peppol")
}

func TestObservers_FanOut(t *testing.T) {
	first := &mockObserver{}
	second := &mockObserver{}
	failure := Errorf(CodeMissingSBDH, "", "no header")

	first.On("Observe", "generic", failure).Once()
	second.On("Observe", "generic", failure).Once()

	Observers(first.Observe, nil, second.Observe)("generic", failure)

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}
