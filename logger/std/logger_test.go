package std

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWriters(t *testing.T) {
	var out, errOut bytes.Buffer

	l := NewLoggerWithWriters(&out, &errOut, false)
	l.Info("info", 1)
	l.Debug("hidden")
	l.Error("DecodeArchive error:", "malformed archive")

	assert.Equal(t, "info 1\n", out.String())
	assert.Equal(t, "DecodeArchive error: malformed archive\n", errOut.String())

	out.Reset()
	NewLoggerWithWriters(&out, &errOut, true).Debug("shown")
	assert.Equal(t, "shown\n", out.String())
}
