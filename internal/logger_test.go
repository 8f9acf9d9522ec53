package internal

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLeveledLogrusFields(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.Out = &buf
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.TraceLevel)

	leveled := NewLeveledLogrus(l)
	leveled.Warn("request failed", "url", "http://x", "status", 502, "dangling")

	out := buf.String()
	assert.Contains(t, out, `"msg":"request failed"`)
	assert.Contains(t, out, `"url":"http://x"`)
	assert.Contains(t, out, `"status":502`)
	assert.Contains(t, out, `"component":"http"`)
	assert.NotContains(t, out, "dangling")
}

func TestLeveledLogrusDebugIsTrace(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.Out = &buf
	l.SetLevel(logrus.DebugLevel)

	NewLeveledLogrus(l).Debug("performing request")
	assert.Empty(t, buf.String())
}

func TestSetLogLevel(t *testing.T) {
	SetLogLevel(logrus.ErrorLevel)
	assert.Equal(t, logrus.ErrorLevel, GetLogger().GetLevel())
}
