package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Production(t *testing.T) {
	var buf bytes.Buffer
	log := New("production", &buf)

	log.Debug("dropped")
	assert.Empty(t, buf.String())

	log.Info("kept", "requestId", "abc")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "abc", entry["requestId"])
}

func TestNew_Development(t *testing.T) {
	var buf bytes.Buffer
	log := New("development", &buf)

	log.Debug("dropped")
	assert.Empty(t, buf.String())

	log.Info("hello", "port", "8080")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "port=8080")
}
