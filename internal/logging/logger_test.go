package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Backends(t *testing.T) {
	for _, backend := range []string{"slog", "zap"} {
		t.Run(backend, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(backend, "info", &buf)
			require.NoError(t, err)

			log.Debug(context.Background(), "quiet")
			log.Info(context.Background(), "started", "addr", ":8080")

			line := bytes.TrimSpace(buf.Bytes())
			require.NotContains(t, string(line), "quiet")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(line, &entry))
			assert.Equal(t, ":8080", entry["addr"])
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New("logrus", "info", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New("slog", "loud", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New("zap", "loud", &bytes.Buffer{})
	assert.Error(t, err)
}
