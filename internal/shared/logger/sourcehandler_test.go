package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceHandler(t *testing.T) {
	t.Run("source attached only for selected levels", func(t *testing.T) {
		var buf bytes.Buffer
		base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: false})
		log := slog.New(NewSourceHandler(base, slog.LevelError))

		log.Info("plain record")
		log.Error("annotated record")

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)

		var info, errRec map[string]any
		require.NoError(t, json.Unmarshal(lines[0], &info))
		require.NoError(t, json.Unmarshal(lines[1], &errRec))

		assert.NotContains(t, info, slog.SourceKey)
		assert.Contains(t, errRec, slog.SourceKey)
	})

	t.Run("with attrs preserved through wrapper", func(t *testing.T) {
		var buf bytes.Buffer
		base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: false})
		log := slog.New(NewSourceHandler(base)).With("component", "repository")

		log.Info("tagged")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
		assert.Equal(t, "repository", rec["component"])
	})
}
