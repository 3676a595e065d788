package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	t.Cleanup(Discard)

	var buf bytes.Buffer
	Setup(&buf, false)
	log.Debug().Msg("hidden")
	log.Info().Str("pr", "acme/widgets#42").Msg("visible")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var event map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &event))
	assert.Equal(t, "visible", event["message"])
	assert.Equal(t, "acme/widgets#42", event["pr"])
	assert.Contains(t, event, "time")

	buf.Reset()
	Setup(&buf, true)
	log.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupFile(t *testing.T) {
	t.Cleanup(Discard)

	path := filepath.Join(t.TempDir(), "logs", "restatus.log")
	closer, err := SetupFile(path, false)
	require.NoError(t, err)

	log.Info().Msg("written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"written"`)
}
