package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-api/pkg/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &ev))
		out = append(out, ev)
	}
	return out
}

func TestLogger_JSONConServicioYRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "gestion-api", Out: &buf})

	log.Info().Msg("arranque")
	log.Request("req-42").Warn().Msg("http request")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "gestion-api", lines[0]["service"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.NotContains(t, lines[0], "request_id")
	assert.Equal(t, "req-42", lines[1]["request_id"])
	assert.Equal(t, "gestion-api", lines[1]["service"])
}

func TestLogger_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: " WARN ", Out: &buf})

	log.Info().Msg("descartado")
	log.Debug().Msg("descartado")
	log.Error().Msg("visible")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "visible", lines[0]["message"])
	assert.NotContains(t, lines[0], "service")
}

func TestLogger_NivelDesconocidoEsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "verbose", Out: &buf})

	log.Debug().Msg("descartado")
	log.Info().Msg("visible")

	assert.Len(t, decodeLines(t, &buf), 1)
}

func TestLogger_NopNoEscribe(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Nop().Request("x").Error().Msg("nada")
	})
}
