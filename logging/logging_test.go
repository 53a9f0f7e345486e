package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"pngscan/oops"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPrettyWriter(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(NewPrettyZerologWriter(&buf))
		logger.Info().Msg("decoded image")

		out := buf.String()
		assert.Contains(t, out, "INFO")
		assert.Contains(t, out, "decoded image")
		assert.NotContains(t, out, "----")
		assert.Equal(t, 1, strings.Count(out, "\n"))
	})
	t.Run("fields are sorted", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(NewPrettyZerologWriter(&buf))
		logger.Warn().Uint32("width", 4).Uint32("height", 2).Msg("header")

		out := buf.String()
		assert.Contains(t, out, "Fields:")
		assert.Less(t, strings.Index(out, "height"), strings.Index(out, "width"))
	})
	t.Run("error with stack", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(NewPrettyZerologWriter(&buf))
		err := oops.New(errors.New("short read"), "reading chunk length")
		logger.Error().Stack().Err(err).Msg("decode failed")

		out := buf.String()
		assert.Contains(t, out, "ERROR:")
		assert.Contains(t, out, "reading chunk length: short read")
		assert.Contains(t, out, "Stack trace:")
		assert.Contains(t, out, "TestPrettyWriter")
	})
	t.Run("non-json passthrough", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewPrettyZerologWriter(&buf)
		n, err := w.Write([]byte("plain text\n"))
		assert.NoError(t, err)
		assert.Equal(t, 11, n)
		assert.Equal(t, "plain text\n", buf.String())
	})
}

func TestLogPanicValue(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(NewPrettyZerologWriter(&buf))
	LogPanicValue(&logger, "index out of range", "recovered from panic")

	out := buf.String()
	assert.Contains(t, out, "recovered from panic")
	assert.Contains(t, out, "index out of range")
	assert.Contains(t, out, "Stack trace:")
}

func TestPrettyWriterFencesMultilineEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(NewPrettyZerologWriter(&buf))
	logger.Info().Str("file", "a.png").Msg("decoded image")
	logger.Info().Msg("wrote image")
	logger.Info().Msg("done")

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "----"))
	assert.Contains(t, out, `file: "a.png"`)
}
