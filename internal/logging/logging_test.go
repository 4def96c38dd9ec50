package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestDefaultWriterIsStderr(t *testing.T) {
	assert.Equal(t, os.Stderr, defaultWriter)
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	pterm.DisableStyling()
	t.Cleanup(func() {
		pterm.EnableStyling()
		pterm.DefaultLogger.Level = pterm.LogLevelInfo
	})

	pterm.DefaultLogger.Level = pterm.LogLevelInfo
	Debug("hidden %d", 1)
	assert.NotContains(t, buf.String(), "hidden 1")

	Info("framed %d payloads", 3)
	assert.Contains(t, buf.String(), "framed 3 payloads")

	EnableDebug()
	Debug("frame %s", "7e")
	assert.Contains(t, buf.String(), "frame 7e")

	Warn("slow link")
	Error("write failed")
	assert.Contains(t, buf.String(), "slow link")
	assert.Contains(t, buf.String(), "write failed")
}
