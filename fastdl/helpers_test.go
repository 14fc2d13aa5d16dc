package fastdl

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type logLine struct {
	Message  string `json:"message"`
	Level    string `json:"level"`
	Dir      string `json:"dir"`
	Path     string `json:"path"`
	Category string `json:"category"`
}

// logCapture collects JSON log lines; workers may log concurrently.
type logCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *logCapture) logger() zerolog.Logger {
	return zerolog.New(c).Level(zerolog.DebugLevel)
}

func (c *logCapture) lines(t *testing.T) []logLine {
	t.Helper()
	c.mu.Lock()
	text := c.buf.String()
	c.mu.Unlock()

	var out []logLine
	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		if raw == "" {
			continue
		}
		var l logLine
		require.NoError(t, json.Unmarshal([]byte(raw), &l))
		out = append(out, l)
	}
	return out
}

func (c *logCapture) count(t *testing.T, msg string) int {
	t.Helper()
	n := 0
	for _, l := range c.lines(t) {
		if l.Message == msg {
			n++
		}
	}
	return n
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// listFiles returns every regular file under root, relative and slash separated.
func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func testConfig(t *testing.T, outDir string, logs *logCapture) Config {
	t.Helper()
	cfg := DefaultConfig(outDir)
	cfg.Logger = logs.logger()
	require.NoError(t, cfg.Validate())
	return cfg
}
