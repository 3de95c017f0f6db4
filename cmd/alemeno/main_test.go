package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/alemeno/ai/core/llm"
	"github.com/hrygo/alemeno/ai/summary"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "json", "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, slog.LevelWarn.String(), entry["level"])

	_, err = newLogger(&buf, "xml", "info")
	assert.Error(t, err)
	_, err = newLogger(&buf, "text", "loud")
	assert.Error(t, err)
}

func newChatServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.EqualValues(t, 20, req["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunCheckKey(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		var out bytes.Buffer
		code := runCheckKey(context.Background(), &out, llm.Config{Model: "gpt-4o-mini"}, "")
		assert.Equal(t, exitKeyMissing, code)
		assert.Contains(t, out.String(), "No API key provided")
	})

	t.Run("success", func(t *testing.T) {
		srv := newChatServer(t, http.StatusOK, `{"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello there!"}}]}`)
		var out bytes.Buffer
		code := runCheckKey(context.Background(), &out, llm.Config{Provider: "openai", Model: "gpt-4o-mini", BaseURL: srv.URL}, "sk-good")
		assert.Equal(t, exitKeyOK, code)
		assert.Equal(t, "Success. Response:\nHello there!\n", out.String())
	})

	t.Run("rejected key", func(t *testing.T) {
		srv := newChatServer(t, http.StatusUnauthorized, `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`)
		var out bytes.Buffer
		code := runCheckKey(context.Background(), &out, llm.Config{Provider: "openai", Model: "gpt-4o-mini", BaseURL: srv.URL}, "sk-bad")
		assert.Equal(t, exitKeyFailed, code)
		assert.Contains(t, out.String(), "API test failed")
	})
}

func TestReadSummarizeInput(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(txt, []byte("From a file."), 0o600))
	md := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(md, []byte("# nope"), 0o600))
	binary := filepath.Join(dir, "blob.txt")
	require.NoError(t, os.WriteFile(binary, []byte{0xff, 0xfe, 0x00}, 0o600))

	text, err := readSummarizeInput(txt, []string{"ignored"}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "From a file.", text)

	text, err = readSummarizeInput("", []string{"Two", "words."}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "Two words.", text)

	text, err = readSummarizeInput("", nil, strings.NewReader("From stdin.\n"))
	require.NoError(t, err)
	assert.Equal(t, "From stdin.\n", text)

	_, err = readSummarizeInput(md, nil, nil)
	assert.Error(t, err)
	_, err = readSummarizeInput(binary, nil, nil)
	assert.Error(t, err)
	_, err = readSummarizeInput(filepath.Join(dir, "missing.txt"), nil, nil)
	assert.Error(t, err)
}

func TestRunSummarize(t *testing.T) {
	summarizer := summary.NewSummarizer(summary.Options{})

	var out bytes.Buffer
	require.NoError(t, runSummarize(context.Background(), &out, summarizer, "Sentence one. Sentence two. Sentence three.", summary.Ambient()))
	assert.Equal(t, "Sentence one. Sentence two.\n", out.String())

	assert.EqualError(t, runSummarize(context.Background(), &out, summarizer, "", summary.NoRemote()), "text required")

	// Whitespace is text, the same as on the HTTP route.
	out.Reset()
	require.NoError(t, runSummarize(context.Background(), &out, summarizer, "  \t", summary.NoRemote()))
	assert.Equal(t, "  \t\n", out.String())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newVersionCommand()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)
	assert.Contains(t, out.String(), "Version=")
}
