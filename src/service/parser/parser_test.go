package parser

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quality-analyzer/src/config"
)

const programJSON = `{"type":"Program","loc":{"start":{"line":1,"column":0},"end":{"line":1,"column":10}},"body":[]}`

func TestCountLinesOfCode(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"blank lines", "\n  \n\t\n", 0},
		{"code", "let a = 1\nlet b = 2\n", 2},
		{"line comments", "// header\nlet a = 1 // trailing\n", 1},
		{"block comment", "/*\n * doc\n */\nfunction f() {}\n", 1},
		{"inline block", "/* a */ let x = 1\nlet y /* b */ = 2\n/* only */\n", 2},
		{"code after block end", "/* start\nend */ run()\n", 1},
		{"block opener inside line comment", "const a = 1; // see /* legacy\nconst b = 2;\nconst c = 3;\n", 3},
		{"line comment after inline block", "let x = /* a */ 1 // then /* b\nlet y = 2\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountLinesOfCode(tt.content))
		})
	}
}

func TestSidecarParser(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(src+DefaultSidecarSuffix, []byte(programJSON), 0o644))

	tree, err := NewSidecarParser("").Parse(context.Background(), src, nil)
	require.NoError(t, err)
	assert.Equal(t, "Program", tree.Type)

	_, err = NewSidecarParser("").Parse(context.Background(), filepath.Join(dir, "missing.js"), nil)
	assert.Error(t, err)
}

func TestHTTPParser_DecodesWrappedTree(t *testing.T) {
	var got ParseRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ast":` + programJSON + `}`))
	}))
	defer srv.Close()

	p := NewHTTPParser(config.ParserConfig{URL: srv.URL, Timeout: time.Second})
	tree, err := p.Parse(context.Background(), "src/app.ts", []byte("let a = 1"))
	require.NoError(t, err)

	assert.Equal(t, "Program", tree.Type)
	assert.Equal(t, "typescript", got.Language)
	assert.Equal(t, "let a = 1", got.Source)
}

func TestHTTPParser_RetriesConfiguredStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(programJSON))
	}))
	defer srv.Close()

	p := NewHTTPParser(config.ParserConfig{
		URL:     srv.URL,
		Timeout: time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:   3,
			BackoffFactor: 2,
			InitialDelay:  time.Millisecond,
			MaxDelay:      5 * time.Millisecond,
			RetryOnStatus: []int{http.StatusServiceUnavailable},
		},
	})

	_, err := p.Parse(context.Background(), "a.js", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPParser_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad source", http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewHTTPParser(config.ParserConfig{
		URL:   srv.URL,
		Retry: config.RetryConfig{MaxAttempts: 3, RetryOnStatus: []int{503}},
	})

	_, err := p.Parse(context.Background(), "a.js", nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPParser_TimeoutMapsToErrTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewHTTPParser(config.ParserConfig{URL: srv.URL}).Parse(ctx, "slow.js", nil)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestNew_SelectsMode(t *testing.T) {
	p, err := New(config.ParserConfig{Mode: "sidecar"})
	require.NoError(t, err)
	assert.IsType(t, &SidecarParser{}, p)

	p, err = New(config.ParserConfig{Mode: "command", Command: "estree-dump"})
	require.NoError(t, err)
	assert.IsType(t, &CommandParser{}, p)

	_, err = New(config.ParserConfig{Mode: "http"})
	assert.Error(t, err)

	_, err = New(config.ParserConfig{Mode: "wasm"})
	assert.Error(t, err)
}
