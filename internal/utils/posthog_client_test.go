package utils

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializePosthogClient_EmptyKeyDisables(t *testing.T) {
	var buf bytes.Buffer
	w := InitializePosthogClient("", "https://eu.i.posthog.com", slog.New(slog.NewTextHandler(&buf, nil)))

	assert.False(t, w.IsInitialized())
	assert.Contains(t, buf.String(), "product analytics disabled")
	assert.NotPanics(t, func() {
		w.Enqueue("client:1", "post_api_v1_accounts", map[string]any{"status_code": 201})
		w.Close()
	})
}

func TestPosthogClientWrapper_NilIsSafe(t *testing.T) {
	var w *PosthogClientWrapper
	assert.False(t, w.IsInitialized())
	assert.NotPanics(t, func() {
		w.Enqueue("client:1", "event", nil)
		w.Close()
	})
}
