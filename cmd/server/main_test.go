package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonebook/internal/platform/config"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunStopsCleanlyOnCancel(t *testing.T) {
	t.Setenv("PHONEBOOK_ADDR", "127.0.0.1:0")
	t.Setenv("PHONEBOOK_STORE", config.BackendMemory)
	cfg, err := config.FromEnv()
	require.NoError(t, err)

	out := &lockedBuffer{}
	log := slog.New(slog.NewTextHandler(out, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, log) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "starting phonebook")
	}, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
	assert.Contains(t, out.String(), "phonebook stopped")
}
