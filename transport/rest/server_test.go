package rest

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStart(t *testing.T) {
	// Given: a server on a random port
	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	errCh := make(chan error, 1)
	go func() {
		errCh <- Start(ctx, logger, "0", &mockReportRepo{})
	}()

	// When: the context is cancelled
	time.Sleep(50 * time.Millisecond)
	cancel()

	// Then: the server shuts down cleanly
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
