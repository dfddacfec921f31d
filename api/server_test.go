package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestServerRunClosesResourcesOnCancel(t *testing.T) {
	closed := 0
	ok := closerFunc(func() error { closed++; return nil })
	failing := closerFunc(func() error { closed++; return errors.New("redis: already closed") })

	srv := NewServer("127.0.0.1:0", http.NotFoundHandler(), nil, ok, nil, failing)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already closed")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, 2, closed)
}

func TestServerRunReportsListenError(t *testing.T) {
	srv := NewServer("bad-address", http.NotFoundHandler(), nil)
	err := srv.Run(context.Background())
	assert.Error(t, err)
}
