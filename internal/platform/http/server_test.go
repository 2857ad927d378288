package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"ratefeed/internal/config"

	"github.com/stretchr/testify/require"
)

func TestServe_HandlesRequestsAndStopsOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, config.HTTPServer{ShutdownTimeoutSec: 1}, listener, handler) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + listener.Addr().String() + "/ping")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, "pong", string(body))

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestStart_InvalidPort(t *testing.T) {
	err := Start(context.Background(), config.HTTPServer{Port: "not-a-port"}, http.NotFoundHandler())
	require.Error(t, err)
}

func TestSecondsOr(t *testing.T) {
	require.Equal(t, 7*time.Second, secondsOr(0, 7*time.Second))
	require.Equal(t, 3*time.Second, secondsOr(3, 7*time.Second))
}
