package utils

import (
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	Logger = zap.NewNop()
	Sugar = Logger.Sugar()
	os.Exit(m.Run())
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestServeReturnsOnListenerFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	srv := NewServer(ln.Addr().String(), okHandler())

	done := make(chan error, 1)
	go func() { done <- srv.serve(ln) }()

	select {
	case err := <-done:
		require.Error(t, err)
		require.NotErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after the accept loop failed")
	}
}

func TestServeShutsDownOnSigterm(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(ln.Addr().String(), okHandler())

	done := make(chan error, 1)
	go func() { done <- srv.serve(ln) }()

	srv.signalChan <- syscall.SIGTERM

	select {
	case err := <-done:
		require.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after SIGTERM")
	}
}
