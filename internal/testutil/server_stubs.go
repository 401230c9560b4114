package testutil

import (
	"context"
	"net/http"
	"sync/atomic"
)

// StubHTTPServer stands in for the server's HTTP listener.
// ListenAndServe returns ListenErr immediately. When Unblock is set, Shutdown waits for it or ctx.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Unblock     chan struct{}

	listenCalls   atomic.Int32
	shutdownCalls atomic.Int32
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.listenCalls.Add(1)
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls.Add(1)
	if s.Unblock != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Unblock:
		}
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}

// ListenCalls reports how many times ListenAndServe ran.
func (s *StubHTTPServer) ListenCalls() int { return int(s.listenCalls.Load()) }

// ShutdownCalls reports how many times Shutdown ran.
func (s *StubHTTPServer) ShutdownCalls() int { return int(s.shutdownCalls.Load()) }
