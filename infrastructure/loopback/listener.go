// Package loopback runs the temporary local HTTP server that captures the
// browser's OAuth redirect. Exactly one request to /callback terminates the
// listener; every other path gets a 404 and the listener keeps waiting.
package loopback

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"taskdash/domain/model"
)

const callbackPath = "/callback"

const successPage = `<!DOCTYPE html>
<html><head><title>Authentication complete</title></head>
<body><h2>Authentication complete</h2>
<p>You can close this window and return to the dashboard.</p></body></html>`

const failurePage = `<!DOCTYPE html>
<html><head><title>Authentication failed</title></head>
<body><h2>Authentication failed</h2>
<p>%s</p><p>You can close this window.</p></body></html>`

type result struct {
	code string
	err  error
}

// Listener is a one-shot redirect capture bound to a fixed local port.
type Listener struct {
	srv      *http.Server
	ln       net.Listener
	expected string
	resultCh chan result
	once     sync.Once
}

// Start binds the loopback port and begins serving. It fails immediately if
// the port is already bound.
func Start(port int, expectedState string) (*Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("bind loopback port %d: %w", port, err)
	}

	l := &Listener{
		ln:       ln,
		expected: expectedState,
		resultCh: make(chan result, 1),
	}
	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, l.handleCallback)
	l.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		_ = l.srv.Serve(ln)
	}()
	return l, nil
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if e := q.Get("error"); e != "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, failurePage, "The provider reported: "+e)
		l.resolve(result{err: fmt.Errorf("authorization denied: %s", e)})
		return
	}

	code := q.Get("code")
	state := q.Get("state")
	if code == "" || state != l.expected {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, failurePage, "The redirect did not match the pending authentication attempt.")
		l.resolve(result{err: model.ErrRedirectMismatch})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, successPage)
	l.resolve(result{code: code})
}

func (l *Listener) resolve(r result) {
	l.once.Do(func() {
		l.resultCh <- r
		// Tear down asynchronously so the in-flight response still flushes.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = l.srv.Shutdown(ctx)
		}()
	})
}

// Wait blocks until the single terminal redirect arrives or ctx is done.
// The listener is closed and the port released before Wait returns.
func (l *Listener) Wait(ctx context.Context) (string, error) {
	defer l.Close()
	select {
	case r := <-l.resultCh:
		return r.code, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close releases the bound port. Safe to call more than once.
func (l *Listener) Close() error {
	return l.srv.Close()
}

// RedirectURI returns the redirect URI registered with the provider for the
// given loopback port.
func RedirectURI(port int) string {
	return fmt.Sprintf("http://localhost:%d%s", port, callbackPath)
}
