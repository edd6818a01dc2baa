package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/salespulse/config"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	// Shutdown quickly with short timeout and no-op cleanup
	_, cancel := context.WithCancel(context.Background())
	go func() {
		// trigger gracefulShutdown select by simulating signal via closing after a brief delay
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	// We cannot send OS signals easily here; instead, directly call Shutdown to simulate graceful flow.
	// Verify it doesn't panic and completes.
	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	// Use a server that responds immediately
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		ctx := context.Background()
		gracefulShutdown(ctx, srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	// Send SIGTERM to current process
	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
		// success
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

func TestRootCmd_Tree(t *testing.T) {
	root := newRootCmd()
	want := map[string]bool{"api": false, "migrate": false, "seed": false, "report": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing subcommand %q", name)
		}
	}

	rep, _, err := root.Find([]string{"report", "products"})
	if err != nil || rep.Name() != "products" {
		t.Fatalf("report products not found: %v", err)
	}
	if rep.Flags().Lookup("parallel") == nil {
		t.Fatalf("report products lacks --parallel")
	}
}

func TestReportCmd_RejectsBadInputBeforeConnecting(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad ids", args: []string{"report", "products", "--ids", "1,x"}, want: "invalid product id"},
		{name: "bad from", args: []string{"report", "customers", "--from", "nope", "--to", "2025-01-31"}, want: "--from"},
		{name: "missing flag", args: []string{"report", "sales", "--ids", "1"}, want: "required flag"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := newRootCmd()
			root.SetArgs(tc.args)
			err := root.ExecuteContext(context.Background())
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestApplySeedFlags(t *testing.T) {
	cmd := newSeedCmd()
	if err := cmd.ParseFlags([]string{"--orders", "7", "--seed", "1"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	sc := config.SeedConfig{Orders: 7, RandomSeed: 1}
	applySeedFlags(cmd, &sc, config.SeedConfig{Schema: "public", Customers: 100, Products: 100, Orders: 50, OrderItems: 100, RandomSeed: 42})

	want := config.SeedConfig{Schema: "public", Customers: 100, Products: 100, Orders: 7, OrderItems: 100, RandomSeed: 1}
	if sc != want {
		t.Fatalf("got %+v, want %+v", sc, want)
	}
}
