package libstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// waitFor reads events until one matches or the deadline passes.
func waitFor(t *testing.T, events <-chan Event, want Event) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %+v", want)
		}
	}
}

func startWatch(t *testing.T, s *Store, typ string) <-chan Event {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Event, 64)
	done := make(chan error, 1)
	ready := make(chan struct{})
	go func() {
		close(ready)
		done <- s.Watch(ctx, typ, func(ev Event) { events <- ev })
	}()
	<-ready
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Watch: %v", err)
		}
	})
	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)
	return events
}

func TestWatchCreateAndWrite(t *testing.T) {
	s := openTestStore(t)
	events := startWatch(t, s, "functions")

	s.SaveEntry("functions", "doc", nil, "body")
	waitFor(t, events, Event{Type: "functions", Path: "doc", Op: OpCreate})
}

func TestWatchNewDirectory(t *testing.T) {
	s := openTestStore(t)
	events := startWatch(t, s, "functions")

	os.MkdirAll(filepath.Join(s.Root(), "functions", "sub"), 0755)
	waitFor(t, events, Event{Type: "functions", Path: "sub", Op: OpCreate})
	time.Sleep(100 * time.Millisecond)

	os.WriteFile(filepath.Join(s.Root(), "functions", "sub", "doc"), []byte("x"), 0644)
	waitFor(t, events, Event{Type: "functions", Path: "sub/doc", Op: OpCreate})
}

func TestWatchRemove(t *testing.T) {
	s := openTestStore(t)
	s.SaveEntry("functions", "doc", nil, "body")
	events := startWatch(t, s, "functions")

	s.DeleteEntry("functions", "doc")
	waitFor(t, events, Event{Type: "functions", Path: "doc", Op: OpRemove})
}

func TestWatchIgnoresHidden(t *testing.T) {
	s := openTestStore(t)
	events := startWatch(t, s, "functions")

	os.WriteFile(filepath.Join(s.Root(), "functions", ".swp"), []byte("x"), 0644)
	s.SaveEntry("functions", "visible", nil, "x")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Path == ".swp" {
				t.Fatalf("hidden event delivered: %+v", ev)
			}
			if ev.Path == "visible" {
				return
			}
		case <-deadline:
			t.Fatal("timed out")
		}
	}
}

func TestWatchInvalidType(t *testing.T) {
	s := openTestStore(t)
	err := s.Watch(context.Background(), "..", func(Event) {})
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Watch: got %v, want ErrInvalidPath", err)
	}
}

func TestHidden(t *testing.T) {
	tests := []struct {
		rel  string
		want bool
	}{
		{"doc", false},
		{"a/b", false},
		{".", false},
		{".git", true},
		{"a/.tmp", true},
		{".cache/x", true},
	}
	for _, tt := range tests {
		if got := hidden(tt.rel); got != tt.want {
			t.Errorf("hidden(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}
