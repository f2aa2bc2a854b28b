// Change notification for a namespace.
//
// Watch follows a namespace directory tree with fsnotify. Watches are
// not recursive on every platform, so each directory is added
// individually and directories created later are added as their create
// events arrive. Events for hidden names are dropped.
package libstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Op describes what happened to an entry.
type Op string

// Event operations.
const (
	OpCreate Op = "create"
	OpWrite  Op = "write"
	OpRemove Op = "remove"
	OpRename Op = "rename"
)

// Event is a change to a file or directory inside a namespace.
type Event struct {
	Type string `json:"type"`
	Path string `json:"path"`
	Op   Op     `json:"op"`
}

// Watch calls fn for every change in namespace typ until ctx is done. The
// namespace directory is created if it does not exist. fn runs on the
// watching goroutine; Watch returns after ctx is cancelled or the watcher
// fails.
func (s *Store) Watch(ctx context.Context, typ string, fn func(Event)) error {
	ns, err := s.namespace(typ)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(ns, s.config.DirMode); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	if err := addTree(w, ns); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	s.log.Debug("watching namespace", "type", typ)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			rel := relTo(ns, ev.Name)
			if hidden(rel) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					if err := addTree(w, ev.Name); err != nil {
						s.log.Debug("watch add failed", "path", rel, "err", err)
					}
				}
			}
			if op, ok := eventOp(ev.Op); ok {
				fn(Event{Type: typ, Path: rel, Op: op})
			}
		}
	}
}

// addTree watches dir and every non-hidden directory below it.
func addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}

func eventOp(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	default:
		return "", false
	}
}

// hidden reports whether any segment of a slash path starts with ".".
func hidden(rel string) bool {
	for seg := range strings.SplitSeq(rel, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." {
			return true
		}
	}
	return false
}
