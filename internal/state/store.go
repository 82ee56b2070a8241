package state

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"git.home.luguber.info/inful/sitedesc/internal/foundation/errors"
	"git.home.luguber.info/inful/sitedesc/internal/logfields"
	"git.home.luguber.info/inful/sitedesc/internal/metrics"
)

// Store publishes the current Snapshot. Reads are lock-free.
type Store struct {
	loader   Loader
	recorder metrics.Recorder
	current  atomic.Pointer[Snapshot]

	// reloadMu serialises loads; readers never take it.
	reloadMu sync.Mutex
}

// NewStore creates an empty store backed by loader.
func NewStore(loader Loader) *Store {
	return &Store{loader: loader, recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder.
func (s *Store) WithRecorder(r metrics.Recorder) *Store {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Current returns the published snapshot, or nil before the first load.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Load performs the startup load. Any error is fatal to the caller.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.current.Store(snap)
	slog.Info("Descriptors loaded", logfields.LoadID(snap.LoadID), logfields.Fingerprint(snap.Fingerprint))
	return snap, nil
}

// Reload resolves a new snapshot and publishes it when its content differs
// from the current one. On failure the current snapshot stays in place.
func (s *Store) Reload(ctx context.Context) (changed bool, err error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	prev := s.current.Load()
	if prev == nil {
		return false, errors.RuntimeError("reload before initial load").Build()
	}

	next, err := s.loader.Load(ctx)
	if err != nil {
		s.recorder.IncReload(metrics.ResultFailed)
		slog.Error("Reload failed; keeping previous descriptors",
			logfields.LoadID(prev.LoadID), logfields.Error(err))
		return false, err
	}

	if next.Fingerprint == prev.Fingerprint {
		s.recorder.IncReload(metrics.ResultUnchanged)
		slog.Debug("Reload produced identical descriptors", logfields.Fingerprint(next.Fingerprint))
		return false, nil
	}

	s.current.Store(next)
	s.recorder.IncReload(metrics.ResultSuccess)
	slog.Info("Descriptors reloaded",
		logfields.LoadID(next.LoadID),
		slog.String("previous_fingerprint", prev.Fingerprint),
		logfields.Fingerprint(next.Fingerprint))
	return true, nil
}
