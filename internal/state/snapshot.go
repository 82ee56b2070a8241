// Package state holds the resolved descriptors as process-wide immutable state.
//
// A Snapshot is never modified after it is published. Reloads build a complete
// new Snapshot and swap it in atomically, so readers see either the old or the
// new configuration, never a mix.
package state

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitedesc/internal/fingerprint"
	"git.home.luguber.info/inful/sitedesc/internal/foundation/errors"
	"git.home.luguber.info/inful/sitedesc/internal/logfields"
	"git.home.luguber.info/inful/sitedesc/internal/metrics"
	"git.home.luguber.info/inful/sitedesc/internal/page"
	"git.home.luguber.info/inful/sitedesc/internal/site"
)

// Snapshot is one wholesale load of the site's descriptors.
type Snapshot struct {
	LoadID      string           `json:"loadId" yaml:"loadId"`
	LoadedAt    time.Time        `json:"loadedAt" yaml:"loadedAt"`
	Fingerprint string           `json:"fingerprint" yaml:"fingerprint"`
	Site        site.Descriptor  `json:"site" yaml:"site"`
	Home        *page.Descriptor `json:"home,omitempty" yaml:"home,omitempty"`
}

// Sources names the files a Snapshot is resolved from.
type Sources struct {
	SitePath string
	// HomePath is optional; when empty the snapshot carries no home page.
	HomePath string
	Strict   bool
}

// Loader resolves a fresh Snapshot.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// FileLoader resolves snapshots from files on disk.
type FileLoader struct {
	sources  Sources
	recorder metrics.Recorder
	now      func() time.Time
}

// NewFileLoader creates a loader for sources.
func NewFileLoader(sources Sources) *FileLoader {
	return &FileLoader{sources: sources, recorder: metrics.NoopRecorder{}, now: time.Now}
}

// WithRecorder sets the metrics recorder.
func (l *FileLoader) WithRecorder(r metrics.Recorder) *FileLoader {
	if r != nil {
		l.recorder = r
	}
	return l
}

// Sources returns the files the loader reads.
func (l *FileLoader) Sources() Sources { return l.sources }

// Load resolves the site configuration and, if configured, the home page.
func (l *FileLoader) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "load canceled").Build()
	}

	snap := &Snapshot{LoadID: uuid.NewString(), LoadedAt: l.now()}
	logger := slog.Default().With(logfields.LoadID(snap.LoadID))

	var err error
	snap.Site, err = observe(l.recorder, metrics.KindSite, func() (site.Descriptor, error) {
		return site.Load(l.sources.SitePath, site.Options{Strict: l.sources.Strict})
	})
	if err != nil {
		return nil, err
	}
	l.recorder.SetUnknownFields(metrics.KindSite, len(snap.Site.Unknown))
	if len(snap.Site.Unknown) > 0 {
		logger.Warn("Ignoring unknown site configuration fields",
			logfields.File(l.sources.SitePath), logfields.Unknown(snap.Site.Unknown))
	}

	if l.sources.HomePath != "" {
		home, err := observe(l.recorder, metrics.KindPage, func() (page.Descriptor, error) {
			return page.ResolveFile(l.sources.HomePath, page.Options{Strict: l.sources.Strict})
		})
		if err != nil {
			return nil, err
		}
		l.recorder.SetUnknownFields(metrics.KindPage, len(home.Unknown))
		if len(home.Unknown) > 0 {
			logger.Warn("Ignoring unknown front matter fields",
				logfields.File(l.sources.HomePath), logfields.Unknown(home.Unknown))
		}
		if len(home.Hero.Actions) == 0 {
			logger.Debug("Hero has no actions; at least one is recommended", logfields.File(l.sources.HomePath))
		}
		snap.Home = &home
	}

	snap.Fingerprint, err = fingerprint.Value(struct {
		Site site.Descriptor  `yaml:"site"`
		Home *page.Descriptor `yaml:"home"`
	}{snap.Site, snap.Home})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "cannot fingerprint snapshot").Build()
	}

	return snap, nil
}

func observe[T any](rec metrics.Recorder, kind string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	rec.ObserveResolveDuration(kind, time.Since(start))
	if err != nil {
		rec.IncResolveResult(kind, metrics.ResultFailed)
		return v, err
	}
	rec.IncResolveResult(kind, metrics.ResultSuccess)
	return v, nil
}
