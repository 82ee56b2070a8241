package state

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitedesc/internal/foundation/errors"
	"git.home.luguber.info/inful/sitedesc/internal/metrics"
)

type scriptedLoader struct {
	mu    sync.Mutex
	snaps []*Snapshot
	errs  []error
	calls int
}

func (l *scriptedLoader) Load(context.Context) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.calls
	l.calls++
	return l.snaps[i], l.errs[i]
}

type countingRecorder struct {
	metrics.NoopRecorder
	reloads map[metrics.ResultLabel]int
}

func (r *countingRecorder) IncReload(result metrics.ResultLabel) {
	if r.reloads == nil {
		r.reloads = map[metrics.ResultLabel]int{}
	}
	r.reloads[result]++
}

func TestStore_ReloadSemantics(t *testing.T) {
	first := &Snapshot{LoadID: "a", Fingerprint: "fp1"}
	same := &Snapshot{LoadID: "b", Fingerprint: "fp1"}
	changed := &Snapshot{LoadID: "c", Fingerprint: "fp2"}
	loadErr := errors.ConfigError("title is required").WithField("title").Build()

	loader := &scriptedLoader{
		snaps: []*Snapshot{first, same, nil, changed},
		errs:  []error{nil, nil, loadErr, nil},
	}
	rec := &countingRecorder{}
	store := NewStore(loader).WithRecorder(rec)
	ctx := context.Background()

	require.Nil(t, store.Current())

	_, err := store.Reload(ctx)
	require.Error(t, err, "reload before load")

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	require.Same(t, first, snap)
	require.Same(t, first, store.Current())

	changedFlag, err := store.Reload(ctx)
	require.NoError(t, err)
	require.False(t, changedFlag)
	require.Same(t, first, store.Current(), "identical content keeps the published snapshot")

	changedFlag, err = store.Reload(ctx)
	require.Error(t, err)
	require.True(t, errors.IsConfigError(err))
	require.False(t, changedFlag)
	require.Same(t, first, store.Current(), "failed reload keeps the previous snapshot")

	changedFlag, err = store.Reload(ctx)
	require.NoError(t, err)
	require.True(t, changedFlag)
	require.Same(t, changed, store.Current())

	require.Equal(t, 1, rec.reloads[metrics.ResultUnchanged])
	require.Equal(t, 1, rec.reloads[metrics.ResultFailed])
	require.Equal(t, 1, rec.reloads[metrics.ResultSuccess])
}

func TestStore_LoadFailure(t *testing.T) {
	loader := &scriptedLoader{snaps: []*Snapshot{nil}, errs: []error{stderrors.New("boom")}}
	store := NewStore(loader)

	_, err := store.Load(context.Background())
	require.Error(t, err)
	require.Nil(t, store.Current())
}

func writeSources(t *testing.T, dir, siteYAML, home string) Sources {
	t.Helper()
	sitePath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(sitePath, []byte(siteYAML), 0o600))
	src := Sources{SitePath: sitePath}
	if home != "" {
		src.HomePath = filepath.Join(dir, "index.md")
		require.NoError(t, os.WriteFile(src.HomePath, []byte(home), 0o600))
	}
	return src
}

const homeDoc = `---
layout: home
hero:
  name: Docs
  text: Everything in one place
  actions:
    - text: Get started
      link: /guide/
features:
  - title: Fast
    details: Loads quickly
---

Body text.
`

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	src := writeSources(t, dir, "title: Docs\nnav:\n  - text: Home\n    link: /\nextra: 1\n", homeDoc)

	snap, err := NewFileLoader(src).Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, snap.LoadID)
	require.NotEmpty(t, snap.Fingerprint)
	require.Equal(t, "Docs", snap.Site.Title)
	require.Equal(t, []string{"extra"}, snap.Site.Unknown)
	require.NotNil(t, snap.Home)
	require.Equal(t, "Docs", snap.Home.Hero.Name)
	require.Len(t, snap.Home.Features, 1)
}

func TestFileLoader_FingerprintTracksContent(t *testing.T) {
	dir := t.TempDir()
	src := writeSources(t, dir, "title: Docs\n", "")
	loader := NewFileLoader(src)

	a, err := loader.Load(context.Background())
	require.NoError(t, err)
	b, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, a.LoadID, b.LoadID)
	require.Equal(t, a.Fingerprint, b.Fingerprint)
	require.Nil(t, a.Home)

	require.NoError(t, os.WriteFile(src.SitePath, []byte("title: Other\n"), 0o600))
	c, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, a.Fingerprint, c.Fingerprint)
}

func TestFileLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileLoader(writeSources(t, dir, "description: no title\n", "")).Load(context.Background())
	require.True(t, errors.IsConfigError(err))

	_, err = NewFileLoader(writeSources(t, dir, "title: Docs\n", "---\nhero:\n  text: missing name\n---\n")).Load(context.Background())
	require.True(t, errors.IsParseError(err))

	_, err = NewFileLoader(writeSources(t, dir, "title: Docs\nextra: 1\n", "")).
		Load(context.Background())
	require.NoError(t, err)

	strict := writeSources(t, dir, "title: Docs\nextra: 1\n", "")
	strict.Strict = true
	_, err = NewFileLoader(strict).Load(context.Background())
	require.True(t, errors.IsConfigError(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFileLoader(writeSources(t, dir, "title: Docs\n", "")).Load(ctx)
	require.Error(t, err)
}
