package download

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ravden/gphotos-downloader/internal/cache"
	"github.com/ravden/gphotos-downloader/internal/config"
	"github.com/ravden/gphotos-downloader/internal/gphotos"
	httpx "github.com/ravden/gphotos-downloader/internal/http"
	"github.com/ravden/gphotos-downloader/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update from the pipeline.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// ScopeSummary aggregates the results of one scope after its worker
// pool has fully drained.
type ScopeSummary struct {
	Scope      model.Scope
	Items      int
	Downloaded int
	Skipped    int
	Failed     int
	Bytes      int64
	FromCache  bool
}

// String renders the per-scope summary line.
func (s ScopeSummary) String() string {
	return fmt.Sprintf("%s: %d items — %d downloaded, %d skipped, %d failed, %s",
		s.Scope, s.Items, s.Downloaded, s.Skipped, s.Failed, FormatBytes(s.Bytes))
}

// FormatBytes renders a byte count for humans.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Enumerator is the remote listing capability the manager depends on.
// *gphotos.Client satisfies it; tests substitute fakes.
type Enumerator interface {
	Search(ctx context.Context, scope model.Scope) ([]model.MediaItem, error)
}

// Manager coordinates the per-scope pipeline: resolve the item listing
// (cache or remote), fan the items out over a bounded worker pool, and
// aggregate results. Scopes are processed strictly sequentially; the
// pool for one scope drains completely before the next scope begins.
type Manager struct {
	settings *config.Settings
	api      Enumerator
	store    *cache.Store
	worker   *Worker

	onProgress func(ProgressEvent)

	// OnScopeStart and OnResult are optional hooks for frontends that
	// want structured progress (e.g. a per-scope progress bar). Both
	// are invoked from the collecting flow, never from workers.
	OnScopeStart func(scope model.Scope, total int, fromCache bool)
	OnResult     func(Result)

	// Counters polled by the TUI. Bytes are added from worker chunk
	// callbacks atomically; item counts only from the collecting flow.
	totalItems    int32
	doneItems     int32
	receivedBytes int64
}

// NewManager creates a Manager.
func NewManager(settings *config.Settings, api Enumerator, onProgress func(ProgressEvent)) *Manager {
	m := &Manager{
		settings:   settings,
		api:        api,
		store:      cache.NewStore(settings.CacheDir),
		onProgress: onProgress,
	}
	m.worker = NewWorker(httpx.NewClient(), settings.OutputPath, func(delta int64) {
		atomic.AddInt64(&m.receivedBytes, delta)
	})
	return m
}

// Run processes every scope in order. An enumeration failure aborts
// only that scope: it is surfaced as an error-level event and the run
// continues with the next scope. Run stops early only when ctx is
// cancelled, returning the summaries of the scopes that completed.
func (m *Manager) Run(ctx context.Context, scopes []model.Scope) ([]ScopeSummary, error) {
	var summaries []ScopeSummary

	for _, scope := range scopes {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}

		summary, err := m.runScope(ctx, scope)
		if err != nil {
			if errors.Is(err, gphotos.ErrRemoteUnavailable) {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %v", scope, err), Level: LevelError})
				continue
			}
			return summaries, err
		}

		summaries = append(summaries, summary)
		m.progress(ProgressEvent{Message: summary.String(), Level: LevelSuccess})
	}

	return summaries, nil
}

// GetProgress returns the counters polled by the TUI.
func (m *Manager) GetProgress() (receivedBytes int64, itemsDone, itemsTotal int32) {
	return atomic.LoadInt64(&m.receivedBytes),
		atomic.LoadInt32(&m.doneItems),
		atomic.LoadInt32(&m.totalItems)
}

// runScope drains one scope: listing, pool fan-out, aggregation.
func (m *Manager) runScope(ctx context.Context, scope model.Scope) (ScopeSummary, error) {
	items, fromCache, err := m.resolveItems(ctx, scope)
	if err != nil {
		return ScopeSummary{Scope: scope}, err
	}

	atomic.AddInt32(&m.totalItems, int32(len(items)))
	if m.OnScopeStart != nil {
		m.OnScopeStart(scope, len(items), fromCache)
	}

	results := make(chan Result)

	// Fixed-size pool: SetLimit blocks the spawner until a slot frees.
	// Workers never return errors; failures are isolated per item.
	g := new(errgroup.Group)
	g.SetLimit(m.settings.ConcurrentDownloads)
	go func() {
		for _, item := range items {
			item := item // capture
			g.Go(func() error {
				results <- m.worker.Do(ctx, item)
				return nil
			})
		}
		g.Wait()
		close(results)
	}()

	// Single collecting flow: all counters are summed here, in
	// completion order, so workers never touch shared state.
	summary := ScopeSummary{Scope: scope, Items: len(items), FromCache: fromCache}
	for res := range results {
		switch res.Outcome {
		case Downloaded:
			summary.Downloaded++
			summary.Bytes += res.Bytes
			m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded %s (%s)", res.Item.Filename, FormatBytes(res.Bytes)), Level: LevelVerbose})
		case Skipped:
			summary.Skipped++
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", res.Path), Level: LevelVerbose})
		case Failed:
			summary.Failed++
			m.progress(ProgressEvent{Message: fmt.Sprintf("Failed %s: %v", res.Item.Filename, res.Err), Level: LevelWarning})
		}

		atomic.AddInt32(&m.doneItems, 1)
		if m.OnResult != nil {
			m.OnResult(res)
		}
	}

	return summary, nil
}

// resolveItems returns the scope's item listing: from cache when
// present and allowed, otherwise from the remote service (and the
// fresh listing is written back to the cache).
func (m *Manager) resolveItems(ctx context.Context, scope model.Scope) ([]model.MediaItem, bool, error) {
	if !m.settings.DisableCache {
		items, err := m.store.Load(scope)
		if err == nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("%s: loaded %d items from cache", scope, len(items)), Level: LevelInfo})
			return items, true, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			return nil, false, err
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("%s: fetching items from API...", scope), Level: LevelInfo})
	items, err := m.api.Search(ctx, scope)
	if err != nil {
		return nil, false, err
	}

	if err := m.store.Save(scope, items); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s: could not write cache: %v", scope, err), Level: LevelWarning})
	}

	return items, false, nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
