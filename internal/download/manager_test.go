package download

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ravden/gphotos-downloader/internal/config"
	"github.com/ravden/gphotos-downloader/internal/gphotos"
	"github.com/ravden/gphotos-downloader/internal/model"
)

// fakeEnumerator serves canned listings and records how often it is hit.
type fakeEnumerator struct {
	items []model.MediaItem
	err   error
	calls int
}

func (f *fakeEnumerator) Search(ctx context.Context, scope model.Scope) ([]model.MediaItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	s := config.DefaultSettings()
	s.OutputPath = t.TempDir()
	s.CacheDir = t.TempDir()
	s.ConcurrentDownloads = 4
	return s
}

func serveItems(t *testing.T, n int) (*httptest.Server, []model.MediaItem) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("media bytes for " + r.URL.Path))
	}))
	t.Cleanup(server.Close)

	items := make([]model.MediaItem, n)
	for i := range items {
		items[i] = model.MediaItem{
			ID:           fmt.Sprintf("id-%d", i),
			Filename:     fmt.Sprintf("IMG_%04d.jpg", i),
			CreationTime: fmt.Sprintf("2023-11-%02dT08:00:00Z", i%27+1),
			BaseURL:      fmt.Sprintf("%s/item-%d", server.URL, i),
			MimeType:     "image/jpeg",
		}
	}
	return server, items
}

func TestManager_RunScope_Aggregates(t *testing.T) {
	_, items := serveItems(t, 6)
	settings := testSettings(t)

	// Pre-create K=2 files so they are skipped.
	for _, item := range items[:2] {
		path, err := item.TargetPath(settings.OutputPath)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	enum := &fakeEnumerator{items: items}
	manager := NewManager(settings, enum, nil)

	summaries, err := manager.Run(context.Background(), []model.Scope{model.MonthScope(2023, 11)})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}

	s := summaries[0]
	if s.Items != 6 {
		t.Errorf("Items = %d, want 6", s.Items)
	}
	if s.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", s.Skipped)
	}
	if s.Downloaded+s.Failed != 4 {
		t.Errorf("Downloaded+Failed = %d, want 4", s.Downloaded+s.Failed)
	}
	if s.Downloaded != 4 {
		t.Errorf("Downloaded = %d, want 4", s.Downloaded)
	}
	if s.Bytes == 0 {
		t.Error("Bytes should be non-zero after downloads")
	}

	// The fresh enumeration must have been cached.
	if !manager.store.Exists(model.MonthScope(2023, 11)) {
		t.Error("cache file should exist after enumeration")
	}
}

func TestManager_SecondRunIsIdempotent(t *testing.T) {
	_, items := serveItems(t, 5)
	settings := testSettings(t)
	enum := &fakeEnumerator{items: items}
	manager := NewManager(settings, enum, nil)

	scopes := []model.Scope{model.MonthScope(2023, 11)}

	first, err := manager.Run(context.Background(), scopes)
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if first[0].Downloaded != 5 {
		t.Fatalf("first run Downloaded = %d, want 5", first[0].Downloaded)
	}

	second, err := manager.Run(context.Background(), scopes)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	s := second[0]
	if s.Skipped != 5 {
		t.Errorf("second run Skipped = %d, want 5", s.Skipped)
	}
	if s.Downloaded != 0 || s.Bytes != 0 {
		t.Errorf("second run wrote %d items / %d bytes, want zero", s.Downloaded, s.Bytes)
	}

	// The second run resolves from cache, not the remote service.
	if enum.calls != 1 {
		t.Errorf("enumerator called %d times, want 1", enum.calls)
	}
}

func TestManager_DisableCacheForcesEnumeration(t *testing.T) {
	_, items := serveItems(t, 2)
	settings := testSettings(t)
	settings.DisableCache = true
	enum := &fakeEnumerator{items: items}
	manager := NewManager(settings, enum, nil)

	scopes := []model.Scope{model.MonthScope(2023, 11)}
	if _, err := manager.Run(context.Background(), scopes); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if _, err := manager.Run(context.Background(), scopes); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	if enum.calls != 2 {
		t.Errorf("enumerator called %d times, want 2 with cache disabled", enum.calls)
	}
}

func TestManager_RemoteFailureSkipsScopeOnly(t *testing.T) {
	_, items := serveItems(t, 1)
	settings := testSettings(t)

	// First scope fails enumeration; the run continues to the second,
	// which is pre-seeded in the cache so no remote call is needed.
	enum := &fakeEnumerator{err: fmt.Errorf("%w: search failed", gphotos.ErrRemoteUnavailable)}
	manager := NewManager(settings, enum, nil)

	okScope := model.MonthScope(2023, 12)
	if err := manager.store.Save(okScope, items); err != nil {
		t.Fatal(err)
	}

	var errorEvents int
	manager.onProgress = func(e ProgressEvent) {
		if e.Level == LevelError {
			errorEvents++
		}
	}

	summaries, err := manager.Run(context.Background(), []model.Scope{model.MonthScope(2023, 11), okScope})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1 (failed scope produces none)", len(summaries))
	}
	if summaries[0].Scope != okScope {
		t.Errorf("summary for %v, want %v", summaries[0].Scope, okScope)
	}
	if errorEvents == 0 {
		t.Error("remote failure should surface an error-level event")
	}
}

func TestManager_MalformedItemDoesNotAbortScope(t *testing.T) {
	_, items := serveItems(t, 3)
	items[1].CreationTime = "garbage"
	settings := testSettings(t)
	manager := NewManager(settings, &fakeEnumerator{items: items}, nil)

	summaries, err := manager.Run(context.Background(), []model.Scope{model.MonthScope(2023, 11)})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	s := summaries[0]
	if s.Failed != 1 {
		t.Errorf("Failed = %d, want 1", s.Failed)
	}
	if s.Downloaded != 2 {
		t.Errorf("Downloaded = %d, want 2", s.Downloaded)
	}
}

func TestManager_ResultHookSeesEveryItem(t *testing.T) {
	_, items := serveItems(t, 4)
	settings := testSettings(t)
	manager := NewManager(settings, &fakeEnumerator{items: items}, nil)

	var results int
	manager.OnResult = func(Result) { results++ }
	var started int
	manager.OnScopeStart = func(scope model.Scope, total int, fromCache bool) { started = total }

	if _, err := manager.Run(context.Background(), []model.Scope{model.MonthScope(2023, 11)}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if results != 4 {
		t.Errorf("OnResult fired %d times, want 4", results)
	}
	if started != 4 {
		t.Errorf("OnScopeStart total = %d, want 4", started)
	}
}
