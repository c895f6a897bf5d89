package download

import (
	"context"
	"os"
	"path/filepath"

	httpx "github.com/ravden/gphotos-downloader/internal/http"
	ioutils "github.com/ravden/gphotos-downloader/internal/io"
	"github.com/ravden/gphotos-downloader/internal/model"
)

// Outcome classifies what happened to one item.
type Outcome int

const (
	// Downloaded means bytes were fetched and written to the target path.
	Downloaded Outcome = iota

	// Skipped means a file already existed at the target path. This is
	// an at-most-once-per-path guarantee, not a content check.
	Skipped

	// Failed means the item could not be fetched or written. No file is
	// left at the target path, so a re-run retries it.
	Failed
)

// String renders the outcome for summaries and logs.
func (o Outcome) String() string {
	switch o {
	case Downloaded:
		return "downloaded"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the terminal state of one item's download attempt.
type Result struct {
	Item    model.MediaItem
	Path    string
	Bytes   int64
	Outcome Outcome
	Err     error
}

// Worker downloads single media items under a base output directory.
// Workers are safe for concurrent use: each invocation owns a disjoint
// target path.
type Worker struct {
	client   *httpx.Client
	basePath string

	// onChunk, when set, receives byte deltas as a download streams.
	onChunk func(delta int64)
}

// NewWorker creates a Worker writing under basePath.
func NewWorker(client *httpx.Client, basePath string, onChunk func(delta int64)) *Worker {
	return &Worker{client: client, basePath: basePath, onChunk: onChunk}
}

// Do resolves the item's target path and fetches it if needed.
//
// Contract:
//   - unparseable creation time → Failed (path cannot be derived)
//   - file already present → Skipped, zero bytes
//   - zero declared content length → Failed, no file written
//   - otherwise the body streams to disk and the result is Downloaded
//
// A failure never leaves a partial file at the target path.
func (w *Worker) Do(ctx context.Context, item model.MediaItem) Result {
	path, err := item.TargetPath(w.basePath)
	if err != nil {
		return Result{Item: item, Outcome: Failed, Err: err}
	}

	if _, err := os.Stat(path); err == nil {
		return Result{Item: item, Path: path, Outcome: Skipped}
	}

	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return Result{Item: item, Path: path, Outcome: Failed, Err: err}
	}

	var last int64
	onProgress := func(written, total int64) {
		if w.onChunk != nil {
			w.onChunk(written - last)
			last = written
		}
	}

	n, err := w.client.DownloadFile(ctx, item.DownloadURL(), path, onProgress)
	if err != nil {
		return Result{Item: item, Path: path, Outcome: Failed, Err: err}
	}

	return Result{Item: item, Path: path, Bytes: n, Outcome: Downloaded}
}
