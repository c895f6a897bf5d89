package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	httpx "github.com/ravden/gphotos-downloader/internal/http"
	"github.com/ravden/gphotos-downloader/internal/model"
)

func testItem(serverURL, filename, mimeType string) model.MediaItem {
	return model.MediaItem{
		ID:           "id-" + filename,
		Filename:     filename,
		CreationTime: "2023-11-15T08:30:00Z",
		BaseURL:      serverURL + "/" + filename,
		MimeType:     mimeType,
	}
}

func TestWorker_Downloaded(t *testing.T) {
	body := []byte("fake image bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	base := t.TempDir()
	var chunkTotal int64
	worker := NewWorker(httpx.NewClient(), base, func(delta int64) { chunkTotal += delta })

	res := worker.Do(context.Background(), testItem(server.URL, "IMG_0001.jpg", "image/jpeg"))

	if res.Outcome != Downloaded {
		t.Fatalf("Outcome = %v, want Downloaded (err: %v)", res.Outcome, res.Err)
	}
	if res.Bytes != int64(len(body)) {
		t.Errorf("Bytes = %d, want %d", res.Bytes, len(body))
	}

	wantPath := filepath.Join(base, "2023", "Nov", "15", "IMG_0001.jpg")
	if res.Path != wantPath {
		t.Errorf("Path = %q, want %q", res.Path, wantPath)
	}
	got, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(got) != string(body) {
		t.Errorf("file content = %q, want %q", got, body)
	}
	if chunkTotal != int64(len(body)) {
		t.Errorf("chunk callback total = %d, want %d", chunkTotal, len(body))
	}
}

func TestWorker_SkipsExisting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be contacted for an existing file")
	}))
	defer server.Close()

	base := t.TempDir()
	item := testItem(server.URL, "IMG_0002.jpg", "image/jpeg")

	path := filepath.Join(base, "2023", "Nov", "15", "IMG_0002.jpg")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("already here"), 0644); err != nil {
		t.Fatal(err)
	}

	worker := NewWorker(httpx.NewClient(), base, nil)
	res := worker.Do(context.Background(), item)

	if res.Outcome != Skipped {
		t.Fatalf("Outcome = %v, want Skipped", res.Outcome)
	}
	if res.Bytes != 0 {
		t.Errorf("Bytes = %d, want 0 for skipped item", res.Bytes)
	}
}

func TestWorker_ZeroContentLength(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Writing nothing yields an explicit Content-Length: 0.
	}))
	defer server.Close()

	base := t.TempDir()
	worker := NewWorker(httpx.NewClient(), base, nil)
	res := worker.Do(context.Background(), testItem(server.URL, "IMG_0003.jpg", "image/jpeg"))

	if res.Outcome != Failed {
		t.Fatalf("Outcome = %v, want Failed", res.Outcome)
	}
	if !errors.Is(res.Err, httpx.ErrZeroLength) {
		t.Errorf("Err should wrap ErrZeroLength, got %v", res.Err)
	}

	// Naturally retryable: neither the target file nor a temp file remains.
	path := filepath.Join(base, "2023", "Nov", "15", "IMG_0003.jpg")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("target file should not exist, stat err = %v", err)
	}
	if _, err := os.Stat(path + ".part"); !os.IsNotExist(err) {
		t.Errorf("temp file should not exist, stat err = %v", err)
	}
}

func TestWorker_URLSuffixSelection(t *testing.T) {
	tests := []struct {
		name       string
		mimeType   string
		wantSuffix string
	}{
		{"photo uses =d", "image/jpeg", "=d"},
		{"video uses =dv", "video/mp4", "=dv"},
		{"cache-loaded item falls back to =d", "", "=d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte("bytes"))
			}))
			defer server.Close()

			worker := NewWorker(httpx.NewClient(), t.TempDir(), nil)
			res := worker.Do(context.Background(), testItem(server.URL, "clip001", tt.mimeType))

			if res.Outcome != Downloaded {
				t.Fatalf("Outcome = %v, want Downloaded (err: %v)", res.Outcome, res.Err)
			}
			want := "/clip001" + tt.wantSuffix
			if gotPath != want {
				t.Errorf("requested path %q, want %q", gotPath, want)
			}
		})
	}
}

func TestWorker_MalformedTimestamp(t *testing.T) {
	worker := NewWorker(httpx.NewClient(), t.TempDir(), nil)
	res := worker.Do(context.Background(), model.MediaItem{
		ID:           "bad",
		Filename:     "x.jpg",
		CreationTime: "not-a-timestamp",
		BaseURL:      "http://127.0.0.1:0/never",
	})

	if res.Outcome != Failed {
		t.Fatalf("Outcome = %v, want Failed", res.Outcome)
	}
	if !errors.Is(res.Err, model.ErrMalformedTimestamp) {
		t.Errorf("Err should wrap ErrMalformedTimestamp, got %v", res.Err)
	}
}
