package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ErrZeroLength is returned when the remote declares a Content-Length
// of zero. The Photos CDN does this transiently; no file is written,
// so re-running the export naturally retries the item.
var ErrZeroLength = errors.New("zero content length")

// chunkSize is the copy buffer used when streaming a body to disk.
const chunkSize = 1 << 20 // 1 MiB

// Client wraps HTTP operations for fetching media bytes.
//
// Capability URLs embed their own authorization, so this client is
// deliberately unauthenticated; the Photos API client is a separate,
// oauth-transported client.
//
// Example usage:
//
//	client := NewClient()
//	n, err := client.DownloadFile(ctx, item.DownloadURL(), path, func(written, total int64) {
//	    fmt.Printf("%d / %d bytes\n", written, total)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new download client.
//
// The timeout is generous because a single original-quality video can
// take minutes to stream.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Minute,
		},
		userAgent: "gphotos-downloader",
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	// -1 when the server did not declare a length.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// DownloadFile streams a URL to destPath and returns the bytes written.
//
// Behavior:
//   - A declared Content-Length of exactly zero returns ErrZeroLength
//     before any file is created.
//   - Bytes are streamed through a 1 MiB buffer into destPath + ".part"
//     and renamed into place on success, so a failed or interrupted
//     download never leaves a truncated file at the final name.
//   - An unknown length (chunked response) streams normally.
//
// onProgress, if non-nil, is called after every chunk with
// (bytesWritten, totalBytes); totalBytes is -1 when unknown.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	if resp.ContentLength == 0 {
		return 0, fmt.Errorf("%w: %s", ErrZeroLength, url)
	}

	tmpPath := destPath + ".part"
	file, err := os.Create(tmpPath)
	if err != nil {
		return 0, err
	}

	pw := &ProgressWriter{
		Writer:   file,
		Total:    resp.ContentLength,
		OnUpdate: onProgress,
	}

	buf := make([]byte, chunkSize)
	written, err := io.CopyBuffer(pw, resp.Body, buf)
	if err != nil {
		file.Close()
		os.Remove(tmpPath)
		return 0, err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}

	return written, nil
}
