// Package http provides the HTTP client used to stream media bytes
// to disk.
//
// The Client in this package handles:
//   - Streaming downloads in 1 MiB chunks with progress tracking
//   - Zero Content-Length detection (transient CDN failures)
//   - Write-then-rename so interrupted downloads leave no partial file
//
// # Basic Usage
//
//	client := http.NewClient()
//	n, err := client.DownloadFile(ctx, url, "/photos/2023/Nov/15/IMG.jpg", nil)
package http
