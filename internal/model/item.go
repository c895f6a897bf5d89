package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ioutils "github.com/ravden/gphotos-downloader/internal/io"
)

// ErrMalformedTimestamp is returned when a media item's creation time
// matches neither of the two timestamp formats the Photos API emits.
//
// The error is fatal for that one item's path derivation only; callers
// must not abort the surrounding scope because of it.
var ErrMalformedTimestamp = errors.New("malformed creation timestamp")

// Creation timestamps arrive in one of two shapes, both UTC:
// whole seconds ("2023-11-15T08:30:00Z") or fractional seconds
// ("2023-11-15T08:30:00.123456Z").
const (
	timeLayoutSeconds    = "2006-01-02T15:04:05Z"
	timeLayoutFractional = "2006-01-02T15:04:05.999999999Z"
)

// Download URL suffixes. Appending "=d" to a baseUrl selects the
// full-resolution original; "=dv" selects the original video bytes.
const (
	photoSuffix = "=d"
	videoSuffix = "=dv"
)

// MediaItem is one photo or video enumerated from the library.
//
// A MediaItem is immutable once fetched and uniquely identified by ID
// within a scope. MimeType is optional: items loaded back from the
// metadata cache have it empty, which degrades the download URL choice
// to the photo suffix (the cache format does not persist mime types).
//
// Example:
//
//	item := model.MediaItem{
//	    ID:           "AAA...",
//	    Filename:     "IMG_0001.jpg",
//	    CreationTime: "2023-11-15T08:30:00Z",
//	    BaseURL:      "https://lh3.googleusercontent.com/...",
//	}
//	path, err := item.TargetPath("/photos")
//	// path = "/photos/2023/Nov/15/IMG_0001.jpg"
type MediaItem struct {
	// ID is the item's stable library identifier.
	ID string

	// Filename is the original filename as uploaded.
	Filename string

	// CreationTime is the capture timestamp exactly as returned by the
	// API (ISO-8601, second or sub-second precision, "Z" suffix).
	CreationTime string

	// BaseURL is a time-limited capability URL. It grants direct byte
	// access but needs a suffix appended to select original quality.
	BaseURL string

	// MimeType distinguishes videos from photos. Empty when the item
	// was loaded from the metadata cache.
	MimeType string
}

// Taken parses the item's creation timestamp.
//
// Parsing first attempts the whole-second format, then falls back to
// the fractional-second format. Returns ErrMalformedTimestamp (wrapped)
// if neither matches.
func (i MediaItem) Taken() (time.Time, error) {
	t, err := time.Parse(timeLayoutSeconds, i.CreationTime)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(timeLayoutFractional, i.CreationTime)
	if err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, i.CreationTime)
}

// IsVideo reports whether the item's mime type marks it as a video.
func (i MediaItem) IsVideo() bool {
	return strings.Contains(i.MimeType, "video")
}

// DownloadURL returns the capability URL with the quality suffix
// appended: "=dv" for videos, "=d" for everything else.
func (i MediaItem) DownloadURL() string {
	if i.IsVideo() {
		return i.BaseURL + videoSuffix
	}
	return i.BaseURL + photoSuffix
}

// TargetPath computes the local file path for the item under base:
//
//	base/<year>/<3-letter month>/<day>/<filename>
//
// The derivation is a pure function of (base, CreationTime, Filename);
// calling it twice always yields the same path. The filename is
// sanitized for cross-platform validity. Directory creation is left to
// the caller.
func (i MediaItem) TargetPath(base string) (string, error) {
	taken, err := i.Taken()
	if err != nil {
		return "", err
	}
	return filepath.Join(
		base,
		strconv.Itoa(taken.Year()),
		taken.Format("Jan"),
		strconv.Itoa(taken.Day()),
		ioutils.SanitizeFileName(i.Filename),
	), nil
}
