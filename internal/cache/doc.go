// Package cache stores enumerated media item listings on disk, one
// CSV file per scope, so re-runs skip the paginated enumeration.
//
// The format is a header row (id, filename, creationTime, baseUrl)
// followed by one row per item in enumeration order. The round trip is
// deliberately lossy: mimeType is not persisted, so cache-loaded items
// select the photo download suffix even for videos.
//
//	store := cache.NewStore(".")
//	if store.Exists(scope) {
//	    items, err := store.Load(scope)
//	    ...
//	}
//
// Cached baseUrl values are time-limited capability URLs. There is no
// refresh step: when they expire, downloads fail harmlessly (no file
// is created) until the cache is bypassed with the disable-cache
// option or rewritten by a fresh enumeration.
package cache
