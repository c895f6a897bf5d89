// Package model defines the core data structures used throughout
// gphotos-downloader.
//
// # MediaItem
//
// MediaItem represents one photo or video with its capture timestamp
// and capability URL. The local target path is a pure function of the
// base output path and the item itself:
//
//	path, err := item.TargetPath("/photos")
//	// "/photos/2023/Nov/15/IMG_0001.jpg"
//
// # Scope
//
// Scope is the unit of work: one calendar month or one album. Month
// ranges expand into ordered scope sequences:
//
//	scopes, err := model.MonthRange(2023, 11, 2024, 2)
//	// [2023-11 2023-12 2024-01 2024-02]
//
// Each scope also names its metadata cache file via CacheKey.
package model
