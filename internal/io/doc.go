// Package ioutils provides file system utilities for gphotos-downloader.
//
// This package contains functions for:
//   - Filename sanitization for cross-platform compatibility
//   - Idempotent directory creation
//
// # Directory Creation
//
//	// Create the capture-date directory tree before writing into it
//	err := ioutils.EnsureDir("/photos/2023/Nov/15")
//
// # Filename Sanitization
//
//	name := ioutils.SanitizeFileName("IMG: 1/2.jpg") // "IMG_ 1_2.jpg"
package ioutils
