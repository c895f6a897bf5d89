package model

import (
	"fmt"
)

// Scope is one unit of enumeration and download: either a calendar
// month or an album. A scope determines both the remote search filter
// and the identity of its metadata cache file.
type Scope struct {
	// Year and Month identify a month scope. Month is 1-12 and zero
	// for album scopes.
	Year  int
	Month int

	// AlbumID and AlbumTitle identify an album scope. AlbumID is empty
	// for month scopes.
	AlbumID    string
	AlbumTitle string
}

// MonthScope returns the scope for one calendar month.
func MonthScope(year, month int) Scope {
	return Scope{Year: year, Month: month}
}

// AlbumScope returns the scope for one album.
func AlbumScope(id, title string) Scope {
	return Scope{AlbumID: id, AlbumTitle: title}
}

// IsAlbum reports whether the scope targets an album rather than a month.
func (s Scope) IsAlbum() bool {
	return s.AlbumID != ""
}

// CacheKey derives the metadata cache identity for the scope.
// Keys never collide across distinct scopes: month scopes use the
// year/month pair, album scopes the album ID.
func (s Scope) CacheKey() string {
	if s.IsAlbum() {
		return "album_" + s.AlbumID
	}
	return fmt.Sprintf("photo_%d_%d", s.Year, s.Month)
}

// String renders the scope for progress output.
func (s Scope) String() string {
	if s.IsAlbum() {
		if s.AlbumTitle != "" {
			return s.AlbumTitle
		}
		return s.AlbumID
	}
	return fmt.Sprintf("%d-%02d", s.Year, s.Month)
}

// MonthRange produces every month scope from (startYear, startMonth)
// to (endYear, endMonth) inclusive, advancing month by month with year
// rollover after December.
//
// It fails fast, before any iteration, when a month is out of range or
// the end pair precedes the start pair.
//
// Example:
//
//	scopes, _ := model.MonthRange(2023, 11, 2024, 2)
//	// [2023-11 2023-12 2024-01 2024-02]
func MonthRange(startYear, startMonth, endYear, endMonth int) ([]Scope, error) {
	if startMonth < 1 || startMonth > 12 {
		return nil, fmt.Errorf("start month out of range: %d", startMonth)
	}
	if endMonth < 1 || endMonth > 12 {
		return nil, fmt.Errorf("end month out of range: %d", endMonth)
	}
	if endYear < startYear || (endYear == startYear && endMonth < startMonth) {
		return nil, fmt.Errorf("end %d-%02d is before start %d-%02d", endYear, endMonth, startYear, startMonth)
	}

	var scopes []Scope
	year, month := startYear, startMonth
	for {
		scopes = append(scopes, MonthScope(year, month))
		if year == endYear && month == endMonth {
			break
		}
		month++
		if month > 12 {
			month = 1
			year++
		}
	}

	return scopes, nil
}
