// Package api provides the wire types used by the Google Photos Library API.
package api

import "fmt"

// ErrorDetails is the inner payload of an API error response.
type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Error is the envelope the API returns on failure.
type Error struct {
	Details ErrorDetails `json:"error"`
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d %s)", e.Details.Message, e.Details.Code, e.Details.Status)
}

// MediaMetadata carries the capture metadata of a media item.
// CreationTime is kept as the raw ISO-8601 string so it survives the
// cache round trip byte for byte.
type MediaMetadata struct {
	CreationTime string `json:"creationTime"`
	Width        string `json:"width,omitempty"`
	Height       string `json:"height,omitempty"`
}

// MediaItem is a photo or video as returned by the API.
type MediaItem struct {
	ID            string        `json:"id"`
	ProductURL    string        `json:"productUrl,omitempty"`
	BaseURL       string        `json:"baseUrl"`
	MimeType      string        `json:"mimeType"`
	MediaMetadata MediaMetadata `json:"mediaMetadata"`
	Filename      string        `json:"filename"`
}

// Date names a single calendar date; zero fields are omitted.
type Date struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// DateRange spans two dates inclusively.
type DateRange struct {
	StartDate Date `json:"startDate"`
	EndDate   Date `json:"endDate"`
}

// DateFilter restricts a search to dates or date ranges.
type DateFilter struct {
	Dates  []Date      `json:"dates,omitempty"`
	Ranges []DateRange `json:"ranges,omitempty"`
}

// MediaTypeFilter restricts a search to PHOTO or VIDEO items.
type MediaTypeFilter struct {
	MediaTypes []string `json:"mediaTypes,omitempty"`
}

// Filters combines the filter kinds accepted by mediaItems:search.
type Filters struct {
	DateFilter      *DateFilter      `json:"dateFilter,omitempty"`
	MediaTypeFilter *MediaTypeFilter `json:"mediaTypeFilter,omitempty"`
}

// SearchRequest is the body of mediaItems:search. AlbumID and Filters
// are mutually exclusive.
type SearchRequest struct {
	AlbumID   string   `json:"albumId,omitempty"`
	PageSize  int      `json:"pageSize"`
	PageToken string   `json:"pageToken,omitempty"`
	Filters   *Filters `json:"filters,omitempty"`
}

// SearchResponse is one page of mediaItems:search results.
type SearchResponse struct {
	MediaItems    []MediaItem `json:"mediaItems"`
	NextPageToken string      `json:"nextPageToken"`
}

// Album of photos.
type Album struct {
	ID              string `json:"id,omitempty"`
	Title           string `json:"title"`
	ProductURL      string `json:"productUrl,omitempty"`
	MediaItemsCount string `json:"mediaItemsCount,omitempty"`
}

// ListAlbumsResponse is one page of albums.list or sharedAlbums.list.
type ListAlbumsResponse struct {
	Albums        []Album `json:"albums"`
	SharedAlbums  []Album `json:"sharedAlbums"`
	NextPageToken string  `json:"nextPageToken"`
}
