package gphotos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/ravden/gphotos-downloader/internal/gphotos/api"
	"github.com/ravden/gphotos-downloader/internal/model"
)

// ErrRemoteUnavailable is returned when a page request against the
// library fails. Enumeration for the scope stops immediately; nothing
// is retried. The orchestrator decides whether to continue with the
// next scope.
var ErrRemoteUnavailable = errors.New("photos library unavailable")

const (
	defaultEndpoint = "https://photoslibrary.googleapis.com/v1"

	// maxPageSize is the largest page the search endpoint accepts.
	maxPageSize = 100
)

// Client drives paginated enumeration against the Photos Library API.
//
// The HTTP client must already carry authentication (an oauth2
// transport); Client itself never authenticates.
type Client struct {
	httpClient *http.Client
	endpoint   string
	pageSize   int
	log        zerolog.Logger
}

// NewClient creates a Client on top of an authenticated HTTP client.
// pageSize is clamped to the API maximum of 100; zero or negative
// selects the maximum.
func NewClient(httpClient *http.Client, pageSize int, log zerolog.Logger) *Client {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   defaultEndpoint,
		pageSize:   pageSize,
		log:        log,
	}
}

// Search enumerates every media item in the scope, following
// continuation tokens until the service stops returning them. All
// pages are accumulated in order; duplicate IDs across pages are not
// deduplicated (the service paginates without overlap).
//
// Any page failure wraps ErrRemoteUnavailable.
func (c *Client) Search(ctx context.Context, scope model.Scope) ([]model.MediaItem, error) {
	req := api.SearchRequest{PageSize: c.pageSize}
	if scope.IsAlbum() {
		req.AlbumID = scope.AlbumID
	} else {
		// The server clips invalid days, so day 31 covers every month.
		req.Filters = &api.Filters{
			DateFilter: &api.DateFilter{
				Ranges: []api.DateRange{{
					StartDate: api.Date{Year: scope.Year, Month: scope.Month, Day: 1},
					EndDate:   api.Date{Year: scope.Year, Month: scope.Month, Day: 31},
				}},
			},
		}
	}

	var items []model.MediaItem
	for {
		var page api.SearchResponse
		if err := c.post(ctx, "/mediaItems:search", req, &page); err != nil {
			return nil, fmt.Errorf("%w: search %s: %v", ErrRemoteUnavailable, scope, err)
		}

		for _, mi := range page.MediaItems {
			items = append(items, model.MediaItem{
				ID:           mi.ID,
				Filename:     mi.Filename,
				CreationTime: mi.MediaMetadata.CreationTime,
				BaseURL:      mi.BaseURL,
				MimeType:     mi.MimeType,
			})
		}

		if page.NextPageToken == "" {
			return items, nil
		}
		req.PageToken = page.NextPageToken
		c.log.Debug().Str("scope", scope.String()).Int("items", len(items)).Msg("loading next page")
	}
}

// ListAlbums returns all albums owned by the user.
func (c *Client) ListAlbums(ctx context.Context) ([]api.Album, error) {
	return c.listAlbums(ctx, "/albums", func(r *api.ListAlbumsResponse) []api.Album { return r.Albums })
}

// ListSharedAlbums returns all albums shared with the user.
func (c *Client) ListSharedAlbums(ctx context.Context) ([]api.Album, error) {
	return c.listAlbums(ctx, "/sharedAlbums", func(r *api.ListAlbumsResponse) []api.Album { return r.SharedAlbums })
}

// AlbumScopes produces one scope per album: owned albums first, then
// shared albums, in the order the service returns them.
func (c *Client) AlbumScopes(ctx context.Context) ([]model.Scope, error) {
	owned, err := c.ListAlbums(ctx)
	if err != nil {
		return nil, err
	}
	shared, err := c.ListSharedAlbums(ctx)
	if err != nil {
		return nil, err
	}

	scopes := make([]model.Scope, 0, len(owned)+len(shared))
	for _, a := range append(owned, shared...) {
		scopes = append(scopes, model.AlbumScope(a.ID, a.Title))
	}
	return scopes, nil
}

func (c *Client) listAlbums(ctx context.Context, path string, pick func(*api.ListAlbumsResponse) []api.Album) ([]api.Album, error) {
	var albums []api.Album
	pageToken := ""
	for {
		q := url.Values{"pageSize": {"50"}}
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var page api.ListAlbumsResponse
		if err := c.get(ctx, path+"?"+q.Encode(), &page); err != nil {
			return nil, fmt.Errorf("%w: list %s: %v", ErrRemoteUnavailable, path, err)
		}

		albums = append(albums, pick(&page)...)
		if page.NextPageToken == "" {
			return albums, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		apiErr := new(api.Error)
		if json.Unmarshal(data, apiErr) == nil && apiErr.Details.Message != "" {
			return apiErr
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
