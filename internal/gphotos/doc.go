// Package gphotos enumerates media items and albums from the Google
// Photos Library API.
//
// The package owns pagination only: a scope (month or album) is turned
// into a mediaItems:search filter and every page is accumulated until
// the service stops returning a continuation token. Authentication is
// supplied from outside as a ready-made *http.Client.
//
//	client := gphotos.NewClient(authedHTTPClient, 100, logger)
//	items, err := client.Search(ctx, model.MonthScope(2023, 11))
//
// A failed page request wraps ErrRemoteUnavailable and aborts the
// enumeration for that scope; nothing is retried here.
package gphotos
