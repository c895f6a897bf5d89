// Package auth supplies the authenticated HTTP client used against
// the Photos Library API.
//
// The rest of the program treats authentication as an external
// concern: it asks this package for a ready-to-use *http.Client and
// never sees tokens or the OAuth flow.
//
//	httpClient, err := auth.Client(ctx, "auth.json", "token.json")
//	api := gphotos.NewClient(httpClient, 100, logger)
//
// The first run walks the installed-app browser flow over a loopback
// redirect and caches the token to disk; later runs reuse and refresh
// it silently.
package auth
