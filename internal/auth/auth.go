package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// scopeReadOnly grants read access to the photo library; this tool
// never writes to the remote side.
const scopeReadOnly = "https://www.googleapis.com/auth/photoslibrary.readonly"

// Client returns an HTTP client whose transport carries OAuth
// credentials for the Photos Library API.
//
// credentialsFile is the installed-app client secret JSON downloaded
// from the Google Cloud console. tokenFile caches the user's token
// between runs: when it exists the browser flow is skipped entirely,
// and expired access tokens refresh transparently.
func Client(ctx context.Context, credentialsFile, tokenFile string) (*http.Client, error) {
	secret, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading client secret %s: %w", credentialsFile, err)
	}
	cfg, err := google.ConfigFromJSON(secret, scopeReadOnly)
	if err != nil {
		return nil, fmt.Errorf("parsing client secret: %w", err)
	}

	token, err := tokenFromFile(tokenFile)
	if err != nil {
		token, err = authorize(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, token); err != nil {
			return nil, fmt.Errorf("caching token: %w", err)
		}
	}

	return cfg.Client(ctx, token), nil
}

// tokenFromFile loads a previously cached token.
func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := new(oauth2.Token)
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

// saveToken caches a token for later runs. Mode 0600: the refresh
// token grants library access on its own.
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// authorize runs the one-shot installed-app flow: a loopback listener
// receives the redirect, the user approves in a browser, and the code
// is exchanged for a token.
func authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("starting redirect listener: %w", err)
	}
	defer ln.Close()
	cfg.RedirectURL = fmt.Sprintf("http://%s/", ln.Addr().String())

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return nil, err
	}
	state := hex.EncodeToString(stateBytes)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- fmt.Errorf("oauth state mismatch")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			errCh <- fmt.Errorf("redirect carried no code: %s", r.URL.Query().Get("error"))
			return
		}
		fmt.Fprintln(w, "Authorized. You can close this window and return to the terminal.")
		codeCh <- code
	})}
	go server.Serve(ln)
	defer server.Close()

	fmt.Fprintf(os.Stderr, "Open the following URL in your browser to authorize:\n\n  %s\n\n",
		cfg.AuthCodeURL(state, oauth2.AccessTypeOffline))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, err
	case code := <-codeCh:
		return cfg.Exchange(ctx, code)
	}
}
