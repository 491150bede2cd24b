// Package google wraps golang.org/x/oauth2 and the Google Drive, Slides,
// and Docs REST APIs for the document-provider integration.
//
// AUTHORIZATION CODE FLOW:
// The frontend sends the teacher to the authorization URL, Google redirects
// back with a short-lived code, and the server exchanges the code for a
// token set (server-to-server, using the client secret). Offline access is
// requested so the exchange yields a refresh token, and consent is forced on
// every authorization so a re-connect always produces a fresh refresh token.
//
// Every call here is a single bounded attempt. Failures surface to the
// caller unchanged; nothing is retried.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"
)

// MIME types distinguishing the two file kinds in Drive listings.
const (
	MimePresentation = "application/vnd.google-apps.presentation"
	MimeDocument     = "application/vnd.google-apps.document"
)

// listPageSize caps Drive listings. No pagination: the first page is the
// whole result.
const listPageSize = 50

const (
	driveFilesURL    = "https://www.googleapis.com/drive/v3/files"
	presentationsURL = "https://slides.googleapis.com/v1/presentations/"
	documentsURL     = "https://docs.googleapis.com/v1/documents/"
)

// File is one entry of a Drive listing.
type File struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedTime  time.Time `json:"createdTime"`
	ModifiedTime time.Time `json:"modifiedTime"`
	Thumbnail    string    `json:"thumbnailLink,omitempty"`
}

// Presentation is a fetched Slides presentation: its title plus the raw
// response body, kept verbatim as the import snapshot.
type Presentation struct {
	ID      string
	Title   string
	Content []byte
}

// Document is the metadata of a fetched Docs document. Document content is
// never snapshotted, only the title is used.
type Document struct {
	ID    string
	Title string
}

// Client performs the OAuth flow and the provider API calls.
type Client struct {
	config *oauth2.Config
}

// NewClient creates a Client for the given OAuth app credentials.
// redirectURL must match the authorized redirect URI configured in the
// Google console exactly.
func NewClient(clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/presentations",
				"https://www.googleapis.com/auth/documents",
				"https://www.googleapis.com/auth/drive.readonly",
			},
			Endpoint: googleauth.Endpoint,
		},
	}
}

// AuthURL returns the authorization URL to send the user to.
// ApprovalForce re-prompts for consent even for an already-authorized app,
// which guarantees the subsequent exchange returns a refresh token.
func (c *Client) AuthURL(state string) string {
	return c.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token set.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google: exchanging authorization code: %w", err)
	}
	return token, nil
}

// Refresh obtains a new access token from a stored refresh token.
// One attempt against the token endpoint; the refresh token itself is
// unchanged by a refresh.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	source := c.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("google: refreshing access token: %w", err)
	}
	return token, nil
}

// ClientID returns the OAuth client identity, stored with each credential.
func (c *Client) ClientID() string { return c.config.ClientID }

// TokenURI returns the token endpoint, stored with each credential.
func (c *Client) TokenURI() string { return c.config.Endpoint.TokenURL }

// GrantedScopes returns the scope set requested on every authorization.
func (c *Client) GrantedScopes() []string { return c.config.Scopes }

// ListFiles queries the user's Drive index for files of one MIME type,
// newest-modified first, up to 50 entries.
func (c *Client) ListFiles(ctx context.Context, accessToken, mimeType string) ([]File, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("mimeType='%s' and trashed=false", mimeType))
	q.Set("pageSize", fmt.Sprintf("%d", listPageSize))
	q.Set("orderBy", "modifiedTime desc")
	q.Set("fields", "files(id,name,createdTime,modifiedTime,thumbnailLink)")

	body, err := c.get(ctx, accessToken, driveFilesURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var listing struct {
		Files []File `json:"files"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("google: decoding drive listing: %w", err)
	}
	return listing.Files, nil
}

// GetPresentation fetches the full presentation body from the Slides API.
func (c *Client) GetPresentation(ctx context.Context, accessToken, id string) (*Presentation, error) {
	body, err := c.get(ctx, accessToken, presentationsURL+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var meta struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("google: decoding presentation %s: %w", id, err)
	}

	return &Presentation{ID: id, Title: meta.Title, Content: body}, nil
}

// GetDocument fetches document metadata from the Docs API.
func (c *Client) GetDocument(ctx context.Context, accessToken, id string) (*Document, error) {
	body, err := c.get(ctx, accessToken, documentsURL+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var meta struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("google: decoding document %s: %w", id, err)
	}

	return &Document{ID: id, Title: meta.Title}, nil
}

// get performs one authenticated GET against a provider API.
// oauth2's client handles the Authorization header and honors ctx.
func (c *Client) get(ctx context.Context, accessToken, rawURL string) ([]byte, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	client.Timeout = 15 * time.Second

	resp, err := client.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("google: calling provider API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google: provider API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("google: reading provider response: %w", err)
	}
	return body, nil
}
