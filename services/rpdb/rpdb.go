// Package rpdb builds RatingPosterDB poster URLs and probes whether a ranked
// poster exists for a title.
package rpdb

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	httpc *http.Client
}

func NewClient(httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{httpc: httpc}
}

// PosterURL returns the ranked-poster URL for a TMDB title under the given
// API key. The fallback flag makes RPDB serve a plain poster for titles it
// has not ranked yet.
func PosterURL(apiKey, mediaType, tmdbID, language string) string {
	lang := language
	if i := strings.Index(lang, "-"); i > 0 {
		lang = lang[:i]
	}
	return fmt.Sprintf(
		"https://api.ratingposterdb.com/%s/tmdb/poster-default/%s-%s.jpg?fallback=true&lang=%s",
		apiKey, mediaType, tmdbID, lang,
	)
}

// Exists reports whether the poster URL resolves. Any transport or status
// failure reads as absent; the caller falls back to the provider poster.
func (c *Client) Exists(ctx context.Context, posterURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, posterURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
