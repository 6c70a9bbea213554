// Package cinemeta queries the Cinemeta catalog as a secondary source for
// community IMDB ratings.
package cinemeta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://cinemeta-live.strem.io"

type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: defaultBaseURL, httpc: httpc}
}

type metaResponse struct {
	Meta struct {
		IMDBRating string `json:"imdbRating"`
	} `json:"meta"`
}

// Rating returns the IMDB rating Cinemeta holds for the given title, or an
// empty string when Cinemeta has none.
func (c *Client) Rating(ctx context.Context, mediaType, imdbID string) (string, error) {
	endpoint := fmt.Sprintf("%s/meta/%s/%s.json", c.baseURL, mediaType, imdbID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("cinemeta get %s failed: %s", imdbID, resp.Status)
	}
	var data metaResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("cinemeta decode %s: %w", imdbID, err)
	}
	return data.Meta.IMDBRating, nil
}
