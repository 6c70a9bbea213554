package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	gocache "github.com/patrickmn/go-cache"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// Client is a minimal typed TMDB v3 client covering the endpoints the
// metadata pipeline needs: info with field expansion, episode groups, genre
// lists, discover listings and external-id lookup.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client

	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration

	// Genre tables change rarely; one entry per (mediaType, language).
	genres *gocache.Cache
}

func NewClient(apiKey string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		httpc:       httpc,
		minInterval: 25 * time.Millisecond,
		genres:      gocache.New(24*time.Hour, time.Hour),
	}
}

func (c *Client) doGET(ctx context.Context, path string, q url.Values, v any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + q.Encode()

	return retry.Do(
		func() error {
			c.throttleMu.Lock()
			since := time.Since(c.lastRequest)
			if since < c.minInterval {
				time.Sleep(c.minInterval - since)
			}
			c.lastRequest = time.Now()
			c.throttleMu.Unlock()

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := c.httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode >= 300 {
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
				err := fmt.Errorf("tmdb get %s failed: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
				if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
					return err
				}
				return retry.Unrecoverable(err)
			}
			if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
				return retry.Unrecoverable(fmt.Errorf("tmdb decode %s: %w", path, err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

// MovieInfo fetches movie details with credits, videos and release dates
// expanded in a single request.
func (c *Client) MovieInfo(ctx context.Context, id, language string) (*Movie, error) {
	q := url.Values{}
	q.Set("language", language)
	q.Set("append_to_response", "videos,credits,release_dates")
	var m Movie
	if err := c.doGET(ctx, "/movie/"+id, q, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// TVInfo fetches series details with credits, videos, external ids and
// content ratings expanded in a single request.
func (c *Client) TVInfo(ctx context.Context, id, language string) (*TV, error) {
	q := url.Values{}
	q.Set("language", language)
	q.Set("append_to_response", "videos,credits,external_ids,content_ratings")
	var tv TV
	if err := c.doGET(ctx, "/tv/"+id, q, &tv); err != nil {
		return nil, err
	}
	return &tv, nil
}

// SeasonBatch fetches the given seasons of a series in one request using
// "season/N" field expansion. TMDB caps the expansion at 20 sub-resources per
// request; callers are responsible for chunking. Seasons missing from the
// response are skipped, and the returned slice preserves the requested order.
func (c *Client) SeasonBatch(ctx context.Context, id, language string, seasonNumbers []int) ([]SeasonDetail, error) {
	keys := make([]string, 0, len(seasonNumbers))
	for _, n := range seasonNumbers {
		keys = append(keys, fmt.Sprintf("season/%d", n))
	}
	q := url.Values{}
	q.Set("language", language)
	q.Set("append_to_response", strings.Join(keys, ","))

	var raw map[string]json.RawMessage
	if err := c.doGET(ctx, "/tv/"+id, q, &raw); err != nil {
		return nil, err
	}

	details := make([]SeasonDetail, 0, len(seasonNumbers))
	for i, key := range keys {
		payload, ok := raw[key]
		if !ok {
			continue
		}
		var detail SeasonDetail
		if err := json.Unmarshal(payload, &detail); err != nil {
			log.Printf("[tmdb] season %d of %s: malformed payload: %v", seasonNumbers[i], id, err)
			continue
		}
		if detail.SeasonNumber == 0 {
			detail.SeasonNumber = seasonNumbers[i]
		}
		details = append(details, detail)
	}
	return details, nil
}

// EpisodeGroup fetches a curated episode grouping by its group id.
func (c *Client) EpisodeGroup(ctx context.Context, groupID, language string) (*EpisodeGroupDetails, error) {
	q := url.Values{}
	q.Set("language", language)
	var details EpisodeGroupDetails
	if err := c.doGET(ctx, "/tv/episode_group/"+groupID, q, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// GenreList returns the genre id-to-name table for the media type and
// language. Tables are cached in process since they change rarely.
func (c *Client) GenreList(ctx context.Context, mediaType, language string) ([]Genre, error) {
	cacheKey := mediaType + ":" + language
	if cached, ok := c.genres.Get(cacheKey); ok {
		return cached.([]Genre), nil
	}
	path := "/genre/tv/list"
	if mediaType == "movie" {
		path = "/genre/movie/list"
	}
	q := url.Values{}
	q.Set("language", language)
	var resp genreListResponse
	if err := c.doGET(ctx, path, q, &resp); err != nil {
		return nil, err
	}
	c.genres.Set(cacheKey, resp.Genres, gocache.DefaultExpiration)
	return resp.Genres, nil
}

// FindByIMDB resolves an IMDB id to a TMDB id for the given media type.
// Returns 0 when TMDB has no mapping.
func (c *Client) FindByIMDB(ctx context.Context, mediaType, imdbID string) (int64, error) {
	q := url.Values{}
	q.Set("external_source", "imdb_id")
	var resp findResponse
	if err := c.doGET(ctx, "/find/"+imdbID, q, &resp); err != nil {
		return 0, err
	}
	if mediaType == "movie" {
		if len(resp.MovieResults) > 0 {
			return resp.MovieResults[0].ID, nil
		}
		return 0, nil
	}
	if len(resp.TVResults) > 0 {
		return resp.TVResults[0].ID, nil
	}
	return 0, nil
}

// Discover returns one page of a discover listing, optionally restricted to a
// genre id. genreID zero means no genre filter.
func (c *Client) Discover(ctx context.Context, mediaType, language string, page int, genreID int64) ([]DiscoverItem, error) {
	path := "/discover/tv"
	if mediaType == "movie" {
		path = "/discover/movie"
	}
	q := url.Values{}
	q.Set("language", language)
	q.Set("page", fmt.Sprintf("%d", page))
	if genreID > 0 {
		q.Set("with_genres", fmt.Sprintf("%d", genreID))
	}
	var resp discoverResponse
	if err := c.doGET(ctx, path, q, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
