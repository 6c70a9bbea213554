package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/TimilsinaBimal/tmdb-addon/services/tmdb"
)

func TestChunkInts(t *testing.T) {
	values := make([]int, 47)
	for i := range values {
		values[i] = i + 1
	}
	chunks := chunkInts(values, seasonChunkSize)
	if len(chunks) != 3 {
		t.Fatalf("47 seasons split into %d chunks, want 3", len(chunks))
	}
	if len(chunks[0]) != 20 || len(chunks[1]) != 20 || len(chunks[2]) != 7 {
		t.Fatalf("chunk sizes = %d/%d/%d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
	if chunks[2][6] != 47 {
		t.Fatalf("last value = %d, want 47", chunks[2][6])
	}
	if chunkInts(nil, seasonChunkSize) != nil {
		t.Fatal("empty input should produce no chunks")
	}
}

func TestNormalizeAirDate(t *testing.T) {
	got := normalizeAirDate("2023-05-17")
	if got == nil {
		t.Fatal("valid date read as unknown")
	}
	want := time.Date(2023, 5, 17, 5, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("normalizeAirDate = %v, want %v", got, want)
	}

	if normalizeAirDate("") != nil {
		t.Fatal("empty date should be nil")
	}
	if normalizeAirDate("not-a-date") != nil {
		t.Fatal("malformed date should be nil")
	}
}

// seasonServer fakes TMDB's season-expanded tv endpoint: every requested
// season comes back with two episodes.
func seasonServer(t *testing.T, calls *int, mu *sync.Mutex) roundTripFunc {
	t.Helper()
	return func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		*calls++
		mu.Unlock()

		payload := map[string]any{"id": 1396}
		for _, key := range strings.Split(req.URL.Query().Get("append_to_response"), ",") {
			var n int
			fmt.Sscanf(key, "season/%d", &n)
			payload[key] = map[string]any{
				"season_number": n,
				"episodes": []map[string]any{
					{"name": fmt.Sprintf("S%dE1", n), "season_number": n, "episode_number": 1, "air_date": "2020-01-01", "vote_average": 8.06},
					{"name": fmt.Sprintf("S%dE2", n), "season_number": n, "episode_number": 2, "air_date": "2020-01-08", "vote_average": 7.9},
				},
			}
		}
		buf, _ := json.Marshal(payload)
		return jsonResponse(http.StatusOK, string(buf)), nil
	}
}

func TestEpisodesFromSeasonsBatchesAndOrders(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	s := newTestService(t, seasonServer(t, &calls, &mu))

	seasons := make([]tmdb.SeasonRef, 25)
	for i := range seasons {
		seasons[i] = tmdb.SeasonRef{SeasonNumber: i + 1}
	}

	videos, err := s.episodesFromSeasons(context.Background(), "en-US", "1396", "tt0903747", seasons)
	if err != nil {
		t.Fatalf("episodesFromSeasons: %v", err)
	}
	if calls != 2 {
		t.Fatalf("25 seasons fetched in %d requests, want 2", calls)
	}
	if len(videos) != 50 {
		t.Fatalf("%d episodes, want 50", len(videos))
	}

	// Season-ascending, position-ascending regardless of batch completion
	// order.
	for i, video := range videos {
		wantSeason := i/2 + 1
		wantEpisode := i%2 + 1
		if video.Season != wantSeason || video.Episode != wantEpisode {
			t.Fatalf("videos[%d] = S%dE%d, want S%dE%d", i, video.Season, video.Episode, wantSeason, wantEpisode)
		}
		wantID := fmt.Sprintf("tt0903747:%d:%d", wantSeason, wantEpisode)
		if video.ID != wantID {
			t.Fatalf("videos[%d].ID = %q, want %q", i, video.ID, wantID)
		}
	}
	if videos[0].Rating != "8.1" {
		t.Fatalf("rating = %q, want 8.1", videos[0].Rating)
	}
}

func TestEpisodesFromSeasonsUsesProviderIDWithoutIMDB(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	s := newTestService(t, seasonServer(t, &calls, &mu))

	videos, err := s.episodesFromSeasons(context.Background(), "en-US", "1396", "", []tmdb.SeasonRef{{SeasonNumber: 1}})
	if err != nil {
		t.Fatalf("episodesFromSeasons: %v", err)
	}
	if videos[0].ID != "tmdb:1396:1:1" {
		t.Fatalf("id = %q, want tmdb:1396:1:1", videos[0].ID)
	}
}

func TestEpisodesFromGroupRenumbers(t *testing.T) {
	s := newTestService(t, func(req *http.Request) (*http.Response, error) {
		if !strings.HasPrefix(req.URL.Path, "/3/tv/episode_group/") {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{
			"id": "grp1",
			"groups": [
				{"name": "Part 1", "order": 1, "episodes": [
					{"name": "Ep A", "season_number": 1, "episode_number": 3, "air_date": "2017-05-02"},
					{"name": "Ep B", "season_number": 2, "episode_number": 1, "air_date": "2017-05-09"}
				]},
				{"name": "Part 2", "order": 2, "episodes": [
					{"name": "Ep C", "season_number": 2, "episode_number": 5, "air_date": "2018-04-06"}
				]}
			]
		}`), nil
	})

	override := OrderingOverride{TMDBID: "71446", EpisodeGroupID: "grp1"}
	videos, err := s.episodesFromGroup(context.Background(), "en-US", "71446", "tt6468322", override)
	if err != nil {
		t.Fatalf("episodesFromGroup: %v", err)
	}
	if len(videos) != 3 {
		t.Fatalf("%d episodes, want 3", len(videos))
	}

	// Ids rebuilt from (group order, position), not the canonical numbers.
	wantIDs := []string{"tt6468322:1:1", "tt6468322:1:2", "tt6468322:2:1"}
	for i, want := range wantIDs {
		if videos[i].ID != want {
			t.Fatalf("videos[%d].ID = %q, want %q", i, videos[i].ID, want)
		}
	}
	if videos[1].FirstAired == nil || videos[1].FirstAired.Day() != 9 {
		t.Fatalf("episode keeps its own air date: %v", videos[1].FirstAired)
	}
}

func TestEpisodesFromGroupWatchOrderOnly(t *testing.T) {
	s := newTestService(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{
			"id": "grp2",
			"groups": [
				{"name": "Arc 1", "order": 1, "episodes": [
					{"name": "Ep A", "season_number": 1, "episode_number": 3, "air_date": "2013-04-07"},
					{"name": "Ep B", "season_number": 2, "episode_number": 1, "air_date": "2017-04-01"}
				]}
			]
		}`), nil
	})

	override := OrderingOverride{TMDBID: "1429", EpisodeGroupID: "grp2", WatchOrderOnly: true}
	videos, err := s.episodesFromGroup(context.Background(), "en-US", "1429", "tt2560140", override)
	if err != nil {
		t.Fatalf("episodesFromGroup: %v", err)
	}

	// Canonical season/episode numbers survive in the id; only the ordering
	// and the inherited air date change.
	if videos[0].ID != "tt2560140:1:3" || videos[1].ID != "tt2560140:2:1" {
		t.Fatalf("ids = %q, %q", videos[0].ID, videos[1].ID)
	}
	for i, video := range videos {
		if video.FirstAired == nil {
			t.Fatalf("videos[%d] missing air date", i)
		}
		if video.FirstAired.Month() != time.April || video.FirstAired.Day() != 7 {
			t.Fatalf("videos[%d] air date = %v, want the group premiere date", i, video.FirstAired)
		}
	}
}
