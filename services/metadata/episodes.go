package metadata

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/TimilsinaBimal/tmdb-addon/models"
	"github.com/TimilsinaBimal/tmdb-addon/services/tmdb"
)

// seasonChunkSize is TMDB's per-request limit on "season/N" field expansion.
const seasonChunkSize = 20

// airDateSkew pins date-only air dates to 05:45 UTC. TMDB air dates carry no
// time component, so midnight UTC would roll an episode onto the previous
// calendar day for every client west of UTC. 05:45 keeps the civil date
// stable for all zones down to UTC-5:45.
const airDateSkew = 5*time.Hour + 45*time.Minute

// assembleEpisodes builds the ordered episode list for a series. An ordering
// override routes assembly through the curated episode group; otherwise
// seasons are fetched in batches and emitted in canonical order.
func (s *Service) assembleEpisodes(ctx context.Context, language, tmdbID, imdbID string, seasons []tmdb.SeasonRef) ([]models.Video, error) {
	if override, ok := s.overrides.Ordering(tmdbID); ok {
		return s.episodesFromGroup(ctx, language, tmdbID, imdbID, override)
	}
	return s.episodesFromSeasons(ctx, language, tmdbID, imdbID, seasons)
}

// episodeIDBase is the prefix of every episode id of a series: the IMDB id
// when one is known, else a tmdb-prefixed provider id.
func episodeIDBase(tmdbID, imdbID string) string {
	if imdbID != "" {
		return imdbID
	}
	return "tmdb:" + tmdbID
}

// episodesFromGroup flattens the named episode group's sub-groups in group
// order. With WatchOrderOnly set, episode ids keep their canonical
// season/episode numbers and the air date is inherited from the first episode
// of the sub-group (the group-level premiere date); otherwise ids are built
// from the synthetic (group order, position) pair.
func (s *Service) episodesFromGroup(ctx context.Context, language, tmdbID, imdbID string, override OrderingOverride) ([]models.Video, error) {
	details, err := s.tmdb.EpisodeGroup(ctx, override.EpisodeGroupID, language)
	if err != nil {
		return nil, fmt.Errorf("episode group %s: %w", override.EpisodeGroupID, err)
	}

	base := episodeIDBase(tmdbID, imdbID)
	var videos []models.Video
	for _, group := range details.Groups {
		var groupAirDate *time.Time
		if len(group.Episodes) > 0 {
			groupAirDate = normalizeAirDate(group.Episodes[0].AirDate)
		}
		for i, episode := range group.Episodes {
			video := models.Video{
				Name:        episode.Name,
				Season:      group.Order,
				Episode:     i + 1,
				Number:      i + 1,
				Thumbnail:   thumbnailURL(episode.StillPath),
				Overview:    episode.Overview,
				Description: episode.Overview,
				Rating:      fmt.Sprintf("%.1f", episode.VoteAverage),
			}
			if override.WatchOrderOnly {
				video.ID = fmt.Sprintf("%s:%d:%d", base, episode.SeasonNumber, episode.EpisodeNumber)
				video.FirstAired = groupAirDate
				video.Released = groupAirDate
			} else {
				video.ID = fmt.Sprintf("%s:%d:%d", base, group.Order, i+1)
				aired := normalizeAirDate(episode.AirDate)
				video.FirstAired = aired
				video.Released = aired
			}
			videos = append(videos, video)
		}
	}
	return videos, nil
}

// episodesFromSeasons is the default path: seasons are partitioned into
// fixed-size batches, each batch fetched concurrently, and the result
// flattened by originating batch index so the emitted order is (season,
// position in season) ascending regardless of completion order. A failed
// batch logs and contributes nothing; the other batches still land.
func (s *Service) episodesFromSeasons(ctx context.Context, language, tmdbID, imdbID string, seasons []tmdb.SeasonRef) ([]models.Video, error) {
	numbers := make([]int, 0, len(seasons))
	for _, season := range seasons {
		numbers = append(numbers, season.SeasonNumber)
	}
	chunks := chunkInts(numbers, seasonChunkSize)

	results := make([][]tmdb.SeasonDetail, len(chunks))
	var wg conc.WaitGroup
	for i, chunk := range chunks {
		i, chunk := i, chunk
		wg.Go(func() {
			details, err := s.tmdb.SeasonBatch(ctx, tmdbID, language, chunk)
			if err != nil {
				log.Printf("[metadata] season batch %v of %s: %v", chunk, tmdbID, err)
				return
			}
			results[i] = details
		})
	}
	wg.Wait()

	base := episodeIDBase(tmdbID, imdbID)
	var videos []models.Video
	for _, details := range results {
		for _, season := range details {
			for i, episode := range season.Episodes {
				aired := normalizeAirDate(episode.AirDate)
				videos = append(videos, models.Video{
					// Position in season, not the provider's raw episode
					// number: renumbering and specials stay stable.
					ID:          fmt.Sprintf("%s:%d:%d", base, episode.SeasonNumber, i+1),
					Name:        episode.Name,
					Season:      episode.SeasonNumber,
					Episode:     i + 1,
					Number:      i + 1,
					Thumbnail:   thumbnailURL(episode.StillPath),
					Overview:    episode.Overview,
					Description: episode.Overview,
					Rating:      fmt.Sprintf("%.1f", episode.VoteAverage),
					FirstAired:  aired,
					Released:    aired,
				})
			}
		}
	}
	return videos, nil
}

func chunkInts(values []int, size int) [][]int {
	if len(values) == 0 {
		return nil
	}
	chunks := make([][]int, 0, (len(values)+size-1)/size)
	for size < len(values) {
		chunks = append(chunks, values[:size])
		values = values[size:]
	}
	return append(chunks, values)
}

// normalizeAirDate parses a date-only air date and pins it to the fixed
// reference offset. Unparseable or empty dates read as unknown.
func normalizeAirDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	t := day.Add(airDateSkew)
	return &t
}
